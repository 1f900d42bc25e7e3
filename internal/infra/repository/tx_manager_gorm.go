package repository

import (
	"context"

	repo "pwshop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	db         *gorm.DB
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	inventory  repo.InventoryRepository
	products   repo.ProductRepository
	auditLogs  repo.AuditLogRepository
}

// repoはtxを持ったDBで作り直す
func newTxReposGorm(tx *gorm.DB) *txReposGorm {
	return &txReposGorm{
		db:         tx,
		orders:     NewOrderGormRepository(tx),
		orderItems: NewOrderItemGormRepository(tx),
		inventory:  NewInventoryGormRepository(tx),
		products:   NewProductGormRepository(tx),
		auditLogs:  NewAuditLogGormRepository(tx),
	}
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// tx内のネストなのでgormはSAVEPOINT/ROLLBACK TOを発行する
func (r *txReposGorm) WithinSavepoint(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTxReposGorm(tx))
	})
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTxReposGorm(tx))
	})
}
