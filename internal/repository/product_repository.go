package repository

import (
	"context"
	"errors"

	"pwshop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反（注文コードの衝突など）
var ErrConflict = errors.New("conflict")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開中の商品一覧（名前順）。categoryが空なら全カテゴリ。
	ListActive(ctx context.Context, category model.Category) ([]model.Product, error)

	//公開中の商品が使っているカテゴリ一覧（重複なし）
	ListCategories(ctx context.Context) ([]model.Category, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)

	//公開中のものだけを引く（カタログ用）
	FindActiveByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
