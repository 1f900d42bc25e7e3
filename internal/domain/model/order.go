package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "tarjeta"
	PaymentMethodTransfer   PaymentMethod = "transferencia"
	PaymentMethodOnDelivery PaymentMethod = "contra_entrega"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOnDelivery:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pendiente"
	OrderStatusProcessing OrderStatus = "procesando"
	OrderStatusShipped    OrderStatus = "enviado"
	OrderStatusDelivered  OrderStatus = "entregado"
	OrderStatusCancelled  OrderStatus = "cancelado"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//公開用の注文コード（PW-YYYYMMDD-XXXX）。採番後は不変。
	Code string `gorm:"type:varchar(25);not null;uniqueIndex" json:"code"`

	//ゲスト注文はNULL
	UserID *int64 `gorm:"index" json:"user_id"`

	//連絡先
	FullName string `gorm:"type:varchar(150);not null" json:"full_name"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	Phone    string `gorm:"type:varchar(20);not null" json:"phone"`

	//配送先
	Address    string `gorm:"type:varchar(255);not null" json:"address"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	State      string `gorm:"type:varchar(100);not null" json:"state"`
	PostalCode string `gorm:"type:varchar(15);not null" json:"postal_code"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:'tarjeta'" json:"payment_method"`
	Notes         string        `gorm:"type:text" json:"notes"`

	//セント単位
	Total int64 `gorm:"not null" json:"total"`

	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pendiente';index" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文主がいるか（ゲスト注文なら false）
func (o Order) HasOwner() bool {
	return o.UserID != nil
}

// viewerが閲覧できるか。ゲスト注文はコード/IDを知っていれば誰でも見られる。
func (o Order) ViewableBy(viewerID *int64, isAdmin bool) bool {
	if !o.HasOwner() {
		return true
	}
	if isAdmin {
		return true
	}
	return viewerID != nil && *viewerID == *o.UserID
}
