package model

import "time"

// 注文明細。価格と商品名はカート追加時点のスナップショット。
// 注文削除でCASCADE、参照中の商品削除はRESTRICTで防ぐ。
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	ProductID int64   `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	ProductNameSnapshot string `gorm:"type:varchar(150);not null" json:"product_name"`

	//サイズ無しは空文字
	Size string `gorm:"type:varchar(10)" json:"size"`

	Quantity          int64 `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot int64 `gorm:"not null" json:"unit_price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (it OrderItem) Subtotal() int64 {
	return it.Quantity * it.UnitPriceSnapshot
}
