package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// 商品カテゴリ（固定セット）
type Category string

const (
	CategoryShirts      Category = "Camisas"
	CategoryPants       Category = "Pantalones"
	CategoryAccessories Category = "Accesorios"
	CategorySweaters    Category = "Suéteres"
	CategoryOther       Category = "Otros"
)

// カテゴリが固定セットに含まれるか
func (c Category) Valid() bool {
	switch c {
	case CategoryShirts, CategoryPants, CategoryAccessories, CategorySweaters, CategoryOther:
		return true
	}
	return false
}

// 価格はセント単位のint64（小数2桁固定）
type Product struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string   `gorm:"type:varchar(150);not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Category    Category `gorm:"type:varchar(50);not null;default:'Otros';index" json:"category"`
	Price       int64    `gorm:"not null" json:"price"`
	Stock       int64    `gorm:"not null" json:"stock"`

	//商品画像のURL（任意）
	ImageURL string `gorm:"type:varchar(255)" json:"image_url"`

	//カンマ区切りのサイズ一覧（例: "S,M,L,XL" / "30,32,34"）
	Sizes string `gorm:"type:varchar(150)" json:"sizes"`

	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// "S, M ,L," → ["S","M","L"]
func (p Product) SizeList() []string {
	if strings.TrimSpace(p.Sizes) == "" {
		return []string{}
	}

	parts := strings.Split(p.Sizes, ",")
	sizes := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}
