package model

import (
	"fmt"
	"sort"
)

// サイズ指定なしのキー用センチネル
const NoSizeKey = "unica"

// (商品ID, サイズ) からカートのエントリキーを作る
func CartItemKey(productID int64, size string) string {
	if size == "" {
		return fmt.Sprintf("%d_%s", productID, NoSizeKey)
	}
	return fmt.Sprintf("%d_%s", productID, size)
}

// カートの1行。価格は追加時点のスナップショット。
type CartItem struct {
	Key               string `json:"key"`
	ProductID         int64  `json:"product_id"`
	Name              string `json:"name"`
	Size              string `json:"size"`
	Quantity          int64  `json:"quantity"`
	UnitPriceSnapshot int64  `json:"unit_price"`
	Subtotal          int64  `json:"subtotal"`
	ImageURL          string `json:"image_url"`
}

// セッションに保存するカート本体。DBには永続化しない。
type Cart struct {
	Items map[string]CartItem `json:"items"`
}

func NewCart() Cart {
	return Cart{Items: map[string]CartItem{}}
}

// 追加。同じ (商品, サイズ) は数量を加算して小計を再計算する。
func (c *Cart) Add(p Product, size string, qty int64) CartItem {
	if c.Items == nil {
		c.Items = map[string]CartItem{}
	}

	key := CartItemKey(p.ID, size)

	if it, ok := c.Items[key]; ok {
		it.Quantity += qty
		it.Subtotal = it.Quantity * it.UnitPriceSnapshot
		c.Items[key] = it
		return it
	}

	it := CartItem{
		Key:               key,
		ProductID:         p.ID,
		Name:              p.Name,
		Size:              size,
		Quantity:          qty,
		UnitPriceSnapshot: p.Price,
		Subtotal:          p.Price * qty,
		ImageURL:          p.ImageURL,
	}
	c.Items[key] = it
	return it
}

// 削除。キーが無ければ何もしない。
func (c *Cart) Remove(key string) {
	delete(c.Items, key)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// 小計の合計
func (c Cart) Total() int64 {
	var total int64 = 0
	for _, it := range c.Items {
		total += it.Subtotal
	}
	return total
}

// キー昇順のエントリ一覧（レスポンスと注文処理を決定的にする）
func (c Cart) SortedItems() []CartItem {
	keys := make([]string, 0, len(c.Items))
	for k := range c.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]CartItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, c.Items[k])
	}
	return items
}
