package model_test

import (
	"testing"

	"pwshop/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestCartItemKey(t *testing.T) {
	assert.Equal(t, "7_M", model.CartItemKey(7, "M"))

	//サイズ無しはセンチネル
	assert.Equal(t, "7_unica", model.CartItemKey(7, ""))
}

func TestCart_Add_SnapshotsPrice(t *testing.T) {
	cart := model.NewCart()
	p := model.Product{ID: 1, Name: "Camisa blanca", Price: 10000, ImageURL: "/img/1.jpg"}

	it := cart.Add(p, "M", 2)

	assert.Equal(t, "1_M", it.Key)
	assert.Equal(t, int64(2), it.Quantity)
	assert.Equal(t, int64(10000), it.UnitPriceSnapshot)
	assert.Equal(t, int64(20000), it.Subtotal)
	assert.Equal(t, "Camisa blanca", it.Name)
}

func TestCart_Add_SameKeyAccumulates(t *testing.T) {
	cart := model.NewCart()
	p := model.Product{ID: 1, Name: "Camisa", Price: 10000}

	cart.Add(p, "M", 2)

	//追加後に価格が変わっても小計はスナップショット価格で再計算される
	p.Price = 99999
	it := cart.Add(p, "M", 1)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(3), it.Quantity)
	assert.Equal(t, int64(30000), it.Subtotal)
}

func TestCart_Add_DifferentSizesAreDistinct(t *testing.T) {
	cart := model.NewCart()
	p := model.Product{ID: 1, Name: "Camisa", Price: 10000}

	cart.Add(p, "M", 1)
	cart.Add(p, "L", 1)
	cart.Add(p, "", 1)

	assert.Len(t, cart.Items, 3)
}

func TestCart_Total(t *testing.T) {
	cart := model.NewCart()
	cart.Add(model.Product{ID: 1, Price: 10000}, "M", 2)
	cart.Add(model.Product{ID: 2, Price: 5000}, "", 1)

	assert.Equal(t, int64(25000), cart.Total())
}

func TestCart_Remove_MissingKeyIsNoop(t *testing.T) {
	cart := model.NewCart()
	cart.Add(model.Product{ID: 1, Price: 100}, "", 1)

	cart.Remove("99_unica")

	assert.Len(t, cart.Items, 1)
}

func TestCart_SortedItems(t *testing.T) {
	cart := model.NewCart()
	cart.Add(model.Product{ID: 2, Price: 100}, "", 1)
	cart.Add(model.Product{ID: 1, Price: 100}, "M", 1)

	items := cart.SortedItems()

	assert.Len(t, items, 2)
	assert.Equal(t, "1_M", items[0].Key)
	assert.Equal(t, "2_unica", items[1].Key)
}

func TestProduct_SizeList(t *testing.T) {
	p := model.Product{Sizes: " S, M ,L,,XL "}
	assert.Equal(t, []string{"S", "M", "L", "XL"}, p.SizeList())

	empty := model.Product{Sizes: "  "}
	assert.Empty(t, empty.SizeList())
}
