package usecase_test

import (
	"context"
	"testing"

	"pwshop/internal/domain/model"
	repo "pwshop/internal/repository"
	"pwshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CartStoreMock struct{ mock.Mock }

func (m *CartStoreMock) Get(ctx context.Context, sessionID string) (model.Cart, error) {
	args := m.Called(ctx, sessionID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartStoreMock) Save(ctx context.Context, sessionID string, cart model.Cart) error {
	args := m.Called(ctx, sessionID, cart)
	return args.Error(0)
}

func (m *CartStoreMock) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) ListActive(ctx context.Context, category model.Category) ([]model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) ListCategories(ctx context.Context) ([]model.Category, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindActiveByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_SnapshotsCurrentPrice(t *testing.T) {
	ctx := context.Background()

	store := new(CartStoreMock)
	products := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(store, products)

	p := model.Product{ID: 1, Name: "Camisa", Price: 10000, IsActive: true}
	products.On("FindActiveByID", mock.Anything, int64(1)).Return(p, nil)
	store.On("Get", mock.Anything, "sid").Return(model.NewCart(), nil)
	store.On("Save", mock.Anything, "sid", mock.Anything).Return(nil)

	out, err := uc.AddToCart(ctx, "sid", usecase.AddCartInput{ProductID: 1, Size: "M", Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(10000), out.Items[0].UnitPriceSnapshot)
	assert.Equal(t, int64(20000), out.Total)
	store.AssertCalled(t, "Save", mock.Anything, "sid", mock.Anything)
}

func TestCartUsecase_AddToCart_MergesSameProductAndSize(t *testing.T) {
	ctx := context.Background()

	store := new(CartStoreMock)
	products := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(store, products)

	p := model.Product{ID: 1, Name: "Camisa", Price: 10000, IsActive: true}
	products.On("FindActiveByID", mock.Anything, int64(1)).Return(p, nil)

	existing := model.NewCart()
	existing.Add(p, "M", 1)
	store.On("Get", mock.Anything, "sid").Return(existing, nil)
	store.On("Save", mock.Anything, "sid", mock.Anything).Return(nil)

	out, err := uc.AddToCart(ctx, "sid", usecase.AddCartInput{ProductID: 1, Size: "M", Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(3), out.Items[0].Quantity)
	assert.Equal(t, int64(30000), out.Items[0].Subtotal)
}

func TestCartUsecase_AddToCart_QuantityFallsBackToOne(t *testing.T) {
	ctx := context.Background()

	store := new(CartStoreMock)
	products := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(store, products)

	p := model.Product{ID: 1, Name: "Camisa", Price: 10000, IsActive: true}
	products.On("FindActiveByID", mock.Anything, int64(1)).Return(p, nil)
	store.On("Get", mock.Anything, "sid").Return(model.NewCart(), nil)
	store.On("Save", mock.Anything, "sid", mock.Anything).Return(nil)

	out, err := uc.AddToCart(ctx, "sid", usecase.AddCartInput{ProductID: 1, Quantity: 0})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Items[0].Quantity)
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	ctx := context.Background()

	store := new(CartStoreMock)
	products := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(store, products)

	products.On("FindActiveByID", mock.Anything, int64(9)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, "sid", usecase.AddCartInput{ProductID: 9, Quantity: 1})
	assertErrContains(t, err, "not found")
}

// =====================
// RemoveItem / GetCart
// =====================

func TestCartUsecase_RemoveItem_MissingKeyDoesNotSave(t *testing.T) {
	ctx := context.Background()

	store := new(CartStoreMock)
	uc := usecase.NewCartUsecase(store, new(CartProductRepoMock))

	cart := model.NewCart()
	cart.Add(model.Product{ID: 1, Price: 100}, "", 1)
	store.On("Get", mock.Anything, "sid").Return(cart, nil)

	out, err := uc.RemoveItem(ctx, "sid", "99_unica")

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_RemoveItem_DeletesEntry(t *testing.T) {
	ctx := context.Background()

	store := new(CartStoreMock)
	uc := usecase.NewCartUsecase(store, new(CartProductRepoMock))

	cart := model.NewCart()
	cart.Add(model.Product{ID: 1, Price: 100}, "M", 1)
	store.On("Get", mock.Anything, "sid").Return(cart, nil)
	store.On("Save", mock.Anything, "sid", mock.Anything).Return(nil)

	out, err := uc.RemoveItem(ctx, "sid", "1_M")

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

func TestCartUsecase_GetCart_EmptySession(t *testing.T) {
	ctx := context.Background()

	store := new(CartStoreMock)
	uc := usecase.NewCartUsecase(store, new(CartProductRepoMock))

	store.On("Get", mock.Anything, "sid").Return(model.NewCart(), nil)

	out, err := uc.GetCart(ctx, "sid")

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}
