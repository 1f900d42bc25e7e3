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

type ProdProductRepoMock struct{ mock.Mock }

func (m *ProdProductRepoMock) ListActive(ctx context.Context, category model.Category) ([]model.Product, error) {
	args := m.Called(ctx, category)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProdProductRepoMock) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]model.Category)
	return cats, args.Error(1)
}

func (m *ProdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdProductRepoMock) FindActiveByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProdProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProdInventoryRepoMock struct{ mock.Mock }

func (m *ProdInventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *ProdInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	panic("not used in ProductUsecase tests")
}

func (m *ProdInventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	panic("not used in ProductUsecase tests")
}

func (m *ProdInventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func newProductUC() (*usecase.ProductUsecase, *ProdProductRepoMock, *ProdInventoryRepoMock, *CoAuditRepoMock) {
	products := new(ProdProductRepoMock)
	inventory := new(ProdInventoryRepoMock)
	audits := new(CoAuditRepoMock)
	return usecase.NewProductUsecase(products, inventory, audits), products, inventory, audits
}

// =====================
// ListProducts / GetProductDetail
// =====================

func TestProductUsecase_ListProducts(t *testing.T) {
	ctx := context.Background()

	uc, products, _, _ := newProductUC()

	products.On("ListActive", mock.Anything, model.CategoryShirts).
		Return([]model.Product{{ID: 1, Name: "Camisa blanca"}}, nil)
	products.On("ListCategories", mock.Anything).
		Return([]model.Category{model.CategoryShirts, model.CategoryOther}, nil)

	out, err := uc.ListProducts(ctx, model.CategoryShirts)

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, model.CategoryShirts, out.CurrentCategory)
	assert.Len(t, out.Categories, 2)
}

func TestProductUsecase_ListProducts_InvalidCategory(t *testing.T) {
	ctx := context.Background()

	uc, _, _, _ := newProductUC()

	_, err := uc.ListProducts(ctx, model.Category("Zapatos"))
	assertErrContains(t, err, "invalid category")
}

func TestProductUsecase_GetProductDetail(t *testing.T) {
	ctx := context.Background()

	uc, products, _, _ := newProductUC()

	products.On("FindActiveByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Camisa", Sizes: "S,M,L"}, nil)

	out, err := uc.GetProductDetail(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L"}, out.Sizes)
}

func TestProductUsecase_GetProductDetail_InactiveIsNotFound(t *testing.T) {
	ctx := context.Background()

	uc, products, _, _ := newProductUC()

	//非公開はFindActiveByIDの時点でErrNotFoundになる
	products.On("FindActiveByID", mock.Anything, int64(2)).
		Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(ctx, 2)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

// =====================
// 管理系
// =====================

func TestProductUsecase_AdminCreateProduct_DefaultsCategory(t *testing.T) {
	ctx := context.Background()

	uc, products, _, _ := newProductUC()

	var created model.Product
	products.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(model.Product)
		}).
		Return(model.Product{ID: 9}, nil)

	id, err := uc.AdminCreateProduct(ctx, 1, usecase.AdminSaveProductInput{
		Name:  "  Camisa  ",
		Price: 10000,
		Stock: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, "Camisa", created.Name)
	assert.Equal(t, model.CategoryOther, created.Category)
}

func TestProductUsecase_AdminCreateProduct_Rejections(t *testing.T) {
	ctx := context.Background()

	uc, _, _, _ := newProductUC()

	_, err := uc.AdminCreateProduct(ctx, 1, usecase.AdminSaveProductInput{Name: " "})
	assertErrContains(t, err, "name required")

	_, err = uc.AdminCreateProduct(ctx, 1, usecase.AdminSaveProductInput{Name: "Camisa", Price: -1})
	assertErrContains(t, err, "price must be >= 0")

	_, err = uc.AdminCreateProduct(ctx, 0, usecase.AdminSaveProductInput{Name: "Camisa"})
	assertErrContains(t, err, "unauthorized")
}

func TestProductUsecase_AdminUpdateInventory(t *testing.T) {
	ctx := context.Background()

	uc, products, inventory, audits := newProductUC()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Camisa", Stock: 3}, nil)
	inventory.On("SetStock", mock.Anything, int64(1), int64(10)).Return(nil)

	var adj model.InventoryAdjustment
	inventory.On("CreateAdjustment", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			adj = args.Get(1).(model.InventoryAdjustment)
		}).
		Return(nil)

	var logRow model.AuditLog
	audits.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			logRow = args.Get(1).(model.AuditLog)
		}).
		Return(nil)

	err := uc.AdminUpdateInventory(ctx, 7, 1, 10, "recuento físico")

	assert.NoError(t, err)

	//履歴は差分で残す
	assert.Equal(t, int64(7), adj.Delta)
	assert.Equal(t, int64(7), adj.AdminUserID)

	//監査ログは前後の在庫を持つ
	assert.Equal(t, model.AuditActionUpdateStock, logRow.Action)
	assert.Equal(t, `{"stock":3}`, logRow.BeforeJSON)
	assert.Equal(t, `{"stock":10}`, logRow.AfterJSON)
}

func TestProductUsecase_AdminUpdateInventory_ReasonRequired(t *testing.T) {
	ctx := context.Background()

	uc, _, _, _ := newProductUC()

	err := uc.AdminUpdateInventory(ctx, 7, 1, 10, "  ")
	assertErrContains(t, err, "reason required")
}
