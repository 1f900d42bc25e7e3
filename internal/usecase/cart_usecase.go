package usecase

import (
	"context"
	"net/http"
	"strings"

	"pwshop/internal/domain/model"
	repo "pwshop/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// カートはDBではなくセッションストア（CartStore）に置く。
type CartUsecase struct {
	store       repo.CartStore
	productRepo repo.ProductRepository
}

func NewCartUsecase(store repo.CartStore, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		store:       store,
		productRepo: productRepo,
	}
}

type CartResponse struct {
	Items []model.CartItem `json:"items"`
	Total int64            `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Size      string
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}

	cart, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return toCartResponse(cart), nil
}

// 追加。同じ (商品, サイズ) は数量加算、違うサイズは別エントリ。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	//数量が不正なら1にフォールバック
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	//公開中の商品だけカートに入れられる
	p, err := u.productRepo.FindActiveByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	cart.Add(p, strings.TrimSpace(in.Size), qty)

	if err := u.store.Save(ctx, sessionID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return toCartResponse(cart), nil
}

// 削除。キーが無ければ何もせず今のカートを返す。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, itemKey string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}
	if itemKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item key")
	}

	cart, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	if _, ok := cart.Items[itemKey]; ok {
		cart.Remove(itemKey)
		if err := u.store.Save(ctx, sessionID, cart); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
		}
	}

	return toCartResponse(cart), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusBadRequest, "no session")
	}

	if err := u.store.Clear(ctx, sessionID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}

func toCartResponse(cart model.Cart) CartResponse {
	return CartResponse{
		Items: cart.SortedItems(),
		Total: cart.Total(),
	}
}
