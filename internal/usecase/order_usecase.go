package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pwshop/internal/domain/model"
	repo "pwshop/internal/repository"
)

// 閲覧者。未ログインならUserIDはnil。
type Viewer struct {
	UserID  *int64
	IsAdmin bool
}

// 注文の参照系（ID/コード検索・自分の注文一覧・トラッキング）
type OrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
}

func NewOrderUsecase(orderRepo repo.OrderRepository, orderItemRepo repo.OrderItemRepository) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

type OrderOutput struct {
	ID            int64               `json:"id"`
	Code          string              `json:"code"`
	UserID        *int64              `json:"user_id"`
	FullName      string              `json:"full_name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	State         string              `json:"state"`
	PostalCode    string              `json:"postal_code"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Notes         string              `json:"notes"`
	Total         int64               `json:"total"`
	Status        model.OrderStatus   `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemOutput   `json:"items"`
}

// IDで取得。注文主がいる注文は本人か管理者だけ。ゲスト注文は誰でも見られる。
func (u *OrderUsecase) GetOrderByID(ctx context.Context, viewer Viewer, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !o.ViewableBy(viewer.UserID, viewer.IsAdmin) {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return u.withItems(ctx, o)
}

// コードで取得（確認画面）。閲覧ルールはIDと同じ。
func (u *OrderUsecase) GetOrderByCode(ctx context.Context, viewer Viewer, code string) (OrderOutput, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}

	o, err := u.orderRepo.FindByCode(ctx, code)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !o.ViewableBy(viewer.UserID, viewer.IsAdmin) {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return u.withItems(ctx, o)
}

// トラッキング。コードを知っていること自体を資格として扱い、所有チェックはしない。
// 見つからないのは障害ではなく「not found」。
func (u *OrderUsecase) TrackByCode(ctx context.Context, code string) (OrderOutput, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}

	o, err := u.orderRepo.FindByCode(ctx, code)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.withItems(ctx, o)
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまずは固定で取る
	orders, _, err := u.orderRepo.ListByUserID(ctx, userID, 1, 50)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

func (u *OrderUsecase) withItems(ctx context.Context, o model.Order) (OrderOutput, error) {
	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(o, items), nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPriceSnapshot,
			Subtotal:  it.Subtotal(),
		})
	}

	return OrderOutput{
		ID:            o.ID,
		Code:          o.Code,
		UserID:        o.UserID,
		FullName:      o.FullName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		City:          o.City,
		State:         o.State,
		PostalCode:    o.PostalCode,
		PaymentMethod: o.PaymentMethod,
		Notes:         o.Notes,
		Total:         o.Total,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
