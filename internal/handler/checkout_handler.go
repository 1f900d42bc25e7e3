package handler

import (
	"net/http"

	"pwshop/internal/domain/model"
	"pwshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout のHTTP。ログインは任意（ゲスト注文可）。
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, authOptional echo.MiddlewareFunc) {
	e.POST("/checkout", h.checkout, authOptional)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no session"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//ログイン済みなら注文主として紐付ける
	var userID *int64
	if id, ok := getUserIDFromContext(c); ok {
		userID = &id
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), sid, userID, usecase.CheckoutInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
