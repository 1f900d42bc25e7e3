package handler

import (
	"net/http"
	"strconv"

	"pwshop/internal/middleware"
	"pwshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// 一覧だけ要ログイン。詳細・確認・トラッキングはゲスト注文があるので任意。
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, authRequired echo.MiddlewareFunc, authOptional echo.MiddlewareFunc) {
	e.GET("/orders", h.list, authRequired)
	e.GET("/orders/track", h.track)
	e.GET("/orders/code/:code", h.detailByCode, authOptional)
	e.GET("/orders/:id", h.detail, authOptional)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrderByID(c.Request().Context(), viewerFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detailByCode(c echo.Context) error {
	out, err := h.uc.GetOrderByCode(c.Request().Context(), viewerFromContext(c), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 公開トラッキング。コードの一致だけで返す。
func (h *OrderHandler) track(c echo.Context) error {
	out, err := h.uc.TrackByCode(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// contextの認証情報からViewerを作る
func viewerFromContext(c echo.Context) usecase.Viewer {
	var v usecase.Viewer

	if id, ok := getUserIDFromContext(c); ok {
		v.UserID = &id
	}
	if role, ok := c.Get(middleware.CtxUserRoleKey).(string); ok {
		v.IsAdmin = role == "ADMIN"
	}
	return v
}
