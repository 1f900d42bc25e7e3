package server

import (
	"pwshop/internal/config"
	"pwshop/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	authRequired := middleware.AuthJWT(cfg)
	authOptional := middleware.AuthJWTOptional(cfg)

	h.Auth.RegisterRoutes(e)
	h.Products.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e, authOptional)
	h.Orders.RegisterRoutes(e, authRequired, authOptional)

	//管理APIはADMINだけ
	admin := e.Group("/admin")
	admin.Use(authRequired)
	admin.Use(middleware.AdminRoleGuard())
	h.AdminProducts.RegisterRoutes(admin)
	h.AdminOrders.RegisterRoutes(admin)
}
