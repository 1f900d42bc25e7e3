package middleware

import (
	"net/http"

	"pwshop/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// 管理API（/admin配下）の入口。AuthJWTの後段に置く。
// contextのroleがADMINのときだけ通す。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
