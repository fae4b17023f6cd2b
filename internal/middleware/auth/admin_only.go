package auth

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

// RequireRole must run after RequireAuth. It performs no reads.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return requireRole("insufficient role", roles...)
}

func RequireAdmin() echo.MiddlewareFunc {
	return requireRole("admin access only", models.RoleAdmin)
}

func requireRole(forbidden string, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "require_role")

			user, ok := CurrentUser(c)
			if !ok {
				l.Warn("role_check_failed", "status", 401, "reason", "no identity")
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			if !slices.Contains(roles, user.Role) {
				l.Warn("role_check_failed", "status", 403, "reason", "role not allowed", "role", user.Role)
				return echo.NewHTTPError(http.StatusForbidden, forbidden)
			}
			return next(c)
		}
	}
}
