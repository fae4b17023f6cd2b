package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	ctxUser   = "user"
	ctxUserID = "user_id"
	ctxRole   = "role"
)

func bearerToken(c echo.Context) (string, bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func setUserContext(c echo.Context, u *models.User) {
	c.Set(ctxUser, u)
	c.Set(ctxUserID, u.ID)
	c.Set(ctxRole, u.Role)
}

// CurrentUser returns the user attached by RequireAuth.
func CurrentUser(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(ctxUser).(*models.User)
	return u, ok && u != nil
}
