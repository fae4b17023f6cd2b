package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type UserFinder interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type Authenticator struct {
	Secret []byte
	Users  UserFinder
}

func NewAuthenticator(secret []byte, users UserFinder) *Authenticator {
	return &Authenticator{Secret: secret, Users: users}
}

// RequireAuth verifies the bearer token and loads the current user record.
// Role and existence come from the store, not from the token claims.
func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "require_auth")

		raw, ok := bearerToken(c)
		if !ok {
			l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, a.Secret)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "bad subject", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}

		user, err := a.Users.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				l.Warn("auth_failed", "status", 401, "reason", "user not found", "user_id", userID)
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			l.Error("auth_error", "status", 500, "reason", "cannot read user", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		setUserContext(c, user)
		l = logging.FromContext(ctx).With("user_id", user.ID.String())
		c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))

		return next(c)
	}
}
