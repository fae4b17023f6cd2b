package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return failure(l, "register_failed", err, "")
	}

	l.Info("register_success", "status", 201, "user_id", user.ID.String())
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return failure(l, "login_failed", err, "")
	}

	l.Info("login_successful", "user_id", res.User.ID.String())
	return c.JSON(http.StatusOK, transport.TokenResponse{Token: res.Token})
}
