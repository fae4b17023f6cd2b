package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
)

// failure logs err and maps it to the client-facing HTTP error. Only
// validation messages are passed through; store errors stay in the log.
func failure(l *slog.Logger, event string, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "validation", "error", err)
		msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "conflict", "error", err)
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, "status", 401, "reason", "invalid credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	default:
		l.Error(event, "status", 500, "reason", "internal", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
