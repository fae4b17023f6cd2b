package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")

	user, ok := authmw.CurrentUser(c)
	if !ok {
		l.Warn("create_order_failed", "status", 401, "reason", "no identity")
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, user.ID, req)
	if err != nil {
		return failure(l, "create_order_failed", err, productNotFound)
	}

	l.Info("create_order_success", "status", 201, "order_id", order.ID.String())
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_my")

	user, ok := authmw.CurrentUser(c)
	if !ok {
		l.Warn("my_orders_failed", "status", 401, "reason", "no identity")
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}

	orders, err := h.Svc.ListMyOrders(ctx, user.ID)
	if err != nil {
		return failure(l, "my_orders_failed", err, "")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_list")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		return failure(l, "list_orders_failed", err, "")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_update_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_order_failed", "status", 404, "reason", "malformed id", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return failure(l, "update_order_failed", err, "order not found")
	}

	l.Info("update_order_success", "order_id", order.ID.String(), "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
