package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const productNotFound = "product not found"

type ProductHandler struct {
	Svc *service.CatalogService
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_list")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return failure(l, "list_products_failed", err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 404, "reason", "malformed id", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, productNotFound)
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return failure(l, "get_product_failed", err, productNotFound)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return failure(l, "create_product_failed", err, "")
	}

	l.Info("create_product_success", "status", 201, "product_id", prod.ID.String())
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_product_failed", "status", 404, "reason", "malformed id", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, productNotFound)
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return failure(l, "update_product_failed", err, productNotFound)
	}

	l.Info("update_product_success", "product_id", prod.ID.String())
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_failed", "status", 404, "reason", "malformed id", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, productNotFound)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return failure(l, "delete_product_failed", err, productNotFound)
	}

	l.Info("delete_product_success", "product_id", id.String())
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product removed"})
}
