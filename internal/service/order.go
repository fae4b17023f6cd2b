package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type OrderStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

type OrderService struct {
	Repo   OrderStore
	Events mykafka.Publisher
}

// CreateOrder reads the product and then writes the order. The two steps are
// not atomic and stock is left untouched.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil || productID == uuid.Nil {
		return nil, fmt.Errorf("%w: productId required", ErrValidation)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFound(err, "product", productID)
	}

	total := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if total.GreaterThanOrEqual(maxPrice) {
		return nil, fmt.Errorf("%w: order total too large", ErrValidation)
	}

	order := &models.Order{
		UserID:     userID,
		ProductID:  product.ID,
		Quantity:   quantity,
		TotalPrice: total,
		Status:     models.OrderStatusPending,
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		logging.FromContext(ctx).Error("create_order_error", "reason", "product read succeeded, order write failed", "product_id", productID, "error", err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":       "order_created",
		"orderID":    order.ID.String(),
		"userID":     userID.String(),
		"productID":  productID.String(),
		"quantity":   quantity,
		"totalPrice": order.TotalPrice,
	})

	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

// UpdateStatus accepts any known status from any current status. An empty
// status leaves the order unchanged.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		order, err := s.Repo.GetOrder(ctx, id)
		if err != nil {
			return nil, notFound(err, "order", id)
		}
		return order, nil
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, notFound(err, "order", id)
	}

	publish(ctx, s.Events, mykafka.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID.String(),
		"status":  order.Status,
	})

	return order, nil
}
