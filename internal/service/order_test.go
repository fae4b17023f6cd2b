package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func intPtr(v int) *int { return &v }

func registerUser(t *testing.T, auth *AuthService, email string) *models.User {
	t.Helper()
	u, err := auth.Register(context.Background(), transport.RegisterRequest{Name: email, Email: email, Password: "pw"})
	require.NoError(t, err)
	return u
}

func TestOrderService_CreateOrder_SnapshotsTotal(t *testing.T) {
	auth, catalog, orders, _ := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, auth, "buyer@example.com")
	prod, err := catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Pen", Price: price("2.50"), Stock: 10})
	require.NoError(t, err)

	order, err := orders.CreateOrder(ctx, user.ID, transport.CreateOrderRequest{ProductID: prod.ID.String(), Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, decimal.NewFromInt(10).Equal(order.TotalPrice))

	_, err = catalog.UpdateProduct(ctx, prod.ID, transport.UpdateProductRequest{Price: price("100")})
	require.NoError(t, err)

	mine, err := orders.ListMyOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(mine[0].TotalPrice))

	// stock is not decremented
	got, err := catalog.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestOrderService_CreateOrder_DefaultQuantity(t *testing.T) {
	auth, catalog, orders, _ := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, auth, "q@example.com")
	prod, err := catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Cup", Price: price("3")})
	require.NoError(t, err)

	order, err := orders.CreateOrder(ctx, user.ID, transport.CreateOrderRequest{ProductID: prod.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, order.Quantity)
	assert.True(t, decimal.NewFromInt(3).Equal(order.TotalPrice))
}

func TestOrderService_CreateOrder_Errors(t *testing.T) {
	auth, catalog, orders, _ := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, auth, "e@example.com")
	prod, err := catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Cup", Price: price("3")})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  transport.CreateOrderRequest
		want error
	}{
		{name: "missing product id", req: transport.CreateOrderRequest{}, want: ErrValidation},
		{name: "malformed product id", req: transport.CreateOrderRequest{ProductID: "abc"}, want: ErrValidation},
		{name: "zero quantity", req: transport.CreateOrderRequest{ProductID: prod.ID.String(), Quantity: intPtr(0)}, want: ErrValidation},
		{name: "negative quantity", req: transport.CreateOrderRequest{ProductID: prod.ID.String(), Quantity: intPtr(-2)}, want: ErrValidation},
		{name: "total overflows", req: transport.CreateOrderRequest{ProductID: prod.ID.String(), Quantity: intPtr(4_000_000_000)}, want: ErrValidation},
		{name: "unknown product", req: transport.CreateOrderRequest{ProductID: uuid.NewString()}, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orders.CreateOrder(ctx, user.ID, tt.req)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestOrderService_ListMyOrders_OnlyOwn(t *testing.T) {
	auth, catalog, orders, _ := newTestServices(t)
	ctx := context.Background()

	alice := registerUser(t, auth, "alice@example.com")
	bob := registerUser(t, auth, "bob@example.com")
	prod, err := catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Hat", Price: price("15")})
	require.NoError(t, err)

	_, err = orders.CreateOrder(ctx, alice.ID, transport.CreateOrderRequest{ProductID: prod.ID.String()})
	require.NoError(t, err)
	_, err = orders.CreateOrder(ctx, bob.ID, transport.CreateOrderRequest{ProductID: prod.ID.String()})
	require.NoError(t, err)

	mine, err := orders.ListMyOrders(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)
	require.NotNil(t, mine[0].Product)
	assert.Equal(t, "Hat", mine[0].Product.Name)

	all, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, o := range all {
		require.NotNil(t, o.User)
		require.NotNil(t, o.Product)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	auth, catalog, orders, pub := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, auth, "s@example.com")
	prod, err := catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Box", Price: price("1")})
	require.NoError(t, err)
	order, err := orders.CreateOrder(ctx, user.ID, transport.CreateOrderRequest{ProductID: prod.ID.String()})
	require.NoError(t, err)

	updated, err := orders.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// any transition is allowed
	updated, err = orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)

	unchanged, err := orders.UpdateStatus(ctx, order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, unchanged.Status)

	_, err = orders.UpdateStatus(ctx, order.ID, "Lost")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = orders.UpdateStatus(ctx, uuid.New(), models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Contains(t, pub.types(), "order_status_updated")
}

func TestOrderService_PublishFailureDoesNotFailWrite(t *testing.T) {
	auth, catalog, orders, pub := newTestServices(t)
	ctx := context.Background()

	user := registerUser(t, auth, "p@example.com")
	prod, err := catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Bag", Price: price("5")})
	require.NoError(t, err)

	pub.err = errors.New("broker down")
	order, err := orders.CreateOrder(ctx, user.ID, transport.CreateOrderRequest{ProductID: prod.ID.String()})
	require.NoError(t, err)

	mine, err := orders.ListMyOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
}
