package transport

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`
	Stock       int              `json:"stock"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
}

type CreateOrderRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
