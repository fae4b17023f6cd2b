package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Name         string    `gorm:"not null"                   json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"       json:"email"`
	PasswordHash string    `gorm:"not null"                   json:"-"`
	Role         string    `gorm:"not null;default:user"      json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"         json:"id"`
	Name        string          `gorm:"not null"                     json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"  json:"price"`
	Category    string          `gorm:"index"                        json:"category"`
	Stock       int             `gorm:"not null;default:0"           json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Order references its user and product by id only. TotalPrice is fixed at
// creation and is not recomputed when the product price changes.
type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"         json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;index;not null"     json:"userId"`
	User       *User           `gorm:"foreignKey:UserID"            json:"user,omitempty"`
	ProductID  uuid.UUID       `gorm:"type:uuid;index;not null"     json:"productId"`
	Product    *Product        `gorm:"foreignKey:ProductID"         json:"product,omitempty"`
	Quantity   int             `gorm:"not null;default:1"           json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"  json:"totalPrice"`
	Status     string          `gorm:"not null;default:Pending"     json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
