package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status

	return &order, nil
}
