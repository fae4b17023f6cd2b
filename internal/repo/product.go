package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
