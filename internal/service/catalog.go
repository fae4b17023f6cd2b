package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type ProductStore interface {
	CreateProduct(ctx context.Context, prod *models.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CatalogService struct {
	Repo   ProductStore
	Events mykafka.Publisher
}

// maxPrice is the first value that no longer fits numeric(12,2).
var maxPrice = decimal.New(1, 10)

func checkPrice(p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	case !p.Equal(p.Round(2)):
		return fmt.Errorf("%w: price has more than 2 decimal places", ErrValidation)
	case p.GreaterThanOrEqual(maxPrice):
		return fmt.Errorf("%w: price too large", ErrValidation)
	}
	return nil
}

func notFound(err error, what string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
	}
	return err
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	case req.Price == nil:
		return nil, fmt.Errorf("%w: price required", ErrValidation)
	case req.Stock < 0:
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if err := checkPrice(*req.Price); err != nil {
		return nil, err
	}

	prod := &models.Product{
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    strings.TrimSpace(req.Category),
		Stock:       req.Stock,
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicProductEvents, prod.ID.String(), map[string]any{
		"type":      "product_created",
		"productID": prod.ID.String(),
		"name":      prod.Name,
		"price":     prod.Price,
	})

	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (*models.Product, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		req.Name = &name
	}
	if req.Price != nil {
		if err := checkPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, notFound(err, "product", id)
	}

	publish(ctx, s.Events, mykafka.TopicProductEvents, prod.ID.String(), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID.String(),
		"name":      prod.Name,
		"price":     prod.Price,
	})

	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product", id)
	}

	publish(ctx, s.Events, mykafka.TopicProductEvents, id.String(), map[string]any{
		"type":      "product_deleted",
		"productID": id.String(),
	})

	return nil
}
