package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/OzgurKrks/mikrosevice/pkg/events"
	"github.com/OzgurKrks/mikrosevice/pkg/logging"
	"github.com/OzgurKrks/mikrosevice/services/product/internal/models"
	"github.com/OzgurKrks/mikrosevice/services/product/internal/repo"
	"github.com/OzgurKrks/mikrosevice/services/product/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type ProductService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.create")

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description required", ErrValidation)
	}
	if req.Category == "" {
		return nil, fmt.Errorf("%w: category required", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	prod := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}

	if err := s.Producer.Publish(ctx, "product_events", fmt.Sprint(prod.ID), "product_created", map[string]any{
		"product_id": prod.ID,
		"name":       prod.Name,
		"price":      prod.Price,
	}); err != nil {
		l.Warn("publish_failed", "event", "product_created", "error", err)
	}

	l.Info("product_created", "product_id", prod.ID)
	return prod, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return prod, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// UpdateProduct applies only the fields present in the request; omitted
// fields keep their stored values.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.update")

	if req.Name == nil && req.Description == nil && req.Price == nil && req.Stock == nil && req.Category == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if req.Price != nil && *req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
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
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}

	if err := s.Producer.Publish(ctx, "product_events", fmt.Sprint(prod.ID), "product_updated", map[string]any{
		"product_id": prod.ID,
	}); err != nil {
		l.Warn("publish_failed", "event", "product_updated", "error", err)
	}

	return prod, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "product.delete")

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	if err := s.Producer.Publish(ctx, "product_events", fmt.Sprint(id), "product_deleted", map[string]any{
		"product_id": id,
	}); err != nil {
		l.Warn("publish_failed", "event", "product_deleted", "error", err)
	}

	return nil
}
