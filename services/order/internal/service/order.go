package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/OzgurKrks/mikrosevice/pkg/events"
	"github.com/OzgurKrks/mikrosevice/pkg/logging"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/clients"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/models"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/repo"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/transport"
)

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrUserNotFound      = errors.New("user not found")     // 400, business rule
	ErrProductNotFound   = errors.New("product not found")  // 400, business rule
	ErrInsufficientStock = errors.New("insufficient stock") // 400, business rule
)

type OrderService struct {
	Repo     *repo.GormRepo
	Users    *clients.UserClient
	Products *clients.ProductClient
	Producer *events.Producer
}

// CreateOrder runs the validation calls strictly in sequence before the
// transaction opens, so no database connection is held across network
// waits: user lookup first, then one product lookup per item. The stock
// check is advisory only; nothing reserves or decrements stock, so two
// concurrent orders can both pass it.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if req.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item required", ErrValidation)
	}
	for i := range req.Items {
		if req.Items[i].ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if req.Items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}

	if _, err := s.Users.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, req.UserID)
		}
		l.Error("user_lookup_failed", "user_id", req.UserID, "error", err)
		return nil, err
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		prod, err := s.Products.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrProductNotFound, it.ProductID)
			}
			l.Error("product_lookup_failed", "product_id", it.ProductID, "error", err)
			return nil, err
		}
		if prod.Stock < it.Quantity {
			return nil, fmt.Errorf("%w: product %q has %d, requested %d",
				ErrInsufficientStock, prod.Name, prod.Stock, it.Quantity)
		}

		items = append(items, models.OrderItem{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Quantity:    it.Quantity,
			Price:       prod.Price,
		})
		total += prod.Price * float64(it.Quantity)
	}

	order := &models.Order{
		UserID:      req.UserID,
		TotalAmount: total,
		Status:      models.StatusPending,
		Items:       items,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		l.Error("create_order_failed", "error", err)
		return nil, err
	}

	if err := s.Producer.Publish(ctx, "order_events", fmt.Sprint(order.ID), "order_created", map[string]any{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
	}); err != nil {
		l.Warn("publish_failed", "event", "order_created", "error", err)
	}

	l.Info("order_created", "order_id", order.ID, "total_amount", order.TotalAmount)
	return order, nil
}

// GetOrder enriches the order with the user's display name; a failed
// lookup degrades to an empty name rather than failing the read.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*transport.OrderWithUser, error) {
	l := logging.FromContext(ctx).With("svc", "order.get")

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	res := &transport.OrderWithUser{Order: *order}
	if user, err := s.Users.GetUser(ctx, order.UserID); err != nil {
		l.Warn("user_enrichment_failed", "user_id", order.UserID, "error", err)
	} else {
		res.UserName = user.Name
	}

	return res, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status")

	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	if err := s.Producer.Publish(ctx, "order_events", fmt.Sprint(order.ID), "order_status_changed", map[string]any{
		"order_id": order.ID,
		"status":   status,
	}); err != nil {
		l.Warn("publish_failed", "event", "order_status_changed", "error", err)
	}

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
