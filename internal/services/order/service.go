package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/auth"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/messaging"
	"campus-canteen/internal/models"
)

// RepositoryInterface is the storage contract for orders
type RepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error
}

// CatalogReader is the menu lookup the engine prices orders against
type CatalogReader interface {
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
}

// EventPublisher emits order lifecycle events
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *messaging.OrderCreatedEvent) error
	PublishStatusUpdate(ctx context.Context, event *messaging.StatusUpdateEvent) error
}

// Service implements the order engine: creation with price snapshotting,
// scoped reads, and role-gated status transitions.
type Service struct {
	repo      RepositoryInterface
	catalog   CatalogReader
	publisher EventPublisher
	logger    *logger.Logger
	sem       *semaphore.Weighted
}

// NewService creates a new order service. maxConcurrent caps in-flight
// order creations.
func NewService(repo RepositoryInterface, catalog CatalogReader, publisher EventPublisher, log *logger.Logger, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		logger:    log,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// CreateOrder validates the request against the catalog, snapshots prices,
// computes the total and persists the order in a single write. Any missing
// or unavailable item rejects the whole order; no partial orders exist.
func (s *Service) CreateOrder(ctx context.Context, identity *auth.Identity, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to acquire order slot", err)
	}
	defer s.sem.Release(1)

	var total float64
	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		menuItem, err := s.catalog.GetByID(ctx, item.MenuItemID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return nil, apperrors.Newf(apperrors.KindNotFound, "Menu item %s not found", item.MenuItemID)
			}
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, apperrors.Newf(apperrors.KindUnavailable, "Menu item %s is not available", menuItem.Name)
		}

		total += menuItem.Price * float64(item.Quantity)
		lines = append(lines, models.OrderLine{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   item.Quantity,
			Price:      menuItem.Price,
		})
	}

	order := &models.Order{
		ID:                  uuid.NewString(),
		UserID:              identity.UserID,
		Items:               lines,
		TotalAmount:         total,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		Status:              models.StatusPending,
		PaymentStatus:       models.PaymentPending,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
	})

	// The order is durable at this point; a publish failure must not fail
	// the request.
	event := &messaging.OrderCreatedEvent{
		OrderID:             order.ID,
		UserID:              order.UserID,
		Items:               order.Items,
		TotalAmount:         order.TotalAmount,
		DeliveryAddress:     order.DeliveryAddress,
		SpecialInstructions: order.SpecialInstructions,
		CreatedAt:           order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("order_event_publish_failed", "Failed to publish order created event", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}

	return order, nil
}

// ListOrders returns all orders for admins and only the caller's own orders
// otherwise. Scoping happens in the query, not by post-filtering.
func (s *Service) ListOrders(ctx context.Context, identity *auth.Identity) ([]models.Order, error) {
	if identity.IsAdmin() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByUser(ctx, identity.UserID)
}

// GetOrder returns a single order. Non-admins may only read their own.
func (s *Service) GetOrder(ctx context.Context, identity *auth.Identity, id string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin() && order.UserID != identity.UserID {
		return nil, apperrors.New(apperrors.KindForbidden, "Not authorized to view this order")
	}

	return order, nil
}

// UpdateStatus sets the order status. Admin only; any enumerated value is
// accepted as the next state.
func (s *Service) UpdateStatus(ctx context.Context, identity *auth.Identity, id string, req *models.UpdateOrderStatusRequest, requestID string) (*models.Order, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "Not authorized to update order status")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	order.Status = req.Status

	s.logger.Info("order_status_updated", "Order status updated", requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": string(oldStatus),
		"new_status": string(req.Status),
	})
	s.publishStatusUpdate(ctx, order, identity, "status", string(oldStatus), string(req.Status), requestID)

	return order, nil
}

// UpdatePaymentStatus sets the payment status independently of the order
// status. Admin only.
func (s *Service) UpdatePaymentStatus(ctx context.Context, identity *auth.Identity, id string, req *models.UpdatePaymentStatusRequest, requestID string) (*models.Order, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "Not authorized to update payment status")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := order.PaymentStatus
	if err := s.repo.UpdatePaymentStatus(ctx, id, req.PaymentStatus); err != nil {
		return nil, err
	}
	order.PaymentStatus = req.PaymentStatus

	s.logger.Info("payment_status_updated", "Payment status updated", requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": string(oldStatus),
		"new_status": string(req.PaymentStatus),
	})
	s.publishStatusUpdate(ctx, order, identity, "payment_status", string(oldStatus), string(req.PaymentStatus), requestID)

	return order, nil
}

func (s *Service) publishStatusUpdate(ctx context.Context, order *models.Order, identity *auth.Identity, field, oldValue, newValue, requestID string) {
	event := &messaging.StatusUpdateEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ChangedBy: identity.UserID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishStatusUpdate(ctx, event); err != nil {
		s.logger.Error("status_event_publish_failed", "Failed to publish status update event", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
}
