package order

import (
	"context"
	"testing"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/auth"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/messaging"
	"campus-canteen/internal/models"
)

type fakeCatalog struct {
	items map[string]*models.MenuItem
}

func (c *fakeCatalog) GetByID(_ context.Context, id string) (*models.MenuItem, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Menu item not found")
	}
	copied := *item
	return &copied, nil
}

type fakeRepo struct {
	orders map[string]*models.Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: map[string]*models.Order{}}
}

func (r *fakeRepo) Create(_ context.Context, order *models.Order) error {
	stored := *order
	stored.Items = append([]models.OrderLine(nil), order.Items...)
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Order not found")
	}
	copied := *order
	copied.Items = append([]models.OrderLine(nil), order.Items...)
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context) ([]models.Order, error) {
	all := []models.Order{}
	for _, o := range r.orders {
		all = append(all, *o)
	}
	return all, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	own := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			own = append(own, *o)
		}
	}
	return own, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return apperrors.New(apperrors.KindNotFound, "Order not found")
	}
	order.Status = status
	return nil
}

func (r *fakeRepo) UpdatePaymentStatus(_ context.Context, id string, status models.PaymentStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return apperrors.New(apperrors.KindNotFound, "Order not found")
	}
	order.PaymentStatus = status
	return nil
}

type fakePublisher struct {
	created []*messaging.OrderCreatedEvent
	updates []*messaging.StatusUpdateEvent
}

func (p *fakePublisher) PublishOrderCreated(_ context.Context, e *messaging.OrderCreatedEvent) error {
	p.created = append(p.created, e)
	return nil
}

func (p *fakePublisher) PublishStatusUpdate(_ context.Context, e *messaging.StatusUpdateEvent) error {
	p.updates = append(p.updates, e)
	return nil
}

func newTestService(catalog *fakeCatalog, repo *fakeRepo) (*Service, *fakePublisher) {
	pub := &fakePublisher{}
	return NewService(repo, catalog, pub, logger.New("order-test"), 10), pub
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[string]*models.MenuItem{
		"m1": {ID: "m1", Name: "Jollof Rice with Chicken", Price: 25.00, IsAvailable: true},
		"m2": {ID: "m2", Name: "Waakye", Price: 20.00, IsAvailable: true},
		"m3": {ID: "m3", Name: "Kelewele", Price: 10.00, IsAvailable: false},
	}}
}

var (
	student      = &auth.Identity{UserID: "u1", Role: models.RoleStudent}
	otherStudent = &auth.Identity{UserID: "u2", Role: models.RoleStudent}
	admin        = &auth.Identity{UserID: "a1", Role: models.RoleAdmin}
)

func TestCreateOrderComputesTotalAndSnapshotsPrices(t *testing.T) {
	repo := newFakeRepo()
	svc, pub := newTestService(testCatalog(), repo)

	order, err := svc.CreateOrder(context.Background(), student, &models.CreateOrderRequest{
		Items:           []models.CreateOrderItem{{MenuItemID: "m1", Quantity: 2}},
		DeliveryAddress: "123 Main St",
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if order.TotalAmount != 50.00 {
		t.Errorf("expected total 50.00, got %v", order.TotalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(order.Items))
	}
	line := order.Items[0]
	if line.MenuItemID != "m1" || line.Quantity != 2 || line.Price != 25.00 {
		t.Errorf("unexpected line: %+v", line)
	}
	if order.Status != models.StatusPending {
		t.Errorf("expected status pending, got %q", order.Status)
	}
	if order.PaymentStatus != models.PaymentPending {
		t.Errorf("expected payment status pending, got %q", order.PaymentStatus)
	}
	if order.UserID != "u1" {
		t.Errorf("expected order owned by u1, got %q", order.UserID)
	}
	if len(pub.created) != 1 {
		t.Errorf("expected 1 order created event, got %d", len(pub.created))
	}
}

func TestCreateOrderMultipleLines(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(testCatalog(), repo)

	order, err := svc.CreateOrder(context.Background(), student, &models.CreateOrderRequest{
		Items: []models.CreateOrderItem{
			{MenuItemID: "m1", Quantity: 1},
			{MenuItemID: "m2", Quantity: 3},
		},
		DeliveryAddress: "Hall 3",
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if order.TotalAmount != 85.00 {
		t.Errorf("expected total 85.00, got %v", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 lines, got %d", len(order.Items))
	}
}

func TestCreateOrderPriceChangeDoesNotAffectExistingOrder(t *testing.T) {
	catalog := testCatalog()
	repo := newFakeRepo()
	svc, _ := newTestService(catalog, repo)

	order, err := svc.CreateOrder(context.Background(), student, &models.CreateOrderRequest{
		Items:           []models.CreateOrderItem{{MenuItemID: "m1", Quantity: 2}},
		DeliveryAddress: "123 Main St",
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	// Admin raises the price after the order exists
	catalog.items["m1"].Price = 30.00

	fetched, err := svc.GetOrder(context.Background(), student, order.ID)
	if err != nil {
		t.Fatalf("GetOrder returned error: %v", err)
	}
	if fetched.Items[0].Price != 25.00 {
		t.Errorf("snapshot price changed: got %v", fetched.Items[0].Price)
	}
	if fetched.TotalAmount != 50.00 {
		t.Errorf("total changed: got %v", fetched.TotalAmount)
	}
}

func TestCreateOrderRejections(t *testing.T) {
	tests := []struct {
		name     string
		req      *models.CreateOrderRequest
		wantKind apperrors.Kind
	}{
		{
			name: "missing menu item",
			req: &models.CreateOrderRequest{
				Items:           []models.CreateOrderItem{{MenuItemID: "missing", Quantity: 1}},
				DeliveryAddress: "addr",
			},
			wantKind: apperrors.KindNotFound,
		},
		{
			name: "one bad item rejects whole order",
			req: &models.CreateOrderRequest{
				Items: []models.CreateOrderItem{
					{MenuItemID: "m1", Quantity: 1},
					{MenuItemID: "missing", Quantity: 1},
				},
				DeliveryAddress: "addr",
			},
			wantKind: apperrors.KindNotFound,
		},
		{
			name: "unavailable item",
			req: &models.CreateOrderRequest{
				Items:           []models.CreateOrderItem{{MenuItemID: "m3", Quantity: 1}},
				DeliveryAddress: "addr",
			},
			wantKind: apperrors.KindUnavailable,
		},
		{
			name: "empty items",
			req: &models.CreateOrderRequest{
				DeliveryAddress: "addr",
			},
			wantKind: apperrors.KindValidation,
		},
		{
			name: "missing address",
			req: &models.CreateOrderRequest{
				Items: []models.CreateOrderItem{{MenuItemID: "m1", Quantity: 1}},
			},
			wantKind: apperrors.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc, _ := newTestService(testCatalog(), repo)

			_, err := svc.CreateOrder(context.Background(), student, tt.req, "req-1")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.KindOf(err); got != tt.wantKind {
				t.Errorf("expected kind %v, got %v (%v)", tt.wantKind, got, err)
			}
			if len(repo.orders) != 0 {
				t.Errorf("expected no order persisted, found %d", len(repo.orders))
			}
		})
	}
}

func TestListOrdersScoping(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(testCatalog(), repo)

	for _, id := range []*auth.Identity{student, student, otherStudent} {
		_, err := svc.CreateOrder(context.Background(), id, &models.CreateOrderRequest{
			Items:           []models.CreateOrderItem{{MenuItemID: "m1", Quantity: 1}},
			DeliveryAddress: "addr",
		}, "req-1")
		if err != nil {
			t.Fatalf("CreateOrder returned error: %v", err)
		}
	}

	own, err := svc.ListOrders(context.Background(), student)
	if err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("expected 2 orders for u1, got %d", len(own))
	}
	for _, o := range own {
		if o.UserID != "u1" {
			t.Errorf("foreign order leaked into scoped list: %+v", o)
		}
	}

	all, err := svc.ListOrders(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 orders for admin, got %d", len(all))
	}
}

func TestGetOrderAuthorization(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(testCatalog(), repo)

	order, err := svc.CreateOrder(context.Background(), student, &models.CreateOrderRequest{
		Items:           []models.CreateOrderItem{{MenuItemID: "m1", Quantity: 1}},
		DeliveryAddress: "addr",
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if _, err := svc.GetOrder(context.Background(), student, order.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), admin, order.ID); err != nil {
		t.Errorf("admin read failed: %v", err)
	}

	_, err = svc.GetOrder(context.Background(), otherStudent, order.ID)
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Errorf("expected Forbidden for non-owner, got %v", err)
	}

	_, err = svc.GetOrder(context.Background(), student, "missing")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("expected NotFound for missing order, got %v", err)
	}
}

func TestUpdateStatusAdminOnly(t *testing.T) {
	repo := newFakeRepo()
	svc, pub := newTestService(testCatalog(), repo)

	order, err := svc.CreateOrder(context.Background(), student, &models.CreateOrderRequest{
		Items:           []models.CreateOrderItem{{MenuItemID: "m1", Quantity: 1}},
		DeliveryAddress: "addr",
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	// The owner is still not allowed to transition their own order
	_, err = svc.UpdateStatus(context.Background(), student, order.ID,
		&models.UpdateOrderStatusRequest{Status: models.StatusCompleted}, "req-2")
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("expected Forbidden for non-admin, got %v", err)
	}
	unchanged, _ := repo.GetByID(context.Background(), order.ID)
	if unchanged.Status != models.StatusPending {
		t.Errorf("status changed by forbidden call: %q", unchanged.Status)
	}

	updated, err := svc.UpdateStatus(context.Background(), admin, order.ID,
		&models.UpdateOrderStatusRequest{Status: models.StatusPreparing}, "req-3")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != models.StatusPreparing {
		t.Errorf("expected status preparing, got %q", updated.Status)
	}
	if len(pub.updates) != 1 {
		t.Errorf("expected 1 status event, got %d", len(pub.updates))
	}

	_, err = svc.UpdateStatus(context.Background(), admin, "missing",
		&models.UpdateOrderStatusRequest{Status: models.StatusReady}, "req-4")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), admin, order.ID,
		&models.UpdateOrderStatusRequest{Status: "shipped"}, "req-5")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("expected ValidationError for unknown status, got %v", err)
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(testCatalog(), repo)

	order, err := svc.CreateOrder(context.Background(), student, &models.CreateOrderRequest{
		Items:           []models.CreateOrderItem{{MenuItemID: "m1", Quantity: 1}},
		DeliveryAddress: "addr",
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		updated, err := svc.UpdateStatus(context.Background(), admin, order.ID,
			&models.UpdateOrderStatusRequest{Status: models.StatusCompleted}, "req-2")
		if err != nil {
			t.Fatalf("UpdateStatus call %d returned error: %v", i+1, err)
		}
		if updated.Status != models.StatusCompleted {
			t.Errorf("call %d: expected completed, got %q", i+1, updated.Status)
		}
	}
}

func TestUpdatePaymentStatusIndependentOfStatus(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(testCatalog(), repo)

	order, err := svc.CreateOrder(context.Background(), student, &models.CreateOrderRequest{
		Items:           []models.CreateOrderItem{{MenuItemID: "m2", Quantity: 1}},
		DeliveryAddress: "addr",
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	_, err = svc.UpdatePaymentStatus(context.Background(), student, order.ID,
		&models.UpdatePaymentStatusRequest{PaymentStatus: models.PaymentPaid}, "req-2")
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("expected Forbidden for non-admin, got %v", err)
	}

	updated, err := svc.UpdatePaymentStatus(context.Background(), admin, order.ID,
		&models.UpdatePaymentStatusRequest{PaymentStatus: models.PaymentPaid}, "req-3")
	if err != nil {
		t.Fatalf("UpdatePaymentStatus returned error: %v", err)
	}
	if updated.PaymentStatus != models.PaymentPaid {
		t.Errorf("expected payment status paid, got %q", updated.PaymentStatus)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("order status moved with payment update: %q", updated.Status)
	}
}
