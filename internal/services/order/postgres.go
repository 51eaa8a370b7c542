package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/database"
	"campus-canteen/internal/models"
)

// Repository is the PostgreSQL-backed order store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new order repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create persists the order and its lines in a single transaction so a
// partially-priced order can never become visible.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.ID, order.UserID, order.TotalAmount, order.DeliveryAddress,
		nullable(order.SpecialInstructions), order.Status, order.PaymentStatus).Scan(&order.CreatedAt)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to insert order", err)
	}
	order.UpdatedAt = order.CreatedAt

	for _, line := range order.Items {
		_, err = tx.Exec(ctx, database.InsertOrderLineSQL,
			order.ID, line.MenuItemID, line.Quantity, line.Price)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to insert order line", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to commit order", err)
	}
	return nil
}

// GetByID returns an order with its lines and the owner's safe view
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order, err := r.scanOrder(r.db.QueryRow(ctx, database.GetOrderSQL, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns all orders, newest first
func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersSQL)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list orders", err)
	}
	return r.collectOrders(ctx, rows)
}

// ListByUser returns only the given user's orders, newest first
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersByUserSQL, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list orders", err)
	}
	return r.collectOrders(ctx, rows)
}

// UpdateStatus sets the order status
func (r *Repository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return r.execUpdate(ctx, database.UpdateOrderStatusSQL, id, string(status))
}

// UpdatePaymentStatus sets the payment status
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	return r.execUpdate(ctx, database.UpdateOrderPaymentStatusSQL, id, string(status))
}

func (r *Repository) execUpdate(ctx context.Context, sql, id, value string) error {
	tag, err := r.db.Pool.Exec(ctx, sql, id, value)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.KindNotFound, "Order not found")
	}
	return nil
}

func (r *Repository) scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{User: &models.SafeUser{}}
	var instructions *string
	var updatedAt *time.Time

	err := row.Scan(&order.ID, &order.UserID, &order.User.Name, &order.User.Email,
		&order.TotalAmount, &order.DeliveryAddress, &instructions,
		&order.Status, &order.PaymentStatus, &order.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindNotFound, "Order not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get order", err)
	}

	order.User.ID = order.UserID
	if instructions != nil {
		order.SpecialInstructions = *instructions
	}
	if updatedAt != nil {
		order.UpdatedAt = *updatedAt
	} else {
		order.UpdatedAt = order.CreatedAt
	}
	return order, nil
}

func (r *Repository) collectOrders(ctx context.Context, rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to read orders", err)
	}

	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// loadLines attaches order lines with display names joined from the catalog.
// The name may be empty when the menu item was deleted; the snapshot price
// is always present.
func (r *Repository) loadLines(ctx context.Context, order *models.Order) error {
	rows, err := r.db.Query(ctx, database.GetOrderLinesSQL, order.ID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to load order lines", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.MenuItemID, &line.Name, &line.Quantity, &line.Price); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to scan order line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to read order lines", err)
	}

	order.Items = lines
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
