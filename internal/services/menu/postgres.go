package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/database"
	"campus-canteen/internal/models"
)

// Repository is the PostgreSQL-backed catalog store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, item *models.MenuItem) error {
	err := r.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.ID, item.Name, item.Description, item.Price, item.Category,
		item.Image, item.PreparationTime, item.IsAvailable).Scan(&item.CreatedAt)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to create menu item", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := r.db.QueryRow(ctx, database.GetMenuItemSQL, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.Image, &item.PreparationTime, &item.IsAvailable, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindNotFound, "Menu item not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get menu item", err)
	}
	return item, nil
}

func (r *Repository) List(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	var rows pgx.Rows
	var err error
	if category != "" {
		rows, err = r.db.Query(ctx, database.ListMenuItemsByCategorySQL, category)
	} else {
		rows, err = r.db.Query(ctx, database.ListMenuItemsSQL)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list menu items", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
			&item.Image, &item.PreparationTime, &item.IsAvailable, &item.CreatedAt); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to scan menu item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to read menu items", err)
	}
	return items, nil
}

func (r *Repository) Update(ctx context.Context, id string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := r.db.QueryRow(ctx, database.UpdateMenuItemSQL,
		id, req.Name, req.Description, req.Price, req.Category,
		req.Image, req.PreparationTime, req.IsAvailable).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.Image, &item.PreparationTime, &item.IsAvailable, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindNotFound, "Menu item not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update menu item", err)
	}
	return item, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteMenuItemSQL, id)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.KindNotFound, "Menu item not found")
	}
	return nil
}
