package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/database"
	"campus-canteen/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// Repository is the PostgreSQL-backed identity store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new identity repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, database.InsertUserSQL,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.New(apperrors.KindConflict, "An account with this email already exists")
		}
		return apperrors.Wrap(apperrors.KindInternal, "failed to create user", err)
	}
	return nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, database.GetUserByEmailSQL, email))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, database.GetUserByIDSQL, id))
}

func (r *Repository) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindNotFound, "User not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get user", err)
	}
	return user, nil
}

func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, database.ListUsersSQL)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to read users", err)
	}
	return users, nil
}

func (r *Repository) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := r.scanUser(r.db.QueryRow(ctx, database.UpdateUserSQL, id, req.Name, req.Email, req.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.New(apperrors.KindConflict, "An account with this email already exists")
		}
		return nil, err
	}
	return user, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteUserSQL, id)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.KindNotFound, "User not found")
	}
	return nil
}
