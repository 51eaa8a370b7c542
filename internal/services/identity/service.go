package identity

import (
	"context"

	"github.com/google/uuid"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/auth"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
)

// RepositoryInterface is the storage contract for accounts
type RepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// Service implements account operations
type Service struct {
	repo   RepositoryInterface
	tokens *auth.TokenService
	logger *logger.Logger
}

// NewService creates a new identity service
func NewService(repo RepositoryInterface, tokens *auth.TokenService, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

// Register creates a new account and returns a signed credential for it.
// The role is always student; clients cannot choose their own role.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleStudent,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user.Safe()}, nil
}

// Login verifies credentials and returns a signed credential. The same
// message covers unknown email and wrong password.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.New(apperrors.KindUnauthenticated, "Invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user.Safe()}, nil
}

// GetUser returns the safe view of an account. Non-admins may only read
// their own profile.
func (s *Service) GetUser(ctx context.Context, identity *auth.Identity, id string) (*models.SafeUser, error) {
	if !identity.IsAdmin() && identity.UserID != id {
		return nil, apperrors.New(apperrors.KindForbidden, "Not authorized to view this profile")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	safe := user.Safe()
	return &safe, nil
}

// ListUsers returns all accounts, passwords stripped. Admin only (enforced
// at the route as well).
func (s *Service) ListUsers(ctx context.Context, identity *auth.Identity) ([]models.SafeUser, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "Not authorized to list users")
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	safe := make([]models.SafeUser, 0, len(users))
	for i := range users {
		safe = append(safe, users[i].Safe())
	}
	return safe, nil
}

// UpdateUser applies a partial update. Self-updates may never change the
// role; only an admin may do that, for any account.
func (s *Service) UpdateUser(ctx context.Context, identity *auth.Identity, id string, req *models.UpdateUserRequest) (*models.SafeUser, error) {
	if !identity.IsAdmin() && identity.UserID != id {
		return nil, apperrors.New(apperrors.KindForbidden, "Not authorized to update this profile")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}
	if req.Role != nil && !identity.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "Not authorized to change roles")
	}

	user, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	safe := user.Safe()
	return &safe, nil
}

// DeleteUser removes an account. Admin only.
func (s *Service) DeleteUser(ctx context.Context, identity *auth.Identity, id string) error {
	if !identity.IsAdmin() {
		return apperrors.New(apperrors.KindForbidden, "Not authorized to delete users")
	}
	return s.repo.Delete(ctx, id)
}
