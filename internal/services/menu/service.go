package menu

import (
	"context"

	"github.com/google/uuid"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
)

// RepositoryInterface is the storage contract for the catalog
type RepositoryInterface interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	List(ctx context.Context, category models.Category) ([]models.MenuItem, error)
	Update(ctx context.Context, id string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

// Service implements catalog operations
type Service struct {
	repo   RepositoryInterface
	logger *logger.Logger
}

// NewService creates a new menu service
func NewService(repo RepositoryInterface, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

// CreateItem adds a new item to the catalog
func (s *Service) CreateItem(ctx context.Context, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}

	item := &models.MenuItem{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Image:           req.Image,
		PreparationTime: req.PreparationTime,
		IsAvailable:     true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem returns a single catalog entry
func (s *Service) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// ListItems returns the catalog, optionally filtered by category
func (s *Service) ListItems(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	if category != "" && !category.Valid() {
		return nil, apperrors.New(apperrors.KindValidation, "category must be one of: breakfast, lunch, dinner, snacks, beverages")
	}
	return s.repo.List(ctx, category)
}

// UpdateItem applies a partial update to a catalog entry. Price changes do
// not touch lines of existing orders; those carry their own snapshot.
func (s *Service) UpdateItem(ctx context.Context, id string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.New(apperrors.KindValidation, err.Error())
	}
	return s.repo.Update(ctx, id, req)
}

// DeleteItem removes a catalog entry. Historical orders keep their snapshots.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
