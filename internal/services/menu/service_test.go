package menu

import (
	"context"
	"testing"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
)

type fakeRepo struct {
	items map[string]*models.MenuItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]*models.MenuItem{}}
}

func (r *fakeRepo) Create(_ context.Context, item *models.MenuItem) error {
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Menu item not found")
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, category models.Category) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	for _, item := range r.items {
		if category == "" || item.Category == category {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *fakeRepo) Update(_ context.Context, id string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Menu item not found")
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "Menu item not found")
	}
	delete(r.items, id)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, logger.New("menu-test")), repo
}

func TestCreateItemDefaultsToAvailable(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.CreateItem(context.Background(), &models.CreateMenuItemRequest{
		Name:            "Sobolo",
		Price:           8.00,
		Category:        models.CategoryBeverages,
		PreparationTime: 5,
	})
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
	if !item.IsAvailable {
		t.Error("expected new item to be available by default")
	}
	if item.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.CreateItem(context.Background(), &models.CreateMenuItemRequest{
		Name:            "Bad",
		Price:           -5,
		Category:        models.CategorySnacks,
		PreparationTime: 10,
	})
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("invalid item was persisted")
	}
}

func TestListItemsCategoryFilter(t *testing.T) {
	svc, _ := newTestService()

	for _, req := range []*models.CreateMenuItemRequest{
		{Name: "Waakye", Price: 20, Category: models.CategoryLunch, PreparationTime: 45},
		{Name: "Sobolo", Price: 8, Category: models.CategoryBeverages, PreparationTime: 5},
	} {
		if _, err := svc.CreateItem(context.Background(), req); err != nil {
			t.Fatalf("CreateItem returned error: %v", err)
		}
	}

	lunch, err := svc.ListItems(context.Background(), models.CategoryLunch)
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if len(lunch) != 1 || lunch[0].Name != "Waakye" {
		t.Errorf("unexpected lunch listing: %+v", lunch)
	}

	all, err := svc.ListItems(context.Background(), "")
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 items, got %d", len(all))
	}

	if _, err := svc.ListItems(context.Background(), "brunch"); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("expected ValidationError for unknown category, got %v", err)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.CreateItem(context.Background(), &models.CreateMenuItemRequest{
		Name:            "Kelewele",
		Price:           12.00,
		Category:        models.CategorySnacks,
		PreparationTime: 15,
	})
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}

	newPrice := 14.00
	updated, err := svc.UpdateItem(context.Background(), item.ID, &models.UpdateMenuItemRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateItem returned error: %v", err)
	}
	if updated.Price != 14.00 {
		t.Errorf("expected price 14.00, got %v", updated.Price)
	}
	if updated.Name != "Kelewele" {
		t.Errorf("name changed unexpectedly: %q", updated.Name)
	}

	if _, err := svc.UpdateItem(context.Background(), "missing", &models.UpdateMenuItemRequest{Price: &newPrice}); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	svc, repo := newTestService()

	item, err := svc.CreateItem(context.Background(), &models.CreateMenuItemRequest{
		Name:            "Bofrot",
		Price:           10.00,
		Category:        models.CategorySnacks,
		PreparationTime: 20,
	})
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}

	if err := svc.DeleteItem(context.Background(), item.ID); err != nil {
		t.Fatalf("DeleteItem returned error: %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("item still present after delete")
	}
	if err := svc.DeleteItem(context.Background(), item.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("expected NotFound for second delete, got %v", err)
	}
}
