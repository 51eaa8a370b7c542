// Package seed bootstraps a demo catalog and an admin account for local
// development.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/auth"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
	"campus-canteen/internal/services/identity"
	"campus-canteen/internal/services/menu"
)

var menuItems = []models.MenuItem{
	{Name: "Jollof Rice with Chicken", Description: "Aromatic rice cooked in a rich tomato sauce with tender chicken pieces", Price: 25.00, Category: models.CategoryLunch, PreparationTime: 30, Image: "/images/jollof-rice.jpg"},
	{Name: "Waakye", Description: "Rice and beans cooked with millet leaves, served with spaghetti, gari, and stew", Price: 20.00, Category: models.CategoryLunch, PreparationTime: 45, Image: "/images/waakye.jpg"},
	{Name: "Banku with Tilapia", Description: "Fermented corn and cassava dough served with grilled tilapia and hot pepper sauce", Price: 30.00, Category: models.CategoryDinner, PreparationTime: 40, Image: "/images/banku-tilapia.jpg"},
	{Name: "Fufu with Light Soup", Description: "Pounded cassava and plantain served with light soup and goat meat", Price: 25.00, Category: models.CategoryDinner, PreparationTime: 35, Image: "/images/fufu-soup.jpg"},
	{Name: "Kenkey with Fried Fish", Description: "Fermented corn dough served with fried fish and hot pepper sauce", Price: 22.00, Category: models.CategoryDinner, PreparationTime: 30, Image: "/images/kenkey-fish.jpg"},
	{Name: "Red Red", Description: "Beans stew with fried plantain, served with gari", Price: 18.00, Category: models.CategoryBreakfast, PreparationTime: 25, Image: "/images/red-red.jpg"},
	{Name: "Koko with Koose", Description: "Hausa koko (millet porridge) with fried bean cakes", Price: 15.00, Category: models.CategoryBreakfast, PreparationTime: 20, Image: "/images/koko-koose.jpg"},
	{Name: "Yam and Garden Egg Stew", Description: "Boiled yam served with garden egg stew", Price: 20.00, Category: models.CategoryLunch, PreparationTime: 30, Image: "/images/yam-garden-egg.jpg"},
	{Name: "Tuo Zaafi", Description: "Northern Ghana staple made from corn flour, served with ayoyo soup", Price: 18.00, Category: models.CategoryDinner, PreparationTime: 35, Image: "/images/tuo-zaafi.jpg"},
	{Name: "Kelewele", Description: "Spicy fried plantain cubes", Price: 12.00, Category: models.CategorySnacks, PreparationTime: 15, Image: "/images/kelewele.jpg"},
	{Name: "Bofrot", Description: "Ghanaian doughnuts", Price: 10.00, Category: models.CategorySnacks, PreparationTime: 20, Image: "/images/bofrot.jpg"},
	{Name: "Palm Wine", Description: "Traditional alcoholic beverage made from palm tree sap", Price: 15.00, Category: models.CategoryBeverages, PreparationTime: 5, Image: "/images/palm-wine.jpg"},
	{Name: "Sobolo", Description: "Hibiscus tea, a refreshing traditional drink", Price: 8.00, Category: models.CategoryBeverages, PreparationTime: 5, Image: "/images/sobolo.jpg"},
}

const adminEmail = "admin@campus-canteen.local"

// Run populates the catalog and ensures an admin account exists. Existing
// data is left alone so the command is safe to re-run.
func Run(ctx context.Context, users *identity.Repository, catalog *menu.Repository, log *logger.Logger) error {
	if err := seedAdmin(ctx, users, log); err != nil {
		return err
	}
	return seedMenu(ctx, catalog, log)
}

func seedAdmin(ctx context.Context, users *identity.Repository, log *logger.Logger) error {
	_, err := users.GetByEmail(ctx, adminEmail)
	if err == nil {
		log.Info("seed_skipped", "Admin account already exists", "seed", nil)
		return nil
	}
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Name:         "Canteen Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	log.Info("seed_admin_created", "Admin account created", "seed", map[string]interface{}{
		"email": adminEmail,
	})
	return nil
}

func seedMenu(ctx context.Context, catalog *menu.Repository, log *logger.Logger) error {
	existing, err := catalog.List(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("seed_skipped", "Catalog already populated", "seed", map[string]interface{}{
			"item_count": len(existing),
		})
		return nil
	}

	for _, item := range menuItems {
		item.ID = uuid.NewString()
		item.IsAvailable = true
		if err := catalog.Create(ctx, &item); err != nil {
			return fmt.Errorf("failed to seed menu item %q: %w", item.Name, err)
		}
	}

	log.Info("seed_menu_created", "Catalog seeded", "seed", map[string]interface{}{
		"item_count": len(menuItems),
	})
	return nil
}
