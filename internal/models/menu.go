package models

import (
	"fmt"
	"strings"
	"time"
)

// Category represents a menu category
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategorySnacks    Category = "snacks"
	CategoryBeverages Category = "beverages"
)

// Valid reports whether c is an enumerated category
func (c Category) Valid() bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnacks, CategoryBeverages:
		return true
	}
	return false
}

// MenuItem represents a catalog entry
type MenuItem struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Price           float64   `json:"price" db:"price"`
	Category        Category  `json:"category" db:"category"`
	Image           string    `json:"image" db:"image"`
	PreparationTime int       `json:"preparation_time" db:"preparation_time"`
	IsAvailable     bool      `json:"is_available" db:"is_available"`
	CreatedAt       time.Time `json:"created_at,omitempty" db:"created_at"`
}

// CreateMenuItemRequest represents the request to create a menu item
type CreateMenuItemRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        Category `json:"category"`
	Image           string   `json:"image"`
	PreparationTime int      `json:"preparation_time"`
	IsAvailable     *bool    `json:"is_available,omitempty"`
}

// UpdateMenuItemRequest represents a partial menu item update
type UpdateMenuItemRequest struct {
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	Category        *Category `json:"category,omitempty"`
	Image           *string   `json:"image,omitempty"`
	PreparationTime *int      `json:"preparation_time,omitempty"`
	IsAvailable     *bool     `json:"is_available,omitempty"`
}

// Validate validates the create menu item request
func (req *CreateMenuItemRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if req.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if !req.Category.Valid() {
		return fmt.Errorf("category must be one of: breakfast, lunch, dinner, snacks, beverages")
	}
	if req.PreparationTime < 1 {
		return fmt.Errorf("preparation_time must be at least 1 minute")
	}
	return nil
}

// Validate validates the update menu item request
func (req *UpdateMenuItemRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if req.Category != nil && !req.Category.Valid() {
		return fmt.Errorf("category must be one of: breakfast, lunch, dinner, snacks, beverages")
	}
	if req.PreparationTime != nil && *req.PreparationTime < 1 {
		return fmt.Errorf("preparation_time must be at least 1 minute")
	}
	return nil
}
