package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Role represents an account's authorization class
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// User represents an account
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
}

// SafeUser is the password-free projection of a user included in responses
type SafeUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// Safe returns the response projection of u
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// RegisterRequest represents the request to create a new account.
// Role is intentionally absent: registration always produces a student.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents a partial account update. Password changes
// and role changes ride separate rules: role only applies for admin callers.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *Role   `json:"role,omitempty"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string   `json:"token"`
	User  SafeUser `json:"user"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate validates the register request
func (req *RegisterRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("email is invalid")
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// Validate validates the login request
func (req *LoginRequest) Validate() error {
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// Validate validates the update request
func (req *UpdateUserRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if req.Email != nil && !emailPattern.MatchString(*req.Email) {
		return fmt.Errorf("email is invalid")
	}
	if req.Role != nil && !req.Role.Valid() {
		return fmt.Errorf("role must be one of: admin, staff, student")
	}
	return nil
}

// Valid reports whether r is an enumerated role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStudent:
		return true
	}
	return false
}
