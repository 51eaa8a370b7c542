package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/models"
)

// Identity is the authenticated caller carried through every request
type Identity struct {
	UserID string
	Role   models.Role
}

// Claims is the JWT payload for a signed credential
type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed, time-limited credentials
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given signing secret and lifetime
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the token lifetime, used to size the auth cookie
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Generate signs a token carrying the user's id and role
func (s *TokenService) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, "failed to sign token", err)
	}
	return signed, nil
}

// Verify parses a token and returns the identity it carries. Missing,
// malformed, and expired tokens all come back as Unauthenticated.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.New(apperrors.KindUnauthenticated, "Invalid token")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthenticated, "Invalid token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Invalid token")
	}

	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// Authorize is the pure role membership check used before role-gated operations
func Authorize(role models.Role, allowed ...models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity holds the admin role
func (id *Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}
