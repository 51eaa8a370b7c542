package identity

import (
	"encoding/json"
	"net/http"
	"time"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/auth"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
)

// Handler handles HTTP requests for authentication and account management
type Handler struct {
	service *Service
	tokens  *auth.TokenService
	logger  *logger.Logger
}

// NewHandler creates a new identity handler
func NewHandler(service *Service, tokens *auth.TokenService, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		logger:  log,
	}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req models.RegisterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("user_registered", "Account created", requestID, map[string]interface{}{
		"user_id": resp.User.ID,
	})
	h.setAuthCookie(w, resp.Token)
	h.writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req models.LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("user_logged_in", "Login succeeded", requestID, map[string]interface{}{
		"user_id": resp.User.ID,
	})
	h.setAuthCookie(w, resp.Token)
	h.writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout by expiring the auth cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Profile handles GET /auth/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	user, err := h.service.GetUser(r.Context(), identity, identity.UserID)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /users (admin only)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	users, err := h.service.ListUsers(r.Context(), identity)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id} (self or admin)
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	user, err := h.service.GetUser(r.Context(), identity, r.PathValue("id"))
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /users/{id} (self or admin; role changes admin only)
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	var req models.UpdateUserRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), identity, r.PathValue("id"), &req)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("user_updated", "Account updated", requestID, map[string]interface{}{
		"user_id": user.ID,
	})
	h.writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id} (admin only)
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	id := r.PathValue("id")
	if err := h.service.DeleteUser(r.Context(), identity, id); err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("user_deleted", "Account deleted", requestID, map[string]interface{}{
		"user_id": id,
	})
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokens.TTL().Seconds()),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, requestID string, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		h.logger.Error("request_failed", "Unexpected error", requestID, err, nil)
	}

	h.writeJSON(w, apperrors.HTTPStatus(kind), map[string]interface{}{
		"error":      apperrors.MessageOf(err),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
