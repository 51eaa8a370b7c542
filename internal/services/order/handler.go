package order

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/auth"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
)

// Handler handles HTTP requests for orders
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// CreateOrder handles POST /orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	order, err := h.service.CreateOrder(ctx, identity, &req, requestID)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	orders, err := h.service.ListOrders(r.Context(), identity)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	order, err := h.service.GetOrder(r.Context(), identity, r.PathValue("id"))
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PUT /orders/{id}/status (admin only)
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	var req models.UpdateOrderStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), identity, r.PathValue("id"), &req, requestID)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

// UpdatePayment handles PUT /orders/{id}/payment (admin only)
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, requestID, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
		return
	}

	var req models.UpdatePaymentStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	order, err := h.service.UpdatePaymentStatus(r.Context(), identity, r.PathValue("id"), &req, requestID)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, order)
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
