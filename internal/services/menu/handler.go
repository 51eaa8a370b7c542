package menu

import (
	"encoding/json"
	"net/http"
	"time"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
)

// Handler handles HTTP requests for the catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// ListItems handles GET /menu
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	category := models.Category(r.URL.Query().Get("category"))
	items, err := h.service.ListItems(r.Context(), category)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /menu/{id}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	item, err := h.service.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /menu (admin only)
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req models.CreateMenuItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("menu_item_created", "Menu item created", requestID, map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})
	h.writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /menu/{id} (admin only)
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req models.UpdateMenuItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, requestID, apperrors.New(apperrors.KindValidation, "Invalid JSON format"))
		return
	}

	item, err := h.service.UpdateItem(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("menu_item_updated", "Menu item updated", requestID, map[string]interface{}{
		"item_id": item.ID,
	})
	h.writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /menu/{id} (admin only)
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	id := r.PathValue("id")
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info("menu_item_deleted", "Menu item deleted", requestID, map[string]interface{}{
		"item_id": id,
	})
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully"})
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
