package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/auth"
	"campus-canteen/internal/database"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
	"campus-canteen/internal/services/identity"
	"campus-canteen/internal/services/menu"
	"campus-canteen/internal/services/order"
)

// Server composes the service handlers into one HTTP handler
type Server struct {
	tokens       *auth.TokenService
	identity     *identity.Handler
	menu         *menu.Handler
	orders       *order.Handler
	db           *database.DB
	logger       *logger.Logger
	clientOrigin string
}

// New creates a server over the given handlers
func New(tokens *auth.TokenService, identityHandler *identity.Handler, menuHandler *menu.Handler,
	orderHandler *order.Handler, db *database.DB, log *logger.Logger, clientOrigin string) *Server {
	return &Server{
		tokens:       tokens,
		identity:     identityHandler,
		menu:         menuHandler,
		orders:       orderHandler,
		db:           db,
		logger:       log,
		clientOrigin: clientOrigin,
	}
}

// Routes builds the route table
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return auth.Authenticate(s.tokens, s.writeError, h)
	}
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(auth.RequireRole(s.writeError, h, models.RoleAdmin))
	}

	mux.HandleFunc("GET /health", s.healthCheck)

	// Catalog: reads are public, writes are admin-gated
	mux.HandleFunc("GET /menu", s.menu.ListItems)
	mux.HandleFunc("GET /menu/{id}", s.menu.GetItem)
	mux.HandleFunc("POST /menu", adminOnly(s.menu.CreateItem))
	mux.HandleFunc("PUT /menu/{id}", adminOnly(s.menu.UpdateItem))
	mux.HandleFunc("DELETE /menu/{id}", adminOnly(s.menu.DeleteItem))

	mux.HandleFunc("POST /auth/register", s.identity.Register)
	mux.HandleFunc("POST /auth/login", s.identity.Login)
	mux.HandleFunc("POST /auth/logout", s.identity.Logout)
	mux.HandleFunc("GET /auth/profile", authed(s.identity.Profile))

	mux.HandleFunc("GET /users", adminOnly(s.identity.ListUsers))
	mux.HandleFunc("GET /users/{id}", authed(s.identity.GetUser))
	mux.HandleFunc("PUT /users/{id}", authed(s.identity.UpdateUser))
	mux.HandleFunc("DELETE /users/{id}", adminOnly(s.identity.DeleteUser))

	mux.HandleFunc("GET /orders", authed(s.orders.ListOrders))
	mux.HandleFunc("POST /orders", authed(s.orders.CreateOrder))
	mux.HandleFunc("GET /orders/{id}", authed(s.orders.GetOrder))
	mux.HandleFunc("PUT /orders/{id}/status", adminOnly(s.orders.UpdateStatus))
	mux.HandleFunc("PUT /orders/{id}/payment", adminOnly(s.orders.UpdatePayment))

	return s.withCORS(s.withLogging(mux))
}

// healthCheck handles GET /health
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "campus-canteen",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := s.db.Ping(ctx); err != nil {
		response["status"] = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(response)
}

// writeError renders middleware failures in the same shape as handler failures
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.HTTPStatus(kind))
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      apperrors.MessageOf(err),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": logger.GenerateRequestID(),
	})
}

// withCORS restricts cross-origin access to the configured client origin,
// with credentials enabled so the auth cookie travels.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.clientOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.clientOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging records every request with method, path, status and duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.logger.Debug("request_completed", r.Method+" "+r.URL.Path, requestID, map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rw.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		})
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
