package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"storehub/internal/middleware"
	"storehub/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateStoreRequest represents the store creation payload
type CreateStoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Subdomain   string `json:"subdomain"`
}

// StoreHandler handles HTTP requests for store operations
type StoreHandler struct {
	storeService service.StoreService
	logger       *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService service.StoreService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		logger:       logger,
	}
}

// RegisterRoutes registers all store routes
func (h *StoreHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/stores", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/", h.Delete)
	})
}

// List returns the caller's active stores as {id, name} summaries
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summaries, err := h.storeService.ListSummaries(r.Context(), userID)
	if err != nil {
		h.logger.Error("Stores fetch error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, summaries)
}

// Create handles store creation
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Store create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	store, err := h.storeService.Create(r.Context(), userID, req.Name, req.Description, req.Subdomain)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			middleware.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrSubdomainTaken):
			middleware.RespondWithError(w, http.StatusBadRequest, "Subdomain is already taken")
		default:
			h.logger.Error("Store creation error", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.logger.Info("Store created",
		zap.String("store_id", store.ID.String()),
		zap.String("subdomain", store.Subdomain),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, store)
}

// Delete handles store deletion via the id query parameter
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "Store ID is required")
		return
	}

	// An unparseable id cannot match any store; report it exactly like a
	// store the caller does not own.
	storeID, err := uuid.Parse(idParam)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Store not found or unauthorized")
		return
	}

	if err := h.storeService.Delete(r.Context(), userID, storeID); err != nil {
		if errors.Is(err, service.ErrNotOwned) {
			middleware.RespondWithError(w, http.StatusNotFound, "Store not found or unauthorized")
			return
		}
		h.logger.Error("Store deletion error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("Store deleted", zap.String("store_id", storeID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Store deleted successfully"})
}

// callerID resolves the authenticated user's uuid from the request context
func callerID(r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}
