package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"storehub/internal/middleware"
	"storehub/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FlexNumber accepts a JSON number or a numeric string. Form-driven
// clients submit numbers as strings; parsing happens in the handler so a
// non-numeric value is a validation failure, not a decode failure.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*n = ""
		return nil
	}
	*n = FlexNumber(s)
	return nil
}

// Float parses the value, reporting whether it was present at all
func (n FlexNumber) Float() (float64, bool, error) {
	if n == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

// Int parses the value as an integer, reporting whether it was present
func (n FlexNumber) Int() (int, bool, error) {
	if n == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(string(n))
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

// FlexBool accepts a JSON boolean or the strings "true"/"false"
type FlexBool struct {
	Set   bool
	Value bool
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "null", "":
		return nil
	case "true":
		b.Set, b.Value = true, true
	case "false":
		b.Set, b.Value = true, false
	default:
		return fmt.Errorf("invalid boolean: %s", data)
	}
	return nil
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        FlexNumber `json:"price"`
	ComparePrice FlexNumber `json:"comparePrice"`
	Inventory    FlexNumber `json:"inventory"`
	StoreID      string     `json:"storeId"`
	Active       FlexBool   `json:"active"`
	Images       []string   `json:"images"`
	CategoryIDs  []string   `json:"categoryIds"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/", h.Delete)
	})
}

// List returns the caller's entire catalog across all owned stores
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	products, err := h.productService.ListByOwner(r.Context(), userID)
	if err != nil {
		h.logger.Error("Products fetch error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Product create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input, status, message := buildCreateInput(&req)
	if message != "" {
		middleware.RespondWithError(w, status, message)
		return
	}

	product, err := h.productService.Create(r.Context(), userID, *input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			middleware.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrInvalidProductData):
			middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product data")
		case errors.Is(err, service.ErrNotOwned):
			middleware.RespondWithError(w, http.StatusNotFound, "Store not found or unauthorized")
		default:
			h.logger.Error("Product creation error", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("store_id", product.StoreID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Delete handles product deletion via the id query parameter
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	productID, err := uuid.Parse(idParam)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found or unauthorized")
		return
	}

	if err := h.productService.Delete(r.Context(), userID, productID); err != nil {
		if errors.Is(err, service.ErrNotOwned) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found or unauthorized")
			return
		}
		h.logger.Error("Product deletion error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", productID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// buildCreateInput parses and validates the raw request into a service
// input. The returned message, when non-empty, is the error body.
func buildCreateInput(req *CreateProductRequest) (*service.CreateProductInput, int, string) {
	if req.Name == "" || req.Price == "" || req.Inventory == "" || req.StoreID == "" {
		return nil, http.StatusBadRequest, "Missing required fields"
	}

	price, _, err := req.Price.Float()
	if err != nil {
		return nil, http.StatusBadRequest, "Price must be a number"
	}

	inventory, _, err := req.Inventory.Int()
	if err != nil {
		return nil, http.StatusBadRequest, "Inventory must be a whole number"
	}

	var comparePrice *float64
	if v, set, err := req.ComparePrice.Float(); err != nil {
		return nil, http.StatusBadRequest, "Compare price must be a number"
	} else if set {
		comparePrice = &v
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		// An unparseable store id cannot be owned by anyone
		return nil, http.StatusNotFound, "Store not found or unauthorized"
	}

	categoryIDs := make([]uuid.UUID, 0, len(req.CategoryIDs))
	for _, raw := range req.CategoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, http.StatusBadRequest, "Invalid category ID"
		}
		categoryIDs = append(categoryIDs, id)
	}

	// Visibility defaults to active unless the form said otherwise
	active := true
	if req.Active.Set {
		active = req.Active.Value
	}

	return &service.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		ComparePrice: comparePrice,
		Inventory:    inventory,
		Images:       req.Images,
		Active:       active,
		StoreID:      storeID,
		CategoryIDs:  categoryIDs,
	}, 0, ""
}
