package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"storehub/internal/domain"
	"storehub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Handler serves the server-rendered dashboard pages. Pages authenticate
// through the same session guard as the API, using the session cookie.
type Handler struct {
	stores    service.StoreService
	products  service.ProductService
	dashboard service.DashboardService
	logger    *zap.Logger
	templates map[string]*template.Template
}

// NewHandler creates a new web Handler with parsed templates
func NewHandler(
	stores service.StoreService,
	products service.ProductService,
	dashboard service.DashboardService,
	logger *zap.Logger,
) *Handler {
	pages := []string{"dashboard", "products", "product_new", "stores", "store_new"}

	funcs := template.FuncMap{
		// money renders a price with two decimals, dereferencing the
		// optional compare price
		"money": func(v interface{}) string {
			switch n := v.(type) {
			case *float64:
				if n == nil {
					return ""
				}
				return fmt.Sprintf("%.2f", *n)
			case float64:
				return fmt.Sprintf("%.2f", n)
			default:
				return fmt.Sprint(v)
			}
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		templates[page] = template.Must(template.New("layout.tmpl").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.tmpl",
			"templates/"+page+".tmpl",
		))
	}

	return &Handler{
		stores:    stores,
		products:  products,
		dashboard: dashboard,
		logger:    logger,
		templates: templates,
	}
}

// RegisterRoutes registers all dashboard page routes
func (h *Handler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Dashboard)
		r.Get("/products", h.Products)
		r.Get("/products/new", h.NewProduct)
		r.Post("/products/new", h.CreateProduct)
		r.Get("/stores", h.Stores)
		r.Get("/stores/new", h.NewStore)
		r.Post("/stores/new", h.CreateStore)
	})
}

type dashboardPage struct {
	Title string
	Stats *domain.DashboardStats
}

// Dashboard renders the stat cards
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.dashboard.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("Dashboard page error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "dashboard", dashboardPage{Title: "Dashboard", Stats: stats})
}

type productsPage struct {
	Title    string
	Products []*domain.CatalogProduct
}

// Products renders the owner's catalog table. Row selection and the
// select-all checkbox are client-side state only; just the single-row
// delete talks to the API.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	products, err := h.products.ListByOwner(r.Context(), userID)
	if err != nil {
		h.logger.Error("Products page error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "products", productsPage{Title: "Products", Products: products})
}

type productFormPage struct {
	Title  string
	Stores []domain.StoreSummary
	Error  string
	Values map[string]string
}

// NewProduct renders the product creation form. With no stores to attach
// a product to, it prompts for store creation instead.
func (h *Handler) NewProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stores, err := h.stores.ListSummaries(r.Context(), userID)
	if err != nil {
		h.logger.Error("Product form error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "product_new", productFormPage{
		Title:  "New Product",
		Stores: stores,
		Values: map[string]string{},
	})
}

// CreateProduct handles the product form submission. On failure the form
// is re-rendered populated with the submitted values so the user can
// correct and retry.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"storeId":      r.PostFormValue("storeId"),
		"name":         r.PostFormValue("name"),
		"description":  r.PostFormValue("description"),
		"price":        r.PostFormValue("price"),
		"comparePrice": r.PostFormValue("comparePrice"),
		"inventory":    r.PostFormValue("inventory"),
		"active":       r.PostFormValue("active"),
	}

	input, message := parseProductForm(values)
	if message == "" {
		_, err := h.products.Create(r.Context(), userID, *input)
		switch {
		case err == nil:
			http.Redirect(w, r, "/dashboard/products", http.StatusSeeOther)
			return
		case errors.Is(err, service.ErrMissingFields):
			message = "Missing required fields"
		case errors.Is(err, service.ErrInvalidProductData):
			message = "Invalid product data"
		case errors.Is(err, service.ErrNotOwned):
			message = "Store not found or unauthorized"
		default:
			h.logger.Error("Product form submit error", zap.Error(err))
			message = "An error occurred. Please try again."
		}
	}

	stores, err := h.stores.ListSummaries(r.Context(), userID)
	if err != nil {
		h.logger.Error("Product form error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "product_new", productFormPage{
		Title:  "New Product",
		Stores: stores,
		Error:  message,
		Values: values,
	})
}

type storesPage struct {
	Title  string
	Stores []domain.StoreSummary
}

// Stores renders the store table
func (h *Handler) Stores(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stores, err := h.stores.ListSummaries(r.Context(), userID)
	if err != nil {
		h.logger.Error("Stores page error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "stores", storesPage{Title: "Stores", Stores: stores})
}

type storeFormPage struct {
	Title  string
	Error  string
	Values map[string]string
}

// NewStore renders the store creation form
func (h *Handler) NewStore(w http.ResponseWriter, r *http.Request) {
	h.render(w, "store_new", storeFormPage{
		Title:  "New Store",
		Values: map[string]string{},
	})
}

// CreateStore handles the store form submission with the same
// populate-on-error behavior as the product form
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"name":        r.PostFormValue("name"),
		"description": r.PostFormValue("description"),
		"subdomain":   r.PostFormValue("subdomain"),
	}

	_, err := h.stores.Create(r.Context(), userID, values["name"], values["description"], values["subdomain"])
	if err == nil {
		http.Redirect(w, r, "/dashboard/stores", http.StatusSeeOther)
		return
	}

	var message string
	switch {
	case errors.Is(err, service.ErrMissingFields):
		message = "Missing required fields"
	case errors.Is(err, service.ErrSubdomainTaken):
		message = "Subdomain is already taken"
	default:
		h.logger.Error("Store form submit error", zap.Error(err))
		message = "An error occurred. Please try again."
	}

	h.render(w, "store_new", storeFormPage{
		Title:  "New Store",
		Error:  message,
		Values: values,
	})
}

func (h *Handler) render(w http.ResponseWriter, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[page].ExecuteTemplate(w, "layout", data); err != nil {
		h.logger.Error("Template render error", zap.String("page", page), zap.Error(err))
	}
}

// parseProductForm converts the submitted strings into a service input.
// The returned message, when non-empty, is shown inline above the form.
func parseProductForm(values map[string]string) (*service.CreateProductInput, string) {
	if values["name"] == "" || values["price"] == "" || values["inventory"] == "" || values["storeId"] == "" {
		return nil, "Missing required fields"
	}

	price, err := strconv.ParseFloat(values["price"], 64)
	if err != nil {
		return nil, "Price must be a number"
	}

	inventory, err := strconv.Atoi(values["inventory"])
	if err != nil {
		return nil, "Inventory must be a whole number"
	}

	var comparePrice *float64
	if values["comparePrice"] != "" {
		v, err := strconv.ParseFloat(values["comparePrice"], 64)
		if err != nil {
			return nil, "Compare price must be a number"
		}
		comparePrice = &v
	}

	storeID, err := parseUUID(values["storeId"])
	if err != nil {
		return nil, "Store not found or unauthorized"
	}

	return &service.CreateProductInput{
		Name:         values["name"],
		Description:  values["description"],
		Price:        price,
		ComparePrice: comparePrice,
		Inventory:    inventory,
		Images:       []string{},
		Active:       values["active"] == "true",
		StoreID:      storeID,
	}, ""
}
