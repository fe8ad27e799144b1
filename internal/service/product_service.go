package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storehub/internal/domain"
	"storehub/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidProductData signals a malformed or out-of-range numeric field.
var ErrInvalidProductData = errors.New("invalid product data")

// CreateProductInput carries an already-parsed product creation request.
// Numeric fields arrive parsed; negative values are rejected here.
type CreateProductInput struct {
	Name         string
	Description  string
	Price        float64
	ComparePrice *float64
	Inventory    int
	Images       []string
	Active       bool
	StoreID      uuid.UUID
	CategoryIDs  []uuid.UUID
}

// ProductService defines the interface for product business logic
type ProductService interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.CatalogProduct, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
	stores      StoreService
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, stores StoreService) ProductService {
	return &productService{
		productRepo: productRepo,
		stores:      stores,
	}
}

// ListByOwner returns the caller's entire catalog: every product across
// every owned store, annotated with store name and categories.
func (s *productService) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.CatalogProduct, error) {
	products, err := s.productRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Create validates the input, verifies the target store belongs to the
// caller with the same check store deletion uses, and persists the
// product. Nothing is written when the store check fails.
func (s *productService) Create(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, ErrMissingFields
	}
	if input.Price < 0 || input.Inventory < 0 {
		return nil, ErrInvalidProductData
	}
	if input.ComparePrice != nil && *input.ComparePrice < 0 {
		return nil, ErrInvalidProductData
	}

	store, err := s.stores.Authorize(ctx, userID, input.StoreID)
	if err != nil {
		return nil, err
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	product := &domain.Product{
		ID:           uuid.New(),
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		Inventory:    input.Inventory,
		Images:       images,
		Active:       input.Active,
		StoreID:      store.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product, input.CategoryIDs); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Delete removes a product after the owner-via-store check. A product in
// another user's store is reported exactly like a nonexistent one.
func (s *productService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := findOwned(ctx, func(ctx context.Context, id, userID uuid.UUID) (*domain.Product, error) {
		return s.productRepo.FindByIDAndUser(ctx, id, userID)
	}, productID, userID, repository.ErrProductNotFound)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrNotOwned
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
