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

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrSubdomainTaken = errors.New("subdomain is already taken")
)

// StoreService defines the interface for store business logic
type StoreService interface {
	ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.StoreSummary, error)
	Create(ctx context.Context, userID uuid.UUID, name, description, subdomain string) (*domain.Store, error)
	Delete(ctx context.Context, userID, storeID uuid.UUID) error
	Authorize(ctx context.Context, userID, storeID uuid.UUID) (*domain.Store, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService creates a new instance of StoreService
func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

// ListSummaries returns the caller's active stores as {id, name}
// projections, sorted by name. No stores is an empty list, not an error.
func (s *storeService) ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.StoreSummary, error) {
	summaries, err := s.storeRepo.ListSummariesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return summaries, nil
}

// Create validates the input, checks subdomain availability across all
// stores and persists a new store owned by the caller. The availability
// pre-check races with concurrent creates; the UNIQUE constraint behind
// repository.ErrSubdomainTaken settles the race.
func (s *storeService) Create(ctx context.Context, userID uuid.UUID, name, description, subdomain string) (*domain.Store, error) {
	if name == "" || subdomain == "" {
		return nil, ErrMissingFields
	}

	taken, err := s.storeRepo.SubdomainExists(ctx, subdomain)
	if err != nil {
		return nil, fmt.Errorf("failed to check subdomain: %w", err)
	}
	if taken {
		return nil, ErrSubdomainTaken
	}

	now := time.Now()
	store := &domain.Store{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Subdomain:   subdomain,
		Active:      true,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, repository.ErrSubdomainTaken) {
			return nil, ErrSubdomainTaken
		}
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

// Delete removes a store the caller owns. Products and orders under the
// store cascade at the schema level. A store owned by someone else is
// reported exactly like a nonexistent one.
func (s *storeService) Delete(ctx context.Context, userID, storeID uuid.UUID) error {
	store, err := s.Authorize(ctx, userID, storeID)
	if err != nil {
		return err
	}

	if err := s.storeRepo.Delete(ctx, store.ID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			// Deleted concurrently between lookup and delete
			return ErrNotOwned
		}
		return fmt.Errorf("failed to delete store: %w", err)
	}

	return nil
}

// Authorize resolves a store scoped to the caller, conflating absence and
// foreign ownership. Product operations reuse it before touching a store.
func (s *storeService) Authorize(ctx context.Context, userID, storeID uuid.UUID) (*domain.Store, error) {
	return findOwned(ctx, func(ctx context.Context, id, userID uuid.UUID) (*domain.Store, error) {
		return s.storeRepo.FindByIDAndUser(ctx, id, userID)
	}, storeID, userID, repository.ErrStoreNotFound)
}
