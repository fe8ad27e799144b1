package service

import (
	"context"
	"sort"
	"testing"

	"storehub/internal/domain"
	"storehub/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mock repository for testing
type mockStoreRepository struct {
	stores map[uuid.UUID]*domain.Store
}

func newMockStoreRepository() *mockStoreRepository {
	return &mockStoreRepository{
		stores: make(map[uuid.UUID]*domain.Store),
	}
}

func (m *mockStoreRepository) Create(ctx context.Context, store *domain.Store) error {
	for _, existing := range m.stores {
		if existing.Subdomain == store.Subdomain {
			return repository.ErrSubdomainTaken
		}
	}
	copied := *store
	m.stores[store.ID] = &copied
	return nil
}

func (m *mockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.stores[id]; !exists {
		return repository.ErrStoreNotFound
	}
	delete(m.stores, id)
	return nil
}

func (m *mockStoreRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Store, error) {
	store, exists := m.stores[id]
	if !exists || store.UserID != userID {
		return nil, repository.ErrStoreNotFound
	}
	return store, nil
}

func (m *mockStoreRepository) ListSummariesByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoreSummary, error) {
	summaries := []domain.StoreSummary{}
	for _, store := range m.stores {
		if store.UserID == userID && store.Active {
			summaries = append(summaries, domain.StoreSummary{ID: store.ID, Name: store.Name})
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

func (m *mockStoreRepository) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	for _, store := range m.stores {
		if store.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

func TestProperty_CreatedStoresAppearInOwnersListing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a created store shows up in its owner's listing and nobody else's", prop.ForAll(
		func(name string, subdomain string) bool {
			storeRepo := newMockStoreRepository()
			service := NewStoreService(storeRepo)
			ctx := context.Background()

			owner := uuid.New()
			stranger := uuid.New()

			store, err := service.Create(ctx, owner, name, "", subdomain)
			if err != nil {
				t.Logf("FAIL: Create failed: %v", err)
				return false
			}

			ownerList, err := service.ListSummaries(ctx, owner)
			if err != nil {
				t.Logf("FAIL: ListSummaries failed: %v", err)
				return false
			}

			found := false
			for _, summary := range ownerList {
				if summary.ID == store.ID && summary.Name == name {
					found = true
				}
			}
			if !found {
				t.Logf("FAIL: Created store %s missing from owner listing", store.ID)
				return false
			}

			strangerList, err := service.ListSummaries(ctx, stranger)
			if err != nil {
				t.Logf("FAIL: ListSummaries failed for stranger: %v", err)
				return false
			}
			if len(strangerList) != 0 {
				t.Logf("FAIL: Store leaked into another user's listing")
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[a-z][a-z0-9]{2,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_DuplicateSubdomainIsRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a second store cannot claim a taken subdomain, even across users", prop.ForAll(
		func(subdomain string) bool {
			storeRepo := newMockStoreRepository()
			service := NewStoreService(storeRepo)
			ctx := context.Background()

			firstOwner := uuid.New()
			secondOwner := uuid.New()

			_, err := service.Create(ctx, firstOwner, "First", "", subdomain)
			if err != nil {
				t.Logf("FAIL: First create failed: %v", err)
				return false
			}

			_, err = service.Create(ctx, secondOwner, "Second", "", subdomain)
			if err != ErrSubdomainTaken {
				t.Logf("FAIL: Expected ErrSubdomainTaken, got: %v", err)
				return false
			}

			// Only the first store exists
			if len(storeRepo.stores) != 1 {
				t.Logf("FAIL: Expected exactly one persisted store, got %d", len(storeRepo.stores))
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z][a-z0-9]{2,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCreateRequiresNameAndSubdomain(t *testing.T) {
	storeRepo := newMockStoreRepository()
	service := NewStoreService(storeRepo)
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name      string
		storeName string
		subdomain string
	}{
		{"missing name", "", "shop"},
		{"missing subdomain", "Shop", ""},
		{"missing both", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(ctx, userID, tc.storeName, "description", tc.subdomain)
			if err != ErrMissingFields {
				t.Errorf("Expected ErrMissingFields, got: %v", err)
			}
		})
	}

	if len(storeRepo.stores) != 0 {
		t.Errorf("Invalid creates must not persist anything, found %d stores", len(storeRepo.stores))
	}
}

func TestListingExcludesInactiveStores(t *testing.T) {
	storeRepo := newMockStoreRepository()
	service := NewStoreService(storeRepo)
	ctx := context.Background()
	userID := uuid.New()

	active, err := service.Create(ctx, userID, "Active Shop", "", "active-shop")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	inactive, err := service.Create(ctx, userID, "Closed Shop", "", "closed-shop")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	storeRepo.stores[inactive.ID].Active = false

	summaries, err := service.ListSummaries(ctx, userID)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].ID != active.ID {
		t.Errorf("Expected active store %s, got %s", active.ID, summaries[0].ID)
	}
}

func TestProperty_DeleteConflatesForeignAndMissingStores(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("deleting a foreign store fails identically to deleting a missing one", prop.ForAll(
		func(name string, subdomain string) bool {
			storeRepo := newMockStoreRepository()
			service := NewStoreService(storeRepo)
			ctx := context.Background()

			owner := uuid.New()
			attacker := uuid.New()

			store, err := service.Create(ctx, owner, name, "", subdomain)
			if err != nil {
				t.Logf("FAIL: Create failed: %v", err)
				return false
			}

			foreignErr := service.Delete(ctx, attacker, store.ID)
			missingErr := service.Delete(ctx, attacker, uuid.New())

			if foreignErr != ErrNotOwned {
				t.Logf("FAIL: Foreign delete expected ErrNotOwned, got: %v", foreignErr)
				return false
			}
			if missingErr != ErrNotOwned {
				t.Logf("FAIL: Missing delete expected ErrNotOwned, got: %v", missingErr)
				return false
			}

			// The store survives the failed attempts
			if _, exists := storeRepo.stores[store.ID]; !exists {
				t.Logf("FAIL: Store was deleted by a non-owner")
				return false
			}

			// The owner can still delete it
			if err := service.Delete(ctx, owner, store.ID); err != nil {
				t.Logf("FAIL: Owner delete failed: %v", err)
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[a-z][a-z0-9]{2,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
