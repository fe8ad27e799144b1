package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storehub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrSubdomainTaken  = errors.New("subdomain is already taken")
	uniqueViolationSQL = "23505"
)

// StoreRepository defines the interface for store data access
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Store, error)
	ListSummariesByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoreSummary, error)
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
}

type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new instance of StoreRepository
func NewStoreRepository(db *sql.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create inserts a new store. The subdomain carries a UNIQUE constraint,
// so a concurrent insert racing past the service-level pre-check still
// resolves to ErrSubdomainTaken rather than a duplicate row.
func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	query := `
		INSERT INTO stores (id, name, description, subdomain, active, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		store.ID,
		store.Name,
		store.Description,
		store.Subdomain,
		store.Active,
		store.UserID,
		store.CreatedAt,
		store.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSubdomainTaken
		}
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}

// Delete removes a store; products and orders cascade at the schema level
func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stores WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrStoreNotFound
	}

	return nil
}

// FindByIDAndUser retrieves a store scoped by both id and owner. A store
// owned by a different user yields ErrStoreNotFound, the same as a
// nonexistent id.
func (r *storeRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Store, error) {
	query := `
		SELECT id, name, description, subdomain, active, user_id, created_at, updated_at
		FROM stores
		WHERE id = $1 AND user_id = $2
	`

	store := &domain.Store{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&store.ID,
		&store.Name,
		&store.Description,
		&store.Subdomain,
		&store.Active,
		&store.UserID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}

// ListSummariesByUser retrieves the caller's active stores as {id, name}
// projections, sorted ascending by name.
func (r *storeRepository) ListSummariesByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoreSummary, error) {
	query := `
		SELECT id, name
		FROM stores
		WHERE user_id = $1 AND active = TRUE
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	summaries := []domain.StoreSummary{}
	for rows.Next() {
		var summary domain.StoreSummary
		if err := rows.Scan(&summary.ID, &summary.Name); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return summaries, nil
}

// SubdomainExists checks subdomain availability across ALL stores,
// regardless of owner.
func (r *storeRepository) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stores WHERE subdomain = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, subdomain).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subdomain: %w", err)
	}

	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationSQL
}
