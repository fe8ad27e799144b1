package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storehub/internal/domain"

	"github.com/google/uuid"
)

// OrderRepository exposes the read-only order aggregates the dashboard
// needs. Order placement itself happens on the storefront side, not in
// the admin API.
type OrderRepository interface {
	StatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoreStats, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// StatsByUser returns one row per store the user owns, active or not,
// with that store's product count, order count and summed order totals.
func (r *orderRepository) StatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoreStats, error) {
	query := `
		SELECT s.id,
		       (SELECT COUNT(*) FROM products p WHERE p.store_id = s.id),
		       (SELECT COUNT(*) FROM orders o WHERE o.store_id = s.id),
		       (SELECT COALESCE(SUM(o.total), 0) FROM orders o WHERE o.store_id = s.id)
		FROM stores s
		WHERE s.user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load store stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.StoreStats{}
	for rows.Next() {
		var row domain.StoreStats
		if err := rows.Scan(&row.StoreID, &row.ProductCount, &row.OrderCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan store stats: %w", err)
		}
		stats = append(stats, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating store stats: %w", err)
	}

	return stats, nil
}
