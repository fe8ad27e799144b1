package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is referenced only for dashboard aggregation.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StoreID   uuid.UUID `json:"storeId" db:"store_id"`
	Total     float64   `json:"total" db:"total"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// StoreStats holds per-store counts used by the dashboard rollup.
type StoreStats struct {
	StoreID      uuid.UUID
	ProductCount int
	OrderCount   int
	Revenue      float64
}

// DashboardStats is the aggregate view across all of a user's stores,
// active and inactive alike.
type DashboardStats struct {
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalStores   int     `json:"totalStores"`
}
