package domain

import (
	"time"

	"github.com/google/uuid"
)

// Store is a tenant's storefront. The subdomain is unique across all
// stores system-wide and is used for storefront routing.
type Store struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Subdomain   string    `json:"subdomain" db:"subdomain"`
	Active      bool      `json:"active" db:"active"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// StoreSummary is the projection returned by the store listing endpoint.
type StoreSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
