package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is an item for sale, owned by exactly one store.
type Product struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	ComparePrice *float64  `json:"comparePrice" db:"compare_price"`
	Inventory    int       `json:"inventory" db:"inventory"`
	Images       []string  `json:"images" db:"images"`
	Active       bool      `json:"active" db:"active"`
	StoreID      uuid.UUID `json:"storeId" db:"store_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CatalogProduct is a product annotated with its parent store's name and
// its categories, as shown in the owner's catalog listing.
type CatalogProduct struct {
	Product
	StoreName  string     `json:"storeName"`
	Categories []Category `json:"categories"`
}

// CategoryNames flattens the attached categories to their names.
func (p *CatalogProduct) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Category is a label attachable to many products.
type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
