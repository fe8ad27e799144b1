package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storehub/internal/domain"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product, categoryIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Product, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.CatalogProduct, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a product and its category associations in one transaction
func (r *productRepository) Create(ctx context.Context, product *domain.Product, categoryIDs []uuid.UUID) error {
	images, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (id, name, description, price, compare_price, inventory, images, active, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.ComparePrice,
		product.Inventory,
		images,
		product.Active,
		product.StoreID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	for _, categoryID := range categoryIDs {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			product.ID,
			categoryID,
		)
		if err != nil {
			return fmt.Errorf("failed to attach category: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}

	return nil
}

// Delete removes a product; join rows cascade at the schema level
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByIDAndUser retrieves a product scoped to the owner of its store. A
// product in another user's store yields ErrProductNotFound, the same as
// a nonexistent id.
func (r *productRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.compare_price, p.inventory, p.images, p.active, p.store_id, p.created_at, p.updated_at
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.id = $1 AND s.user_id = $2
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// ListByOwner retrieves every product across every store the user owns,
// active stores or not, annotated with the parent store's name and the
// attached categories. The entire catalog is returned at once.
func (r *productRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.CatalogProduct, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.compare_price, p.inventory, p.images, p.active, p.store_id, p.created_at, p.updated_at, s.name
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE s.user_id = $1
		ORDER BY s.name ASC, p.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.CatalogProduct{}
	byID := map[uuid.UUID]*domain.CatalogProduct{}
	for rows.Next() {
		item := &domain.CatalogProduct{Categories: []domain.Category{}}
		var images []byte
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ComparePrice,
			&item.Inventory,
			&images,
			&item.Active,
			&item.StoreID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.StoreName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if err := json.Unmarshal(images, &item.Images); err != nil {
			return nil, fmt.Errorf("failed to decode images: %w", err)
		}
		products = append(products, item)
		byID[item.ID] = item
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if len(products) == 0 {
		return products, nil
	}

	// Second pass for the many-to-many categories, unwrapping the join table
	categoryQuery := `
		SELECT pc.product_id, c.id, c.name
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		JOIN products p ON p.id = pc.product_id
		JOIN stores s ON s.id = p.store_id
		WHERE s.user_id = $1
		ORDER BY c.name ASC
	`

	categoryRows, err := r.db.QueryContext(ctx, categoryQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var productID uuid.UUID
		var category domain.Category
		if err := categoryRows.Scan(&productID, &category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan product category: %w", err)
		}
		if item, ok := byID[productID]; ok {
			item.Categories = append(item.Categories, category)
		}
	}

	if err = categoryRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product categories: %w", err)
	}

	return products, nil
}

func scanProduct(row *sql.Row) (*domain.Product, error) {
	product := &domain.Product{}
	var images []byte
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ComparePrice,
		&product.Inventory,
		&images,
		&product.Active,
		&product.StoreID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	return product, nil
}
