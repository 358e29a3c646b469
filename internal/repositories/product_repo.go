package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dataware/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Product, error)
	SearchByName(ctx context.Context, name string) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

// encodeCategories is the only place categories turn into their stored JSON text form.
func encodeCategories(categories []string) (string, error) {
	if categories == nil {
		categories = []string{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return "", fmt.Errorf("failed to encode categories: %w", err)
	}
	return string(data), nil
}

func decodeCategories(raw string) ([]string, error) {
	categories := []string{}
	if raw == "" {
		return categories, nil
	}
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	categories, err := encodeCategories(product.Categories)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (id, name, description, price, categories, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	err = r.db.QueryRow(ctx, query, product.ID, product.Name, product.Description, product.PriceCents, categories).Scan(&product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT id, name, description, price, categories, created_at
		FROM products
		WHERE id = $1
	`
	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	categories, err := encodeCategories(product.Categories)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, categories = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, product.Name, product.Description, product.PriceCents, categories, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, price, categories, created_at
		FROM products
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return collectProducts(rows)
}

// SearchByName matches a case-insensitive substring of the name, ordered by name.
func (r *productRepo) SearchByName(ctx context.Context, name string) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, price, categories, created_at
		FROM products
		WHERE strpos(lower(name), lower($1)) > 0
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	var categories string
	if err := row.Scan(&product.ID, &product.Name, &product.Description, &product.PriceCents, &categories, &product.CreatedAt); err != nil {
		return nil, err
	}
	decoded, err := decodeCategories(categories)
	if err != nil {
		return nil, err
	}
	product.Categories = decoded
	return product, nil
}

func collectProducts(rows pgx.Rows) ([]*models.Product, error) {
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
