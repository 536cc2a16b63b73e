package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"veriauth/internal/models"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id int64) (*models.Product, error)
	Delete(id int64) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) Create(product *models.Product) error {
	const q = `
		INSERT INTO products (title, description, image_url, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRow(q,
		product.Title,
		product.Description,
		product.ImageURL,
		product.ImageKey,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("product create: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when the product does not exist.
func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	const q = `
		SELECT id, title, description, image_url, image_key
		FROM products
		WHERE id = $1
	`
	p := &models.Product{}
	err := r.DB.QueryRow(q, id).Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.ImageKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("product get: %w", err)
	}
	return p, nil
}

func (r *productRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM products WHERE id=$1`, id); err != nil {
		return fmt.Errorf("product delete: %w", err)
	}
	return nil
}
