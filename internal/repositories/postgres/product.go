package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mysterybox/internal/models"
	productrepo "github.com/KirkDiggler/mysterybox/internal/repositories/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// productRepository implements the product Repository interface using PostgreSQL
type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a PostgreSQL-backed product repository
func NewProductRepository(cfg *Config) (*productRepository, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &productRepository{
		pool: cfg.Pool,
	}, nil
}

func (r *productRepository) GetProduct(ctx context.Context, input *productrepo.GetProductInput) (*models.Product, error) {
	if input == nil || input.ProductID == "" {
		return nil, errors.New("input and product ID cannot be empty")
	}

	var p models.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, clues, sponsor_id
		FROM products
		WHERE id = $1
	`, input.ProductID).Scan(&p.ID, &p.Name, &p.Clues, &p.SponsorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, productrepo.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// SaveProduct inserts or replaces a product
func (r *productRepository) SaveProduct(ctx context.Context, input *productrepo.SaveProductInput) error {
	if input == nil || input.Product == nil || input.Product.ID == "" {
		return errors.New("input, product and product ID cannot be empty")
	}

	p := input.Product
	clues := p.Clues
	if clues == nil {
		clues = []string{}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, clues, sponsor_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, clues = EXCLUDED.clues, sponsor_id = EXCLUDED.sponsor_id
	`, p.ID, p.Name, clues, p.SponsorID)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, input *productrepo.ListProductsInput) ([]*models.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, clues, sponsor_id FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Product, error) {
		var p models.Product
		err := row.Scan(&p.ID, &p.Name, &p.Clues, &p.SponsorID)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	return products, nil
}
