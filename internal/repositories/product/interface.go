package product

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mysterybox/internal/repositories/product Repository

import (
	"context"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

// Repository reads the sponsor product catalog. Products are managed
// elsewhere; SaveProduct exists for seeding.
type Repository interface {
	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, input *GetProductInput) (*models.Product, error)

	// SaveProduct persists a product
	SaveProduct(ctx context.Context, input *SaveProductInput) error

	// ListProducts retrieves every product
	ListProducts(ctx context.Context, input *ListProductsInput) ([]*models.Product, error)
}
