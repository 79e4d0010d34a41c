package product

import "github.com/KirkDiggler/mysterybox/internal/models"

type GetProductInput struct {
	ProductID string
}

type SaveProductInput struct {
	Product *models.Product
}

type ListProductsInput struct {
}
