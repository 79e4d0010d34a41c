package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	productKeyPrefix = "product:"
	allProductsKey   = "products"
)

// ErrProductNotFound is returned when a product is not found
var ErrProductNotFound = errors.New("product not found")

// Config holds configuration for the Redis product repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed product repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetProduct retrieves a product by ID from Redis
func (r *redisRepository) GetProduct(ctx context.Context, input *GetProductInput) (*models.Product, error) {
	if input == nil || input.ProductID == "" {
		return nil, errors.New("input and product ID cannot be empty")
	}

	productJSON, err := r.client.Get(ctx, productKeyPrefix+input.ProductID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// SaveProduct persists a product to Redis
func (r *redisRepository) SaveProduct(ctx context.Context, input *SaveProductInput) error {
	if input == nil || input.Product == nil || input.Product.ID == "" {
		return errors.New("input, product and product ID cannot be empty")
	}

	productJSON, err := json.Marshal(input.Product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, productKeyPrefix+input.Product.ID, productJSON, 0)
	pipe.SAdd(ctx, allProductsKey, input.Product.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	return nil
}

// ListProducts retrieves every product, ordered by ID
func (r *redisRepository) ListProducts(ctx context.Context, input *ListProductsInput) ([]*models.Product, error) {
	ids, err := r.client.SMembers(ctx, allProductsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	sort.Strings(ids)

	products := make([]*models.Product, 0, len(ids))
	for _, id := range ids {
		product, err := r.GetProduct(ctx, &GetProductInput{ProductID: id})
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}
