package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/KirkDiggler/mysterybox/internal/config"
	"github.com/KirkDiggler/mysterybox/internal/models"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	participantRepo "github.com/KirkDiggler/mysterybox/internal/repositories/participant"
	"github.com/KirkDiggler/mysterybox/internal/repositories/postgres"
	productRepo "github.com/KirkDiggler/mysterybox/internal/repositories/product"
	"github.com/redis/go-redis/v9"
)

// store groups the repositories of the configured driver
type store struct {
	games        gameRepo.Repository
	participants participantRepo.Repository
	products     productRepo.Repository

	ping     func(ctx context.Context) error
	shutdown func()
}

func openStore(ctx context.Context, cfg *config.Config, client *redis.Client) (*store, error) {
	if cfg.Store.Driver == config.StorePostgres {
		return openPostgres(ctx, cfg)
	}

	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create game repository: %w", err)
	}
	participants, err := participantRepo.NewRedis(&participantRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create participant repository: %w", err)
	}
	products, err := productRepo.NewRedis(&productRepo.Config{RedisClient: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create product repository: %w", err)
	}

	return &store{
		games:        games,
		participants: participants,
		products:     products,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		shutdown: func() {},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*store, error) {
	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	pgCfg := &postgres.Config{Pool: pool}
	games, err := postgres.NewGameRepository(pgCfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create game repository: %w", err)
	}
	participants, err := postgres.NewParticipantRepository(pgCfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create participant repository: %w", err)
	}
	products, err := postgres.NewProductRepository(pgCfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create product repository: %w", err)
	}

	return &store{
		games:        games,
		participants: participants,
		products:     products,
		ping:         pool.Ping,
		shutdown:     pool.Close,
	}, nil
}

// seedProducts saves every product in a JSON array file and returns the catalog size
func seedProducts(ctx context.Context, repo productRepo.Repository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read products file: %w", err)
	}

	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return 0, fmt.Errorf("failed to parse products file: %w", err)
	}

	for _, product := range products {
		if err := repo.SaveProduct(ctx, &productRepo.SaveProductInput{Product: product}); err != nil {
			return 0, fmt.Errorf("failed to save product %s: %w", product.ID, err)
		}
	}

	listed, err := repo.ListProducts(ctx, &productRepo.ListProductsInput{})
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}

	return len(listed), nil
}
