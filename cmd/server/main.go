package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/auth"
	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/common/uuid"
	"github.com/KirkDiggler/mysterybox/internal/config"
	"github.com/KirkDiggler/mysterybox/internal/handlers/api"
	"github.com/KirkDiggler/mysterybox/internal/handlers/discord"
	"github.com/KirkDiggler/mysterybox/internal/picker"
	"github.com/KirkDiggler/mysterybox/internal/provider"
	auditRepo "github.com/KirkDiggler/mysterybox/internal/repositories/audit"
	"github.com/KirkDiggler/mysterybox/internal/repositories/ratelimit"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	gameService "github.com/KirkDiggler/mysterybox/internal/services/game"
	"github.com/KirkDiggler/mysterybox/internal/services/messaging"
	"github.com/KirkDiggler/mysterybox/internal/services/moderation"
	participantService "github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	productsPath := flag.String("products", "", "optional JSON file of products to load into the catalog")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, *productsPath, &logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, productsPath string, logger *zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis always backs the audit stream and rate limits, whichever store holds the game
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repos, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	defer repos.shutdown()

	if productsPath != "" {
		loaded, err := seedProducts(ctx, repos.products, productsPath)
		if err != nil {
			return err
		}
		logger.Info().Int("catalog_size", loaded).Str("path", productsPath).Msg("loaded product catalog")
	}

	textProvider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	msgService, err := messaging.New(&messaging.Config{
		Picker: picker.New(nil),
	})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	// The Discord session is created up front so the announcer sink can use it
	var session *discordgo.Session
	if cfg.DiscordEnabled() {
		session, err = discord.NewSession(cfg.Discord.Token)
		if err != nil {
			return err
		}
	}

	auditService, err := newAuditService(cfg, redisClient, session, msgService, logger)
	if err != nil {
		return err
	}

	moderationSvc, err := moderation.New(&moderation.Config{
		Provider:          textProvider,
		ExtraBlockedTerms: cfg.Moderation.ExtraBlockedTerms,
		ProviderTimeout:   cfg.Provider.Timeout,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create moderation service: %w", err)
	}

	validationSvc, err := validation.New(&validation.Config{
		Provider:        textProvider,
		ProviderTimeout: cfg.Provider.Timeout,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create validation service: %w", err)
	}

	participantSvc, err := participantService.New(&participantService.Config{
		ParticipantRepo: repos.participants,
		Audit:           auditService,
		Clock:           clock.New(),
		UUID:            uuid.New(),
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create participant service: %w", err)
	}

	gameSvc, err := gameService.New(&gameService.Config{
		GameRepo:                repos.games,
		ProductRepo:             repos.products,
		ParticipantService:      participantSvc,
		ModerationService:       moderationSvc,
		ValidationService:       validationSvc,
		Audit:                   auditService,
		Picker:                  picker.New(nil),
		Clock:                   clock.New(),
		UUID:                    uuid.New(),
		MaxProviderCallsPerDraw: cfg.Game.MaxProviderCallsPerDraw,
		DrawTimeout:             cfg.Game.DrawTimeout,
		MaxGuessLength:          cfg.Game.MaxGuessLength,
		Logger:                  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	verifier, err := auth.NewJWTService(&auth.Config{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	if err != nil {
		return fmt.Errorf("failed to create jwt service: %w", err)
	}

	limiter, err := ratelimit.NewRedis(&ratelimit.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	handler, err := api.New(&api.Config{
		GameService:        gameSvc,
		ParticipantService: participantSvc,
		ValidationService:  validationSvc,
		Verifier:           verifier,
		RateLimiter:        limiter,
		RateLimit:          cfg.RateLimit.Limit,
		RateWindow:         cfg.RateLimit.Window,
		HealthCheck:        repos.ping,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}

	if session != nil {
		bot, err := discord.New(&discord.Config{
			Session:          session,
			ApplicationID:    cfg.Discord.ApplicationID,
			GuildID:          cfg.Discord.GuildID,
			GameService:      gameSvc,
			MessagingService: msgService,
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start Discord bot: %w", err)
		}
		defer func() {
			if err := bot.Stop(); err != nil {
				logger.Error().Err(err).Msg("failed to stop Discord bot")
			}
		}()
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Str("store", cfg.Store.Driver).
			Str("provider", cfg.Provider.Kind).
			Bool("discord", session != nil).
			Msg("mystery box server is running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server")
	}
	if err := auditService.Flush(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("audit records still in flight at shutdown")
	}

	return nil
}

// newProvider builds the configured text provider. A nil provider leaves
// moderation and validation on their local fallbacks.
func newProvider(ctx context.Context, cfg *config.Config) (provider.TextProvider, func(), error) {
	noop := func() {}

	switch cfg.Provider.Kind {
	case config.ProviderHTTP:
		p, err := provider.NewHTTP(&provider.HTTPConfig{
			BaseURL: cfg.Provider.BaseURL,
			APIKey:  cfg.Provider.APIKey,
			Model:   cfg.Provider.Model,
			Timeout: cfg.Provider.Timeout,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create http provider: %w", err)
		}
		return p, noop, nil
	case config.ProviderCopilot:
		p, err := provider.NewCopilot(ctx, &provider.CopilotConfig{
			Model: cfg.Provider.Model,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create copilot provider: %w", err)
		}
		return p, func() { _ = p.Close() }, nil
	default:
		return nil, noop, nil
	}
}

// newAuditService wires the Redis stream sink and, when a session is given,
// the Discord channel announcer.
func newAuditService(cfg *config.Config, client *redis.Client, session *discordgo.Session, msgService messaging.Service, logger *zerolog.Logger) (audit.Service, error) {
	stream, err := auditRepo.NewRedis(&auditRepo.Config{
		RedisClient: client,
		MaxLen:      cfg.Audit.StreamMaxLen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create audit repository: %w", err)
	}

	streamSink, err := audit.NewRepositorySink(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit sink: %w", err)
	}
	sinks := []audit.Sink{streamSink}

	if session != nil && cfg.Discord.ChannelID != "" {
		announcer, err := discord.NewAnnouncer(&discord.AnnouncerConfig{
			Sender:           session,
			ChannelID:        cfg.Discord.ChannelID,
			MessagingService: msgService,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord announcer: %w", err)
		}
		sinks = append(sinks, announcer)
	}

	service, err := audit.New(&audit.Config{
		Sinks:       sinks,
		Clock:       clock.New(),
		SinkTimeout: cfg.Audit.SinkTimeout,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	return service, nil
}
