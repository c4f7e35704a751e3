package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	portal "github.com/zuca/portal"
	"github.com/zuca/portal/internal/bus"
	"github.com/zuca/portal/internal/config"
	"github.com/zuca/portal/internal/db"
	"github.com/zuca/portal/internal/gateway"
	"github.com/zuca/portal/internal/repository"
	"github.com/zuca/portal/internal/service"
	"github.com/zuca/portal/internal/storage"
	"github.com/zuca/portal/internal/store"
)

// SeedDir is where the bundled notices live inside portal.ContentFS.
const SeedDir = "content/updates"

type App struct {
	Cfg    *config.Config
	DB     *sqlx.DB      // Set for the sql store backend
	Redis  *redis.Client // Set when a Redis URL is configured
	Bus    *bus.Bus
	Bridge *bus.RedisBridge // Set when change sync is enabled
	Store  *store.Store

	Gateway *gateway.Gateway

	Preferences repository.PreferenceRepository

	AuthService        *service.AuthService
	UserService        *service.UserService
	MediaService       *service.MediaService
	ChatService        *service.ChatService
	UpdateService      *service.UpdateService
	PetitionService    *service.PetitionService
	ChoirService       *service.ChoirService
	InsightService     *service.InsightService
	TriviaService      *service.TriviaService
	LeaderboardService *service.LeaderboardService

	log *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	a := &App{Cfg: cfg, Bus: bus.New(), log: log}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		a.Redis = redis.NewClient(opts)
	}

	backend, err := a.openBackend(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var notifier bus.Notifier = a.Bus
	if a.Redis != nil {
		a.Bridge = bus.NewRedisBridge(a.Redis, cfg.SyncChannel, a.Bus, log)
		notifier = a.Bridge
	}
	a.Store = store.New(backend, notifier, log)

	// Generation
	var generator gateway.Generator
	if cfg.GenerationEnabled() {
		client, err := gateway.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize generator: %w", err)
		}
		generator = client
	} else {
		log.Info("generation disabled, using offline fallbacks")
	}
	a.Gateway = gateway.New(generator, cfg.GenerationTimeout, log)

	// Storage
	var mediaStorage storage.Storage
	if cfg.MediaStorageEnabled() {
		mediaStorage, err = storage.New(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	// Repositories
	userRepository := repository.NewUserRepository(a.Store)
	sessionRepository := repository.NewSessionRepository(a.Store)
	a.Preferences = repository.NewPreferenceRepository(a.Store)

	// Services
	a.MediaService = service.NewMediaService(mediaStorage, cfg.MaxMediaSize, log)
	a.AuthService = service.NewAuthService(userRepository, sessionRepository, a.MediaService, log)
	a.UserService = service.NewUserService(userRepository, sessionRepository, a.MediaService, log)
	a.ChatService = service.NewChatService(repository.NewChatRepository(a.Store), a.MediaService, a.Gateway, log)
	a.UpdateService = service.NewUpdateService(repository.NewUpdateRepository(a.Store), a.MediaService, log)
	a.PetitionService = service.NewPetitionService(repository.NewPetitionRepository(a.Store))
	a.ChoirService = service.NewChoirService(repository.NewChoirRepository(a.Store), a.MediaService, log)
	a.InsightService = service.NewInsightService(a.Gateway)
	a.TriviaService = service.NewTriviaService(a.Gateway, a.UserService, log)
	a.LeaderboardService = service.NewLeaderboardService(a.UserService)

	return a, nil
}

func (a *App) openBackend(ctx context.Context) (store.Backend, error) {
	switch a.Cfg.StoreBackend {
	case config.StoreBackendMemory:
		a.log.Warn("using in-memory record store, records are lost on exit")
		return store.NewMemoryBackend(), nil

	case config.StoreBackendRedis:
		if a.Redis == nil {
			return nil, fmt.Errorf("redis store backend requires REDIS_URL")
		}
		err := a.Redis.Ping(ctx).Err()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store.NewRedisBackend(a.Redis, a.Cfg.RedisKeyPrefix), nil

	case config.StoreBackendSQL:
		database, err := db.Init(a.Cfg.DBDriver, a.Cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = database

		err = db.RunMigrations(database.DB, a.Cfg.DBDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store.NewSQLBackend(database), nil
	}

	return nil, fmt.Errorf("unknown store backend %q", a.Cfg.StoreBackend)
}

// Seed loads the bundled notices into a portal that has never had any.
func (a *App) Seed(ctx context.Context) error {
	_, err := a.UpdateService.Seed(ctx, portal.ContentFS, SeedDir)
	return err
}

func (a *App) Close() error {
	var firstErr error
	if a.DB != nil {
		err := a.DB.Close()
		if err != nil {
			firstErr = err
		}
	}
	if a.Redis != nil {
		err := a.Redis.Close()
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
