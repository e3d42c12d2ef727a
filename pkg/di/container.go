package di

import (
	"context"
	"fmt"
	"time"

	"character-studio/backend/internal/service"
	"character-studio/backend/internal/store"
	"character-studio/backend/pkg/cache"
	"character-studio/backend/pkg/config"
	"character-studio/backend/pkg/health"
	"character-studio/backend/pkg/logger"
	"character-studio/backend/pkg/storage"
)

// Container holds all the dependencies for the application
type Container struct {
	Adapter storage.Adapter
	Logger  *logger.Logger
	Cache   *cache.Cache
	Health  *health.Checker

	CharacterStore    *store.CharacterStore
	VersionStore      *store.VersionStore
	SharedStore       *store.SharedStore
	FolderStore       *store.FolderStore
	RelationshipStore *store.RelationshipStore
	RatingStore       *store.RatingStore

	CharacterService *service.CharacterService
	FolderService    *service.FolderService
	RatingService    *service.RatingService
	StatsService     *service.StatsService
	BackupService    *service.BackupService
	TemplateService  *service.TemplateService
	FeedbackService  *service.FeedbackService
	CompactService   *service.CompactService
}

// New wires the storage adapter, stores and services from configuration.
func New(cfg *config.Config) (*Container, error) {
	log := logger.New(logger.Config{
		Level: cfg.Logging.Level,
		JSON:  cfg.Logging.Format == "json",
	})

	adapter, err := storage.Open(cfg.Storage.Driver, storage.Options{
		Dir:         cfg.Storage.DataDir,
		RedisAddr:   cfg.Storage.RedisAddr,
		RedisPrefix: cfg.Storage.RedisPrefix,
		PostgresDSN: cfg.Storage.PostgresDSN,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	var templateCache *cache.Cache
	if cfg.Cache.Enabled {
		templateCache = cache.NewCacheWithOptions(cfg.Cache.TTL, cfg.Cache.PurgeWindow)
	}

	checker := health.NewChecker(log, 30*time.Second)
	checker.RegisterStorageCheck(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := adapter.Keys(ctx)
		return err
	})

	versions := store.NewVersionStore(adapter)
	shared := store.NewSharedStore(adapter)
	characters := store.NewCharacterStore(adapter, versions, shared)
	folders := store.NewFolderStore(adapter)
	relationships := store.NewRelationshipStore(adapter)
	ratings := store.NewRatingStore(adapter)

	return &Container{
		Adapter: adapter,
		Logger:  log,
		Cache:   templateCache,
		Health:  checker,

		CharacterStore:    characters,
		VersionStore:      versions,
		SharedStore:       shared,
		FolderStore:       folders,
		RelationshipStore: relationships,
		RatingStore:       ratings,

		CharacterService: service.NewCharacterService(characters, versions, shared, log),
		FolderService:    service.NewFolderService(folders, characters),
		RatingService:    service.NewRatingService(characters, ratings, log),
		StatsService:     service.NewStatsService(characters),
		BackupService:    service.NewBackupService(characters),
		TemplateService:  service.NewTemplateService(cfg.Templates.Dir, templateCache, log),
		FeedbackService:  service.NewFeedbackService(cfg.Feedback.WebhookURL, cfg.Feedback.Timeout, log),
		CompactService:   service.NewCompactService(characters, versions, folders, relationships, log),
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() error {
	return c.Adapter.Close()
}
