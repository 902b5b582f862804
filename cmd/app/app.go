package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"elenco/internal/assist"
	"elenco/internal/config"
	"elenco/internal/database"
	"elenco/internal/media"
	"elenco/internal/repository"
	"elenco/internal/service"
	"elenco/internal/storage"
	"elenco/internal/store"
)

type Components struct {
	DB       *database.DB
	Store    *store.Store
	Services *service.Service
}

// Close releases the database connection, if any.
func (c *Components) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.CloseDB()
}

// OpenStore connects the configured backend. The returned DB is nil for the
// in-memory store.
func OpenStore(cfg *config.Config, log *zap.Logger) (*store.Store, *database.DB, error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Warn("using in-memory store, nothing survives a restart")
		return store.New(repository.NewMemoryKVRepository(), log), nil, nil
	}

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return store.New(repository.NewKVRepository(db.DB), log), db, nil
}

// App wires every component and loads the session from the store.
func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Components, error) {
	st, db, err := OpenStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	c := &Components{DB: db, Store: st}

	ingestor, err := newIngestor(ctx, cfg, log)
	if err != nil {
		c.Close()
		return nil, err
	}

	assistClient, err := newAssistClient(ctx, cfg, log)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Services, err = service.NewService(st, ingestor, assistClient, cfg, log)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to build services: %w", err)
	}

	if err := c.Services.Feed.Load(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return c, nil
}

func newIngestor(ctx context.Context, cfg *config.Config, log *zap.Logger) (*media.Ingestor, error) {
	if !cfg.MinIO.Enabled {
		log.Info("object storage disabled, attached media lasts until restart")
		return media.NewIngestor(media.NewRegistry(), nil, log), nil
	}

	client, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO: %w", err)
	}
	log.Info("object storage enabled",
		zap.String("endpoint", cfg.MinIO.Endpoint),
		zap.String("bucket", cfg.MinIO.BucketName))
	return media.NewIngestor(media.NewRegistry(), client, log), nil
}

func newAssistClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*assist.Client, error) {
	gen, err := assist.NewGemini(ctx, cfg.Assist)
	if errors.Is(err, assist.ErrUnavailable) {
		log.Warn("GEMINI_API_KEY not set, AI assist disabled")
		return assist.New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI assist: %w", err)
	}
	return assist.New(gen), nil
}
