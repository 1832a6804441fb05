package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/felixgeelhaar/pathway/internal/config"
	"github.com/felixgeelhaar/pathway/internal/content"
	"github.com/felixgeelhaar/pathway/internal/learner"
	"github.com/felixgeelhaar/pathway/internal/storage/local"
	"github.com/felixgeelhaar/pathway/internal/storage/postgres"
	"github.com/felixgeelhaar/pathway/internal/storage/sqlite"
)

// app wires configuration, content tables, storage, and the learner
// service together for one CLI invocation.
type app struct {
	cfg    *config.Config
	tables content.Tables
	svc    *learner.Service

	close func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tables := content.Defaults()
	if cfg.ContentPath != "" {
		tables, err = content.Load(cfg.ContentPath)
		if err != nil {
			return nil, fmt.Errorf("load content tables: %w", err)
		}
	}

	var repo learner.Repository
	closeFn := func() {}
	switch cfg.StorageBackend {
	case config.BackendJSON:
		repo, err = local.NewLearnerRepository(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		repo = sqlite.NewLearnerRepository(db)
		closeFn = func() { db.Close() }
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		repo = postgres.NewLearnerRepository(db)
		closeFn = db.Close
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return &app{
		cfg:    cfg,
		tables: tables,
		svc:    learner.NewService(repo, tables, logger),
		close:  closeFn,
	}, nil
}
