// Package app wires configuration, the dataset store, metrics, and the web
// server into a running dashboard.
package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"opsboard/internal/adapters/otel"
	"opsboard/internal/dataset"
	"opsboard/internal/web"
)

type metrics interface {
	web.Metrics
	DatasetLoaded(ctx context.Context, source string, rows int64)
	Close(ctx context.Context) error
}

// Run starts the dashboard and blocks until SIGINT/SIGTERM.
func Run(cfg *Config) error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store dataset.Store
	switch {
	case cfg.DataDSN != "":
		store = dataset.SQLiteStore{DSN: cfg.DataDSN}
	default:
		store = dataset.CSVStore{Path: cfg.DataPath}
	}

	ds, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	cache := dataset.NewCache(ds)
	log.Info("dataset loaded",
		zap.String("source", ds.Source),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("skipped", ds.Skipped))

	var m metrics
	otelCfg := otel.LoadConfig()
	if otelCfg.Enabled {
		exporter, err := otel.NewExporter(ctx, otelCfg)
		if err != nil {
			log.Warn("otel exporter disabled", zap.Error(err))
			m = otel.NewNoOpExporter()
		} else {
			m = exporter
		}
	} else {
		m = otel.NewNoOpExporter()
	}
	defer func() { _ = m.Close(context.Background()) }()
	m.DatasetLoaded(ctx, ds.Source, int64(len(ds.Rows)))

	if cfg.Watch && cfg.DataDSN == "" {
		watcher, err := dataset.NewWatcher(cfg.DataPath, cache, log, m)
		if err != nil {
			log.Warn("file watcher disabled", zap.Error(err))
		} else {
			if err := watcher.Start(ctx); err != nil {
				log.Warn("file watcher failed to start", zap.Error(err))
			} else {
				defer watcher.Stop()
			}
		}
	}

	settings, err := LoadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}

	server, err := web.NewServer(cache, web.Options{
		Addr:            cfg.Addr,
		Title:           settings.Title,
		ShutdownTimeout: cfg.ShutdownTimeout,
		TopProducts:     settings.TopProducts,
		StockThreshold:  settings.StockThreshold,
		CatalogLimit:    settings.CatalogLimit,
		LowStockLimit:   settings.LowStockLimit,
	}, log, m)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	return server.Start(ctx)
}
