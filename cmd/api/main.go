package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"moviehub/proj/internal/api/tasks"
	"moviehub/proj/internal/clients/tmdb"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/lib/logger"
	"moviehub/proj/internal/lib/scheduler"
	"moviehub/proj/internal/services"
	"moviehub/proj/internal/services/favorites"
	"moviehub/proj/internal/storage/file"
	"moviehub/proj/internal/storage/memory"
	"moviehub/proj/internal/storage/postgres"
	redisstore "moviehub/proj/internal/storage/redis"
	"os"
	"time"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")

	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug, os.Stdout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, closeStorage, err := setupStorage(ctx, log, cfg)
	if err != nil {
		log.Error("failed to setup storage", "driver", cfg.Storage.Driver, "errMsg", err.Error())
		os.Exit(1)
	}
	defer closeStorage()

	catalog := tmdb.New(log, cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout)
	sched := scheduler.New(log)
	bgTasks := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.MaxQueueSize)
	bgTasks.Run()

	svc := services.New(ctx, log, cfg, catalog, storage, sched, bgTasks)
	log.Info("favorites loaded", "count", svc.Favorites.Count())

	app := NewApplication(cfg, log, svc)
	app.onShutdown(svc.Close)
	app.onShutdown(sched.Stop)
	app.onShutdown(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := bgTasks.Shutdown(ctx); err != nil {
			log.Warn("background tasks did not finish in time", "errMsg", err.Error())
		}
	})
	if err := app.serve(); err != nil {
		log.Error("server stopped with error", "errMsg", err.Error())
		os.Exit(1)
	}
}

func setupStorage(ctx context.Context, log *slog.Logger, cfg *config.Config) (favorites.Storage, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.StorageFile:
		st, err := file.New(cfg.Storage.File.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using file storage", "path", cfg.Storage.File.Path)
		return st, noop, nil
	case config.StoragePostgres:
		db, err := postgres.New(ctx, cfg.Storage.DB.Dsn, cfg.Storage.DB.MaxConns, cfg.Storage.DB.MaxConnIdleTime)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("database connection established")
		return db, db.Close, nil
	case config.StorageRedis:
		st, err := redisstore.New(ctx, cfg.Storage.Redis.Addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, cfg.Storage.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		log.Info("redis connection established", "addr", cfg.Storage.Redis.Addr)
		return st, func() {
			if err := st.Close(); err != nil {
				log.Warn("closing redis", "errMsg", err.Error())
			}
		}, nil
	case config.StorageMemory:
		log.Warn("using in-memory storage, favorites will not survive a restart")
		return memory.New(), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
