// Command loader imports a CSV export of the traffic stop log into the
// configured store. Rows are appended; the table is created if missing.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"securecheck-api/config"
	"securecheck-api/logging"
	"securecheck-api/services"
	"securecheck-api/store"

	"go.uber.org/zap"
)

func main() {
	csvPath := flag.String("csv", os.Getenv("LOADER_CSV"), "path of the CSV export to load (env LOADER_CSV)")
	purge := flag.Bool("purge-cache", true, "drop cached reports in redis after a successful load")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.Named("loader")

	if *csvPath == "" {
		logger.Fatal("no input: pass -csv or set LOADER_CSV")
	}

	if err := run(ctx, cfg.Database, *csvPath, logger); err != nil {
		logger.Fatal("load failed", zap.String("csv", *csvPath), zap.Error(err))
	}

	if *purge {
		purgeCache(ctx, cfg.Redis, logger)
	}
}

// purgeCache clears the API's cached reports so the new rows show up before
// the entries expire. Failures are logged, not returned.
func purgeCache(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) {
	cache, err := services.NewCacheService(ctx, cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, cached reports expire on their own", zap.Error(err))
		return
	}
	defer cache.Close()

	n, err := cache.Purge(ctx)
	if err != nil {
		logger.Warn("cache purge failed", zap.Int("removed", n), zap.Error(err))
		return
	}
	logger.Info("cache purged", zap.Int("removed", n))
}

func run(ctx context.Context, cfg config.DatabaseConfig, csvPath string, logger *zap.Logger) error {
	start := time.Now()

	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := store.ReadCSV(f)
	if err != nil {
		return err
	}
	logger.Info("csv decoded", zap.Int("records", len(records)))

	loader, err := store.NewLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer loader.Close()

	n, err := loader.Load(ctx, records)
	if err != nil {
		return err
	}

	logger.Info("load complete",
		zap.String("driver", cfg.Driver),
		zap.Int("inserted", n),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
