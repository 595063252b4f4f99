// Package store writes stop records into the log store. It backs the loader
// binary and test fixtures; the reporting path never writes and goes through
// package gateway instead.
package store

import (
	"context"
	"fmt"

	"securecheck-api/config"
	"securecheck-api/models"

	"go.uber.org/zap"
)

// Loader appends records to police_log, creating the table when needed.
type Loader interface {
	Load(ctx context.Context, records []models.StopRecord) (int, error)
	Close() error
}

// NewLoader opens a writable store for the configured driver.
func NewLoader(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (Loader, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := OpenPostgres(ctx, cfg.GetDSN(), logger)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case config.DriverSQLite:
		lite, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
