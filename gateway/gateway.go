// Package gateway is the read-only access path to the police_log store.
//
// Every Execute call acquires its own connection and releases it before
// returning, whatever the outcome. Failures come back as an empty ResultSet
// together with a *ConnectivityError or *QueryError; an empty ResultSet with a
// nil error means the statement ran and matched nothing.
package gateway

import (
	"context"
	"fmt"

	"securecheck-api/config"

	"go.uber.org/zap"
)

// Table is the relational table holding one row per traffic stop.
const Table = "police_log"

// Gateway executes a statement against the log store and returns its rows.
type Gateway interface {
	Execute(ctx context.Context, statement string) (*ResultSet, error)
	Dialect() Dialect
}

// New returns the gateway for the configured driver.
func New(cfg config.DatabaseConfig, logger *zap.Logger) (Gateway, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgres(cfg.GetDSN(), logger), nil
	case config.DriverSQLite:
		return NewSQLite(cfg.Path, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
