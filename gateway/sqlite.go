package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"securecheck-api/config"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite serves a local log store file. The file is opened read-only, so a
// missing file is a connectivity failure rather than a fresh empty database.
type SQLite struct {
	path   string
	logger *zap.Logger
}

func NewSQLite(path string, logger *zap.Logger) *SQLite {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLite{path: path, logger: logger.Named("gateway.sqlite")}
}

func (g *SQLite) Dialect() Dialect { return SQLiteDialect }

func (g *SQLite) dsn() string {
	u := url.URL{Path: g.path}
	return "file:" + u.EscapedPath() + "?mode=ro"
}

func (g *SQLite) Execute(ctx context.Context, statement string) (rs *ResultSet, err error) {
	start := time.Now()
	defer func() {
		observe(config.DriverSQLite, statusOf(rs, err), time.Since(start).Seconds())
		if err != nil {
			g.logger.Warn("statement failed", zap.String("path", g.path), zap.Error(err))
		}
	}()

	db, err := sql.Open("sqlite", g.dsn())
	if err != nil {
		return NewResultSet(nil), &ConnectivityError{Driver: config.DriverSQLite, Err: err}
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return NewResultSet(nil), &ConnectivityError{Driver: config.DriverSQLite, Err: err}
	}

	rows, err := db.QueryContext(ctx, statement)
	if err != nil {
		return NewResultSet(nil), &QueryError{Driver: config.DriverSQLite, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return NewResultSet(nil), &QueryError{Driver: config.DriverSQLite, Err: err}
	}

	result := NewResultSet(columns)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return NewResultSet(nil), &QueryError{Driver: config.DriverSQLite, Err: fmt.Errorf("scan row: %w", err)}
		}
		result.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return NewResultSet(nil), &QueryError{Driver: config.DriverSQLite, Err: err}
	}

	return result, nil
}
