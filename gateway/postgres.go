package gateway

import (
	"context"
	"fmt"
	"time"

	"securecheck-api/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// Postgres opens a fresh pgx connection for every statement.
type Postgres struct {
	dsn    string
	logger *zap.Logger
}

func NewPostgres(dsn string, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{dsn: dsn, logger: logger.Named("gateway.postgres")}
}

func (g *Postgres) Dialect() Dialect { return PostgresDialect }

func (g *Postgres) Execute(ctx context.Context, statement string) (rs *ResultSet, err error) {
	start := time.Now()
	defer func() {
		observe(config.DriverPostgres, statusOf(rs, err), time.Since(start).Seconds())
		if err != nil {
			g.logger.Warn("statement failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		}
	}()

	conn, err := pgx.Connect(ctx, g.dsn)
	if err != nil {
		return NewResultSet(nil), &ConnectivityError{Driver: config.DriverPostgres, Err: err}
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := conn.Close(closeCtx); cerr != nil {
			g.logger.Debug("close connection", zap.Error(cerr))
		}
	}()

	rows, err := conn.Query(ctx, statement)
	if err != nil {
		return NewResultSet(nil), &QueryError{Driver: config.DriverPostgres, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	result := NewResultSet(columns)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return NewResultSet(nil), &QueryError{Driver: config.DriverPostgres, Err: fmt.Errorf("decode row: %w", err)}
		}
		for i, v := range values {
			values[i] = fromPG(v)
		}
		result.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return NewResultSet(nil), &QueryError{Driver: config.DriverPostgres, Err: err}
	}

	return result, nil
}

// fromPG converts the pgtype values pgx hands out for numeric and time
// columns into plain Go values.
func fromPG(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid || x.NaN {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case pgtype.Time:
		if !x.Valid {
			return nil
		}
		d := time.Duration(x.Microseconds) * time.Microsecond
		return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	default:
		return v
	}
}
