package gateway

import (
	"fmt"

	"securecheck-api/config"
)

// Dialect renders the date and time extractions that differ between stores.
// Each method returns an integer-valued SQL expression except Day, which
// returns the calendar date.
type Dialect interface {
	Name() string
	Year(col string) string
	Month(col string) string
	Hour(col string) string
	Day(col string) string
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return config.DriverPostgres }

func (postgresDialect) Year(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", col)
}

func (postgresDialect) Month(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", col)
}

func (postgresDialect) Hour(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(HOUR FROM %s) AS INTEGER)", col)
}

func (postgresDialect) Day(col string) string {
	return fmt.Sprintf("CAST(%s AS DATE)", col)
}

// sqliteDialect expects dates stored as YYYY-MM-DD text and times as HH:MM[:SS].
type sqliteDialect struct{}

func (sqliteDialect) Name() string { return config.DriverSQLite }

func (sqliteDialect) Year(col string) string {
	return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", col)
}

func (sqliteDialect) Month(col string) string {
	return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", col)
}

func (sqliteDialect) Hour(col string) string {
	return fmt.Sprintf("CAST(strftime('%%H', %s) AS INTEGER)", col)
}

func (sqliteDialect) Day(col string) string {
	return fmt.Sprintf("date(%s)", col)
}

var (
	PostgresDialect Dialect = postgresDialect{}
	SQLiteDialect   Dialect = sqliteDialect{}
)
