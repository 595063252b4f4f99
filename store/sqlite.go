package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"securecheck-api/models"

	_ "modernc.org/sqlite"
)

// Dates and times are kept as text so the SQLite dialect's strftime
// extractions see YYYY-MM-DD and HH:MM:SS.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS police_log (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	stop_date          TEXT,
	stop_time          TEXT,
	country_name       TEXT,
	driver_gender      TEXT,
	driver_age         INTEGER,
	driver_race        TEXT,
	violation          TEXT,
	search_conducted   INTEGER,
	search_type        TEXT,
	stop_outcome       TEXT,
	is_arrested        INTEGER,
	stop_duration      TEXT,
	drugs_related_stop INTEGER,
	vehicle_number     TEXT
)`

const sqliteInsert = `INSERT INTO police_log (
	stop_date, stop_time, country_name, driver_gender, driver_age, driver_race, violation,
	search_conducted, search_type, stop_outcome, is_arrested, stop_duration,
	drugs_related_stop, vehicle_number
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database file at path and ensures the
// police_log table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating police_log: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context, records []models.StopRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, sqliteInsert)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var stopDate *string
		if r.StopDate != nil {
			d := r.StopDate.Format(time.DateOnly)
			stopDate = &d
		}
		_, err := stmt.ExecContext(ctx,
			stopDate, r.StopTime, r.CountryName, r.DriverGender, r.DriverAge, r.DriverRace, r.Violation,
			r.SearchConducted, r.SearchType, r.StopOutcome, r.IsArrested, r.StopDuration,
			r.DrugsRelatedStop, r.VehicleNumber,
		)
		if err != nil {
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(records), nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
