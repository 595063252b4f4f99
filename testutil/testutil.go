// Package testutil builds throwaway police_log stores for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"securecheck-api/gateway"
	"securecheck-api/models"
	"securecheck-api/store"

	"github.com/stretchr/testify/require"
)

// NewStore writes records, in order, to a SQLite file under t.TempDir() and
// returns a read-only gateway over it. Row ids follow slice order.
func NewStore(t testing.TB, records ...models.StopRecord) *gateway.SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "police_log.db")

	lite, err := store.OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	_, err = lite.Load(context.Background(), records)
	require.NoError(t, err)
	require.NoError(t, lite.Close())

	return gateway.NewSQLite(path, nil)
}

func Str(s string) *string { return &s }

func Int(n int) *int { return &n }

func Bool(b bool) *bool { return &b }

// Date parses YYYY-MM-DD and panics on anything else.
func Date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// Stop returns a fully populated record; tests override the fields they
// care about.
func Stop() models.StopRecord {
	return models.StopRecord{
		StopDate:         Date("2020-01-15"),
		StopTime:         Str("10:30:00"),
		CountryName:      Str("Canada"),
		DriverGender:     Str("male"),
		DriverAge:        Int(30),
		DriverRace:       Str("White"),
		Violation:        Str("Speeding"),
		SearchConducted:  Bool(false),
		StopOutcome:      Str("Warning"),
		IsArrested:       Bool(false),
		StopDuration:     Str("0-15 Min"),
		DrugsRelatedStop: Bool(false),
		VehicleNumber:    Str("AB1234"),
	}
}
