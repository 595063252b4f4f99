package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"securecheck-api/gateway"
	"securecheck-api/models"
	"securecheck-api/store"
	"securecheck-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, gw gateway.Gateway, q Query) *gateway.ResultSet {
	t.Helper()
	rs, err := Run(context.Background(), gw, q)
	require.NoError(t, err, "query %q", q)
	return rs
}

func stop(mutate func(r *models.StopRecord)) models.StopRecord {
	r := testutil.Stop()
	mutate(&r)
	return r
}

func TestTiers(t *testing.T) {
	assert.Len(t, ByTier(Basic), 15)
	assert.Len(t, ByTier(Advanced), 6)
	assert.Len(t, All(), 21)

	tier, ok := ParseTier("advanced")
	assert.True(t, ok)
	assert.Equal(t, Advanced, tier)
	_, ok = ParseTier("expert")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	for _, q := range All() {
		got, ok := Parse(q.String())
		require.True(t, ok, q.String())
		assert.Equal(t, q, got)
	}

	_, ok := Parse("Drop All Tables")
	assert.False(t, ok)
}

func TestUnknownQueryPanics(t *testing.T) {
	assert.Panics(t, func() { _ = Query(99).Definition() })
	assert.Panics(t, func() { _ = Query(-1).String() })
	assert.Panics(t, func() {
		_, _ = Run(context.Background(), testutil.NewStore(t), queryCount)
	})
}

func TestPostgresStatementsUseExtract(t *testing.T) {
	stmt := ViolationTrends.Definition().Statement(gateway.PostgresDialect)
	assert.Contains(t, stmt, "EXTRACT(YEAR FROM stop_date)")
	assert.Contains(t, stmt, "EXTRACT(MONTH FROM stop_date)")
	assert.NotContains(t, stmt, "strftime")

	stmt = NightStops.Definition().Statement(gateway.PostgresDialect)
	assert.Contains(t, stmt, "EXTRACT(HOUR FROM stop_time)")
}

func TestEveryQueryKeepsColumnsOnEmptyTable(t *testing.T) {
	gw := testutil.NewStore(t)

	for _, q := range All() {
		t.Run(q.String(), func(t *testing.T) {
			rs := run(t, gw, q)
			assert.Equal(t, q.Definition().Columns, rs.Columns)
		})
	}
}

func TestEveryQueryKeepsColumnsOnPopulatedTable(t *testing.T) {
	gw := testutil.NewStore(t,
		testutil.Stop(),
		stop(func(r *models.StopRecord) {
			r.DriverGender = testutil.Str("female")
			r.IsArrested = testutil.Bool(true)
			r.StopOutcome = testutil.Str("Arrest")
			r.SearchConducted = testutil.Bool(true)
			r.SearchType = testutil.Str("Frisk")
			r.DrugsRelatedStop = testutil.Bool(true)
			r.StopDate = testutil.Date("2021-06-01")
			r.StopTime = testutil.Str("23:10:00")
		}),
		models.StopRecord{},
	)

	for _, q := range All() {
		t.Run(q.String(), func(t *testing.T) {
			rs := run(t, gw, q)
			assert.Equal(t, q.Definition().Columns, rs.Columns)
		})
	}
}

func TestFailureKeepsColumns(t *testing.T) {
	gw := gateway.NewSQLite(filepath.Join(t.TempDir(), "absent.db"), nil)

	rs, err := Run(context.Background(), gw, StopsByViolation)
	require.Error(t, err)
	var connErr *gateway.ConnectivityError
	assert.True(t, errors.As(err, &connErr))
	assert.True(t, rs.Empty())
	assert.Equal(t, []string{"violation", "stops_count"}, rs.Columns)
}

func TestTotalStops(t *testing.T) {
	gw := testutil.NewStore(t, testutil.Stop(), testutil.Stop(), testutil.Stop())
	rs := run(t, gw, TotalStops)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, int64(3), rs.Rows[0]["total_police_stops"])
}

func TestAverageDriverAgeExcludesNull(t *testing.T) {
	gw := testutil.NewStore(t,
		stop(func(r *models.StopRecord) { r.DriverAge = testutil.Int(20) }),
		stop(func(r *models.StopRecord) { r.DriverAge = testutil.Int(40) }),
		stop(func(r *models.StopRecord) { r.DriverAge = nil }),
	)
	rs := run(t, gw, AverageDriverAge)
	assert.Equal(t, 30.0, rs.Rows[0]["avg_driver_age"])
}

func TestAverageDriverAgeWithoutDataIsNoData(t *testing.T) {
	gw := testutil.NewStore(t, stop(func(r *models.StopRecord) { r.DriverAge = nil }))
	rs := run(t, gw, AverageDriverAge)
	require.Equal(t, 1, rs.Len())
	assert.Nil(t, rs.Rows[0]["avg_driver_age"])
	assert.Equal(t, gateway.NoData, gateway.Display(rs.Rows[0]["avg_driver_age"]))
}

func TestArrestsVsWarnings(t *testing.T) {
	gw := testutil.NewStore(t,
		stop(func(r *models.StopRecord) { r.StopOutcome = testutil.Str("Warning") }),
		stop(func(r *models.StopRecord) { r.StopOutcome = testutil.Str("Citation") }),
		stop(func(r *models.StopRecord) { r.StopOutcome = testutil.Str("Arrest") }),
		stop(func(r *models.StopRecord) { r.StopOutcome = testutil.Str("Warning") }),
	)
	rs := run(t, gw, ArrestsVsWarnings)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "Warning", rs.Rows[0]["stop_outcome"])
	assert.Equal(t, int64(2), rs.Rows[0]["outcome_count"])
	assert.Equal(t, "Arrest", rs.Rows[1]["stop_outcome"])
	assert.Equal(t, int64(1), rs.Rows[1]["outcome_count"])
}

func TestTopVehiclesLimitAndTies(t *testing.T) {
	var records []models.StopRecord
	add := func(vehicle string, n int) {
		for i := 0; i < n; i++ {
			records = append(records, stop(func(r *models.StopRecord) { r.VehicleNumber = testutil.Str(vehicle) }))
		}
	}
	add("V1", 1)
	add("V2", 3)
	add("V3", 1)
	add("V4", 2)
	add("V5", 3)
	add("V6", 1)
	add("V7", 1)
	gw := testutil.NewStore(t, records...)

	rs := run(t, gw, TopVehicles)
	require.Equal(t, 5, rs.Len())

	var got []string
	for _, row := range rs.Rows {
		got = append(got, row["vehicle_number"].(string))
	}
	assert.Equal(t, []string{"V2", "V5", "V4", "V1", "V3"}, got)

	for i := 1; i < rs.Len(); i++ {
		prev, _ := gateway.AsInt(rs.Rows[i-1]["count_stop"])
		cur, _ := gateway.AsInt(rs.Rows[i]["count_stop"])
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestTopSearchTypesSkipsNull(t *testing.T) {
	gw := testutil.NewStore(t,
		stop(func(r *models.StopRecord) { r.SearchType = nil }),
		stop(func(r *models.StopRecord) { r.SearchType = testutil.Str("Frisk") }),
		stop(func(r *models.StopRecord) { r.SearchType = testutil.Str("Vehicle Search") }),
		stop(func(r *models.StopRecord) { r.SearchType = testutil.Str("Vehicle Search") }),
	)
	rs := run(t, gw, TopSearchTypes)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "Vehicle Search", rs.Rows[0]["search_type"])
	assert.Equal(t, "Frisk", rs.Rows[1]["search_type"])
}

func TestTopArrestViolationTieTakesFirst(t *testing.T) {
	arrest := func(violation string) models.StopRecord {
		return stop(func(r *models.StopRecord) {
			r.Violation = testutil.Str(violation)
			r.IsArrested = testutil.Bool(true)
		})
	}
	gw := testutil.NewStore(t,
		stop(func(r *models.StopRecord) { r.Violation = testutil.Str("Speeding") }),
		arrest("DUI"),
		arrest("Seatbelt"),
		arrest("Seatbelt"),
		arrest("DUI"),
	)
	rs := run(t, gw, TopArrestViolation)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "DUI", rs.Rows[0]["violation"])
	assert.Equal(t, int64(2), rs.Rows[0]["arrest_count"])
}

func TestNightStops(t *testing.T) {
	at := func(clock string) models.StopRecord {
		return stop(func(r *models.StopRecord) { r.StopTime = testutil.Str(clock) })
	}
	gw := testutil.NewStore(t, at("22:15"), at("03:00"), at("14:00"), at("05:00"), at("21:59"))

	rs := run(t, gw, NightStops)
	assert.Equal(t, int64(2), rs.Rows[0]["night_stops"])
}

func TestClockFormatsFromCSV(t *testing.T) {
	records, err := store.ReadCSV(strings.NewReader(
		"stop_date,stop_time\n" +
			"2020-01-15,3:00\n" +
			"2020-01-15,11:30 PM\n" +
			"2020-01-15,2:00 PM\n" +
			"2020-01-15,9:15\n"))
	require.NoError(t, err)
	gw := testutil.NewStore(t, records...)

	rs := run(t, gw, NightStops)
	assert.Equal(t, int64(2), rs.Rows[0]["night_stops"])

	rs = run(t, gw, TimePeriodStops)
	got := map[string]int64{}
	for _, row := range rs.Rows {
		got[row["time_period"].(string)] = row["total_stops"].(int64)
	}
	assert.Equal(t, map[string]int64{"Late Night": 1, "Night": 1, "Afternoon": 1, "Morning": 1}, got)
}

func TestDrugStopsByYear(t *testing.T) {
	drug := func(date string) models.StopRecord {
		return stop(func(r *models.StopRecord) {
			r.StopDate = testutil.Date(date)
			r.DrugsRelatedStop = testutil.Bool(true)
		})
	}
	gw := testutil.NewStore(t, drug("2020-03-01"), drug("2021-01-01"), drug("2020-12-31"), testutil.Stop())

	rs := run(t, gw, DrugStopsByYear)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, int64(2020), rs.Rows[0]["year"])
	assert.Equal(t, int64(2), rs.Rows[0]["drugs_related_count"])
	assert.Equal(t, int64(2021), rs.Rows[1]["year"])
}

func TestArrestRateByGender(t *testing.T) {
	person := func(gender string, arrested bool) models.StopRecord {
		return stop(func(r *models.StopRecord) {
			r.DriverGender = testutil.Str(gender)
			r.IsArrested = testutil.Bool(arrested)
		})
	}
	gw := testutil.NewStore(t,
		person("male", true), person("male", false), person("male", false), person("male", false),
		person("female", false),
	)

	rs := run(t, gw, ArrestRateByGender)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "male", rs.Rows[0]["driver_gender"])
	assert.Equal(t, int64(1), rs.Rows[0]["arrests_count"])
	assert.Equal(t, int64(4), rs.Rows[0]["total_stops"])
	assert.Equal(t, 25.0, rs.Rows[0]["arrest_rate_percentage"])
	assert.Equal(t, 0.0, rs.Rows[1]["arrest_rate_percentage"])
}

func TestAgeBuckets(t *testing.T) {
	aged := func(age *int) models.StopRecord {
		return stop(func(r *models.StopRecord) { r.DriverAge = age })
	}
	gw := testutil.NewStore(t,
		aged(testutil.Int(25)),
		aged(testutil.Int(26)),
		aged(testutil.Int(50)),
		aged(testutil.Int(51)),
		aged(testutil.Int(15)),
		aged(nil),
	)

	rs := run(t, gw, AgeRaceViolationTrends)
	buckets := map[string]int64{}
	var total int64
	for _, row := range rs.Rows {
		n := row["total_violations"].(int64)
		buckets[row["age_group"].(string)] += n
		total += n
	}
	assert.Equal(t, map[string]int64{"16-25": 1, "26-35": 1, "36-50": 1, "51+": 1, "Unknown": 1}, buckets)
	assert.Equal(t, int64(5), total, "null age must be excluded entirely")
}

func TestAgeRaceOrdering(t *testing.T) {
	gw := testutil.NewStore(t,
		stop(func(r *models.StopRecord) { r.Violation = testutil.Str("Seatbelt") }),
		stop(func(r *models.StopRecord) { r.Violation = testutil.Str("Speeding") }),
		stop(func(r *models.StopRecord) { r.Violation = testutil.Str("Speeding") }),
	)
	rs := run(t, gw, AgeRaceViolationTrends)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "Speeding", rs.Rows[0]["violation"])
	assert.Equal(t, "Seatbelt", rs.Rows[1]["violation"])
}

func TestTimePeriods(t *testing.T) {
	at := func(clock string) models.StopRecord {
		return stop(func(r *models.StopRecord) { r.StopTime = testutil.Str(clock) })
	}
	gw := testutil.NewStore(t,
		at("05:00"), at("11:59"), at("12:00"), at("16:30"), at("17:00"), at("20:59"),
		at("21:00"), at("23:30"), at("00:10"), at("04:59"),
	)

	rs := run(t, gw, TimePeriodStops)
	got := map[string]int64{}
	for _, row := range rs.Rows {
		assert.Equal(t, "2020-01-15", gateway.Display(row["stop_day"]))
		got[row["time_period"].(string)] = row["total_stops"].(int64)
	}
	assert.Equal(t, map[string]int64{
		"Morning": 2, "Afternoon": 2, "Evening": 2, "Night": 2, "Late Night": 2,
	}, got)
}

func TestViolationRatesAndRanks(t *testing.T) {
	rec := func(violation string, searched, arrested bool) models.StopRecord {
		return stop(func(r *models.StopRecord) {
			r.Violation = testutil.Str(violation)
			r.SearchConducted = testutil.Bool(searched)
			r.IsArrested = testutil.Bool(arrested)
		})
	}
	gw := testutil.NewStore(t,
		rec("Speeding", true, false), rec("Speeding", false, false),
		rec("DUI", true, true), rec("DUI", true, false),
		rec("Seatbelt", true, true), rec("Seatbelt", false, true),
	)

	rs := run(t, gw, ViolationSearchArrestRates)
	require.Equal(t, 3, rs.Len())

	byViolation := map[string]map[string]any{}
	for _, row := range rs.Rows {
		byViolation[row["violation"].(string)] = row
	}

	assert.Equal(t, 100.0, byViolation["DUI"]["search_rate_percent"])
	assert.Equal(t, 50.0, byViolation["DUI"]["arrest_rate_percent"])
	assert.Equal(t, int64(1), byViolation["DUI"]["search_rank"])
	// Speeding and Seatbelt both search at 50%: they share rank 2.
	assert.Equal(t, int64(2), byViolation["Speeding"]["search_rank"])
	assert.Equal(t, int64(2), byViolation["Seatbelt"]["search_rank"])

	assert.Equal(t, int64(1), byViolation["Seatbelt"]["arrest_rank"])
	assert.Equal(t, int64(2), byViolation["DUI"]["arrest_rank"])
	assert.Equal(t, int64(3), byViolation["Speeding"]["arrest_rank"])

	assert.Equal(t, "DUI", rs.Rows[0]["violation"])
}

func TestCountryDemographics(t *testing.T) {
	gw := testutil.NewStore(t,
		stop(func(r *models.StopRecord) { r.DriverAge = testutil.Int(20) }),
		stop(func(r *models.StopRecord) { r.DriverAge = testutil.Int(25) }),
		stop(func(r *models.StopRecord) {
			r.CountryName = testutil.Str("India")
			r.DriverAge = testutil.Int(40)
		}),
		stop(func(r *models.StopRecord) { r.DriverRace = nil }),
	)

	rs := run(t, gw, CountryDemographics)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "Canada", rs.Rows[0]["country_name"])
	assert.Equal(t, 22.5, rs.Rows[0]["average_age"])
	assert.Equal(t, int64(2), rs.Rows[0]["total_drivers"])
	assert.Equal(t, "India", rs.Rows[1]["country_name"])
}

func TestTopArrestRateViolations(t *testing.T) {
	var records []models.StopRecord
	for i, v := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		v := v
		arrestedEvery := i%3 == 0
		records = append(records,
			stop(func(r *models.StopRecord) {
				r.Violation = testutil.Str(v)
				r.IsArrested = testutil.Bool(arrestedEvery)
			}),
			stop(func(r *models.StopRecord) { r.Violation = testutil.Str(v) }),
		)
	}
	gw := testutil.NewStore(t, records...)

	rs := run(t, gw, TopArrestRateViolations)
	require.Equal(t, 5, rs.Len())

	var got []string
	for _, row := range rs.Rows {
		got = append(got, row["violation"].(string))
	}
	// A, D, G arrest half their stops; the remaining slots go to the
	// zero-rate violations in first-seen order.
	assert.Equal(t, []string{"A", "D", "G", "B", "C"}, got)
	assert.Equal(t, 50.0, rs.Rows[0]["arrest_rate_percent"])
}

func TestCountryYearlyBreakdown(t *testing.T) {
	gw := testutil.NewStore(t,
		testutil.Stop(),
		stop(func(r *models.StopRecord) { r.IsArrested = testutil.Bool(true) }),
		stop(func(r *models.StopRecord) { r.StopDate = testutil.Date("2021-02-02") }),
	)
	rs := run(t, gw, CountryYearlyBreakdown)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, int64(2020), rs.Rows[0]["stop_year"])
	assert.Equal(t, int64(2), rs.Rows[0]["total_stops"])
	assert.Equal(t, int64(1), rs.Rows[0]["total_arrests"])
}

func TestLabelsAreReadable(t *testing.T) {
	for _, q := range All() {
		assert.False(t, strings.TrimSpace(q.String()) == "", "query %d", int(q))
	}
}
