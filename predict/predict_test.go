package predict

import (
	"testing"

	"securecheck-api/gateway"
	"securecheck-api/models"
	"securecheck-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request() models.PredictionRequest {
	return models.PredictionRequest{
		DriverGender:     "male",
		DriverAge:        30,
		SearchConducted:  false,
		StopDuration:     "0-15 Min",
		DrugsRelatedStop: false,
	}
}

func stopWith(outcome, violation *string) models.StopRecord {
	r := testutil.Stop()
	r.StopOutcome = outcome
	r.Violation = violation
	return r
}

func TestMajorityVote(t *testing.T) {
	p := New(SnapshotOf(
		stopWith(testutil.Str("warning"), testutil.Str("DUI")),
		stopWith(testutil.Str("warning"), testutil.Str("Speeding")),
		stopWith(testutil.Str("arrest"), testutil.Str("Speeding")),
	))

	got := p.Predict(request())
	assert.Equal(t, "warning", got.PredictedOutcome)
	assert.Equal(t, "Speeding", got.PredictedViolation)
	assert.Equal(t, 3, got.MatchedCount)
	assert.False(t, got.Fallback)
}

func TestTiesGoToFirstEncountered(t *testing.T) {
	p := New(SnapshotOf(
		stopWith(testutil.Str("Citation"), testutil.Str("Seatbelt")),
		stopWith(testutil.Str("Arrest"), testutil.Str("DUI")),
		stopWith(testutil.Str("Arrest"), testutil.Str("DUI")),
		stopWith(testutil.Str("Citation"), testutil.Str("Seatbelt")),
	))

	got := p.Predict(request())
	assert.Equal(t, "Citation", got.PredictedOutcome)
	assert.Equal(t, "Seatbelt", got.PredictedViolation)
}

func TestFallback(t *testing.T) {
	p := New(SnapshotOf(testutil.Stop()))

	req := request()
	req.DriverAge = 31

	got := p.Predict(req)
	assert.Equal(t, models.PredictionResult{
		PredictedViolation: DefaultViolation,
		PredictedOutcome:   DefaultOutcome,
		MatchedCount:       0,
		Fallback:           true,
	}, got)
}

func TestFallbackOnEmptySnapshot(t *testing.T) {
	got := New(Snapshot{}).Predict(request())
	assert.True(t, got.Fallback)
	assert.Equal(t, "warning", got.PredictedOutcome)
	assert.Equal(t, "speeding", got.PredictedViolation)
}

func TestEveryAttributeMustMatch(t *testing.T) {
	base := testutil.Stop()
	p := New(SnapshotOf(base))

	mutations := map[string]func(*models.PredictionRequest){
		"gender":   func(r *models.PredictionRequest) { r.DriverGender = "female" },
		"age":      func(r *models.PredictionRequest) { r.DriverAge = 29 },
		"search":   func(r *models.PredictionRequest) { r.SearchConducted = true },
		"duration": func(r *models.PredictionRequest) { r.StopDuration = "16-30 Min" },
		"drugs":    func(r *models.PredictionRequest) { r.DrugsRelatedStop = true },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := request()
			mutate(&req)
			assert.True(t, p.Predict(req).Fallback)
		})
	}

	assert.False(t, p.Predict(request()).Fallback)
}

func TestNullAttributesNeverMatch(t *testing.T) {
	noAge := testutil.Stop()
	noAge.DriverAge = nil
	noSearch := testutil.Stop()
	noSearch.SearchConducted = nil
	noDrugs := testutil.Stop()
	noDrugs.DrugsRelatedStop = nil

	p := New(SnapshotOf(noAge, noSearch, noDrugs))

	req := request()
	req.DriverAge = 0
	assert.True(t, p.Predict(req).Fallback)
	assert.True(t, p.Predict(request()).Fallback)
}

func TestNullTargetsDoNotVote(t *testing.T) {
	p := New(SnapshotOf(
		stopWith(nil, nil),
		stopWith(nil, nil),
		stopWith(testutil.Str("Arrest"), nil),
	))

	got := p.Predict(request())
	assert.Equal(t, "Arrest", got.PredictedOutcome)
	assert.Equal(t, DefaultViolation, got.PredictedViolation)
	assert.Equal(t, 3, got.MatchedCount)
	assert.False(t, got.Fallback)
}

func TestDeterministic(t *testing.T) {
	p := New(SnapshotOf(
		stopWith(testutil.Str("Arrest"), testutil.Str("DUI")),
		stopWith(testutil.Str("Warning"), testutil.Str("Speeding")),
		stopWith(testutil.Str("Citation"), testutil.Str("Seatbelt")),
	))

	first := p.Predict(request())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, p.Predict(request()))
	}
	assert.Equal(t, first, New(SnapshotOf(
		stopWith(testutil.Str("Arrest"), testutil.Str("DUI")),
		stopWith(testutil.Str("Warning"), testutil.Str("Speeding")),
		stopWith(testutil.Str("Citation"), testutil.Str("Seatbelt")),
	)).Predict(request()))
}

func TestNewSnapshotFromResultSet(t *testing.T) {
	rs := gateway.NewResultSet([]string{
		"id", "driver_gender", "driver_age", "search_conducted", "stop_duration",
		"drugs_related_stop", "stop_outcome", "violation",
	})
	rs.Append(int64(1), "male", int64(30), int64(0), "0-15 Min", int64(0), "Warning", "Speeding")
	rs.Append(int64(2), "male", int64(30), false, "0-15 Min", false, "Warning", "DUI")
	rs.Append(int64(3), "male", int64(30), true, "0-15 Min", false, "Arrest", "DUI")

	s := NewSnapshot(rs)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, uint(2), s.At(1).ID)

	got := New(s).Predict(request())
	assert.Equal(t, "Warning", got.PredictedOutcome)
	assert.Equal(t, "Speeding", got.PredictedViolation)
	assert.Equal(t, 2, got.MatchedCount)

	assert.Equal(t, 0, NewSnapshot(nil).Len())
}

func TestMode(t *testing.T) {
	_, ok := mode([]string(nil))
	assert.False(t, ok)

	got, ok := mode([]int{3, 1, 1, 3, 2})
	require.True(t, ok)
	assert.Equal(t, 3, got)

	got, ok = mode([]int{2, 1, 1})
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestNarrative(t *testing.T) {
	tests := []struct {
		name string
		edit func(r *models.PredictionRequest)
		want string
	}{
		{
			name: "full form",
			edit: func(r *models.PredictionRequest) {
				r.DriverAge = 27
				r.CountyName = "Wake"
				r.StopTime = "22:15"
				r.StopDate = "2024-03-09"
				r.VehicleNumber = "NC4812"
			},
			want: "A 27-year-old male driver in Wake was stopped at 10:15 PM on 2024-03-09. " +
				"No search was conducted, and the stop was not drug-related. " +
				"The stop lasted 0-15 Min. Vehicle number: NC4812.",
		},
		{
			name: "optional fields empty",
			edit: func(r *models.PredictionRequest) {
				r.SearchConducted = true
				r.DrugsRelatedStop = true
				r.StopTime = "not a time"
				r.StopDuration = ""
			},
			want: "A 30-year-old male driver was stopped. A search was conducted, and the stop was drug-related.",
		},
		{
			name: "duration without vehicle",
			edit: func(r *models.PredictionRequest) {
				r.StopDuration = "30+ Min"
				r.VehicleNumber = "  "
			},
			want: "A 30-year-old male driver was stopped. " +
				"No search was conducted, and the stop was not drug-related. The stop lasted 30+ Min.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request()
			tt.edit(&req)
			assert.Equal(t, tt.want, Narrative(req))
		})
	}
}
