// Package predict guesses the outcome and violation of a new stop by
// majority vote over past stops with identical attributes.
//
// Matching is exact on gender, age, search flag, stop duration and drug flag.
// There is no smoothing or nearest-neighbour fallback: if nothing matches,
// the fixed default pair is returned and flagged as such.
package predict

import (
	"securecheck-api/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DefaultOutcome   = "warning"
	DefaultViolation = "speeding"
)

var predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "securecheck_predictions_total",
	Help: "Predictions served, by whether history matched (majority) or not (fallback)",
}, []string{"path"})

type key struct {
	gender   string
	age      int
	searched bool
	duration string
	drugs    bool
}

func recordKey(r models.StopRecord) (key, bool) {
	if r.DriverGender == nil || r.DriverAge == nil || r.SearchConducted == nil ||
		r.StopDuration == nil || r.DrugsRelatedStop == nil {
		return key{}, false
	}
	return key{
		gender:   *r.DriverGender,
		age:      *r.DriverAge,
		searched: *r.SearchConducted,
		duration: *r.StopDuration,
		drugs:    *r.DrugsRelatedStop,
	}, true
}

func requestKey(req models.PredictionRequest) key {
	return key{
		gender:   req.DriverGender,
		age:      req.DriverAge,
		searched: req.SearchConducted,
		duration: req.StopDuration,
		drugs:    req.DrugsRelatedStop,
	}
}

// Predictor holds the snapshot grouped by matching key. Records missing any
// key attribute are not indexed, so a null never matches a request value.
// Safe for concurrent use.
type Predictor struct {
	snapshot Snapshot
	groups   map[key][]int
}

func New(s Snapshot) *Predictor {
	groups := make(map[key][]int)
	for i := 0; i < s.Len(); i++ {
		k, ok := recordKey(s.At(i))
		if !ok {
			continue
		}
		groups[k] = append(groups[k], i)
	}
	return &Predictor{snapshot: s, groups: groups}
}

// Predict votes over the matching group. Outcome and violation are decided
// independently, so they need not come from the same record. Null targets do
// not vote; a group whose targets are all null yields that field's default.
func (p *Predictor) Predict(req models.PredictionRequest) models.PredictionResult {
	group := p.groups[requestKey(req)]
	if len(group) == 0 {
		predictionsTotal.WithLabelValues("fallback").Inc()
		return models.PredictionResult{
			PredictedViolation: DefaultViolation,
			PredictedOutcome:   DefaultOutcome,
			Fallback:           true,
		}
	}

	var outcomes, violations []string
	for _, i := range group {
		r := p.snapshot.At(i)
		if r.StopOutcome != nil {
			outcomes = append(outcomes, *r.StopOutcome)
		}
		if r.Violation != nil {
			violations = append(violations, *r.Violation)
		}
	}

	outcome, ok := mode(outcomes)
	if !ok {
		outcome = DefaultOutcome
	}
	violation, ok := mode(violations)
	if !ok {
		violation = DefaultViolation
	}

	predictionsTotal.WithLabelValues("majority").Inc()
	return models.PredictionResult{
		PredictedViolation: violation,
		PredictedOutcome:   outcome,
		MatchedCount:       len(group),
	}
}

// mode returns the most frequent value. A value only takes the lead by
// strictly exceeding the current count, so ties go to whichever value
// appeared first.
func mode[T comparable](values []T) (T, bool) {
	var best T
	if len(values) == 0 {
		return best, false
	}

	counts := make(map[T]int, len(values))
	var order []T
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, true
}
