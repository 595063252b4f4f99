// Package summary derives headline figures and chart series from a snapshot
// of the stop log. Every function accepts a nil, empty or column-less result
// and reports zeros rather than failing.
package summary

import (
	"sort"
	"strings"

	"securecheck-api/gateway"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics are the four dashboard counters.
//
// Arrests and Warnings use case-insensitive substring matching on
// stop_outcome, so an outcome naming both words counts in both. That overlap
// is kept on purpose.
type Metrics struct {
	Total       int `json:"total"`
	Arrests     int `json:"arrests"`
	Warnings    int `json:"warnings"`
	DrugRelated int `json:"drug_related"`
}

func Summarize(rs *gateway.ResultSet) Metrics {
	m := Metrics{Total: rs.Len()}
	if m.Total == 0 {
		return m
	}

	for _, v := range rs.Values("stop_outcome") {
		outcome, ok := gateway.AsString(v)
		if !ok {
			continue
		}
		outcome = strings.ToLower(outcome)
		if strings.Contains(outcome, "arrest") {
			m.Arrests++
		}
		if strings.Contains(outcome, "warning") {
			m.Warnings++
		}
	}

	for _, v := range rs.Values("drugs_related_stop") {
		if drug, ok := gateway.AsBool(v); ok && drug {
			m.DrugRelated++
		}
	}
	return m
}

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts tallies the non-null values of column, most frequent first.
// Equal counts keep the order in which values first appear. A missing column
// yields nil.
func ValueCounts(rs *gateway.ResultSet, column string) []ValueCount {
	values := rs.Values(column)
	if values == nil {
		return nil
	}

	index := make(map[string]int)
	counts := []ValueCount{}
	for _, v := range values {
		s, ok := gateway.AsString(v)
		if !ok {
			continue
		}
		i, seen := index[s]
		if !seen {
			i = len(counts)
			index[s] = i
			counts = append(counts, ValueCount{Value: s})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// Distinct lists the non-null values of column in first-appearance order.
func Distinct(rs *gateway.ResultSet, column string) []string {
	values := rs.Values(column)
	if values == nil {
		return nil
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range values {
		s, ok := gateway.AsString(v)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// AgeProfile describes the non-null driver ages. All fields are zero when
// Count is zero.
type AgeProfile struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

func Ages(rs *gateway.ResultSet) AgeProfile {
	var ages []float64
	for _, v := range rs.Values("driver_age") {
		if age, ok := gateway.AsInt(v); ok {
			ages = append(ages, float64(age))
		}
	}
	if len(ages) == 0 {
		return AgeProfile{}
	}

	sort.Float64s(ages)
	n := len(ages)
	median := ages[n/2]
	if n%2 == 0 {
		median = stat.Mean(ages[n/2-1:n/2+1], nil)
	}

	return AgeProfile{
		Count:  n,
		Min:    floats.Min(ages),
		Max:    floats.Max(ages),
		Mean:   stat.Mean(ages, nil),
		Median: median,
	}
}
