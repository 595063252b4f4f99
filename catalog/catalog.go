// Package catalog holds the fixed set of analytic queries over police_log.
//
// Each query is a Query constant; its label, tier, result columns and
// statement live in one table indexed by that constant. Adding a query means
// adding a constant and its entry, and a missing entry fails at init.
package catalog

import (
	"context"
	"fmt"

	"securecheck-api/gateway"
)

type Query int

const (
	TotalStops Query = iota
	StopsByViolation
	ArrestsVsWarnings
	AverageDriverAge
	TopSearchTypes
	StopsByGender
	TopArrestViolation
	StopDurationByViolation
	DrugStopsByYear
	TopVehicles
	NightStops
	SearchesByViolation
	ArrestRateByGender
	ViolationTrends
	DrugStopOutcomes

	CountryYearlyBreakdown
	AgeRaceViolationTrends
	TimePeriodStops
	ViolationSearchArrestRates
	CountryDemographics
	TopArrestRateViolations

	queryCount
)

type Tier int

const (
	Basic Tier = iota
	Advanced
)

func (t Tier) String() string {
	switch t {
	case Basic:
		return "basic"
	case Advanced:
		return "advanced"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier accepts the names String returns.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "basic":
		return Basic, true
	case "advanced":
		return Advanced, true
	}
	return 0, false
}

// Definition describes one catalog entry. Columns is the exact column list
// the statement yields, in order.
type Definition struct {
	Query   Query
	Label   string
	Tier    Tier
	Columns []string

	statement func(d gateway.Dialect) string
}

// Statement renders the entry's SQL for a store dialect.
func (d Definition) Statement(dialect gateway.Dialect) string {
	return d.statement(dialect)
}

var byLabel = make(map[string]Query, queryCount)

func init() {
	for q := Query(0); q < queryCount; q++ {
		def := definitions[q]
		if def.Label == "" || def.statement == nil || len(def.Columns) == 0 {
			panic(fmt.Sprintf("catalog: query %d has no definition", int(q)))
		}
		if def.Query != q {
			panic(fmt.Sprintf("catalog: %q is registered under the wrong constant", def.Label))
		}
		if _, dup := byLabel[def.Label]; dup {
			panic(fmt.Sprintf("catalog: duplicate label %q", def.Label))
		}
		byLabel[def.Label] = q
	}
}

// Definition panics for a value outside the declared constants; such a value
// can only come from a programming error.
func (q Query) Definition() Definition {
	if q < 0 || q >= queryCount {
		panic(fmt.Sprintf("catalog: unknown query %d", int(q)))
	}
	return definitions[q]
}

func (q Query) String() string { return q.Definition().Label }

// Parse maps a label chosen in the presentation layer back to its query.
func Parse(label string) (Query, bool) {
	q, ok := byLabel[label]
	return q, ok
}

// All lists every query in declaration order.
func All() []Query {
	out := make([]Query, 0, queryCount)
	for q := Query(0); q < queryCount; q++ {
		out = append(out, q)
	}
	return out
}

func ByTier(t Tier) []Query {
	var out []Query
	for q := Query(0); q < queryCount; q++ {
		if definitions[q].Tier == t {
			out = append(out, q)
		}
	}
	return out
}

// Run executes q through gw. On failure the result is empty but still
// carries the documented columns, and the gateway error is wrapped.
func Run(ctx context.Context, gw gateway.Gateway, q Query) (*gateway.ResultSet, error) {
	def := q.Definition()
	rs, err := gw.Execute(ctx, def.Statement(gw.Dialect()))
	if err != nil {
		return gateway.NewResultSet(def.Columns), fmt.Errorf("catalog %q: %w", def.Label, err)
	}
	return rs, nil
}
