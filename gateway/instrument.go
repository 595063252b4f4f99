package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecheck_gateway_queries_total",
		Help: "Statements executed against the log store, by driver and status (ok, empty, connect_error, query_error).",
	}, []string{"driver", "status"})
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "securecheck_gateway_query_duration_seconds",
		Help:    "Time from connection acquisition to release for one statement.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0},
	}, []string{"driver"})
)

func observe(driver, status string, seconds float64) {
	queriesTotal.WithLabelValues(driver, status).Inc()
	queryDuration.WithLabelValues(driver).Observe(seconds)
}

func statusOf(rs *ResultSet, err error) string {
	switch err.(type) {
	case nil:
		if rs.Empty() {
			return "empty"
		}
		return "ok"
	case *ConnectivityError:
		return "connect_error"
	default:
		return "query_error"
	}
}
