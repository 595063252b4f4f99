package handlers

import (
	"errors"
	"net/http"

	"securecheck-api/gateway"

	"github.com/gin-gonic/gin"
)

const noResults = "No results found"

type ResultResponse struct {
	Data    *gateway.ResultSet `json:"data"`
	Empty   bool               `json:"empty"`
	Message string             `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// statusFor maps store failures onto HTTP: an unreachable store is a 503, a
// failing statement a 502.
func statusFor(err error) int {
	var connErr *gateway.ConnectivityError
	var queryErr *gateway.QueryError
	switch {
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &queryErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// notice is the user-facing text for a store failure. Driver detail stays in
// the logs.
func notice(err error) string {
	var connErr *gateway.ConnectivityError
	if errors.As(err, &connErr) {
		return "the stop log is unreachable"
	}
	return "the query could not be executed"
}

// respondResult writes rs, or on failure an empty result with a notice.
// An empty but successful result is a 200.
func respondResult(c *gin.Context, rs *gateway.ResultSet, err error) {
	if err != nil {
		c.Error(err)
		c.JSON(statusFor(err), ResultResponse{Data: emptyLike(rs), Empty: true, Error: notice(err)})
		return
	}
	resp := ResultResponse{Data: rs, Empty: rs.Empty()}
	if resp.Empty {
		resp.Message = noResults
	}
	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": notice(err)})
}

func emptyLike(rs *gateway.ResultSet) *gateway.ResultSet {
	if rs == nil {
		return gateway.NewResultSet(nil)
	}
	return gateway.NewResultSet(rs.Columns)
}
