package handlers

import (
	"net/http"

	"securecheck-api/gateway"
	"securecheck-api/services"
	"securecheck-api/summary"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GetLogs pages through the full stop log in id order.
func (h *ReportHandler) GetLogs(c *gin.Context) {
	p := ParsePagination(c)

	rs, err := h.svc.FetchAll(c.Request.Context())
	if err != nil {
		respondResult(c, rs, err)
		return
	}

	start, end := p.window(rs.Len())
	page := gateway.NewResultSet(rs.Columns)
	page.Rows = rs.Rows[start:end]

	resp := PageResponse{
		Data:    page,
		Total:   rs.Len(),
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: end < rs.Len(),
		Empty:   rs.Empty(),
	}
	if resp.Empty {
		resp.Message = noResults
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	m, err := h.svc.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": m})
}

func (h *ReportHandler) GetViolationChart(c *gin.Context) {
	h.valueCounts(c, "violation", "No data available for Violation chart.")
}

func (h *ReportHandler) GetGenderChart(c *gin.Context) {
	h.valueCounts(c, "driver_gender", "No data available for Driver Gender chart.")
}

func (h *ReportHandler) valueCounts(c *gin.Context, column, emptyMessage string) {
	rs, err := h.svc.FetchAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	counts := summary.ValueCounts(rs, column)
	if len(counts) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": []summary.ValueCount{}, "empty": true, "message": emptyMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": counts, "empty": false})
}

func (h *ReportHandler) GetDriverAges(c *gin.Context) {
	rs, err := h.svc.FetchAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	profile := summary.Ages(rs)
	if profile.Count == 0 {
		c.JSON(http.StatusOK, gin.H{"data": profile, "empty": true, "message": noResults})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile, "empty": false})
}

// GetStopDurations lists the recorded stop durations, the only values a
// prediction request can usefully carry.
func (h *ReportHandler) GetStopDurations(c *gin.Context) {
	rs, err := h.svc.FetchAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	durations := summary.Distinct(rs, "stop_duration")
	if durations == nil {
		durations = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": durations, "empty": len(durations) == 0})
}
