package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"securecheck-api/catalog"
	"securecheck-api/gateway"
	"securecheck-api/services"

	"github.com/gin-gonic/gin"
)

type QueryHandler struct {
	svc *services.ReportService
}

func NewQueryHandler(svc *services.ReportService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type QueryInfo struct {
	Label   string   `json:"label"`
	Tier    string   `json:"tier"`
	Columns []string `json:"columns"`
}

// ListQueries returns the catalog, optionally restricted to one tier.
func (h *QueryHandler) ListQueries(c *gin.Context) {
	queries := catalog.All()
	if tierStr := c.Query("tier"); tierStr != "" {
		tier, ok := catalog.ParseTier(tierStr)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tier parameter, must be basic or advanced"})
			return
		}
		queries = catalog.ByTier(tier)
	}

	out := make([]QueryInfo, 0, len(queries))
	for _, q := range queries {
		def := q.Definition()
		out = append(out, QueryInfo{Label: def.Label, Tier: def.Tier.String(), Columns: def.Columns})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// RunQuery executes the catalog entry named by label. format=csv streams the
// result as CSV with missing values rendered as "no data"; refresh=1 bypasses
// the cached result.
func (h *QueryHandler) RunQuery(c *gin.Context) {
	label := c.Query("label")
	q, ok := catalog.Parse(label)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown query %q", label)})
		return
	}

	if c.Query("refresh") == "1" {
		if err := h.svc.InvalidateCatalogQuery(c.Request.Context(), q); err != nil {
			c.Error(err)
		}
	}

	rs, err := h.svc.RunCatalogQuery(c.Request.Context(), q)
	if err != nil || c.Query("format") != "csv" {
		respondResult(c, rs, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="query.csv"`)
	c.Status(http.StatusOK)
	if err := writeCSV(c.Writer, rs); err != nil {
		c.Error(err)
	}
}

func writeCSV(w http.ResponseWriter, rs *gateway.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return err
	}
	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i, col := range rs.Columns {
			record[i] = gateway.Display(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
