package handlers

import (
	"securecheck-api/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the reporting API under r.
func RegisterRoutes(r gin.IRouter, svc *services.ReportService) {
	reports := NewReportHandler(svc)
	queries := NewQueryHandler(svc)
	predictions := NewPredictionHandler(svc)

	r.GET("/logs", reports.GetLogs)
	r.GET("/metrics/summary", reports.GetSummary)
	r.GET("/charts/violations", reports.GetViolationChart)
	r.GET("/charts/genders", reports.GetGenderChart)
	r.GET("/drivers/ages", reports.GetDriverAges)
	r.GET("/stop-durations", reports.GetStopDurations)

	r.GET("/queries", queries.ListQueries)
	r.GET("/queries/run", queries.RunQuery)

	r.POST("/predictions", predictions.Predict)
}
