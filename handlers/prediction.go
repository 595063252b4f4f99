package handlers

import (
	"net/http"

	"securecheck-api/models"
	"securecheck-api/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	svc *services.ReportService
}

func NewPredictionHandler(svc *services.ReportService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// PredictRequest is the submitted form. The two flags are pointers so that
// an explicit false passes the required check while a missing flag does not.
type PredictRequest struct {
	DriverGender     string `json:"driver_gender" binding:"required,oneof=male female"`
	DriverAge        int    `json:"driver_age" binding:"required,min=16,max=100"`
	SearchConducted  *bool  `json:"search_conducted" binding:"required"`
	StopDuration     string `json:"stop_duration" binding:"required"`
	DrugsRelatedStop *bool  `json:"drugs_related_stop" binding:"required"`

	StopDate      string `json:"stop_date" binding:"omitempty,datetime=2006-01-02"`
	StopTime      string `json:"stop_time"`
	CountyName    string `json:"county_name"`
	DriverRace    string `json:"driver_race"`
	SearchType    string `json:"search_type"`
	VehicleNumber string `json:"vehicle_number"`
}

func (r PredictRequest) toModel() models.PredictionRequest {
	return models.PredictionRequest{
		DriverGender:     r.DriverGender,
		DriverAge:        r.DriverAge,
		SearchConducted:  *r.SearchConducted,
		StopDuration:     r.StopDuration,
		DrugsRelatedStop: *r.DrugsRelatedStop,
		StopDate:         r.StopDate,
		StopTime:         r.StopTime,
		CountyName:       r.CountyName,
		DriverRace:       r.DriverRace,
		SearchType:       r.SearchType,
		VehicleNumber:    r.VehicleNumber,
	}
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Predict(c.Request.Context(), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
