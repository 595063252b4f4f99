package models

// PredictionRequest carries the attributes of a new stop. The first five
// fields are matched exactly against history; the rest only feed the
// narrative.
type PredictionRequest struct {
	DriverGender     string `json:"driver_gender"`
	DriverAge        int    `json:"driver_age"`
	SearchConducted  bool   `json:"search_conducted"`
	StopDuration     string `json:"stop_duration"`
	DrugsRelatedStop bool   `json:"drugs_related_stop"`

	StopDate      string `json:"stop_date,omitempty"`
	StopTime      string `json:"stop_time,omitempty"`
	CountyName    string `json:"county_name,omitempty"`
	DriverRace    string `json:"driver_race,omitempty"`
	SearchType    string `json:"search_type,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

// PredictionResult is computed per request and never stored. Fallback is set,
// and MatchedCount is zero, exactly when no history matched and the default
// pair was returned.
type PredictionResult struct {
	PredictedViolation string `json:"predicted_violation"`
	PredictedOutcome   string `json:"predicted_outcome"`
	MatchedCount       int    `json:"matched_count"`
	Fallback           bool   `json:"fallback"`
	Narrative          string `json:"narrative,omitempty"`
}
