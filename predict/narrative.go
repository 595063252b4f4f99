package predict

import (
	"fmt"
	"strings"
	"time"

	"securecheck-api/models"
)

var clockLayouts = []string{"15:04", time.TimeOnly, time.Kitchen, "03:04 PM"}

// Narrative describes the stop in plain sentences, in the form the dashboard
// shows next to a prediction. Clauses for empty optional fields are left out.
func Narrative(req models.PredictionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A %d-year-old %s driver", req.DriverAge, req.DriverGender)
	if county := strings.TrimSpace(req.CountyName); county != "" {
		fmt.Fprintf(&b, " in %s", county)
	}
	b.WriteString(" was stopped")
	if clock, ok := formatClock(req.StopTime); ok {
		fmt.Fprintf(&b, " at %s", clock)
	}
	if date := strings.TrimSpace(req.StopDate); date != "" {
		fmt.Fprintf(&b, " on %s", date)
	}
	b.WriteString(". ")

	if req.SearchConducted {
		b.WriteString("A search was conducted")
	} else {
		b.WriteString("No search was conducted")
	}
	if req.DrugsRelatedStop {
		b.WriteString(", and the stop was drug-related.")
	} else {
		b.WriteString(", and the stop was not drug-related.")
	}

	if duration := strings.TrimSpace(req.StopDuration); duration != "" {
		fmt.Fprintf(&b, " The stop lasted %s.", duration)
	}
	if vehicle := strings.TrimSpace(req.VehicleNumber); vehicle != "" {
		fmt.Fprintf(&b, " Vehicle number: %s.", vehicle)
	}
	return b.String()
}

// formatClock renders a time of day as "03:04 PM".
func formatClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("03:04 PM"), true
		}
	}
	return "", false
}
