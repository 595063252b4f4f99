package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"securecheck-api/gateway"
	"securecheck-api/models"
)

var csvDateLayouts = []string{time.DateOnly, "1/2/2006", "01/02/2006", time.RFC3339}

var csvClockLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM", "3:04PM"}

// ReadCSV decodes a police log export. Columns are located by header name,
// so order does not matter and unknown columns are ignored. Empty cells
// become nil fields.
func ReadCSV(r io.Reader) ([]models.StopRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var records []models.StopRecord
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := decodeCSVRecord(index, fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeCSVRecord(index map[string]int, fields []string) (models.StopRecord, error) {
	cell := func(name string) *string {
		i, ok := index[name]
		if !ok || i >= len(fields) {
			return nil
		}
		v := strings.TrimSpace(fields[i])
		if v == "" {
			return nil
		}
		return &v
	}

	var rec models.StopRecord
	if v := cell("stop_date"); v != nil {
		t, err := parseCSVDate(*v)
		if err != nil {
			return rec, err
		}
		rec.StopDate = &t
	}
	if v := cell("stop_time"); v != nil {
		clock, err := parseCSVClock(*v)
		if err != nil {
			return rec, err
		}
		rec.StopTime = &clock
	}
	rec.CountryName = cell("country_name")
	if rec.CountryName == nil {
		rec.CountryName = cell("county_name")
	}
	rec.DriverGender = normalizeGender(cell("driver_gender"))
	if v := cell("driver_age"); v != nil {
		age, err := parseCSVAge(*v)
		if err != nil {
			return rec, err
		}
		rec.DriverAge = &age
	}
	rec.DriverRace = cell("driver_race")
	rec.Violation = cell("violation")
	rec.SearchType = cell("search_type")
	rec.StopOutcome = cell("stop_outcome")
	rec.StopDuration = cell("stop_duration")
	rec.VehicleNumber = cell("vehicle_number")

	for name, dst := range map[string]**bool{
		"search_conducted":   &rec.SearchConducted,
		"is_arrested":        &rec.IsArrested,
		"drugs_related_stop": &rec.DrugsRelatedStop,
	} {
		v := cell(name)
		if v == nil {
			continue
		}
		b, ok := gateway.AsBool(*v)
		if !ok {
			return rec, fmt.Errorf("%s: %q is not a boolean", name, *v)
		}
		*dst = &b
	}
	return rec, nil
}

func parseCSVDate(v string) (time.Time, error) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("stop_date: unrecognised date %q", v)
}

// parseCSVClock returns the time of day as zero-padded HH:MM:SS, the only
// form both stores read back with the same hour.
func parseCSVClock(v string) (string, error) {
	for _, layout := range csvClockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(v)); err == nil {
			return t.Format(time.TimeOnly), nil
		}
	}
	return "", fmt.Errorf("stop_time: unrecognised time %q", v)
}

// parseCSVAge accepts "27" and the "27.0" pandas writes for float columns.
func parseCSVAge(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("driver_age: %q is not a whole number", v)
	}
	return int(f), nil
}

// normalizeGender maps the M/F codes found in raw exports onto male/female.
func normalizeGender(v *string) *string {
	if v == nil {
		return nil
	}
	var g string
	switch strings.ToLower(*v) {
	case "m", "male":
		g = "male"
	case "f", "female":
		g = "female"
	default:
		return v
	}
	return &g
}
