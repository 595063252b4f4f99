package models

import (
	"time"

	"securecheck-api/gateway"
)

// StopRecord is one row of police_log. Every attribute is nullable in the
// store; a nil field means the value was not recorded.
type StopRecord struct {
	ID               uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StopDate         *time.Time `gorm:"column:stop_date;type:date" json:"stop_date"`
	StopTime         *string    `gorm:"column:stop_time;type:time" json:"stop_time"`
	CountryName      *string    `gorm:"column:country_name" json:"country_name"`
	DriverGender     *string    `gorm:"column:driver_gender" json:"driver_gender"`
	DriverAge        *int       `gorm:"column:driver_age" json:"driver_age"`
	DriverRace       *string    `gorm:"column:driver_race" json:"driver_race"`
	Violation        *string    `gorm:"column:violation" json:"violation"`
	SearchConducted  *bool      `gorm:"column:search_conducted" json:"search_conducted"`
	SearchType       *string    `gorm:"column:search_type" json:"search_type"`
	StopOutcome      *string    `gorm:"column:stop_outcome" json:"stop_outcome"`
	IsArrested       *bool      `gorm:"column:is_arrested" json:"is_arrested"`
	StopDuration     *string    `gorm:"column:stop_duration" json:"stop_duration"`
	DrugsRelatedStop *bool      `gorm:"column:drugs_related_stop" json:"drugs_related_stop"`
	VehicleNumber    *string    `gorm:"column:vehicle_number" json:"vehicle_number"`
}

func (StopRecord) TableName() string { return gateway.Table }

// StopRecordFromRow decodes a police_log row. Columns that are absent or
// cannot be interpreted stay nil.
func StopRecordFromRow(row gateway.Row) StopRecord {
	var r StopRecord
	if id, ok := gateway.AsInt(row["id"]); ok && id > 0 {
		r.ID = uint(id)
	}
	if t, ok := gateway.AsTime(row["stop_date"]); ok {
		r.StopDate = &t
	}
	r.StopTime = stringField(row, "stop_time")
	r.CountryName = stringField(row, "country_name")
	r.DriverGender = stringField(row, "driver_gender")
	if age, ok := gateway.AsInt(row["driver_age"]); ok {
		r.DriverAge = &age
	}
	r.DriverRace = stringField(row, "driver_race")
	r.Violation = stringField(row, "violation")
	r.SearchConducted = boolField(row, "search_conducted")
	r.SearchType = stringField(row, "search_type")
	r.StopOutcome = stringField(row, "stop_outcome")
	r.IsArrested = boolField(row, "is_arrested")
	r.StopDuration = stringField(row, "stop_duration")
	r.DrugsRelatedStop = boolField(row, "drugs_related_stop")
	r.VehicleNumber = stringField(row, "vehicle_number")
	return r
}

func stringField(row gateway.Row, col string) *string {
	s, ok := gateway.AsString(row[col])
	if !ok {
		return nil
	}
	return &s
}

func boolField(row gateway.Row, col string) *bool {
	b, ok := gateway.AsBool(row[col])
	if !ok {
		return nil
	}
	return &b
}
