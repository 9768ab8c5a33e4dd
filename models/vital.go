package models

import "time"

// Vital is a single manually logged set of vital-sign measurements.
// Every measurement is optional but at least one must be present.
type Vital struct {
	VitalID          int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	Systolic         *int       `json:"systolic,omitempty"`
	Diastolic        *int       `json:"diastolic,omitempty"`
	HeartRate        *int       `json:"heart_rate,omitempty"`
	BloodSugar       *float64   `json:"blood_sugar,omitempty"`
	Temperature      *float64   `json:"temperature,omitempty"`
	Weight           *float64   `json:"weight,omitempty"`
	OxygenSaturation *float64   `json:"oxygen_saturation,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	RecordedAt       *time.Time `json:"recorded_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// HasMeasurement reports whether at least one measurement is set.
func (v Vital) HasMeasurement() bool {
	return v.Systolic != nil || v.Diastolic != nil || v.HeartRate != nil ||
		v.BloodSugar != nil || v.Temperature != nil || v.Weight != nil ||
		v.OxygenSaturation != nil
}

// TableName returns the name of the database table
// associated with the Vital model.
func (v Vital) TableName() string {
	return "vitals"
}
