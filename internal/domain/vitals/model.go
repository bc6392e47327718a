package vitals

import "time"

// Reading maps to the vital_signs table. Measurements are stored as entered
// (free-form strings like "120/80" or "36.8") rather than parsed numerics,
// matching how clinical staff record them.
type Reading struct {
	ID               int64     `db:"id" json:"id"`
	PatientID        int64     `db:"patient_id" json:"patientId"`
	RecordedBy       string    `db:"recorded_by" json:"recordedBy"`
	RecordedAt       time.Time `db:"recorded_at" json:"recordedAt"`
	BloodPressure    string    `db:"blood_pressure" json:"bloodPressure"`
	HeartRate        string    `db:"heart_rate" json:"heartRate"`
	Temperature      string    `db:"temperature" json:"temperature"`
	OxygenSaturation *string   `db:"oxygen_saturation" json:"oxygenSaturation,omitempty"`
	RespiratoryRate  *string   `db:"respiratory_rate" json:"respiratoryRate,omitempty"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}
