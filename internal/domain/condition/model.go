package condition

import "time"

// Discharge recommendations an assessor can attach. The latest assessment's
// recommendation drives the discharge workflow.
const (
	RecommendContinue  = "continue"
	RecommendDischarge = "discharge"
)

// Severity grades for an assessment.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Assessment maps to the patient_conditions table: a point-in-time clinical
// assessment of one patient.
type Assessment struct {
	ID                      int64     `db:"id" json:"id"`
	PatientID               int64     `db:"patient_id" json:"patientId"`
	AssessedBy              string    `db:"assessed_by" json:"assessedBy"`
	Date                    time.Time `db:"date" json:"date"`
	Condition               string    `db:"condition" json:"condition"`
	Severity                *string   `db:"severity" json:"severity,omitempty"`
	Notes                   *string   `db:"notes" json:"notes,omitempty"`
	DischargeRecommendation string    `db:"discharge_recommendation" json:"dischargeRecommendation"`
	DischargeNotes          *string   `db:"discharge_notes" json:"dischargeNotes,omitempty"`
	CreatedAt               time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt               time.Time `db:"updated_at" json:"updatedAt"`
}
