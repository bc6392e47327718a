package nursereport

import "time"

// Urgency levels a nurse can flag a report with. High urgency reports sort
// first in the unreviewed queue.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Report maps to the nurse_reports table. Symptoms are stored as a JSONB
// array. A report stays in the doctor's queue until reviewed.
type Report struct {
	ID               int64      `db:"id" json:"id"`
	PatientID        int64      `db:"patient_id" json:"patientId"`
	ReportedBy       string     `db:"reported_by" json:"reportedBy"`
	Date             time.Time  `db:"date" json:"date"`
	ConditionUpdate  string     `db:"condition_update" json:"conditionUpdate"`
	Symptoms         []string   `db:"symptoms" json:"symptoms"`
	PainLevel        *int       `db:"pain_level" json:"painLevel,omitempty"`
	Notes            *string    `db:"notes" json:"notes,omitempty"`
	Urgency          string     `db:"urgency" json:"urgency"`
	ReviewedByDoctor bool       `db:"reviewed_by_doctor" json:"reviewedByDoctor"`
	ReviewedAt       *time.Time `db:"reviewed_at" json:"reviewedAt,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}
