package medication

import "time"

// Medication maps to the medications table. Rows are soft-deleted through
// is_active so historic prescriptions stay queryable.
type Medication struct {
	ID             int64      `db:"id" json:"id"`
	PatientID      int64      `db:"patient_id" json:"patientId"`
	PrescribedBy   string     `db:"prescribed_by" json:"prescribedBy"`
	MedicationName string     `db:"medication_name" json:"medicationName"`
	Dosage         string     `db:"dosage" json:"dosage"`
	Frequency      string     `db:"frequency" json:"frequency"`
	Route          *string    `db:"route" json:"route,omitempty"`
	StartDate      time.Time  `db:"start_date" json:"startDate"`
	EndDate        *time.Time `db:"end_date" json:"endDate,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	IsActive       bool       `db:"is_active" json:"isActive"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}
