package patient

import "time"

// Patient statuses. Only active patients participate in the daily rotation.
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusDischarged = "discharged"
)

// Patient maps to the patients table.
type Patient struct {
	ID               int64      `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	Phone            string     `db:"phone" json:"phone"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	MedicalCondition string     `db:"medical_condition" json:"medicalCondition"`
	Status           string     `db:"status" json:"status"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	Address          *string    `db:"address" json:"address,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergencyContact,omitempty"`
	RoomType         *string    `db:"room_type" json:"roomType,omitempty"`
	RoomNumber       *int       `db:"room_number" json:"roomNumber,omitempty"`
	AdmissionDate    *time.Time `db:"admission_date" json:"admissionDate,omitempty"`
	DischargeStatus  *string    `db:"discharge_status" json:"dischargeStatus,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}
