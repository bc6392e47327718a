package assignment

import "time"

// StaffAssignment maps to the staff_assignments table: one staff member
// covering one patient on one calendar date. Rows are unique per
// (staff_id, patient_id, date). Doctor coverage and rotating coverage are
// complementary layers, so a patient normally has two rows per date.
type StaffAssignment struct {
	ID        int64     `db:"id" json:"id"`
	StaffID   int64     `db:"staff_id" json:"staffId"`
	PatientID int64     `db:"patient_id" json:"patientId"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DoctorAssignment maps to the doctor_patient_assignments table: the
// permanent, date-independent doctor binding for a patient. At most one
// binding exists per patient; reassignment replaces the previous doctor.
type DoctorAssignment struct {
	ID        int64     `db:"id" json:"id"`
	DoctorID  int64     `db:"doctor_id" json:"doctorId"`
	PatientID int64     `db:"patient_id" json:"patientId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Date normalizes t to a calendar date in UTC; the date column carries no
// time-of-day component.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
