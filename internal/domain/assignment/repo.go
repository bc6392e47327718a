package assignment

import (
	"context"
	"time"
)

type Repository interface {
	// Insert creates a daily assignment row, returning ErrDuplicateAssignment
	// if the (staff, patient, date) triple already exists.
	Insert(ctx context.Context, a *StaffAssignment) error
	Get(ctx context.Context, staffID, patientID int64, date time.Time) (*StaffAssignment, error)
	ListByDate(ctx context.Context, date time.Time) ([]*StaffAssignment, error)
	ListByStaff(ctx context.Context, staffID int64, date *time.Time) ([]*StaffAssignment, error)
	ListByPatient(ctx context.Context, patientID int64, date *time.Time) ([]*StaffAssignment, error)
	// DeleteNonDoctorForDate clears the rotating portion of a date so it can
	// be regenerated, leaving doctor rows untouched.
	DeleteNonDoctorForDate(ctx context.Context, date time.Time) error
	CountForStaffOnDate(ctx context.Context, staffID int64, date time.Time) (int, error)

	// UpsertDoctor creates or replaces the permanent doctor binding for
	// d.PatientID.
	UpsertDoctor(ctx context.Context, d *DoctorAssignment) error
	// ListDoctors returns all permanent bindings ordered by patient id.
	ListDoctors(ctx context.Context) ([]*DoctorAssignment, error)

	// InTx runs fn atomically; repository calls made with the context passed
	// to fn join the same transaction.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
