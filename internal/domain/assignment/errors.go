package assignment

import "errors"

var (
	// ErrNoStaffAvailable means generation was attempted with zero on-duty
	// staff. Fatal for that call; never retried automatically.
	ErrNoStaffAvailable = errors.New("no active staff members available for assignment")

	// ErrDuplicateAssignment is the repository's translation of a
	// unique-constraint violation on (staff_id, patient_id, date).
	// Callers recover locally: skip, fetch the existing row, or return nil.
	ErrDuplicateAssignment = errors.New("assignment already exists")
)
