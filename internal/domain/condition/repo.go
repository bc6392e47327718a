package condition

import "context"

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id int64) (*Assessment, error)
	// GetLatestForPatient returns the most recent assessment for a patient.
	GetLatestForPatient(ctx context.Context, patientID int64) (*Assessment, error)
	// List returns assessments newest first, optionally scoped to a patient
	// (patientID == 0 means all).
	List(ctx context.Context, patientID int64, limit, offset int) ([]*Assessment, int, error)
	Update(ctx context.Context, a *Assessment) error
	Delete(ctx context.Context, id int64) error
}
