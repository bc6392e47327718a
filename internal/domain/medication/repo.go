package medication

import "context"

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id int64) (*Medication, error)
	// List returns active medications, optionally scoped to one patient
	// (patientID == 0 means all patients).
	List(ctx context.Context, patientID int64, limit, offset int) ([]*Medication, int, error)
	Update(ctx context.Context, m *Medication) error
	// Deactivate soft-deletes a medication by clearing is_active.
	Deactivate(ctx context.Context, id int64) error
}
