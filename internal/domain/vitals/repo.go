package vitals

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v *Reading) error
	GetByID(ctx context.Context, id int64) (*Reading, error)
	// List returns readings newest first, optionally scoped to a patient
	// (patientID == 0 means all) and a calendar date.
	List(ctx context.Context, patientID int64, date *time.Time, limit, offset int) ([]*Reading, int, error)
	Update(ctx context.Context, v *Reading) error
	Delete(ctx context.Context, id int64) error
}
