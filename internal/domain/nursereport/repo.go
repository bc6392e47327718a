package nursereport

import "context"

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id int64) (*Report, error)
	// List returns reports newest first, optionally scoped to a patient
	// (patientID == 0 means all) or narrowed to the unreviewed queue, which
	// sorts by urgency before recency.
	List(ctx context.Context, patientID int64, unreviewedOnly bool, limit, offset int) ([]*Report, int, error)
	Update(ctx context.Context, r *Report) error
	MarkReviewed(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
