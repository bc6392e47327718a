package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error)
	// ListActiveIDs returns ids of active patients ordered ascending; the
	// stable order is what makes the daily rotation deterministic.
	ListActiveIDs(ctx context.Context) ([]int64, error)
}
