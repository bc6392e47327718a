package staff

import "context"

// ListFilter narrows staff listings. Zero values mean "no filter".
type ListFilter struct {
	OnDutyOnly  bool
	Role        string // exact role match
	ExcludeRole string // e.g. exclude doctors for rotation candidates
}

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error)
	// ListForRotation returns on-duty staff ordered doctors-first, then by id.
	ListForRotation(ctx context.Context) ([]*Member, error)
}
