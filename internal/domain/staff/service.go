package staff

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	staff Repository
}

func NewService(repo Repository) *Service {
	return &Service{staff: repo}
}

var validRoles = map[string]bool{
	RoleDoctor: true, RoleNurse: true, RoleCaretaker: true, RoleTherapist: true,
}

func (s *Service) CreateMember(ctx context.Context, m *Member) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !validRoles[m.Role] {
		return fmt.Errorf("invalid role: %s", m.Role)
	}
	m.Email = strings.ToLower(m.Email)
	return s.staff.Create(ctx, m)
}

func (s *Service) GetMember(ctx context.Context, id int64) (*Member, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) GetMemberByEmail(ctx context.Context, email string) (*Member, error) {
	return s.staff.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) UpdateMember(ctx context.Context, m *Member) error {
	if m.Role != "" && !validRoles[m.Role] {
		return fmt.Errorf("invalid role: %s", m.Role)
	}
	m.Email = strings.ToLower(m.Email)
	return s.staff.Update(ctx, m)
}

func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	return s.staff.Delete(ctx, id)
}

func (s *Service) ListMembers(ctx context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error) {
	if filter.Role != "" && !validRoles[filter.Role] {
		return nil, 0, fmt.Errorf("invalid role: %s", filter.Role)
	}
	return s.staff.List(ctx, filter, limit, offset)
}

// SetDuty flips the on-duty flag, controlling rotation eligibility.
func (s *Service) SetDuty(ctx context.Context, id int64, onDuty bool) (*Member, error) {
	m, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.IsOnDuty = onDuty
	if err := s.staff.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
