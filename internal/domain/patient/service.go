package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// AdmissionHook is notified after a patient is created. The rotation engine
// registers itself here to give new admissions same-day staff coverage.
type AdmissionHook interface {
	PatientAdmitted(ctx context.Context, patientID int64) error
}

type Service struct {
	patients Repository
	hook     AdmissionHook
	logger   zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{patients: repo, logger: logger}
}

// SetAdmissionHook attaches the post-admission callback. Optional; wired in
// main to avoid a dependency cycle between patient and assignment packages.
func (s *Service) SetAdmissionHook(hook AdmissionHook) {
	s.hook = hook
}

var validStatuses = map[string]bool{
	StatusActive: true, StatusInactive: true, StatusDischarged: true,
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	p.Email = strings.ToLower(p.Email)

	if err := s.patients.Create(ctx, p); err != nil {
		return err
	}

	// Admission hook failures must never fail patient creation; staffing
	// shortages are an operational concern, not a registration error.
	if s.hook != nil {
		if err := s.hook.PatientAdmitted(ctx, p.ID); err != nil {
			s.logger.Warn().Err(err).Int64("patient_id", p.ID).
				Msg("auto-assignment on admission failed")
		}
	}
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.Status != "" && !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	p.Email = strings.ToLower(p.Email)
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.patients.List(ctx, status, limit, offset)
}
