package medication

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("component", "medication").Logger()}
}

func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if m.PatientID == 0 {
		return fmt.Errorf("patientId is required")
	}
	if m.MedicationName == "" || m.Dosage == "" || m.Frequency == "" {
		return fmt.Errorf("medicationName, dosage and frequency are required")
	}
	if m.StartDate.IsZero() {
		return fmt.Errorf("startDate is required")
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("endDate must not precede startDate")
	}
	m.IsActive = true
	return s.repo.Create(ctx, m)
}

func (s *Service) GetMedication(ctx context.Context, id int64) (*Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context, patientID int64, limit, offset int) ([]*Medication, int, error) {
	return s.repo.List(ctx, patientID, limit, offset)
}

func (s *Service) UpdateMedication(ctx context.Context, m *Medication) error {
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("endDate must not precede startDate")
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) DiscontinueMedication(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("medication_id", id).Msg("medication discontinued")
	return nil
}
