package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("component", "vitals").Logger()}
}

func (s *Service) RecordReading(ctx context.Context, v *Reading) error {
	if v.PatientID == 0 {
		return fmt.Errorf("patientId is required")
	}
	if v.BloodPressure == "" || v.HeartRate == "" || v.Temperature == "" {
		return fmt.Errorf("bloodPressure, heartRate and temperature are required")
	}
	if v.RecordedBy == "" {
		return fmt.Errorf("recordedBy is required")
	}
	if v.RecordedAt.IsZero() {
		v.RecordedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, v)
}

func (s *Service) GetReading(ctx context.Context, id int64) (*Reading, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListReadings(ctx context.Context, patientID int64, date *time.Time, limit, offset int) ([]*Reading, int, error) {
	return s.repo.List(ctx, patientID, date, limit, offset)
}

func (s *Service) UpdateReading(ctx context.Context, v *Reading) error {
	return s.repo.Update(ctx, v)
}

func (s *Service) DeleteReading(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
