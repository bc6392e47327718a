package nursereport

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

var validUrgencies = map[string]bool{
	UrgencyLow:    true,
	UrgencyMedium: true,
	UrgencyHigh:   true,
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("component", "nursereport").Logger()}
}

func (s *Service) CreateReport(ctx context.Context, r *Report) error {
	if r.PatientID == 0 {
		return fmt.Errorf("patientId is required")
	}
	if r.ReportedBy == "" || r.ConditionUpdate == "" {
		return fmt.Errorf("reportedBy and conditionUpdate are required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if r.Urgency == "" {
		r.Urgency = UrgencyLow
	}
	if !validUrgencies[r.Urgency] {
		return fmt.Errorf("invalid urgency %q", r.Urgency)
	}
	if r.PainLevel != nil && (*r.PainLevel < 0 || *r.PainLevel > 10) {
		return fmt.Errorf("painLevel must be between 0 and 10")
	}
	if r.Symptoms == nil {
		r.Symptoms = []string{}
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return err
	}
	if r.Urgency == UrgencyHigh {
		s.logger.Warn().
			Int64("report_id", r.ID).
			Int64("patient_id", r.PatientID).
			Msg("high urgency nurse report filed")
	}
	return nil
}

func (s *Service) GetReport(ctx context.Context, id int64) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListReports(ctx context.Context, patientID int64, unreviewedOnly bool, limit, offset int) ([]*Report, int, error) {
	return s.repo.List(ctx, patientID, unreviewedOnly, limit, offset)
}

func (s *Service) UpdateReport(ctx context.Context, r *Report) error {
	if r.Urgency != "" && !validUrgencies[r.Urgency] {
		return fmt.Errorf("invalid urgency %q", r.Urgency)
	}
	return s.repo.Update(ctx, r)
}

// ReviewReport marks a report as seen by a doctor, removing it from the
// unreviewed queue.
func (s *Service) ReviewReport(ctx context.Context, id int64) error {
	return s.repo.MarkReviewed(ctx, id)
}

func (s *Service) DeleteReport(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
