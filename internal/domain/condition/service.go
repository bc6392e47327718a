package condition

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

var validSeverities = map[string]bool{
	SeverityMild:     true,
	SeverityModerate: true,
	SeveritySevere:   true,
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("component", "condition").Logger()}
}

func (s *Service) CreateAssessment(ctx context.Context, a *Assessment) error {
	if a.PatientID == 0 {
		return fmt.Errorf("patientId is required")
	}
	if a.AssessedBy == "" || a.Condition == "" {
		return fmt.Errorf("assessedBy and condition are required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if a.Severity != nil && !validSeverities[*a.Severity] {
		return fmt.Errorf("invalid severity %q", *a.Severity)
	}
	if a.DischargeRecommendation == "" {
		a.DischargeRecommendation = RecommendContinue
	}
	if a.DischargeRecommendation != RecommendContinue && a.DischargeRecommendation != RecommendDischarge {
		return fmt.Errorf("invalid dischargeRecommendation %q", a.DischargeRecommendation)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}
	if a.DischargeRecommendation == RecommendDischarge {
		s.logger.Info().
			Int64("patient_id", a.PatientID).
			Int64("assessment_id", a.ID).
			Msg("discharge recommended")
	}
	return nil
}

func (s *Service) GetAssessment(ctx context.Context, id int64) (*Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

// LatestForPatient returns the patient's most recent assessment, the one the
// discharge workflow acts on.
func (s *Service) LatestForPatient(ctx context.Context, patientID int64) (*Assessment, error) {
	return s.repo.GetLatestForPatient(ctx, patientID)
}

func (s *Service) ListAssessments(ctx context.Context, patientID int64, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.List(ctx, patientID, limit, offset)
}

func (s *Service) UpdateAssessment(ctx context.Context, a *Assessment) error {
	if a.Severity != nil && !validSeverities[*a.Severity] {
		return fmt.Errorf("invalid severity %q", *a.Severity)
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) DeleteAssessment(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
