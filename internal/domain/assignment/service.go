package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mustafa551/Rehab-care-backend/internal/domain/staff"
	"github.com/Mustafa551/Rehab-care-backend/internal/platform/clock"
)

// StaffDirectory is the slice of the staff repository the rotation engine
// needs: on-duty members, doctors first, then ascending id.
type StaffDirectory interface {
	ListForRotation(ctx context.Context) ([]*staff.Member, error)
}

// PatientRoster yields the ids of active patients in ascending order.
type PatientRoster interface {
	ListActiveIDs(ctx context.Context) ([]int64, error)
}

type Service struct {
	repo     Repository
	staff    StaffDirectory
	patients PatientRoster
	clock    clock.Clock
	logger   zerolog.Logger
}

func NewService(repo Repository, staffDir StaffDirectory, patients PatientRoster, clk clock.Clock, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		staff:    staffDir,
		patients: patients,
		clock:    clk,
		logger:   logger.With().Str("component", "assignment").Logger(),
	}
}

// GenerateForDate builds the full assignment set for one calendar date.
// Non-doctor rows for the date are replaced by a fresh rotation; doctor rows
// come from the permanent bindings and are backfilled idempotently. The whole
// pass runs in a single transaction, so a failure leaves the previous state
// intact.
func (s *Service) GenerateForDate(ctx context.Context, date time.Time) ([]*StaffAssignment, error) {
	date = Date(date)

	members, err := s.staff.ListForRotation(ctx)
	if err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrNoStaffAvailable
	}

	var rotating []*staff.Member
	for _, m := range members {
		if !m.IsDoctor() {
			rotating = append(rotating, m)
		}
	}

	patientIDs, err := s.patients.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	if len(patientIDs) == 0 {
		s.logger.Warn().Time("date", date).Msg("no active patients; nothing to generate")
		return []*StaffAssignment{}, nil
	}

	dayOfYear := date.YearDay()
	var result []*StaffAssignment

	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteNonDoctorForDate(ctx, date); err != nil {
			return fmt.Errorf("reset rotation for %s: %w", date.Format("2006-01-02"), err)
		}

		for i, patientID := range patientIDs {
			if len(rotating) == 0 {
				break
			}
			member := rotating[(i+dayOfYear)%len(rotating)]
			a := &StaffAssignment{StaffID: member.ID, PatientID: patientID, Date: date}
			if err := s.repo.Insert(ctx, a); err != nil {
				if errors.Is(err, ErrDuplicateAssignment) {
					s.logger.Warn().
						Int64("staff_id", member.ID).
						Int64("patient_id", patientID).
						Time("date", date).
						Msg("rotation row already present, skipping")
					continue
				}
				return err
			}
			result = append(result, a)
		}

		// Every permanent binding gets a materialized row, whether or not the
		// patient is on the active roster; doctor coverage outlives roster
		// status.
		bindings, err := s.repo.ListDoctors(ctx)
		if err != nil {
			return fmt.Errorf("load doctor bindings: %w", err)
		}
		for _, b := range bindings {
			a := &StaffAssignment{StaffID: b.DoctorID, PatientID: b.PatientID, Date: date}
			if err := s.repo.Insert(ctx, a); err != nil {
				if errors.Is(err, ErrDuplicateAssignment) {
					existing, err := s.repo.Get(ctx, b.DoctorID, b.PatientID, date)
					if err != nil {
						return err
					}
					result = append(result, existing)
					continue
				}
				return err
			}
			result = append(result, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Time("date", date).
		Int("assignments", len(result)).
		Int("rotating_staff", len(rotating)).
		Int("patients", len(patientIDs)).
		Msg("assignments generated")
	return result, nil
}

// GetByDate returns the stored assignments for a date plus synthesized rows
// for doctor bindings that have no stored row yet. Synthesized rows carry
// ID 0 so clients can tell them from materialized rows.
func (s *Service) GetByDate(ctx context.Context, date time.Time) ([]*StaffAssignment, error) {
	date = Date(date)
	rows, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, rows, date, nil)
}

// GetByStaff returns assignments for one staff member. With a date the view
// is reconciled against doctor bindings; without one only materialized rows
// are returned, since an open-ended date range cannot be synthesized.
func (s *Service) GetByStaff(ctx context.Context, staffID int64, date *time.Time) ([]*StaffAssignment, error) {
	rows, err := s.repo.ListByStaff(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return rows, nil
	}
	return s.reconcile(ctx, rows, Date(*date), func(b *DoctorAssignment) bool {
		return b.DoctorID == staffID
	})
}

// GetByPatient mirrors GetByStaff for the patient axis.
func (s *Service) GetByPatient(ctx context.Context, patientID int64, date *time.Time) ([]*StaffAssignment, error) {
	rows, err := s.repo.ListByPatient(ctx, patientID, date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return rows, nil
	}
	return s.reconcile(ctx, rows, Date(*date), func(b *DoctorAssignment) bool {
		return b.PatientID == patientID
	})
}

// reconcile merges stored rows with doctor bindings: any binding matching the
// filter that has no stored row for the date gets a synthesized row appended.
// match == nil accepts every binding.
func (s *Service) reconcile(ctx context.Context, rows []*StaffAssignment, date time.Time, match func(*DoctorAssignment) bool) ([]*StaffAssignment, error) {
	bindings, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}

	stored := make(map[[2]int64]bool, len(rows))
	for _, r := range rows {
		stored[[2]int64{r.StaffID, r.PatientID}] = true
	}

	for _, b := range bindings {
		if match != nil && !match(b) {
			continue
		}
		if stored[[2]int64{b.DoctorID, b.PatientID}] {
			continue
		}
		rows = append(rows, &StaffAssignment{
			ID:        0,
			StaffID:   b.DoctorID,
			PatientID: b.PatientID,
			Date:      date,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		})
	}
	return rows, nil
}

// AssignDoctor creates or replaces the permanent doctor binding for a
// patient. A patient has at most one doctor; reassigning overwrites the old
// binding in place.
func (s *Service) AssignDoctor(ctx context.Context, doctorID, patientID int64) (*DoctorAssignment, error) {
	if doctorID <= 0 || patientID <= 0 {
		return nil, fmt.Errorf("doctorId and patientId are required")
	}
	d := &DoctorAssignment{DoctorID: doctorID, PatientID: patientID}
	if err := s.repo.UpsertDoctor(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("doctor_id", doctorID).
		Int64("patient_id", patientID).
		Msg("doctor assigned to patient")
	return d, nil
}

// ListDoctorAssignments returns every permanent doctor binding.
func (s *Service) ListDoctorAssignments(ctx context.Context) ([]*DoctorAssignment, error) {
	return s.repo.ListDoctors(ctx)
}

// AutoAssignNewPatient gives a freshly admitted patient same-day coverage by
// the least-loaded on-duty non-doctor staff member. Ties go to the lowest
// staff id. Returns (nil, nil) when no staff is available or the row already
// exists; admission must never fail on account of this step.
func (s *Service) AutoAssignNewPatient(ctx context.Context, patientID int64) (*StaffAssignment, error) {
	members, err := s.staff.ListForRotation(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*staff.Member
	for _, m := range members {
		if !m.IsDoctor() {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		s.logger.Warn().Int64("patient_id", patientID).Msg("no on-duty staff for auto-assignment")
		return nil, nil
	}

	today := clock.Today(s.clock)

	best := candidates[0]
	bestLoad := -1
	for _, m := range candidates {
		n, err := s.repo.CountForStaffOnDate(ctx, m.ID, today)
		if err != nil {
			return nil, err
		}
		if bestLoad < 0 || n < bestLoad {
			best, bestLoad = m, n
		}
	}

	a := &StaffAssignment{StaffID: best.ID, PatientID: patientID, Date: today}
	if err := s.repo.Insert(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicateAssignment) {
			s.logger.Warn().
				Int64("staff_id", best.ID).
				Int64("patient_id", patientID).
				Msg("auto-assignment already exists")
			return nil, nil
		}
		return nil, err
	}

	s.logger.Info().
		Int64("staff_id", best.ID).
		Int64("patient_id", patientID).
		Time("date", today).
		Msg("patient auto-assigned on admission")
	return a, nil
}

// PatientAdmitted lets the service act as the patient admission hook.
func (s *Service) PatientAdmitted(ctx context.Context, patientID int64) error {
	_, err := s.AutoAssignNewPatient(ctx, patientID)
	return err
}
