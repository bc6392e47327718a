package condition

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockConditionRepo struct {
	store  map[int64]*Assessment
	nextID int64
}

func newMockRepo() *mockConditionRepo {
	return &mockConditionRepo{store: make(map[int64]*Assessment), nextID: 1}
}

func (m *mockConditionRepo) Create(_ context.Context, a *Assessment) error {
	a.ID = m.nextID
	m.nextID++
	a.UpdatedAt = time.Now()
	m.store[a.ID] = a
	return nil
}

func (m *mockConditionRepo) GetByID(_ context.Context, id int64) (*Assessment, error) {
	a, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockConditionRepo) GetLatestForPatient(_ context.Context, patientID int64) (*Assessment, error) {
	var latest *Assessment
	for _, a := range m.store {
		if a.PatientID != patientID {
			continue
		}
		if latest == nil || a.UpdatedAt.After(latest.UpdatedAt) || (a.UpdatedAt.Equal(latest.UpdatedAt) && a.ID > latest.ID) {
			latest = a
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("not found")
	}
	return latest, nil
}

func (m *mockConditionRepo) List(_ context.Context, patientID int64, limit, offset int) ([]*Assessment, int, error) {
	var out []*Assessment
	for _, a := range m.store {
		if patientID != 0 && a.PatientID != patientID {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *mockConditionRepo) Update(_ context.Context, a *Assessment) error {
	if _, ok := m.store[a.ID]; !ok {
		return fmt.Errorf("not found")
	}
	a.UpdatedAt = time.Now()
	m.store[a.ID] = a
	return nil
}

func (m *mockConditionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.store[id]; !ok {
		return fmt.Errorf("not found")
	}
	delete(m.store, id)
	return nil
}

func newTestService() *Service {
	return NewService(newMockRepo(), zerolog.Nop())
}

func validAssessment(patientID int64) *Assessment {
	return &Assessment{
		PatientID:  patientID,
		AssessedBy: "Dr. Rahman",
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Condition:  "recovering well",
	}
}

func TestCreateAssessment_DefaultsToContinue(t *testing.T) {
	svc := newTestService()
	a := validAssessment(10)
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.DischargeRecommendation != RecommendContinue {
		t.Errorf("expected default recommendation continue, got %q", a.DischargeRecommendation)
	}
}

func TestCreateAssessment_InvalidSeverity(t *testing.T) {
	svc := newTestService()
	a := validAssessment(10)
	sev := "catastrophic"
	a.Severity = &sev
	if err := svc.CreateAssessment(context.Background(), a); err == nil {
		t.Fatal("expected error for invalid severity")
	}
}

func TestCreateAssessment_InvalidRecommendation(t *testing.T) {
	svc := newTestService()
	a := validAssessment(10)
	a.DischargeRecommendation = "transfer"
	if err := svc.CreateAssessment(context.Background(), a); err == nil {
		t.Fatal("expected error for invalid recommendation")
	}
}

func TestLatestForPatient(t *testing.T) {
	svc := newTestService()
	first := validAssessment(10)
	if err := svc.CreateAssessment(context.Background(), first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := validAssessment(10)
	second.Condition = "ready for discharge"
	second.DischargeRecommendation = RecommendDischarge
	if err := svc.CreateAssessment(context.Background(), second); err != nil {
		t.Fatalf("create: %v", err)
	}

	latest, err := svc.LatestForPatient(context.Background(), 10)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("expected assessment %d, got %d", second.ID, latest.ID)
	}
}
