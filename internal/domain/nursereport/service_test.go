package nursereport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockReportRepo struct {
	store  map[int64]*Report
	nextID int64
}

func newMockRepo() *mockReportRepo {
	return &mockReportRepo{store: make(map[int64]*Report), nextID: 1}
}

func (m *mockReportRepo) Create(_ context.Context, r *Report) error {
	r.ID = m.nextID
	m.nextID++
	m.store[r.ID] = r
	return nil
}

func (m *mockReportRepo) GetByID(_ context.Context, id int64) (*Report, error) {
	r, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockReportRepo) List(_ context.Context, patientID int64, unreviewedOnly bool, limit, offset int) ([]*Report, int, error) {
	var out []*Report
	for _, r := range m.store {
		if patientID != 0 && r.PatientID != patientID {
			continue
		}
		if unreviewedOnly && r.ReviewedByDoctor {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *mockReportRepo) Update(_ context.Context, r *Report) error {
	if _, ok := m.store[r.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[r.ID] = r
	return nil
}

func (m *mockReportRepo) MarkReviewed(_ context.Context, id int64) error {
	r, ok := m.store[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	r.ReviewedByDoctor = true
	now := time.Now()
	r.ReviewedAt = &now
	return nil
}

func (m *mockReportRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.store[id]; !ok {
		return fmt.Errorf("not found")
	}
	delete(m.store, id)
	return nil
}

func newTestService() *Service {
	return NewService(newMockRepo(), zerolog.Nop())
}

func validReport(patientID int64) *Report {
	return &Report{
		PatientID:       patientID,
		ReportedBy:      "Nurse Sana",
		Date:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ConditionUpdate: "stable, responsive",
		Urgency:         UrgencyMedium,
	}
}

func TestCreateReport(t *testing.T) {
	svc := newTestService()
	r := validReport(10)
	if err := svc.CreateReport(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ReviewedByDoctor {
		t.Error("new report must start unreviewed")
	}
	if r.Symptoms == nil {
		t.Error("symptoms must default to an empty list")
	}
}

func TestCreateReport_DefaultsUrgency(t *testing.T) {
	svc := newTestService()
	r := validReport(10)
	r.Urgency = ""
	if err := svc.CreateReport(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Urgency != UrgencyLow {
		t.Errorf("expected default urgency low, got %q", r.Urgency)
	}
}

func TestCreateReport_InvalidUrgency(t *testing.T) {
	svc := newTestService()
	r := validReport(10)
	r.Urgency = "critical"
	if err := svc.CreateReport(context.Background(), r); err == nil {
		t.Fatal("expected error for invalid urgency")
	}
}

func TestCreateReport_PainLevelRange(t *testing.T) {
	svc := newTestService()
	r := validReport(10)
	pain := 11
	r.PainLevel = &pain
	if err := svc.CreateReport(context.Background(), r); err == nil {
		t.Fatal("expected error for pain level out of range")
	}
}

func TestReviewReport_RemovesFromQueue(t *testing.T) {
	svc := newTestService()
	r := validReport(10)
	if err := svc.CreateReport(context.Background(), r); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.ReviewReport(context.Background(), r.ID); err != nil {
		t.Fatalf("review: %v", err)
	}

	_, total, err := svc.ListReports(context.Background(), 10, true, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("reviewed report still in unreviewed queue")
	}

	got, _ := svc.GetReport(context.Background(), r.ID)
	if !got.ReviewedByDoctor || got.ReviewedAt == nil {
		t.Error("expected review flags to be set")
	}
}
