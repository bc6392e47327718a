package vitals

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockVitalsRepo struct {
	store  map[int64]*Reading
	nextID int64
}

func newMockRepo() *mockVitalsRepo {
	return &mockVitalsRepo{store: make(map[int64]*Reading), nextID: 1}
}

func (m *mockVitalsRepo) Create(_ context.Context, v *Reading) error {
	v.ID = m.nextID
	m.nextID++
	m.store[v.ID] = v
	return nil
}

func (m *mockVitalsRepo) GetByID(_ context.Context, id int64) (*Reading, error) {
	v, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return v, nil
}

func (m *mockVitalsRepo) List(_ context.Context, patientID int64, date *time.Time, limit, offset int) ([]*Reading, int, error) {
	var r []*Reading
	for _, v := range m.store {
		if patientID != 0 && v.PatientID != patientID {
			continue
		}
		if date != nil {
			y1, m1, d1 := v.RecordedAt.Date()
			y2, m2, d2 := date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		r = append(r, v)
	}
	return r, len(r), nil
}

func (m *mockVitalsRepo) Update(_ context.Context, v *Reading) error {
	if _, ok := m.store[v.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[v.ID] = v
	return nil
}

func (m *mockVitalsRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.store[id]; !ok {
		return fmt.Errorf("not found")
	}
	delete(m.store, id)
	return nil
}

func newTestService() *Service {
	return NewService(newMockRepo(), zerolog.Nop())
}

func validReading(patientID int64) *Reading {
	return &Reading{
		PatientID:     patientID,
		RecordedBy:    "Nurse Sana",
		BloodPressure: "120/80",
		HeartRate:     "72",
		Temperature:   "36.8",
		RecordedAt:    time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestRecordReading(t *testing.T) {
	svc := newTestService()
	v := validReading(10)
	if err := svc.RecordReading(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID == 0 {
		t.Error("expected ID to be set")
	}
}

func TestRecordReading_DefaultsRecordedAt(t *testing.T) {
	svc := newTestService()
	v := validReading(10)
	v.RecordedAt = time.Time{}
	if err := svc.RecordReading(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.RecordedAt.IsZero() {
		t.Error("expected recordedAt to default to now")
	}
}

func TestRecordReading_MissingMeasurement(t *testing.T) {
	svc := newTestService()
	v := validReading(10)
	v.HeartRate = ""
	if err := svc.RecordReading(context.Background(), v); err == nil {
		t.Fatal("expected error for missing heart rate")
	}
}

func TestListReadings_DateFilter(t *testing.T) {
	svc := newTestService()
	a := validReading(10)
	svc.RecordReading(context.Background(), a)
	b := validReading(10)
	b.RecordedAt = time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	svc.RecordReading(context.Background(), b)

	d := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	items, total, err := svc.ListReadings(context.Background(), 10, &d, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || !items[0].RecordedAt.Equal(b.RecordedAt) {
		t.Errorf("expected only the June 2nd reading, got %d", total)
	}
}
