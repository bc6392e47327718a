package medication

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockMedicationRepo struct {
	store  map[int64]*Medication
	nextID int64
}

func newMockRepo() *mockMedicationRepo {
	return &mockMedicationRepo{store: make(map[int64]*Medication), nextID: 1}
}

func (m *mockMedicationRepo) Create(_ context.Context, med *Medication) error {
	med.ID = m.nextID
	m.nextID++
	m.store[med.ID] = med
	return nil
}

func (m *mockMedicationRepo) GetByID(_ context.Context, id int64) (*Medication, error) {
	med, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return med, nil
}

func (m *mockMedicationRepo) List(_ context.Context, patientID int64, limit, offset int) ([]*Medication, int, error) {
	var r []*Medication
	for _, med := range m.store {
		if !med.IsActive {
			continue
		}
		if patientID != 0 && med.PatientID != patientID {
			continue
		}
		r = append(r, med)
	}
	return r, len(r), nil
}

func (m *mockMedicationRepo) Update(_ context.Context, med *Medication) error {
	if _, ok := m.store[med.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[med.ID] = med
	return nil
}

func (m *mockMedicationRepo) Deactivate(_ context.Context, id int64) error {
	med, ok := m.store[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	med.IsActive = false
	return nil
}

func newTestService() (*Service, *mockMedicationRepo) {
	repo := newMockRepo()
	return NewService(repo, zerolog.Nop()), repo
}

func validMedication(patientID int64) *Medication {
	return &Medication{
		PatientID:      patientID,
		PrescribedBy:   "Dr. Rahman",
		MedicationName: "Ibuprofen",
		Dosage:         "200mg",
		Frequency:      "twice daily",
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateMedication(t *testing.T) {
	svc, _ := newTestService()
	m := validMedication(10)
	if err := svc.CreateMedication(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsActive {
		t.Error("new medication must be active")
	}
}

func TestCreateMedication_MissingFields(t *testing.T) {
	svc, _ := newTestService()
	m := validMedication(10)
	m.Dosage = ""
	if err := svc.CreateMedication(context.Background(), m); err == nil {
		t.Fatal("expected error for missing dosage")
	}
}

func TestCreateMedication_EndBeforeStart(t *testing.T) {
	svc, _ := newTestService()
	m := validMedication(10)
	end := m.StartDate.AddDate(0, 0, -1)
	m.EndDate = &end
	if err := svc.CreateMedication(context.Background(), m); err == nil {
		t.Fatal("expected error for endDate before startDate")
	}
}

func TestDiscontinue_HidesFromList(t *testing.T) {
	svc, _ := newTestService()
	m := validMedication(10)
	if err := svc.CreateMedication(context.Background(), m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DiscontinueMedication(context.Background(), m.ID); err != nil {
		t.Fatalf("discontinue: %v", err)
	}
	items, total, err := svc.ListMedications(context.Background(), 10, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("discontinued medication still listed: %d items", len(items))
	}
}

func TestListMedications_PatientScope(t *testing.T) {
	svc, _ := newTestService()
	svc.CreateMedication(context.Background(), validMedication(10))
	svc.CreateMedication(context.Background(), validMedication(11))

	items, total, err := svc.ListMedications(context.Background(), 10, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || items[0].PatientID != 10 {
		t.Errorf("expected one medication for patient 10, got %d", total)
	}
}
