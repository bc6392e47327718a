package assignment

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mustafa551/Rehab-care-backend/internal/domain/staff"
	"github.com/Mustafa551/Rehab-care-backend/internal/platform/clock"
)

// -- Mocks --

type tripleKey struct {
	staffID   int64
	patientID int64
	date      string
}

type mockAssignmentRepo struct {
	rows      map[tripleKey]*StaffAssignment
	doctors   map[int64]*DoctorAssignment // keyed by patient id
	doctorIDs map[int64]bool              // staff ids holding the doctor role
	nextID    int64
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{
		rows:      make(map[tripleKey]*StaffAssignment),
		doctors:   make(map[int64]*DoctorAssignment),
		doctorIDs: make(map[int64]bool),
		nextID:    1,
	}
}

func keyOf(a *StaffAssignment) tripleKey {
	return tripleKey{a.StaffID, a.PatientID, Date(a.Date).Format("2006-01-02")}
}

func (m *mockAssignmentRepo) Insert(_ context.Context, a *StaffAssignment) error {
	k := keyOf(a)
	if _, ok := m.rows[k]; ok {
		return ErrDuplicateAssignment
	}
	a.ID = m.nextID
	m.nextID++
	a.Date = Date(a.Date)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.rows[k] = &cp
	return nil
}

func (m *mockAssignmentRepo) Get(_ context.Context, staffID, patientID int64, date time.Time) (*StaffAssignment, error) {
	k := tripleKey{staffID, patientID, Date(date).Format("2006-01-02")}
	a, ok := m.rows[k]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockAssignmentRepo) list(match func(*StaffAssignment) bool) []*StaffAssignment {
	var out []*StaffAssignment
	for _, a := range m.rows {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PatientID != out[j].PatientID {
			return out[i].PatientID < out[j].PatientID
		}
		return out[i].StaffID < out[j].StaffID
	})
	return out
}

func (m *mockAssignmentRepo) ListByDate(_ context.Context, date time.Time) ([]*StaffAssignment, error) {
	d := Date(date)
	return m.list(func(a *StaffAssignment) bool { return a.Date.Equal(d) }), nil
}

func (m *mockAssignmentRepo) ListByStaff(_ context.Context, staffID int64, date *time.Time) ([]*StaffAssignment, error) {
	return m.list(func(a *StaffAssignment) bool {
		if a.StaffID != staffID {
			return false
		}
		return date == nil || a.Date.Equal(Date(*date))
	}), nil
}

func (m *mockAssignmentRepo) ListByPatient(_ context.Context, patientID int64, date *time.Time) ([]*StaffAssignment, error) {
	return m.list(func(a *StaffAssignment) bool {
		if a.PatientID != patientID {
			return false
		}
		return date == nil || a.Date.Equal(Date(*date))
	}), nil
}

func (m *mockAssignmentRepo) DeleteNonDoctorForDate(_ context.Context, date time.Time) error {
	d := Date(date)
	for k, a := range m.rows {
		if a.Date.Equal(d) && !m.doctorIDs[a.StaffID] {
			delete(m.rows, k)
		}
	}
	return nil
}

func (m *mockAssignmentRepo) CountForStaffOnDate(_ context.Context, staffID int64, date time.Time) (int, error) {
	d := Date(date)
	n := 0
	for _, a := range m.rows {
		if a.StaffID == staffID && a.Date.Equal(d) {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) UpsertDoctor(_ context.Context, d *DoctorAssignment) error {
	if existing, ok := m.doctors[d.PatientID]; ok {
		existing.DoctorID = d.DoctorID
		existing.UpdatedAt = time.Now()
		*d = *existing
		return nil
	}
	d.ID = m.nextID
	m.nextID++
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.doctors[d.PatientID] = &cp
	return nil
}

func (m *mockAssignmentRepo) ListDoctors(_ context.Context) ([]*DoctorAssignment, error) {
	var out []*DoctorAssignment
	for _, d := range m.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatientID < out[j].PatientID })
	return out, nil
}

func (m *mockAssignmentRepo) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockStaffDir struct{ members []*staff.Member }

func (m *mockStaffDir) ListForRotation(_ context.Context) ([]*staff.Member, error) {
	return m.members, nil
}

type mockRoster struct{ ids []int64 }

func (m *mockRoster) ListActiveIDs(_ context.Context) ([]int64, error) {
	return m.ids, nil
}

func member(id int64, role string) *staff.Member {
	return &staff.Member{ID: id, Name: fmt.Sprintf("staff-%d", id), Role: role, IsOnDuty: true}
}

type fixture struct {
	repo   *mockAssignmentRepo
	dir    *mockStaffDir
	roster *mockRoster
	svc    *Service
}

func newFixture(now time.Time, members []*staff.Member, patientIDs []int64) *fixture {
	repo := newMockAssignmentRepo()
	for _, m := range members {
		if m.IsDoctor() {
			repo.doctorIDs[m.ID] = true
		}
	}
	dir := &mockStaffDir{members: members}
	roster := &mockRoster{ids: patientIDs}
	svc := NewService(repo, dir, roster, clock.Fixed{T: now}, zerolog.Nop())
	return &fixture{repo: repo, dir: dir, roster: roster, svc: svc}
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// -- Generation --

func TestGenerate_RotationOffsetByDayOfYear(t *testing.T) {
	// Two rotating staff, three patients, January 5th (day of year 5).
	f := newFixture(day("2024-01-05"),
		[]*staff.Member{member(1, staff.RoleNurse), member(2, staff.RoleCaretaker)},
		[]int64{10, 11, 12})

	result, err := f.svc.GenerateForDate(context.Background(), day("2024-01-05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(result))
	}

	// (patientIndex + 5) mod 2 alternates starting at staff 2.
	want := map[int64]int64{10: 2, 11: 1, 12: 2}
	for _, a := range result {
		if want[a.PatientID] != a.StaffID {
			t.Errorf("patient %d: expected staff %d, got %d", a.PatientID, want[a.PatientID], a.StaffID)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	members := []*staff.Member{
		member(1, staff.RoleNurse), member(2, staff.RoleCaretaker), member(3, staff.RoleTherapist),
	}
	patients := []int64{10, 11, 12, 13, 14}
	date := day("2024-03-17")

	first := newFixture(date, members, patients)
	second := newFixture(date, members, patients)

	a, err := first.svc.GenerateForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := second.svc.GenerateForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("result sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].StaffID != b[i].StaffID || a[i].PatientID != b[i].PatientID {
			t.Errorf("position %d differs: (%d,%d) vs (%d,%d)",
				i, a[i].StaffID, a[i].PatientID, b[i].StaffID, b[i].PatientID)
		}
	}
}

func TestGenerate_EveryActivePatientCovered(t *testing.T) {
	patients := []int64{10, 11, 12, 13}
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleNurse), member(2, staff.RoleNurse)},
		patients)

	result, err := f.svc.GenerateForDate(context.Background(), day("2024-06-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	covered := make(map[int64]bool)
	for _, a := range result {
		covered[a.PatientID] = true
	}
	for _, id := range patients {
		if !covered[id] {
			t.Errorf("patient %d has no assignment", id)
		}
	}
}

func TestGenerate_NoStaff(t *testing.T) {
	f := newFixture(day("2024-06-01"), nil, []int64{10})

	_, err := f.svc.GenerateForDate(context.Background(), day("2024-06-01"))
	if err != ErrNoStaffAvailable {
		t.Fatalf("expected ErrNoStaffAvailable, got %v", err)
	}
}

func TestGenerate_NoPatients(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleNurse)}, nil)

	result, err := f.svc.GenerateForDate(context.Background(), day("2024-06-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty result, got %d rows", len(result))
	}
}

func TestGenerate_RerunReplacesRotation(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleNurse), member(2, staff.RoleNurse)},
		[]int64{10, 11})
	date := day("2024-06-01")

	if _, err := f.svc.GenerateForDate(context.Background(), date); err != nil {
		t.Fatalf("first run: %v", err)
	}
	result, err := f.svc.GenerateForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 assignments after rerun, got %d", len(result))
	}
	stored, _ := f.repo.ListByDate(context.Background(), date)
	if len(stored) != 2 {
		t.Errorf("expected 2 stored rows after rerun, got %d", len(stored))
	}
}

func TestGenerate_DoctorRowsSurviveRegeneration(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor), member(2, staff.RoleNurse)},
		[]int64{10})
	date := day("2024-06-01")

	if _, err := f.svc.AssignDoctor(context.Background(), 1, 10); err != nil {
		t.Fatalf("assign doctor: %v", err)
	}

	first, err := f.svc.GenerateForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	var doctorRowID int64
	for _, a := range first {
		if a.StaffID == 1 {
			doctorRowID = a.ID
		}
	}
	if doctorRowID == 0 {
		t.Fatal("expected a materialized doctor row")
	}

	second, err := f.svc.GenerateForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	found := false
	for _, a := range second {
		if a.StaffID == 1 && a.PatientID == 10 {
			found = true
			if a.ID != doctorRowID {
				t.Errorf("doctor row recreated: id %d became %d", doctorRowID, a.ID)
			}
		}
	}
	if !found {
		t.Error("doctor row missing after regeneration")
	}
}

func TestGenerate_FairnessAcrossCycle(t *testing.T) {
	// One patient, three rotating staff: over any three consecutive days the
	// patient must see all three.
	members := []*staff.Member{
		member(1, staff.RoleNurse), member(2, staff.RoleCaretaker), member(3, staff.RoleTherapist),
	}
	seen := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		date := day("2024-04-10").AddDate(0, 0, i)
		f := newFixture(date, members, []int64{10})
		result, err := f.svc.GenerateForDate(context.Background(), date)
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if len(result) != 1 {
			t.Fatalf("day %d: expected 1 assignment, got %d", i, len(result))
		}
		seen[result[0].StaffID] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct staff across the cycle, got %d: %v", len(seen), seen)
	}
}

func TestGenerate_DoctorBackfillCoversUnrosteredPatients(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor), member(2, staff.RoleNurse)},
		[]int64{10})
	// Doctor bound to a patient who is not on the active roster. Doctor
	// coverage follows the binding, not the roster.
	if _, err := f.svc.AssignDoctor(context.Background(), 1, 99); err != nil {
		t.Fatalf("assign doctor: %v", err)
	}

	date := day("2024-06-01")
	result, err := f.svc.GenerateForDate(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, a := range result {
		if a.PatientID == 99 && a.StaffID == 1 {
			found = true
		}
	}
	if !found {
		t.Error("expected a doctor row for patient 99 in the result")
	}
	if _, err := f.repo.Get(context.Background(), 1, 99, date); err != nil {
		t.Errorf("expected a materialized doctor row for patient 99: %v", err)
	}
}

// -- Doctor bindings --

func TestAssignDoctor_ReassignmentReplacesBinding(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor), member(2, staff.RoleDoctor)},
		[]int64{10})

	if _, err := f.svc.AssignDoctor(context.Background(), 1, 10); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := f.svc.AssignDoctor(context.Background(), 2, 10); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	bindings, err := f.svc.ListDoctorAssignments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bindings) != 1 {
		t.Fatalf("expected a single binding, got %d", len(bindings))
	}
	if bindings[0].DoctorID != 2 {
		t.Errorf("expected doctor 2 after reassignment, got %d", bindings[0].DoctorID)
	}
}

func TestAssignDoctor_Validation(t *testing.T) {
	f := newFixture(day("2024-06-01"), nil, nil)
	if _, err := f.svc.AssignDoctor(context.Background(), 0, 10); err == nil {
		t.Fatal("expected error for missing doctorId")
	}
	if _, err := f.svc.AssignDoctor(context.Background(), 1, 0); err == nil {
		t.Fatal("expected error for missing patientId")
	}
}

// -- Reconciliation --

func TestGetByDate_SynthesizesDoctorRows(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor)}, []int64{10})
	if _, err := f.svc.AssignDoctor(context.Background(), 1, 10); err != nil {
		t.Fatalf("assign doctor: %v", err)
	}

	// No generation has run for this date.
	result, err := f.svc.GetByDate(context.Background(), day("2024-08-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 synthesized row, got %d", len(result))
	}
	a := result[0]
	if a.ID != 0 {
		t.Errorf("synthesized row must carry id 0, got %d", a.ID)
	}
	if a.StaffID != 1 || a.PatientID != 10 {
		t.Errorf("unexpected synthesized row: staff %d patient %d", a.StaffID, a.PatientID)
	}
	if !a.Date.Equal(day("2024-08-20")) {
		t.Errorf("synthesized row carries wrong date %v", a.Date)
	}
}

func TestGetByDate_NoDuplicateWhenMaterialized(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor), member(2, staff.RoleNurse)},
		[]int64{10})
	date := day("2024-06-01")

	if _, err := f.svc.AssignDoctor(context.Background(), 1, 10); err != nil {
		t.Fatalf("assign doctor: %v", err)
	}
	if _, err := f.svc.GenerateForDate(context.Background(), date); err != nil {
		t.Fatalf("generate: %v", err)
	}

	result, err := f.svc.GetByDate(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One rotation row plus one materialized doctor row, nothing synthesized.
	if len(result) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result))
	}
	for _, a := range result {
		if a.ID == 0 {
			t.Error("materialized doctor row was duplicated by a synthesized one")
		}
	}
}

func TestGetByStaff_ReconcilesOnlyWithDate(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor)}, []int64{10})
	if _, err := f.svc.AssignDoctor(context.Background(), 1, 10); err != nil {
		t.Fatalf("assign doctor: %v", err)
	}

	d := day("2024-08-20")
	withDate, err := f.svc.GetByStaff(context.Background(), 1, &d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withDate) != 1 || withDate[0].ID != 0 {
		t.Fatalf("expected one synthesized row for dated query, got %v", withDate)
	}

	withoutDate, err := f.svc.GetByStaff(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withoutDate) != 0 {
		t.Errorf("undated query must return only materialized rows, got %d", len(withoutDate))
	}
}

func TestGetByPatient_SynthesizesForBoundDoctor(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor)}, []int64{10, 11})
	if _, err := f.svc.AssignDoctor(context.Background(), 1, 10); err != nil {
		t.Fatalf("assign doctor: %v", err)
	}

	d := day("2024-08-20")
	rows, err := f.svc.GetByPatient(context.Background(), 11, &d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("patient 11 has no doctor; expected no rows, got %d", len(rows))
	}

	rows, err = f.svc.GetByPatient(context.Background(), 10, &d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].StaffID != 1 {
		t.Fatalf("expected synthesized doctor row for patient 10, got %v", rows)
	}
}

// -- Auto-assignment on admission --

func TestAutoAssign_PicksLeastLoaded(t *testing.T) {
	now := day("2024-06-01")
	f := newFixture(now,
		[]*staff.Member{member(1, staff.RoleNurse), member(2, staff.RoleNurse)},
		nil)

	// Staff 1 already carries three patients today.
	for _, pid := range []int64{20, 21, 22} {
		if err := f.repo.Insert(context.Background(), &StaffAssignment{StaffID: 1, PatientID: pid, Date: now}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	a, err := f.svc.AutoAssignNewPatient(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == nil {
		t.Fatal("expected an assignment")
	}
	if a.StaffID != 2 {
		t.Errorf("expected least-loaded staff 2, got %d", a.StaffID)
	}
	if !a.Date.Equal(now) {
		t.Errorf("expected today's date, got %v", a.Date)
	}
}

func TestAutoAssign_TieGoesToLowestID(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(3, staff.RoleNurse), member(7, staff.RoleCaretaker)},
		nil)

	a, err := f.svc.AutoAssignNewPatient(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == nil || a.StaffID != 3 {
		t.Fatalf("expected staff 3 on a tie, got %v", a)
	}
}

func TestAutoAssign_NoStaffReturnsNil(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor)}, nil)

	a, err := f.svc.AutoAssignNewPatient(context.Background(), 30)
	if err != nil {
		t.Fatalf("must not error when no staff is available: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil assignment, got %v", a)
	}
}

func TestAutoAssign_DuplicateReturnsNil(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleNurse)}, nil)

	first, err := f.svc.AutoAssignNewPatient(context.Background(), 30)
	if err != nil || first == nil {
		t.Fatalf("first auto-assign failed: %v %v", first, err)
	}
	second, err := f.svc.AutoAssignNewPatient(context.Background(), 30)
	if err != nil {
		t.Fatalf("duplicate must not error: %v", err)
	}
	if second != nil {
		t.Errorf("expected nil on duplicate, got %v", second)
	}
}

func TestPatientAdmitted_DelegatesToAutoAssign(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleNurse)}, nil)

	if err := f.svc.PatientAdmitted(context.Background(), 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, _ := f.repo.ListByPatient(context.Background(), 40, nil)
	if len(rows) != 1 {
		t.Fatalf("expected one assignment after admission, got %d", len(rows))
	}
}
