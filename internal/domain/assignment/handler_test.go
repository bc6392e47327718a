package assignment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Mustafa551/Rehab-care-backend/internal/domain/staff"
)

func newTestServer(f *fixture) *echo.Echo {
	e := echo.New()
	NewHandler(f.svc).RegisterRoutes(e.Group("/api"))
	return e
}

func TestDoctorRoutes(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleDoctor)}, []int64{10})
	e := newTestServer(f)

	req := httptest.NewRequest(http.MethodPost, "/api/assignments/doctors/assign",
		strings.NewReader(`{"doctorId":1,"patientId":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /assignments/doctors/assign: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/assignments/doctors", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /assignments/doctors: expected 200, got %d", rec.Code)
	}

	var body struct {
		Success bool                `json:"success"`
		Data    []*DoctorAssignment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || len(body.Data) != 1 {
		t.Fatalf("expected one binding in envelope, got %+v", body)
	}
	if body.Data[0].DoctorID != 1 || body.Data[0].PatientID != 10 {
		t.Errorf("unexpected binding: %+v", body.Data[0])
	}
}

func TestAssignDoctorRoute_MissingIDs(t *testing.T) {
	f := newFixture(day("2024-06-01"), nil, nil)
	e := newTestServer(f)

	req := httptest.NewRequest(http.MethodPost, "/api/assignments/doctors/assign",
		strings.NewReader(`{"doctorId":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing patientId, got %d", rec.Code)
	}
}

func TestGenerateRoute_RequiresDate(t *testing.T) {
	f := newFixture(day("2024-06-01"),
		[]*staff.Member{member(1, staff.RoleNurse)}, []int64{10})
	e := newTestServer(f)

	req := httptest.NewRequest(http.MethodPost, "/api/assignments/generate", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a date, got %d", rec.Code)
	}

	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Error || body.Message == "" {
		t.Errorf("expected error envelope, got %+v", body)
	}
}
