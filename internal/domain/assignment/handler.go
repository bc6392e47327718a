package assignment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assignments/generate", h.Generate)
	api.GET("/assignments", h.GetByDate)
	api.GET("/assignments/staff/:staffId", h.GetByStaff)
	api.GET("/assignments/patient/:patientId", h.GetByPatient)
	api.POST("/assignments/doctors/assign", h.AssignDoctor)
	api.GET("/assignments/doctors", h.ListDoctorAssignments)
}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, successEnvelope{Success: true, Data: data})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorEnvelope{Error: true, Message: msg})
}

// parseDate accepts the date from the query string or the request body, in
// YYYY-MM-DD form.
func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

func (h *Handler) Generate(c echo.Context) error {
	var body struct {
		Date string `json:"date"`
	}
	raw := c.QueryParam("date")
	if raw == "" {
		if err := c.Bind(&body); err == nil {
			raw = body.Date
		}
	}
	if raw == "" {
		return fail(c, http.StatusBadRequest, "date is required (YYYY-MM-DD)")
	}
	date, err := parseDate(raw)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	result, err := h.svc.GenerateForDate(c.Request().Context(), date)
	if err != nil {
		if errors.Is(err, ErrNoStaffAvailable) {
			return fail(c, http.StatusInternalServerError, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "failed to generate assignments")
	}
	return ok(c, http.StatusCreated, result)
}

func (h *Handler) GetByDate(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return fail(c, http.StatusBadRequest, "date is required (YYYY-MM-DD)")
	}
	date, err := parseDate(raw)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	result, err := h.svc.GetByDate(c.Request().Context(), date)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to fetch assignments")
	}
	return ok(c, http.StatusOK, result)
}

// optionalDate parses an optional date query param, returning nil when absent.
func optionalDate(c echo.Context) (*time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return nil, nil
	}
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *Handler) GetByStaff(c echo.Context) error {
	staffID, err := strconv.ParseInt(c.Param("staffId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid staffId")
	}
	date, err := optionalDate(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	result, err := h.svc.GetByStaff(c.Request().Context(), staffID, date)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to fetch assignments")
	}
	return ok(c, http.StatusOK, result)
}

func (h *Handler) GetByPatient(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid patientId")
	}
	date, err := optionalDate(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	result, err := h.svc.GetByPatient(c.Request().Context(), patientID, date)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to fetch assignments")
	}
	return ok(c, http.StatusOK, result)
}

func (h *Handler) AssignDoctor(c echo.Context) error {
	var body struct {
		DoctorID  int64 `json:"doctorId"`
		PatientID int64 `json:"patientId"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.svc.AssignDoctor(c.Request().Context(), body.DoctorID, body.PatientID)
	if err != nil {
		if body.DoctorID <= 0 || body.PatientID <= 0 {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "failed to assign doctor")
	}
	return ok(c, http.StatusCreated, d)
}

func (h *Handler) ListDoctorAssignments(c echo.Context) error {
	result, err := h.svc.ListDoctorAssignments(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to fetch doctor assignments")
	}
	return ok(c, http.StatusOK, result)
}
