package adminhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"lms/internal/domain/auth"
	"lms/internal/domain/employee"
	"lms/internal/domain/leave"
	"lms/internal/domain/schedule"
	"lms/internal/transport/http/api"
	"lms/internal/transport/http/middleware"
	"lms/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Service
	Leave     *leave.Service
	Schedules *schedule.Service
}

func NewHandler(employees *employee.Service, leaveSvc *leave.Service, schedules *schedule.Service) *Handler {
	return &Handler{Employees: employees, Leave: leaveSvc, Schedules: schedules}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))

		r.Post("/employees", h.handleCreateEmployee)
		r.Get("/employees", h.handleListEmployees)
		r.Get("/employees/{employeeID}", h.handleGetEmployee)
		r.Get("/employees/{employeeID}/leaves", h.handleEmployeeLeaves)
		r.Get("/employees/{employeeID}/leaves/{leaveID}", h.handleEmployeeLeave)
		r.Delete("/employees/{employeeID}/leaves/{leaveID}", h.handleDeleteEmployeeLeave)
		r.Get("/employees/{employeeID}/entitlements", h.handleEmployeeEntitlement)
		r.Get("/employees/{employeeID}/schedules", h.handleEmployeeSchedules)

		r.Post("/entitlements", h.handleCreateEntitlement)
		r.Post("/schedules", h.handleCreateSchedule)

		r.Get("/leaves", h.handleRegister)
		r.Get("/leaves/export.pdf", h.handleRegisterPDF)
		r.Put("/leaves/{leaveID}/status", h.handleSetStatus)
	})
}

type createEmployeePayload struct {
	EmployeeNumber string `json:"employeeNumber"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	DateOfJoining  string `json:"dateOfJoining"`
	IsPermanent    bool   `json:"isPermanent"`
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createEmployeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	var missing []string
	for field, value := range map[string]string{
		"employeeNumber": payload.EmployeeNumber,
		"name":           payload.Name,
		"email":          payload.Email,
		"password":       payload.Password,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		api.FailWithDetails(w, http.StatusBadRequest, "invalid_payload", "missing required fields", missing, reqID)
		return
	}
	role, err := auth.ParseRole(payload.Role)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "role must be Admin or Employee", reqID)
		return
	}
	joined, err := shared.ParseDate(payload.DateOfJoining)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid dateOfJoining", reqID)
		return
	}
	if joined.IsZero() {
		joined = time.Now().UTC()
	}

	id, err := h.Employees.Create(r.Context(), employee.NewEmployee{
		EmployeeNumber: payload.EmployeeNumber,
		Name:           payload.Name,
		Email:          payload.Email,
		Password:       payload.Password,
		Role:           role,
		DateOfJoining:  joined,
		IsPermanent:    payload.IsPermanent,
	})
	if errors.Is(err, employee.ErrDuplicate) {
		api.Fail(w, http.StatusConflict, "duplicate_employee", err.Error(), reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	emp, err := h.Employees.GetByID(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

type createEntitlementPayload struct {
	EmployeeID   string `json:"employeeId"`
	AnnualDays   int    `json:"annualDays"`
	CasualDays   int    `json:"casualDays"`
	ShortCredits int    `json:"shortCredits"`
}

func (h *Handler) handleCreateEntitlement(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createEntitlementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", reqID)
		return
	}
	if payload.AnnualDays < 0 || payload.CasualDays < 0 || payload.ShortCredits < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "balances must not be negative", reqID)
		return
	}

	err := h.Leave.CreateEntitlement(r.Context(), payload.EmployeeID, payload.AnnualDays, payload.CasualDays, payload.ShortCredits)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Created(w, map[string]string{"employeeId": payload.EmployeeID}, reqID)
}

type createSchedulePayload struct {
	EmployeeID  string `json:"employeeId"`
	Date        string `json:"date"`
	RosterStart string `json:"rosterStart"`
	RosterEnd   string `json:"rosterEnd"`
}

func (h *Handler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createSchedulePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	date, err := shared.ParseDate(payload.Date)
	if err != nil || date.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid date", reqID)
		return
	}
	rosterStart, err := schedule.ParseTimeOfDay(payload.RosterStart)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "rosterStart must be HH:MM", reqID)
		return
	}
	rosterEnd, err := schedule.ParseTimeOfDay(payload.RosterEnd)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "rosterEnd must be HH:MM", reqID)
		return
	}

	id, err := h.Schedules.Set(r.Context(), payload.EmployeeID, date, rosterStart, rosterEnd)
	switch {
	case errors.Is(err, schedule.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
		return
	case errors.Is(err, schedule.ErrInvalidWindow), errors.Is(err, schedule.ErrOutsideWeek):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
		return
	case errors.Is(err, schedule.ErrWindowOverlap):
		api.Fail(w, http.StatusConflict, "schedule_overlap", err.Error(), reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleEmployeeSchedules(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	entries, err := h.Schedules.ListForEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
		return
	}
	views := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		views = append(views, map[string]any{
			"id":          entry.ID,
			"employeeId":  entry.EmployeeID,
			"date":        shared.FormatDate(entry.Date),
			"rosterStart": schedule.FormatTimeOfDay(entry.RosterStart),
			"rosterEnd":   schedule.FormatTimeOfDay(entry.RosterEnd),
		})
	}
	api.Success(w, views, reqID)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	from, to, ok := dateFilters(w, r, reqID)
	if !ok {
		return
	}
	rows, err := h.Leave.Register(r.Context(), from, to)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	views := make([]shared.LeaveView, 0, len(rows))
	for _, row := range rows {
		view := shared.ViewOfLeave(row.Request)
		view.EmployeeName = row.EmployeeName
		views = append(views, view)
	}
	api.Success(w, views, reqID)
}

// handleRegisterPDF streams the leave register as a PDF document.
func (h *Handler) handleRegisterPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	from, to, ok := dateFilters(w, r, reqID)
	if !ok {
		return
	}
	rows, err := h.Leave.Register(r.Context(), from, to)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Register")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(50, 7, "Employee")
	pdf.Cell(25, 7, "Category")
	pdf.Cell(25, 7, "Status")
	pdf.Cell(30, 7, "Start")
	pdf.Cell(30, 7, "End")
	pdf.Cell(20, 7, "Duration")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.Cell(50, 7, row.EmployeeName)
		pdf.Cell(25, 7, string(row.Category))
		pdf.Cell(25, 7, string(row.Status))
		pdf.Cell(30, 7, shared.FormatDate(row.StartDate))
		pdf.Cell(30, 7, shared.FormatDate(row.EndDate))
		pdf.Cell(20, 7, fmt.Sprintf("%.1f", row.Duration))
		pdf.Ln(7)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-register.pdf"`)
	if err := pdf.Output(w); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}

type setStatusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload setStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	next, err := leave.ParseStatus(payload.Status)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "status must be Approved or Rejected", reqID)
		return
	}

	req, err := h.Leave.SetStatus(r.Context(), chi.URLParam(r, "leaveID"), next)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, shared.ViewOfLeave(req), reqID)
}

func (h *Handler) handleEmployeeLeaves(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	from, to, ok := dateFilters(w, r, reqID)
	if !ok {
		return
	}
	requests, err := h.Leave.History(r.Context(), chi.URLParam(r, "employeeID"), from, to)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, shared.ViewsOfLeaves(requests), reqID)
}

func (h *Handler) handleEmployeeLeave(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	req, err := h.Leave.GetRequest(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "leaveID"))
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, shared.ViewOfLeave(req), reqID)
}

func (h *Handler) handleDeleteEmployeeLeave(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	err := h.Leave.DeleteRequest(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "leaveID"))
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"message": "leave request deleted"}, reqID)
}

func (h *Handler) handleEmployeeEntitlement(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	ent, err := h.Leave.Entitlement(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, ent, reqID)
}

func dateFilters(w http.ResponseWriter, r *http.Request, reqID string) (*time.Time, *time.Time, bool) {
	from, err := shared.ParseDateQuery(r.URL.Query().Get("startDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid startDate filter", reqID)
		return nil, nil, false
	}
	to, err := shared.ParseDateQuery(r.URL.Query().Get("endDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid endDate filter", reqID)
		return nil, nil, false
	}
	return from, to, true
}
