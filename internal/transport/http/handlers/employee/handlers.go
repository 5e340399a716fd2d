package employeehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lms/internal/domain/leave"
	"lms/internal/transport/http/api"
	"lms/internal/transport/http/middleware"
	"lms/internal/transport/http/shared"
)

// Handler serves self-service leave operations. The target employee is
// always the verified caller; client-supplied employee IDs are never
// accepted here.
type Handler struct {
	Leave *leave.Service
}

func NewHandler(leaveSvc *leave.Service) *Handler {
	return &Handler{Leave: leaveSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employee", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/leaves", h.handleApply)
		r.Get("/leaves", h.handleHistory)
		r.Get("/leaves/{leaveID}", h.handleGet)
		r.Delete("/leaves/{leaveID}", h.handleDelete)
		r.Get("/entitlements", h.handleEntitlements)
	})
}

type applyPayload struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	var payload applyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	category, err := leave.ParseCategory(payload.LeaveType)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, string(leave.ReasonInvalidCategory), "invalid leave type", reqID)
		return
	}
	start, err := shared.ParseDate(payload.StartDate)
	if err != nil || start.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start date", reqID)
		return
	}
	end, err := shared.ParseDate(payload.EndDate)
	if err != nil || end.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end date", reqID)
		return
	}

	result, err := h.Leave.Apply(r.Context(), identity.EmployeeID, category, start, end)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Created(w, result, reqID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	from, err := shared.ParseDateQuery(r.URL.Query().Get("startDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid startDate filter", reqID)
		return
	}
	to, err := shared.ParseDateQuery(r.URL.Query().Get("endDate"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid endDate filter", reqID)
		return
	}

	requests, err := h.Leave.History(r.Context(), identity.EmployeeID, from, to)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, shared.ViewsOfLeaves(requests), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	req, err := h.Leave.GetRequest(r.Context(), identity.EmployeeID, chi.URLParam(r, "leaveID"))
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, shared.ViewOfLeave(req), reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	if err := h.Leave.DeleteRequest(r.Context(), identity.EmployeeID, chi.URLParam(r, "leaveID")); err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"message": "leave request deleted"}, reqID)
}

func (h *Handler) handleEntitlements(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	ent, err := h.Leave.Entitlement(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.WriteLeaveError(w, err, reqID)
		return
	}
	api.Success(w, ent, reqID)
}
