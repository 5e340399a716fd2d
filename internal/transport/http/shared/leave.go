package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"lms/internal/domain/leave"
	"lms/internal/transport/http/api"
)

// LeaveView is the wire projection of a leave request: dates as YYYY-MM-DD,
// enums as strings.
type LeaveView struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName,omitempty"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Duration     float64 `json:"duration"`
}

func ViewOfLeave(req leave.Request) LeaveView {
	return LeaveView{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Category:   string(req.Category),
		Status:     string(req.Status),
		StartDate:  FormatDate(req.StartDate),
		EndDate:    FormatDate(req.EndDate),
		Duration:   req.Duration,
	}
}

func ViewsOfLeaves(requests []leave.Request) []LeaveView {
	views := make([]LeaveView, 0, len(requests))
	for _, req := range requests {
		views = append(views, ViewOfLeave(req))
	}
	return views
}

// WriteLeaveError maps engine errors onto the response taxonomy: rule
// violations and malformed input are 400 with a reason code, missing
// entities 404, consistency violations 409, everything else 500.
func WriteLeaveError(w http.ResponseWriter, err error, requestID string) {
	var rule *leave.RuleError
	var consistency *leave.ConsistencyError
	switch {
	case errors.As(err, &rule):
		api.Fail(w, http.StatusBadRequest, string(rule.Reason), rule.Error(), requestID)
	case errors.As(err, &consistency):
		api.Fail(w, http.StatusConflict, "consistency_violation", err.Error(), requestID)
	case errors.Is(err, leave.ErrEmployeeNotFound),
		errors.Is(err, leave.ErrEntitlementNotFound),
		errors.Is(err, leave.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, leave.ErrInvalidCategory),
		errors.Is(err, leave.ErrInvalidStatus),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrNotPending),
		errors.Is(err, leave.ErrEntitlementExists):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		slog.Error("leave operation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
