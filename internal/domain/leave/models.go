package leave

import (
	"strings"
	"time"
)

// Category is the closed set of leave kinds the engine understands. Unknown
// values are rejected when parsed at the boundary, never mid-operation.
type Category string

const (
	CategoryAnnual Category = "Annual"
	CategoryCasual Category = "Casual"
	CategoryShort  Category = "Short"
)

// ParseCategory matches case-insensitively.
func ParseCategory(value string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "annual":
		return CategoryAnnual, nil
	case "casual":
		return CategoryCasual, nil
	case "short":
		return CategoryShort, nil
	}
	return "", ErrInvalidCategory
}

// Status is the lifecycle state of a leave request. A request is created
// Pending and transitions to Approved or Rejected exactly once.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ParseStatus matches case-insensitively.
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	}
	return "", ErrInvalidStatus
}

// Entitlement is the per-employee remaining balance, one counter per
// category. At most one row exists per employee, and only the ledger
// mutates it.
type Entitlement struct {
	EmployeeID   string    `json:"employeeId"`
	AnnualDays   int       `json:"annualDays"`
	CasualDays   int       `json:"casualDays"`
	ShortCredits int       `json:"shortCredits"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Request is a single leave application. Duration is the inclusive day count
// for Annual/Casual and elapsed hours for Short; the units differ because the
// entitlement units differ (days vs credits).
type Request struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Category   Category  `json:"category"`
	Status     Status    `json:"status"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Duration   float64   `json:"duration"`
	CreatedAt  time.Time `json:"createdAt"`
}
