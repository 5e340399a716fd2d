package leave

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEntitlementNotFound = errors.New("leave entitlement not found")
	ErrEntitlementExists   = errors.New("leave entitlement already exists")
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrInvalidCategory     = errors.New("invalid leave category")
	ErrInvalidStatus       = errors.New("invalid leave status")
	ErrInvalidDateRange    = errors.New("end date before start date")
	ErrNotPending          = errors.New("leave request is no longer pending")
)

// Reason identifies which business rule rejected an application.
type Reason string

const (
	ReasonInvalidCategory       Reason = "InvalidCategory"
	ReasonOverlapsApprovedLeave Reason = "OverlapsApprovedLeave"
	ReasonAnnualRuleViolation   Reason = "AnnualRuleViolation"
	ReasonCasualRuleViolation   Reason = "CasualRuleViolation"
	ReasonShortRuleViolation    Reason = "ShortRuleViolation"
)

// RuleError is a business-rule rejection. A request that earns one is never
// partially applied: no balance moves and no record is written.
type RuleError struct {
	Reason Reason
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// ConsistencyError marks a ledger underflow or an illegal status transition.
// It signals a concurrency or logic bug rather than a bad request, and the
// enclosing transaction must abort.
type ConsistencyError struct {
	Detail string
}

func (e *ConsistencyError) Error() string {
	return "consistency violation: " + e.Detail
}
