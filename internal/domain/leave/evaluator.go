package leave

import (
	"context"
	"fmt"
	"time"
)

const (
	shortLeaveMaxHours   = 1.5
	annualLeadTime       = 7 * 24 * time.Hour
	shortLeaveCreditCost = 1
)

// OverlapChecker reports whether approved leave already covers any day of
// the given inclusive range.
type OverlapChecker interface {
	HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
}

// RosterWindow is one employee's working window on one date, as offsets from
// midnight.
type RosterWindow struct {
	Start time.Duration
	End   time.Duration
}

// ScheduleLookup resolves the roster entry covering a date. A nil window
// means no schedule exists, which skips the casual cutoff check.
type ScheduleLookup interface {
	FindForDate(ctx context.Context, employeeID string, date time.Time) (*RosterWindow, error)
}

// Application is a leave request under evaluation.
type Application struct {
	EmployeeID string
	Category   Category
	StartDate  time.Time
	EndDate    time.Time
}

// Decision is an accepted application: the duration to record on the request
// and the amount the ledger must debit. The two differ for Short leave,
// which records hours but always costs one credit.
type Decision struct {
	Duration float64
	Debit    float64
}

// Evaluator runs the category rules for a leave application against an
// entitlement snapshot. It is a pure decision function: all mutation is left
// to the caller, which must read and commit in the same transaction the
// checker and lookup are bound to.
type Evaluator struct {
	Overlap  OverlapChecker
	Schedule ScheduleLookup
	Now      func() time.Time
}

func (e *Evaluator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

// Evaluate returns the debit to apply, or a RuleError naming the violated
// rule. The overlap veto applies uniformly to every category.
func (e *Evaluator) Evaluate(ctx context.Context, app Application, ent Entitlement) (Decision, error) {
	switch app.Category {
	case CategoryAnnual, CategoryCasual, CategoryShort:
	default:
		return Decision{}, &RuleError{Reason: ReasonInvalidCategory, Detail: fmt.Sprintf("unknown leave category %q", app.Category)}
	}
	if app.EndDate.Before(app.StartDate) {
		return Decision{}, ErrInvalidDateRange
	}

	overlapping, err := e.Overlap.HasApprovedOverlap(ctx, app.EmployeeID, app.StartDate, app.EndDate)
	if err != nil {
		return Decision{}, err
	}
	if overlapping {
		return Decision{}, &RuleError{Reason: ReasonOverlapsApprovedLeave, Detail: "request overlaps existing approved leave"}
	}

	switch app.Category {
	case CategoryAnnual:
		return e.evaluateAnnual(app, ent)
	case CategoryCasual:
		return e.evaluateCasual(ctx, app, ent)
	default:
		return evaluateShort(app, ent)
	}
}

func (e *Evaluator) evaluateAnnual(app Application, ent Entitlement) (Decision, error) {
	days, err := RequestedDays(app.StartDate, app.EndDate)
	if err != nil {
		return Decision{}, err
	}
	if days > float64(ent.AnnualDays) {
		return Decision{}, &RuleError{Reason: ReasonAnnualRuleViolation, Detail: "insufficient annual leave balance"}
	}
	if app.StartDate.Before(e.now().Add(annualLeadTime)) {
		return Decision{}, &RuleError{Reason: ReasonAnnualRuleViolation, Detail: "annual leave requires at least 7 days notice"}
	}
	return Decision{Duration: days, Debit: days}, nil
}

func (e *Evaluator) evaluateCasual(ctx context.Context, app Application, ent Entitlement) (Decision, error) {
	days, err := RequestedDays(app.StartDate, app.EndDate)
	if err != nil {
		return Decision{}, err
	}
	if days > float64(ent.CasualDays) {
		return Decision{}, &RuleError{Reason: ReasonCasualRuleViolation, Detail: "insufficient casual leave balance"}
	}
	if e.Schedule != nil {
		window, err := e.Schedule.FindForDate(ctx, app.EmployeeID, app.StartDate)
		if err != nil {
			return Decision{}, err
		}
		if window != nil && TimeOfDay(app.StartDate) >= window.Start {
			return Decision{}, &RuleError{Reason: ReasonCasualRuleViolation, Detail: "casual leave must be requested before the roster starts"}
		}
	}
	return Decision{Duration: days, Debit: days}, nil
}

func evaluateShort(app Application, ent Entitlement) (Decision, error) {
	hours, err := ShortHours(app.StartDate, app.EndDate)
	if err != nil {
		return Decision{}, err
	}
	if hours > shortLeaveMaxHours {
		return Decision{}, &RuleError{Reason: ReasonShortRuleViolation, Detail: "short leave is capped at 1.5 hours"}
	}
	if ent.ShortCredits < shortLeaveCreditCost {
		return Decision{}, &RuleError{Reason: ReasonShortRuleViolation, Detail: "no short leave credits remaining"}
	}
	return Decision{Duration: hours, Debit: shortLeaveCreditCost}, nil
}
