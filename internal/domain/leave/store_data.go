package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"lms/internal/platform/querier"
)

// approvedOverlaps is the ConflictDetector bound to a Querier, typically the
// transaction the apply runs in. Only Approved records block; Pending and
// Rejected never participate.
type approvedOverlaps struct {
	db querier.Querier
}

func (c approvedOverlaps) HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var exists bool
	err := c.db.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1
      FROM leave_requests
      WHERE employee_id = $1 AND status = $2
        AND start_date <= $4 AND end_date >= $3
    )
  `, employeeID, StatusApproved, start, end).Scan(&exists)
	return exists, err
}

// rosterLookup resolves the earliest roster window for an employee on a
// date, for the casual cutoff check.
type rosterLookup struct {
	db querier.Querier
}

func (l rosterLookup) FindForDate(ctx context.Context, employeeID string, date time.Time) (*RosterWindow, error) {
	var start, end pgtype.Time
	err := l.db.QueryRow(ctx, `
    SELECT roster_start, roster_end
    FROM work_schedules
    WHERE employee_id = $1 AND date = $2
    ORDER BY roster_start
    LIMIT 1
  `, employeeID, date.UTC().Format("2006-01-02")).Scan(&start, &end)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &RosterWindow{
		Start: time.Duration(start.Microseconds) * time.Microsecond,
		End:   time.Duration(end.Microseconds) * time.Microsecond,
	}, nil
}

func employeeExists(ctx context.Context, db querier.Querier, employeeID string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", employeeID).Scan(&exists)
	return exists, err
}

// entitlementForUpdate locks the entitlement row for the rest of the
// transaction, serializing concurrent applies and decisions per employee.
func entitlementForUpdate(ctx context.Context, tx pgx.Tx, employeeID string) (Entitlement, error) {
	var ent Entitlement
	err := tx.QueryRow(ctx, `
    SELECT employee_id, annual_days, casual_days, short_credits, updated_at
    FROM leave_entitlements
    WHERE employee_id = $1
    FOR UPDATE
  `, employeeID).Scan(&ent.EmployeeID, &ent.AnnualDays, &ent.CasualDays, &ent.ShortCredits, &ent.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entitlement{}, ErrEntitlementNotFound
	}
	if err != nil {
		return Entitlement{}, err
	}
	return ent, nil
}

func saveEntitlement(ctx context.Context, tx pgx.Tx, ent Entitlement) error {
	_, err := tx.Exec(ctx, `
    UPDATE leave_entitlements
    SET annual_days = $2, casual_days = $3, short_credits = $4, updated_at = now()
    WHERE employee_id = $1
  `, ent.EmployeeID, ent.AnnualDays, ent.CasualDays, ent.ShortCredits)
	return err
}

func requestForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (Request, error) {
	var req Request
	err := tx.QueryRow(ctx, `
    SELECT id, employee_id, category, status, start_date, end_date, duration, created_at
    FROM leave_requests
    WHERE id = $1
    FOR UPDATE
  `, requestID).Scan(&req.ID, &req.EmployeeID, &req.Category, &req.Status, &req.StartDate, &req.EndDate, &req.Duration, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

func insertRequest(ctx context.Context, tx pgx.Tx, employeeID string, category Category, start, end time.Time, duration float64) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, category, status, start_date, end_date, duration)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, employeeID, category, StatusPending, start, end, duration).Scan(&id)
	return id, err
}
