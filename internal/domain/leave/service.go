package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service runs the leave engine against Postgres. Apply, SetStatus and
// DeleteRequest each execute as one transaction with the entitlement row
// locked, so evaluation and commit see the same snapshot and concurrent
// operations for one employee serialize.
type Service struct {
	Store *Store
	DB    *pgxpool.Pool
	Now   func() time.Time
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{Store: NewStore(db), DB: db}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// ApplyResult reports the accepted application: the pending record created
// and the amount debited from the entitlement.
type ApplyResult struct {
	ID       string  `json:"id"`
	Status   Status  `json:"status"`
	Duration float64 `json:"duration"`
	Debited  float64 `json:"debited"`
}

// Apply evaluates and, on acceptance, commits a leave application: the
// entitlement debit and the pending record are written atomically or not at
// all. employeeID must come from the verified session, never from the
// client payload.
func (s *Service) Apply(ctx context.Context, employeeID string, category Category, start, end time.Time) (ApplyResult, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return ApplyResult{}, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	exists, err := employeeExists(ctx, tx, employeeID)
	if err != nil {
		return ApplyResult{}, err
	}
	if !exists {
		return ApplyResult{}, ErrEmployeeNotFound
	}

	ent, err := entitlementForUpdate(ctx, tx, employeeID)
	if err != nil {
		return ApplyResult{}, err
	}

	evaluator := &Evaluator{
		Overlap:  approvedOverlaps{db: tx},
		Schedule: rosterLookup{db: tx},
		Now:      s.now,
	}
	decision, err := evaluator.Evaluate(ctx, Application{
		EmployeeID: employeeID,
		Category:   category,
		StartDate:  start,
		EndDate:    end,
	}, ent)
	if err != nil {
		return ApplyResult{}, err
	}

	debited, err := Commit(ent, category, decision.Debit)
	if err != nil {
		return ApplyResult{}, err
	}
	if err := saveEntitlement(ctx, tx, debited); err != nil {
		return ApplyResult{}, err
	}

	id, err := insertRequest(ctx, tx, employeeID, category, start, end, decision.Duration)
	if err != nil {
		return ApplyResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ApplyResult{}, err
	}
	return ApplyResult{ID: id, Status: StatusPending, Duration: decision.Duration, Debited: decision.Debit}, nil
}

// SetStatus moves a pending request to Approved or Rejected. Approval leaves
// the ledger alone (the debit happened at apply time); rejection reverses
// the full original debit. Any transition from a decided state, including
// re-setting the same status, is a ConsistencyError.
func (s *Service) SetStatus(ctx context.Context, requestID string, next Status) (Request, error) {
	if next != StatusApproved && next != StatusRejected {
		return Request{}, ErrInvalidStatus
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Request{}, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	req, err := requestForUpdate(ctx, tx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status == next {
		return Request{}, &ConsistencyError{Detail: fmt.Sprintf("leave is already %s", next)}
	}
	if req.Status != StatusPending {
		return Request{}, &ConsistencyError{Detail: fmt.Sprintf("no transition from %s to %s", req.Status, next)}
	}

	if next == StatusRejected {
		ent, err := entitlementForUpdate(ctx, tx, req.EmployeeID)
		if err != nil {
			return Request{}, err
		}
		restored, err := Reverse(ent, req.Category, DebitFor(req.Category, req.Duration))
		if err != nil {
			return Request{}, err
		}
		if err := saveEntitlement(ctx, tx, restored); err != nil {
			return Request{}, err
		}
	}

	if _, err := tx.Exec(ctx, "UPDATE leave_requests SET status = $2, decided_at = now() WHERE id = $1", req.ID, next); err != nil {
		return Request{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	req.Status = next
	return req, nil
}

// DeleteRequest removes a pending request scoped to an employee and credits
// the original debit back, keeping the ledger consistent with the record's
// disappearance.
func (s *Service) DeleteRequest(ctx context.Context, employeeID, requestID string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	req, err := requestForUpdate(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if req.EmployeeID != employeeID {
		return ErrRequestNotFound
	}
	if req.Status != StatusPending {
		return ErrNotPending
	}

	ent, err := entitlementForUpdate(ctx, tx, employeeID)
	if err != nil {
		return err
	}
	restored, err := Reverse(ent, req.Category, DebitFor(req.Category, req.Duration))
	if err != nil {
		return err
	}
	if err := saveEntitlement(ctx, tx, restored); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", req.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// History lists an employee's leave requests, optionally bounded to those
// starting on or after from and ending on or before to.
func (s *Service) History(ctx context.Context, employeeID string, from, to *time.Time) ([]Request, error) {
	exists, err := employeeExists(ctx, s.Store.DB, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	query := `
    SELECT id, employee_id, category, status, start_date, end_date, duration, created_at
    FROM leave_requests
    WHERE employee_id = $1
  `
	args := []any{employeeID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND end_date <= $%d", len(args))
	}
	query += " ORDER BY start_date DESC"

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.Category, &req.Status, &req.StartDate, &req.EndDate, &req.Duration, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// GetRequest fetches one request scoped to an employee.
func (s *Service) GetRequest(ctx context.Context, employeeID, requestID string) (Request, error) {
	exists, err := employeeExists(ctx, s.Store.DB, employeeID)
	if err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, ErrEmployeeNotFound
	}

	var req Request
	err = s.Store.DB.QueryRow(ctx, `
    SELECT id, employee_id, category, status, start_date, end_date, duration, created_at
    FROM leave_requests
    WHERE id = $1 AND employee_id = $2
  `, requestID, employeeID).Scan(&req.ID, &req.EmployeeID, &req.Category, &req.Status, &req.StartDate, &req.EndDate, &req.Duration, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

// RegisterRow is one line of the company-wide leave register.
type RegisterRow struct {
	Request
	EmployeeName string `json:"employeeName"`
}

// Register lists every employee's leave joined with names, optionally
// bounded by the same date filters as History.
func (s *Service) Register(ctx context.Context, from, to *time.Time) ([]RegisterRow, error) {
	query := `
    SELECT r.id, r.employee_id, e.name, r.category, r.status, r.start_date, r.end_date, r.duration, r.created_at
    FROM leave_requests r
    JOIN employees e ON r.employee_id = e.id
  `
	var args []any
	var conds []string
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("r.start_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("r.end_date <= $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY r.start_date DESC"

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegisterRow
	for rows.Next() {
		var row RegisterRow
		if err := rows.Scan(&row.ID, &row.EmployeeID, &row.EmployeeName, &row.Category, &row.Status, &row.StartDate, &row.EndDate, &row.Duration, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Entitlement returns an employee's current balances.
func (s *Service) Entitlement(ctx context.Context, employeeID string) (Entitlement, error) {
	var ent Entitlement
	err := s.Store.DB.QueryRow(ctx, `
    SELECT employee_id, annual_days, casual_days, short_credits, updated_at
    FROM leave_entitlements
    WHERE employee_id = $1
  `, employeeID).Scan(&ent.EmployeeID, &ent.AnnualDays, &ent.CasualDays, &ent.ShortCredits, &ent.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entitlement{}, ErrEntitlementNotFound
	}
	if err != nil {
		return Entitlement{}, err
	}
	return ent, nil
}

// CreateEntitlement provisions the one-per-employee entitlement row.
func (s *Service) CreateEntitlement(ctx context.Context, employeeID string, annualDays, casualDays, shortCredits int) error {
	exists, err := employeeExists(ctx, s.Store.DB, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEmployeeNotFound
	}

	var present bool
	if err := s.Store.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM leave_entitlements WHERE employee_id = $1)", employeeID).Scan(&present); err != nil {
		return err
	}
	if present {
		return ErrEntitlementExists
	}

	_, err = s.Store.DB.Exec(ctx, `
    INSERT INTO leave_entitlements (employee_id, annual_days, casual_days, short_credits)
    VALUES ($1,$2,$3,$4)
  `, employeeID, annualDays, casualDays, shortCredits)
	return err
}
