package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lms/internal/platform/querier"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidWindow    = errors.New("roster start must be before roster end")
	ErrOutsideWeek      = errors.New("date must be within the upcoming Monday to Sunday week")
	ErrWindowOverlap    = errors.New("roster window overlaps an existing schedule for that date")
)

// Service owns work-schedule provisioning. The leave engine only ever reads
// schedules, through its own transaction-bound lookup.
type Service struct {
	DB  querier.Querier
	Now func() time.Time
}

func NewService(db querier.Querier) *Service {
	return &Service{DB: db}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Set validates and stores a roster entry: the date must fall in the
// upcoming Monday-Sunday week and the window must not collide with an
// existing entry for the same employee and date.
func (s *Service) Set(ctx context.Context, employeeID string, date time.Time, rosterStart, rosterEnd time.Duration) (string, error) {
	if rosterStart >= rosterEnd {
		return "", ErrInvalidWindow
	}

	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", employeeID).Scan(&exists); err != nil {
		return "", err
	}
	if !exists {
		return "", ErrEmployeeNotFound
	}

	monday, sunday := UpcomingWeek(s.now())
	day := date.UTC().Truncate(24 * time.Hour)
	if day.Before(monday) || day.After(sunday) {
		return "", ErrOutsideWeek
	}

	rows, err := s.DB.Query(ctx, `
    SELECT roster_start, roster_end
    FROM work_schedules
    WHERE employee_id = $1 AND date = $2
  `, employeeID, day.Format("2006-01-02"))
	if err != nil {
		return "", err
	}
	defer rows.Close()
	for rows.Next() {
		var start, end pgtype.Time
		if err := rows.Scan(&start, &end); err != nil {
			return "", err
		}
		existingStart := time.Duration(start.Microseconds) * time.Microsecond
		existingEnd := time.Duration(end.Microseconds) * time.Microsecond
		if WindowsOverlap(rosterStart, rosterEnd, existingStart, existingEnd) {
			return "", ErrWindowOverlap
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO work_schedules (employee_id, date, roster_start, roster_end)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, employeeID, day.Format("2006-01-02"), FormatTimeOfDay(rosterStart), FormatTimeOfDay(rosterEnd)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListForEmployee returns an employee's roster entries ordered by date.
func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, date, roster_start, roster_end, created_at
    FROM work_schedules
    WHERE employee_id = $1
    ORDER BY date, roster_start
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var start, end pgtype.Time
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Date, &start, &end, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.RosterStart = time.Duration(start.Microseconds) * time.Microsecond
		entry.RosterEnd = time.Duration(end.Microseconds) * time.Microsecond
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
