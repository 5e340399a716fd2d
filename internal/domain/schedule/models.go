package schedule

import "time"

// Entry is one employee's roster window on one date. Offsets are from
// midnight, with RosterStart strictly before RosterEnd.
type Entry struct {
	ID          string        `json:"id"`
	EmployeeID  string        `json:"employeeId"`
	Date        time.Time     `json:"date"`
	RosterStart time.Duration `json:"-"`
	RosterEnd   time.Duration `json:"-"`
	CreatedAt   time.Time     `json:"createdAt"`
}
