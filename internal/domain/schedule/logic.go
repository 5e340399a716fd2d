package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrBadTimeOfDay = errors.New("time of day must be HH:MM or HH:MM:SS")

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseTimeOfDay(value string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrBadTimeOfDay
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, ErrBadTimeOfDay
		}
		nums[i] = n
	}
	h, m, s := nums[0], nums[1], nums[2]
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, ErrBadTimeOfDay
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

// FormatTimeOfDay renders an offset from midnight as HH:MM:SS.
func FormatTimeOfDay(offset time.Duration) string {
	offset = offset.Round(time.Second)
	h := offset / time.Hour
	m := (offset % time.Hour) / time.Minute
	s := (offset % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// UpcomingWeek returns the Monday..Sunday window schedules may be set in,
// relative to today. When today is a Monday the window starts today.
func UpcomingWeek(today time.Time) (monday, sunday time.Time) {
	today = today.UTC().Truncate(24 * time.Hour)
	offset := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	monday = today.AddDate(0, 0, offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// WindowsOverlap reports whether a new roster window collides with an
// existing one on the same date. Either boundary landing strictly inside the
// existing window counts.
func WindowsOverlap(newStart, newEnd, existingStart, existingEnd time.Duration) bool {
	return (newStart >= existingStart && newStart < existingEnd) ||
		(newEnd > existingStart && newEnd <= existingEnd)
}
