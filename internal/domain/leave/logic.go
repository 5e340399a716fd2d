package leave

import (
	"math"
	"time"
)

// RequestedDays returns the inclusive whole-day count for a leave range,
// rounding a partial trailing day up.
func RequestedDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	return math.Ceil(end.Sub(start).Hours()/24) + 1, nil
}

// ShortHours returns the elapsed duration of a short-leave window in hours.
func ShortHours(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	return end.Sub(start).Hours(), nil
}

// Overlaps reports whether two inclusive date ranges share at least one day.
// A shared boundary day counts as an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// TimeOfDay returns t's offset from midnight UTC.
func TimeOfDay(t time.Time) time.Duration {
	h, m, s := t.UTC().Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}
