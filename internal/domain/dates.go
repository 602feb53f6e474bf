package domain

import "time"

// Stay dates are day-precision. Every check-in/check-out value is normalized
// to UTC midnight so that nights arithmetic never crosses a DST boundary.

const DateLayout = "2006-01-02"

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NormalizeDate drops any time-of-day component and pins the value to UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Nights returns the number of nights in the half-open range
// [checkIn, checkOut). Both ends are normalized first, so the result is a
// pure calendar-date difference.
func Nights(checkIn, checkOut time.Time) int {
	in := NormalizeDate(checkIn)
	out := NormalizeDate(checkOut)
	return int(out.Sub(in) / (24 * time.Hour))
}

// Overlaps reports whether the half-open ranges [a1,b1) and [a2,b2) share at
// least one night: a1 < b2 && a2 < b1. Ranges that merely touch at a boundary
// (checkout morning == checkin day) do not overlap.
func Overlaps(a1, b1, a2, b2 time.Time) bool {
	return a1.Before(b2) && a2.Before(b1)
}
