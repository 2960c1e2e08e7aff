// Package calendar holds the date-only arithmetic shared by the farm rules.
// All values are civil dates anchored at midnight UTC so that day counts are
// never skewed by DST or the caller's timezone.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format for dates.
const Layout = "2006-01-02"

// Day returns the civil date of t (in t's own location) as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays adds n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a to b. It is negative
// when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// MonthsBetween returns the whole calendar months elapsed from a to b, or a
// negative count when b precedes a.
func MonthsBetween(a, b time.Time) int {
	a, b = Day(a), Day(b)
	if b.Before(a) {
		return -MonthsBetween(b, a)
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// Parse reads a YYYY-MM-DD string. Longer timestamps are truncated to the date part.
func Parse(value string) (time.Time, error) {
	str := strings.TrimSpace(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(Layout, str)
}

// ParseOptional parses value when non-empty.
func ParseOptional(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := Parse(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Range is an inclusive date window. Zero bounds are open.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the civil date of t lies inside the range.
func (r Range) Contains(t time.Time) bool {
	d := Day(t)
	if !r.From.IsZero() && d.Before(Day(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(Day(r.To)) {
		return false
	}
	return true
}

// Month returns the range covering t's calendar month.
func Month(t time.Time) Range {
	return Range{From: MonthStart(t), To: MonthEnd(t)}
}
