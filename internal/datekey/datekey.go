// Package datekey converts calendar dates to and from YYYY-MM-DD keys and
// does the month arithmetic behind a 7-column calendar.
package datekey

import (
	"fmt"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
)

// Key formats t as YYYY-MM-DD using t's own year, month and day. The
// location of t is respected as-is; no conversion happens.
func Key(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Parse parses a date key into midnight of that day in the local timezone.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: expected YYYY-MM-DD", key)
	}
	return t, nil
}

// Valid reports whether key is a well-formed, zero-padded date key.
func Valid(key string) bool {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return false
	}
	// time.Parse accepts some inputs Key would never produce.
	return Key(t) == key
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Of returns the month containing t.
func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a YYYY-MM selector.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return Of(t), nil
}

// String formats the month as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Title formats the month for headings, e.g. "March 2024".
func (ym YearMonth) Title() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// First returns midnight on the first day of the month, local time.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.Local)
}

// Day returns midnight on the given day of the month, local time.
func (ym YearMonth) Day(day int) time.Time {
	return time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.Local)
}

// Prev returns the month before ym.
func (ym YearMonth) Prev() YearMonth {
	return Of(ym.First().AddDate(0, -1, 0))
}

// Next returns the month after ym.
func (ym YearMonth) Next() YearMonth {
	return Of(ym.First().AddDate(0, 1, 0))
}

// Keys returns the date keys of every day in the month, in order.
func (ym YearMonth) Keys() []string {
	n := DaysInMonth(ym)
	keys := make([]string, 0, n)
	for d := 1; d <= n; d++ {
		keys = append(keys, Key(ym.Day(d)))
	}
	return keys
}

// DaysInMonth returns the number of days in the month. Day 0 of the next
// month normalizes to the last day of this one, which covers leap years.
func DaysInMonth(ym YearMonth) int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first of the month, 0 = Sunday.
func FirstWeekday(ym YearMonth) int {
	return int(time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}
