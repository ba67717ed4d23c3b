// Package calendar holds the civil-date arithmetic used by the scope and
// grouping packages: ISO-8601 weeks, Monday-aligned weeks, month grids and
// YYYY-MM-DD keys.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrInvalidDate = errors.New("calendar: invalid date")

const keyLayout = "2006-01-02"

// Date is a naive calendar date. It carries no clock and no location, so two
// dates compare equal regardless of the timezone they were read in.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New normalizes out-of-range values the way time.Date does (Jan 32 -> Feb 1).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime reads the wall-clock date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func Today() Date {
	return FromTime(time.Now())
}

// DateKey returns the local YYYY-MM-DD key for t without converting to UTC.
func DateKey(t time.Time) string {
	return FromTime(t).Key()
}

// ParseDate decodes a YYYY-MM-DD string. Longer ISO timestamps are accepted
// and only their date part is used, so "2025-03-10T23:00:00-05:00" is still
// 2025-03-10.
func ParseDate(raw string) (Date, error) {
	s := raw
	if len(s) > len(keyLayout) {
		if sep := s[len(keyLayout)]; sep == 'T' || sep == ' ' {
			s = s[:len(keyLayout)]
		}
	}
	if len(s) != len(keyLayout) || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	y, yErr := strconv.Atoi(s[0:4])
	m, mErr := strconv.Atoi(s[5:7])
	d, dErr := strconv.Atoi(s[8:10])
	if yErr != nil || mErr != nil || dErr != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	out := New(y, time.Month(m), d)
	if out.Year != y || int(out.Month) != m || out.Day != d {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return out, nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight of d in loc (time.Local when nil).
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return FromTime(d.utc().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

func (d Date) YearDay() int {
	return d.utc().YearDay()
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Key is the canonical YYYY-MM-DD form used as a map key.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string {
	return d.Key()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
