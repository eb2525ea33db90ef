// Package model defines the domain types shared by storage and services.
package model

import (
	"fmt"
	"time"
)

// Date is a calendar day in YYYY-MM-DD form. The representation sorts
// lexicographically in chronological order, so range queries compare strings.
type Date string

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate validates and converts a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format("2006-01-02"))
}

// Time returns the date at midnight UTC. Invalid dates return the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse("2006-01-02", string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether d is a well-formed calendar day.
func (d Date) Valid() bool {
	_, err := time.Parse("2006-01-02", string(d))
	return err == nil
}

// Day returns the day-of-month component.
func (d Date) Day() int {
	return d.Time().Day()
}

// MonthKey returns the month this date falls in.
func (d Date) MonthKey() MonthKey {
	t := d.Time()
	return NewMonthKey(t.Year(), t.Month())
}

// AddPeriods advances the date by n repeat periods using plain calendar
// arithmetic. Monthly and yearly steps are deliberately unclamped: Jan 31
// plus one month lands in March, matching how installment series are dated.
func (d Date) AddPeriods(period RepeatPeriod, n, customDays int) Date {
	t := d.Time()
	switch period {
	case RepeatDaily:
		t = t.AddDate(0, 0, n)
	case RepeatWeekly:
		t = t.AddDate(0, 0, 7*n)
	case RepeatMonthly:
		t = t.AddDate(0, n, 0)
	case RepeatYearly:
		t = t.AddDate(n, 0, 0)
	case RepeatCustom:
		t = t.AddDate(0, 0, customDays*n)
	}
	return DateOf(t)
}

// MonthKey is a calendar month in YYYY-MM form. Like Date, lexicographic
// order is chronological order.
type MonthKey string

// NewMonthKey builds a MonthKey from calendar components.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

// ParseMonthKey validates and converts a YYYY-MM string.
func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthKey(s), nil
}

// Valid reports whether m is a well-formed calendar month.
func (m MonthKey) Valid() bool {
	_, err := time.Parse("2006-01", string(m))
	return err == nil
}

func (m MonthKey) time() time.Time {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the year component.
func (m MonthKey) Year() int {
	return m.time().Year()
}

// Month returns the month component.
func (m MonthKey) Month() time.Month {
	return m.time().Month()
}

// Prev returns the preceding month, rolling over year boundaries.
func (m MonthKey) Prev() MonthKey {
	return m.AddMonths(-1)
}

// AddMonths advances the month by n, which may be negative.
func (m MonthKey) AddMonths(n int) MonthKey {
	t := m.time().AddDate(0, n, 0)
	return NewMonthKey(t.Year(), t.Month())
}

// Days returns the number of days in the month, February respecting leap
// years.
func (m MonthKey) Days() int {
	t := m.time()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Range returns the first and last day of the month, inclusive.
func (m MonthKey) Range() (Date, Date) {
	t := m.time()
	first := NewDate(t.Year(), t.Month(), 1)
	last := NewDate(t.Year(), t.Month(), m.Days())
	return first, last
}

// ClampDay returns the given day within this month, clamped to the month's
// length: day 31 in February becomes the 28th or 29th. This is the clamped
// counterpart to Date.AddPeriods — fixed bills regenerate on a stable
// day-of-month, never spilling into the next month.
func (m MonthKey) ClampDay(day int) Date {
	if day < 1 {
		day = 1
	}
	if last := m.Days(); day > last {
		day = last
	}
	t := m.time()
	return NewDate(t.Year(), t.Month(), day)
}
