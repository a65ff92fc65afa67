package entities

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// examDateLayout is the year-agnostic month/day format course exam dates
// are written in, e.g. "Dec 5".
const examDateLayout = "Jan 2"

// dayKeyLayout is the canonical calendar-day identifier used for snapshot
// same-day comparison.
const dayKeyLayout = "2006-01-02"

// ParseExamMonthDay parses a month/day string like "Dec 5". The returned
// time carries a placeholder year and is only useful through
// ResolveExamYear.
func ParseExamMonthDay(monthDay string) (time.Time, error) {
	parsed, err := time.Parse(examDateLayout, strings.TrimSpace(monthDay))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableExamDate, monthDay)
	}
	return parsed, nil
}

// ResolveExamYear resolves a year-agnostic exam date against a reference
// date. The date is first placed in the reference year; if that calendar
// day has already passed relative to the reference, it is reinterpreted as
// next year. This rolls exam dates forward across the year boundary.
func ResolveExamYear(monthDay string, ref time.Time) (time.Time, error) {
	parsed, err := ParseExamMonthDay(monthDay)
	if err != nil {
		return time.Time{}, err
	}
	resolved := time.Date(ref.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, ref.Location())
	if resolved.Before(StartOfDay(ref)) {
		resolved = resolved.AddDate(1, 0, 0)
	}
	return resolved, nil
}

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of whole days from today until the exam
// date, at day granularity. The exam's own day counts as zero. Rounding
// absorbs the off-by-an-hour spans DST transitions produce.
func DaysUntil(exam, today time.Time) int {
	diff := StartOfDay(exam).Sub(StartOfDay(today))
	return int(math.Round(diff.Hours() / 24))
}

// DayKey renders a time as its canonical calendar-day identifier.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}
