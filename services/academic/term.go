package academic

import (
	"errors"
	"time"
)

var ErrInvalidTerm = errors.New("term must be 1 or 2")

// TermWindow returns the inclusive calendar window of an academic term:
// term 1 runs March 1 through July 31, term 2 runs August 1 through
// December 31 of the given year.
func TermWindow(term, year int) (start, end time.Time, err error) {
	switch term {
	case 1:
		start = time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, time.July, 31, 0, 0, 0, 0, time.UTC)
	case 2:
		start = time.Date(year, time.August, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, time.Time{}, ErrInvalidTerm
	}
	return start, end, nil
}

// InTermWindow reports whether a grade date falls inside the term window of
// its enrollment. Only the calendar date matters, not the time of day.
func InTermWindow(date time.Time, term, year int) bool {
	start, end, err := TermWindow(term, year)
	if err != nil {
		return false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}
