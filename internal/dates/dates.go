// Package dates turns the loosely formatted dates typed on the command line
// into points in time and listening intervals.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultSpan is the length of an interval given by only one of its ends
const DefaultSpan = 24 * time.Hour

var (
	// ErrNoInterval is returned when neither end of an interval is given
	ErrNoInterval = errors.New("no interval given")

	// ErrInvertedInterval is returned when the end of an interval is before its start
	ErrInvertedInterval = errors.New("interval ends before it starts")
)

// Parse reads a date or date-time such as "2023-03-01", "March 1 2023" or
// "2023-03-01 18:30", interpreting zone-less values in loc
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid date: empty")
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ResolveInterval returns [from, to]. With only from it is [from, from+DefaultSpan],
// with only to it is [to-DefaultSpan, to].
func ResolveInterval(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	switch {
	case from == "" && to == "":
		return time.Time{}, time.Time{}, ErrNoInterval
	case to == "":
		if start, err = Parse(from, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = start.Add(DefaultSpan)
	case from == "":
		if end, err = Parse(to, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = end.Add(-DefaultSpan)
	default:
		if start, err = Parse(from, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end, err = Parse(to, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is before %s",
			ErrInvertedInterval, end.Format(time.DateTime), start.Format(time.DateTime))
	}
	return start, end, nil
}
