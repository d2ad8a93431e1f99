package summary

import (
	"fmt"
	"time"
)

// monthLayout is the canonical text form of a YearMonth
const monthLayout = "2006-01"

// YearMonth identifies a calendar month
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t, in t's location
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses the YYYY-MM form
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// String returns the YYYY-MM form
func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next returns the following calendar month
func (m YearMonth) Next() YearMonth {
	if m.Month == time.December {
		return YearMonth{Year: m.Year + 1, Month: time.January}
	}
	return YearMonth{Year: m.Year, Month: m.Month + 1}
}

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after o
func (m YearMonth) Compare(o YearMonth) int {
	switch {
	case m.Year < o.Year:
		return -1
	case m.Year > o.Year:
		return 1
	case m.Month < o.Month:
		return -1
	case m.Month > o.Month:
		return 1
	}
	return 0
}

// Before reports whether m is earlier than o
func (m YearMonth) Before(o YearMonth) bool {
	return m.Compare(o) < 0
}

// After reports whether m is later than o
func (m YearMonth) After(o YearMonth) bool {
	return m.Compare(o) > 0
}

// MarshalText implements encoding.TextMarshaler so reports serialize as "YYYY-MM"
func (m YearMonth) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *YearMonth) UnmarshalText(b []byte) error {
	parsed, err := ParseYearMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
