// Package summary turns sparse per-month play aggregates into a gap-free
// month-by-month sequence.
package summary

// MonthlyRecord holds the plays attributed to one calendar month
type MonthlyRecord struct {
	Month         YearMonth `json:"month"`
	PlayCount     int64     `json:"play_count"`
	TotalDuration int64     `json:"total_duration"` // in seconds
}

// Summarize fills the months missing from sparse with zero records, from the
// first month of sparse through now inclusive. sparse must be non-empty and
// strictly increasing by month. Entries after now are left out.
func Summarize(sparse []MonthlyRecord, now YearMonth) ([]MonthlyRecord, error) {
	if len(sparse) == 0 {
		return nil, ErrEmptyInput
	}
	if err := validate(sparse); err != nil {
		return nil, err
	}

	first := sparse[0].Month
	dense := make([]MonthlyRecord, 0, max(monthsBetween(first, now)+1, 0))

	i := 0
	for month := first; !month.After(now); month = month.Next() {
		if i < len(sparse) && sparse[i].Month == month {
			dense = append(dense, sparse[i])
			i++
			continue
		}
		dense = append(dense, MonthlyRecord{Month: month})
	}

	return dense, nil
}

func validate(sparse []MonthlyRecord) error {
	for i, r := range sparse {
		if r.Month.Month < 1 || r.Month.Month > 12 {
			return newMalformedInputError(i, r.Month, "month out of range")
		}
		if r.PlayCount < 0 || r.TotalDuration < 0 {
			return newMalformedInputError(i, r.Month, "negative play count or duration")
		}
		if i == 0 {
			continue
		}
		switch prev := sparse[i-1].Month; prev.Compare(r.Month) {
		case 0:
			return newMalformedInputError(i, r.Month, "duplicate month")
		case 1:
			return newMalformedInputError(i, r.Month, "not after "+prev.String())
		}
	}
	return nil
}

// monthsBetween returns the number of month steps from a to b, negative when b is before a
func monthsBetween(a, b YearMonth) int {
	return (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
}
