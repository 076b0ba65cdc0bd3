package datekit

import (
	"fmt"
	"time"
)

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start Date
	End   Date
}

// NewRange validates that start <= end.
func NewRange(start, end Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("%w: empty range bound", ErrInvalidDate)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: range end %s before start %s", ErrInvalidDate, end, start)
	}
	return DateRange{Start: start, End: end}, nil
}

// MonthWindow returns day 1..days of the given month. days <= 0 or larger
// than the month selects the whole month.
func MonthWindow(year int, month time.Month, days int) DateRange {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if days <= 0 || days > last {
		days = last
	}
	return DateRange{
		Start: Date{Year: year, Month: month, Day: 1},
		End:   Date{Year: year, Month: month, Day: days},
	}
}

// Len is the number of days in r.
func (r DateRange) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return daysBetween(r.Start, r.End) + 1
}

// Contains reports whether d falls inside r.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every day of r in ascending order.
func (r DateRange) Days() []Date {
	n := r.Len()
	out := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.Start.AddDays(i))
	}
	return out
}

// String renders r as "start..end".
func (r DateRange) String() string { return r.Start.String() + ".." + r.End.String() }

// daysBetween counts whole days from a to b using UTC midnights, which never
// observe DST shifts.
func daysBetween(a, b Date) int {
	return int(b.In(time.UTC).Sub(a.In(time.UTC)).Hours() / 24)
}
