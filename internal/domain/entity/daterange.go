package entity

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"mindtrack/internal/domain/errs"
)

// DateRange is an inclusive span of calendar days. The zero value is the empty range.
type DateRange struct {
	Start civil.Date `json:"start_date"`
	End   civil.Date `json:"end_date"`
}

// NewDateRange builds a range and validates it
func NewDateRange(start, end civil.Date) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD strings
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := civil.ParseDate(start)
	if err != nil {
		return DateRange{}, errs.Wrap(errs.ErrInvalidRange, "Invalid date format. Use YYYY-MM-DD.", err)
	}
	e, err := civil.ParseDate(end)
	if err != nil {
		return DateRange{}, errs.Wrap(errs.ErrInvalidRange, "Invalid date format. Use YYYY-MM-DD.", err)
	}
	return NewDateRange(s, e)
}

// LastDays returns the n-day window ending on the calendar day of now in loc
func LastDays(now time.Time, loc *time.Location, n int) DateRange {
	if n <= 0 {
		return DateRange{}
	}
	end := civil.DateOf(now.In(loc))
	return DateRange{Start: end.AddDays(-(n - 1)), End: end}
}

// IsZero reports whether r is the empty range
func (r DateRange) IsZero() bool {
	return r.Start == (civil.Date{}) && r.End == (civil.Date{})
}

// Validate fails with ErrInvalidRange when the bounds are malformed or reversed
func (r DateRange) Validate() error {
	if r.IsZero() {
		return nil
	}
	if !r.Start.IsValid() || !r.End.IsValid() {
		return errs.New(errs.ErrInvalidRange, "Invalid date range.")
	}
	if r.Start.After(r.End) {
		return errs.New(errs.ErrInvalidRange,
			fmt.Sprintf("Start date %s is after end date %s.", r.Start, r.End))
	}
	return nil
}

// Len is the number of days in the range
func (r DateRange) Len() int {
	if r.IsZero() || r.Start.After(r.End) {
		return 0
	}
	return r.End.DaysSince(r.Start) + 1
}

// Contains reports whether d falls inside the range
func (r DateRange) Contains(d civil.Date) bool {
	if r.Len() == 0 {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every day of the range in ascending order
func (r DateRange) Days() []civil.Date {
	n := r.Len()
	days := make([]civil.Date, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, r.Start.AddDays(i))
	}
	return days
}
