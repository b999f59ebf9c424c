package valueobject

import (
	"fmt"
	"time"
)

// PostingDate truncates t to midnight UTC of its calendar day. Closures and
// entry dates compare at day granularity.
func PostingDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of posting dates. A zero bound is open.
type DateRange struct {
	from time.Time
	to   time.Time
}

func NewDateRange(from, to time.Time) (DateRange, error) {
	if !from.IsZero() {
		from = PostingDate(from)
	}
	if !to.IsZero() {
		to = PostingDate(to)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return DateRange{}, fmt.Errorf("invalid date range: %s is before %s",
			to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	return DateRange{from: from, to: to}, nil
}

func (r DateRange) From() time.Time { return r.from }
func (r DateRange) To() time.Time   { return r.to }

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = PostingDate(d)
	if !r.from.IsZero() && d.Before(r.from) {
		return false
	}
	if !r.to.IsZero() && d.After(r.to) {
		return false
	}
	return true
}
