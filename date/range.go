package date

import "fmt"

// Range is an interval of days, both bounds included.
type Range struct{ From, To Date }

// NewRange returns the period p containing d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Year returns the calendar year y.
func Year(y int) Range { return NewRange(New(y, 1, 1), Yearly) }

// Contains reports whether d is within the range.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Identifier returns a short unique key of the range: "2024-03" for a month,
// "2024-Q1" for a quarter, "2024" for a year, "from_to" otherwise.
func (r Range) Identifier() string {
	switch r {
	case NewRange(r.From, Monthly):
		return r.From.Format("2006-01")
	case NewRange(r.From, Quarterly):
		return fmt.Sprintf("%d-Q%d", r.From.Year(), Quarter(r.From))
	case NewRange(r.From, Yearly):
		return r.From.Format("2006")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}
