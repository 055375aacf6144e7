package pricing

import (
	"fmt"
	"time"
)

// =============================================================================
// DAY - Day-granularity calendar point (check-in days, priced days)
// =============================================================================

// Day is a calendar day in UTC. All occupancy and strategy windows operate
// on whole days; timestamps only appear where strategies carry effective
// times and flash sales carry activity windows.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar day.
func DayOf(ts time.Time) Day {
	return NewDay(ts.Year(), ts.Month(), ts.Day())
}

// ParseDay parses a 2006-01-02 date string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

func Today() Day { return DayOf(time.Now().UTC()) }

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Day) IsZero() bool     { return d.t.IsZero() }
func (d Day) Time() time.Time  { return d.t }
func (d Day) String() string   { return d.t.Format("2006-01-02") }

// DaysBetween returns the whole-day distance from one day to another.
func DaysBetween(from, to Day) int { return int(to.t.Sub(from.t).Hours() / 24) }

// =============================================================================
// TIMESTAMP - Instant with convenience accessors
// =============================================================================

// Timestamp is an instant in UTC, used for strategy effective windows and
// flash-sale activity windows. A zero Timestamp means "not set".
type Timestamp struct {
	t time.Time
}

func NewTimestamp(year int, month time.Month, day, hour, min int) Timestamp {
	return Timestamp{t: time.Date(year, month, day, hour, min, 0, 0, time.UTC)}
}

func TimestampOf(ts time.Time) Timestamp { return Timestamp{t: ts.UTC()} }

// ParseTimestamp parses an RFC3339 instant, e.g. "2026-06-01T00:00:00Z".
func ParseTimestamp(s string) (Timestamp, error) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return TimestampOf(ts), nil
}

func Now() Timestamp { return TimestampOf(time.Now()) }

func (ts Timestamp) Before(other Timestamp) bool { return ts.t.Before(other.t) }
func (ts Timestamp) After(other Timestamp) bool  { return ts.t.After(other.t) }
func (ts Timestamp) IsZero() bool                { return ts.t.IsZero() }
func (ts Timestamp) Day() Day                    { return DayOf(ts.t) }
func (ts Timestamp) Time() time.Time             { return ts.t }
func (ts Timestamp) String() string              { return ts.t.Format(time.RFC3339) }

// =============================================================================
// DATE RANGE - Inclusive calendar interval
// =============================================================================

// DateRange is an inclusive interval of calendar days.
// Invariant: Start is never after End; NewDateRange enforces it.
type DateRange struct {
	Start Day
	End   Day
}

// NewDateRange builds a range, swapping endpoints if given out of order so
// the Start <= End invariant always holds.
func NewDateRange(start, end Day) DateRange {
	if end.Before(start) {
		start, end = end, start
	}
	return DateRange{Start: start, End: end}
}

// Contains reports whether the day falls within [Start, End].
func (r DateRange) Contains(d Day) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Days returns the finite increasing sequence of days in the range.
// Length is always DaysBetween(Start, End) + 1.
func (r DateRange) Days() []Day {
	days := make([]Day, 0, DaysBetween(r.Start, r.End)+1)
	for current := r.Start; current.BeforeOrEqual(r.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Len returns the number of days in the range.
func (r DateRange) Len() int { return DaysBetween(r.Start, r.End) + 1 }

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// =============================================================================
// OCCUPANCY RESOLUTION
// =============================================================================

// NumberOfNights bounds how long a stay must and may last.
type NumberOfNights struct {
	Min int
	Max int
}

// MinOccupancyRange derives the date range that must be priced for a stay
// starting at checkIn: [checkIn, checkIn + Min - 1]. A stay shorter than
// one night cannot be priced.
func (n NumberOfNights) MinOccupancyRange(checkIn Day) (DateRange, error) {
	if n.Min < 1 {
		return DateRange{}, &StayLengthError{Nights: n.Min}
	}
	return DateRange{Start: checkIn, End: checkIn.AddDays(n.Min - 1)}, nil
}
