package analytics

import "time"

// Window is a half-open [Start, End) date range all engine queries are
// restricted to.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// String renders the window the way reports present periods.
func (w Window) String() string {
	return w.Start.Format("2006-01-02") + " to " + w.End.Format("2006-01-02")
}

// Interval is the bucket width used by timeline queries.
type Interval string

const (
	IntervalHour  Interval = "hour"
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// Valid reports whether the interval is one of the supported bucket widths.
func (i Interval) Valid() bool {
	switch i {
	case IntervalHour, IntervalDay, IntervalWeek, IntervalMonth:
		return true
	}
	return false
}

// String returns the string representation of the interval
func (i Interval) String() string {
	return string(i)
}
