package types

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Timeframe represents a named reporting period. Each timeframe resolves to a
// single lower-bound instant; "now" is the implicit upper bound.
type Timeframe string

const (
	TimeframeToday     Timeframe = "today"
	TimeframeYesterday Timeframe = "yesterday"
	TimeframeThisWeek  Timeframe = "this_week"
)

// AllTimeframes returns all valid timeframes
func AllTimeframes() []Timeframe {
	return []Timeframe{
		TimeframeToday,
		TimeframeYesterday,
		TimeframeThisWeek,
	}
}

// IsValid checks if the timeframe is valid
func (t Timeframe) IsValid() bool {
	switch t {
	case TimeframeToday,
		TimeframeYesterday,
		TimeframeThisWeek:
		return true
	default:
		return false
	}
}

// Normalize returns the timeframe, treating empty as TimeframeToday
func (t Timeframe) Normalize() Timeframe {
	if t == "" {
		return TimeframeToday
	}
	return t
}

// String returns the string representation of the timeframe
func (t Timeframe) String() string {
	return string(t)
}

// ParseTimeframe parses a string into a Timeframe
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s).Normalize()
	if !tf.IsValid() {
		return "", goerr.New("invalid timeframe", goerr.V("timeframe", s), goerr.T(TagBadRequest))
	}
	return tf, nil
}

// WindowStart resolves the timeframe to its absolute lower bound relative to
// now, in now's location:
//   - today: local midnight of the current day
//   - yesterday: local midnight of the previous day
//   - this_week: local midnight of the Monday on or before today
func (t Timeframe) WindowStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch t.Normalize() {
	case TimeframeYesterday:
		return midnight.AddDate(0, 0, -1)
	case TimeframeThisWeek:
		back := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			back = 6
		}
		return midnight.AddDate(0, 0, -back)
	default:
		return midnight
	}
}
