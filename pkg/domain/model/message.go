package model

import (
	"strconv"
	"strings"
	"time"
)

// Message is one raw channel message as returned by the history scanner.
// Timestamp keeps Slack's native "seconds.fraction" form; the fraction is
// significant for ordering but not for display.
type Message struct {
	UserID    string
	Text      string
	Timestamp string
}

// TSValue returns the timestamp as a float for ordering comparisons
func (m Message) TSValue() float64 {
	v, err := strconv.ParseFloat(m.Timestamp, 64)
	if err != nil {
		return 0
	}
	return v
}

// Time returns the message time truncated to whole epoch seconds
func (m Message) Time() time.Time {
	sec := m.Timestamp
	if i := strings.IndexByte(sec, '.'); i >= 0 {
		sec = sec[:i]
	}
	v, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

// Before reports whether m was posted strictly before other
func (m Message) Before(other Message) bool {
	return m.TSValue() < other.TSValue()
}
