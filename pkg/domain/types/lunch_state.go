package types

// LunchState describes how far a user got through a lunch-tag cycle within the
// reporting window. The wording of each value is part of the external report
// contract and must not change.
type LunchState string

const (
	LunchStateMissingBoth  LunchState = "missing both tags"
	LunchStateMissingStart LunchState = "missing #lunchstart"
	LunchStateMissingEnd   LunchState = "missing #lunchend"
	LunchStateComplete     LunchState = "complete"
)

// String returns the string representation of the lunch state
func (s LunchState) String() string {
	return string(s)
}

// IsComplete reports whether both lunch tags were found in order
func (s LunchState) IsComplete() bool {
	return s == LunchStateComplete
}
