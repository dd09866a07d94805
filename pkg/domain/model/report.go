package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
)

// TaggedEvent is one matched hashtag occurrence extracted from a message.
// Content holds the message text after the tag; Date is a dd/mm/yyyy display
// form of the message time.
type TaggedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
}

// LunchStatus is the per-user outcome of a lunch-tag scan
type LunchStatus struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Status          types.LunchState `json:"status"`
	LunchStartTime  *time.Time       `json:"lunchStartTime,omitempty"`
	LunchEndTime    *time.Time       `json:"lunchEndTime,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
}

// NewLunchStatus builds a LunchStatus from the extracted tag pair, deriving
// the state so that Status is complete if and only if both times are set.
func NewLunchStatus(user User, start, end *time.Time) LunchStatus {
	status := LunchStatus{
		ID:             user.ID,
		Name:           user.Name,
		Status:         types.LunchStateComplete,
		LunchStartTime: start,
		LunchEndTime:   end,
	}

	switch {
	case start == nil && end == nil:
		status.Status = types.LunchStateMissingBoth
	case start == nil:
		status.Status = types.LunchStateMissingStart
	case end == nil:
		status.Status = types.LunchStateMissingEnd
	default:
		minutes := int(end.Sub(*start) / time.Minute)
		status.DurationMinutes = &minutes
	}

	return status
}

// UpdateStatus is the per-user outcome of an update-tag scan
type UpdateStatus struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	HasPosted  bool          `json:"hasPosted"`
	Timestamp  *time.Time    `json:"timestamp,omitempty"`
	Content    string        `json:"content,omitempty"`
	AllUpdates []TaggedEvent `json:"allUpdates,omitempty"`
}

// NewUpdateStatus builds an UpdateStatus from extracted events (newest first).
// HasPosted is true iff events is non-empty, and Timestamp/Content mirror the
// newest event.
func NewUpdateStatus(user User, events []TaggedEvent) UpdateStatus {
	status := UpdateStatus{
		ID:   user.ID,
		Name: user.Name,
	}
	if len(events) > 0 {
		status.HasPosted = true
		status.Timestamp = &events[0].Timestamp
		status.Content = events[0].Content
		status.AllUpdates = events
	}
	return status
}

// ReportStatus is the per-user outcome of a report-tag scan
type ReportStatus struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	HasPosted  bool          `json:"hasPosted"`
	Timestamp  *time.Time    `json:"timestamp,omitempty"`
	Content    string        `json:"content,omitempty"`
	AllReports []TaggedEvent `json:"allReports,omitempty"`
}

// NewReportStatus builds a ReportStatus from extracted events (newest first)
func NewReportStatus(user User, events []TaggedEvent) ReportStatus {
	status := ReportStatus{
		ID:   user.ID,
		Name: user.Name,
	}
	if len(events) > 0 {
		status.HasPosted = true
		status.Timestamp = &events[0].Timestamp
		status.Content = events[0].Content
		status.AllReports = events
	}
	return status
}

// LunchReport summarizes lunch-tag status for one channel and timeframe.
// Total counts users whose status is not complete.
type LunchReport struct {
	ID        string          `json:"id"`
	Channel   string          `json:"channel"`
	Timeframe types.Timeframe `json:"timeframe"`
	Users     []LunchStatus   `json:"users"`
	Total     int             `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewLunchReport assembles a LunchReport, computing the incomplete-user total
func NewLunchReport(channel string, timeframe types.Timeframe, users []LunchStatus, now time.Time) *LunchReport {
	total := 0
	for _, u := range users {
		if !u.Status.IsComplete() {
			total++
		}
	}
	return &LunchReport{
		ID:        uuid.NewString(),
		Channel:   channel,
		Timeframe: timeframe,
		Users:     users,
		Total:     total,
		Timestamp: now,
	}
}

// UpdateReport summarizes update-tag status for one channel and timeframe
type UpdateReport struct {
	ID        string          `json:"id"`
	Channel   string          `json:"channel"`
	Timeframe types.Timeframe `json:"timeframe"`
	Users     []UpdateStatus  `json:"users"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewUpdateReport assembles an UpdateReport
func NewUpdateReport(channel string, timeframe types.Timeframe, users []UpdateStatus, now time.Time) *UpdateReport {
	return &UpdateReport{
		ID:        uuid.NewString(),
		Channel:   channel,
		Timeframe: timeframe,
		Users:     users,
		Timestamp: now,
	}
}

// ReportStatusReport summarizes report-tag status for one channel and timeframe
type ReportStatusReport struct {
	ID        string          `json:"id"`
	Channel   string          `json:"channel"`
	Timeframe types.Timeframe `json:"timeframe"`
	Users     []ReportStatus  `json:"users"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewReportStatusReport assembles a ReportStatusReport
func NewReportStatusReport(channel string, timeframe types.Timeframe, users []ReportStatus, now time.Time) *ReportStatusReport {
	return &ReportStatusReport{
		ID:        uuid.NewString(),
		Channel:   channel,
		Timeframe: timeframe,
		Users:     users,
		Timestamp: now,
	}
}
