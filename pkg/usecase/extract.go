package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
)

// displayDateFormat renders message times as dd/mm/yyyy with 2-digit fields
const displayDateFormat = "02/01/2006"

// userMessages filters msgs down to non-empty messages from userID, sorted
// oldest first.
func userMessages(msgs []model.Message, userID string) []model.Message {
	filtered := make([]model.Message, 0, len(msgs))
	for _, msg := range msgs {
		if msg.UserID == userID && msg.Text != "" {
			filtered = append(filtered, msg)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Before(filtered[j])
	})
	return filtered
}

func containsTag(text, tag string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(tag))
}

// extractPair finds the first message carrying startTag, then the first
// message carrying any of endTags posted strictly after it. End tags before
// the start are ignored; only the first complete pair is reported, multiple
// cycles per window are not modeled.
func extractPair(msgs []model.Message, userID, startTag string, endTags []string) (start, end *time.Time) {
	ordered := userMessages(msgs, userID)

	var startMsg *model.Message
	for i := range ordered {
		if containsTag(ordered[i].Text, startTag) {
			startMsg = &ordered[i]
			break
		}
	}
	if startMsg == nil {
		return nil, nil
	}

	startTime := startMsg.Time()
	start = &startTime

	for i := range ordered {
		if !startMsg.Before(ordered[i]) {
			continue
		}
		for _, tag := range endTags {
			if containsTag(ordered[i].Text, tag) {
				endTime := ordered[i].Time()
				return start, &endTime
			}
		}
	}

	return start, nil
}

// extractTagged collects every message carrying tag, newest first, stripping
// the tag and everything before it from the content.
func extractTagged(msgs []model.Message, userID, tag string) []model.TaggedEvent {
	ordered := userMessages(msgs, userID)

	var events []model.TaggedEvent
	// Walk newest first
	for i := len(ordered) - 1; i >= 0; i-- {
		msg := ordered[i]
		if !containsTag(msg.Text, tag) {
			continue
		}

		content := msg.Text
		if idx := strings.Index(strings.ToLower(content), strings.ToLower(tag)); idx >= 0 {
			content = strings.TrimSpace(content[idx+len(tag):])
		}

		at := msg.Time()
		events = append(events, model.TaggedEvent{
			Timestamp: at,
			Content:   content,
			Date:      at.Format(displayDateFormat),
		})
	}

	return events
}
