package slack

import (
	"context"
	"strconv"
	"time"

	"github.com/slack-go/slack"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
)

// HistorySince fetches the channel messages posted at or after since, with
// transparent cursor pagination. Messages keep the API's newest-first order.
func (c *client) HistorySince(ctx context.Context, channelID string, since time.Time) ([]model.Message, error) {
	oldest := strconv.FormatInt(since.Unix(), 10)

	var messages []model.Message
	var cursor string

	for page := 0; page < c.maxPages; page++ {
		var resp *slack.GetConversationHistoryResponse

		err := c.withRetry(ctx, "conversations.history", func() error {
			var callErr error
			resp, callErr = c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
				ChannelID: channelID,
				Oldest:    oldest,
				Limit:     c.pageLimit,
				Cursor:    cursor,
			})
			return callErr
		})
		if err != nil {
			return nil, wrapAPIError(err, "conversations.history", "channels:history")
		}

		for _, msg := range resp.Messages {
			messages = append(messages, model.Message{
				UserID:    msg.User,
				Text:      msg.Text,
				Timestamp: msg.Timestamp,
			})
		}

		cursor = resp.ResponseMetaData.NextCursor
		if cursor == "" {
			break
		}
	}

	return messages, nil
}
