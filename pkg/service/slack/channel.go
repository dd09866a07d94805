package slack

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/utils/logging"
)

// channelListScope names the permissions conversations.list needs for public
// and private channels
const channelListScope = "channels:read,groups:read"

// ResolveChannel maps a channel name to its channel ID. The match is a
// case-insensitive exact comparison against all non-archived public and
// private channels. A channel the bot is not a member of is reported the same
// way as an absent one, so that unauthorized queries cannot probe for channel
// existence.
func (c *client) ResolveChannel(ctx context.Context, name string) (string, error) {
	name = strings.TrimPrefix(name, "#")

	var cursor string
	for page := 0; page < c.maxPages; page++ {
		var convs []slack.Channel
		var nextCursor string

		err := c.withRetry(ctx, "conversations.list", func() error {
			var callErr error
			convs, nextCursor, callErr = c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
				Types:           []string{"public_channel", "private_channel"},
				ExcludeArchived: true,
				Limit:           c.pageLimit,
				Cursor:          cursor,
			})
			return callErr
		})
		if err != nil {
			return "", wrapAPIError(err, "conversations.list", channelListScope)
		}

		for _, conv := range convs {
			if !strings.EqualFold(conv.Name, name) {
				continue
			}
			if !conv.IsMember {
				logging.From(ctx).Warn("channel matched but bot is not a member",
					"channel", conv.Name, "channel_id", conv.ID)
				break
			}
			return conv.ID, nil
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	return "", goerr.New("channel not found or not accessible",
		goerr.T(types.TagNotFound),
		goerr.V(types.ChannelKey, name))
}
