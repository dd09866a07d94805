package slack

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/utils/logging"
)

// ListMembers returns the resolved users present in the channel. Member IDs
// are fetched with transparent pagination, then resolved via users.info in
// batches of concurrent lookups with a pause between batches to stay under
// the API rate limit. The whole enumeration is retried with exponential
// backoff; a failed lookup of an individual user only omits that user.
func (c *client) ListMembers(ctx context.Context, channelID string) ([]model.User, error) {
	var lastErr error
	for attempt := 0; attempt < memberLookupAttempts; attempt++ {
		if attempt > 0 {
			wait := time.Second << (attempt - 1)
			logging.From(ctx).Warn("retrying channel member enumeration",
				"channel_id", channelID, "attempt", attempt, "wait", wait.String())
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		users, err := c.enumerateMembers(ctx, channelID)
		if err == nil {
			return users, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}

	return nil, goerr.Wrap(lastErr, "channel member enumeration retries exhausted",
		goerr.T(types.TagRetryExhausted),
		goerr.V(types.ChannelKey, channelID),
		goerr.V("attempts", memberLookupAttempts))
}

func (c *client) enumerateMembers(ctx context.Context, channelID string) ([]model.User, error) {
	ids, err := c.memberIDs(ctx, channelID)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(ids))
	for start := 0; start < len(ids); start += c.batchSize {
		end := min(start+c.batchSize, len(ids))
		batch := ids[start:end]

		results := make([]*model.User, len(batch))
		eg, egCtx := errgroup.WithContext(ctx)
		for i, id := range batch {
			eg.Go(func() error {
				user, err := c.userInfo(egCtx, id)
				if err != nil {
					if egCtx.Err() != nil {
						return err
					}
					// Partial results are acceptable; skip this user.
					logging.From(egCtx).Warn("failed to look up user, omitting from report",
						"user_id", id, "error", err.Error())
					return nil
				}
				results[i] = user
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		for _, user := range results {
			if user != nil {
				users = append(users, *user)
			}
		}

		if end < len(ids) {
			if err := c.sleep(ctx, c.batchPause); err != nil {
				return nil, err
			}
		}
	}

	return users, nil
}

func (c *client) memberIDs(ctx context.Context, channelID string) ([]string, error) {
	var ids []string
	var cursor string

	for page := 0; page < c.maxPages; page++ {
		var members []string
		var nextCursor string

		err := c.withRetry(ctx, "conversations.members", func() error {
			var callErr error
			members, nextCursor, callErr = c.api.GetUsersInConversationContext(ctx, &slack.GetUsersInConversationParameters{
				ChannelID: channelID,
				Limit:     c.pageLimit,
				Cursor:    cursor,
			})
			return callErr
		})
		if err != nil {
			return nil, wrapAPIError(err, "conversations.members", "channels:read")
		}

		ids = append(ids, members...)

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	return ids, nil
}

func (c *client) userInfo(ctx context.Context, userID string) (*model.User, error) {
	var info *slack.User

	err := c.withRetry(ctx, "users.info", func() error {
		var callErr error
		info, callErr = c.api.GetUserInfoContext(ctx, userID)
		return callErr
	})
	if err != nil {
		return nil, wrapAPIError(err, "users.info", "users:read")
	}

	name := info.Profile.DisplayName
	if name == "" {
		name = info.Name
	}

	return &model.User{
		ID:       info.ID,
		Name:     name,
		RealName: info.Profile.RealName,
		Email:    info.Profile.Email,
		Avatar:   info.Profile.Image72,
	}, nil
}
