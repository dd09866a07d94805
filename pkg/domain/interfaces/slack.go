package interfaces

import (
	"context"
	"time"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
)

// SlackService is the outbound interface to the Slack Web API used by report
// building. Implementations handle pagination and rate-limit backoff
// internally; callers see complete results or a classified error.
type SlackService interface {
	// ResolveChannel maps a channel name (without leading '#',
	// case-insensitive) to its channel ID. Channels the bot is not a member
	// of are reported as not found.
	ResolveChannel(ctx context.Context, name string) (string, error)

	// ListMembers returns the resolved users present in the channel.
	// Individual lookup failures degrade to partial results.
	ListMembers(ctx context.Context, channelID string) ([]model.User, error)

	// HistorySince returns the channel messages posted at or after since,
	// in the order returned by the API (newest first).
	HistorySince(ctx context.Context, channelID string, since time.Time) ([]model.Message, error)
}
