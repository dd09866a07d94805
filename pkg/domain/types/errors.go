package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so that callers can switch on kind instead of
// matching substrings of error messages.
var (
	// TagConfiguration marks errors caused by missing or invalid process
	// configuration (e.g. no bot token). Fatal, never retried.
	TagConfiguration = goerr.NewTag("configuration")

	// TagMissingScope marks errors where the Slack API denied a call due to
	// insufficient permission scope. The required scope is attached via ScopeKey.
	TagMissingScope = goerr.NewTag("missing_scope")

	// TagNotFound marks a channel that is absent or not accessible to the bot.
	// The two cases are deliberately not distinguished to avoid leaking channel
	// existence to unauthorized queries.
	TagNotFound = goerr.NewTag("not_found")

	// TagRateLimited marks a call that exhausted its rate-limit retry budget.
	TagRateLimited = goerr.NewTag("rate_limited")

	// TagRetryExhausted marks an operation that failed after its full retry budget.
	TagRetryExhausted = goerr.NewTag("retry_exhausted")

	// TagBadRequest marks invalid caller input such as an unknown timeframe.
	TagBadRequest = goerr.NewTag("bad_request")
)

// Keys for error context values
const (
	ChannelKey = "channel"
	ScopeKey   = "scope"
	UserIDKey  = "user_id"
	MethodKey  = "method"
)

// IsConfiguration reports whether the error is a configuration failure
func IsConfiguration(err error) bool { return goerr.HasTag(err, TagConfiguration) }

// IsMissingScope reports whether the error is a permission scope failure
func IsMissingScope(err error) bool { return goerr.HasTag(err, TagMissingScope) }

// IsNotFound reports whether the error is a channel-not-found failure
func IsNotFound(err error) bool { return goerr.HasTag(err, TagNotFound) }

// IsRateLimited reports whether the error is a rate-limit failure
func IsRateLimited(err error) bool { return goerr.HasTag(err, TagRateLimited) }

// IsRetryExhausted reports whether the error exhausted its retry budget
func IsRetryExhausted(err error) bool { return goerr.HasTag(err, TagRetryExhausted) }

// IsBadRequest reports whether the error is caused by invalid caller input
func IsBadRequest(err error) bool { return goerr.HasTag(err, TagBadRequest) }
