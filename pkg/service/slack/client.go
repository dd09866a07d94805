package slack

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/taskhubnet/statuswatch/pkg/domain/interfaces"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/utils/logging"
)

const (
	// DefaultPageLimit is the page size requested from paginated API methods
	DefaultPageLimit = 1000
	// DefaultMaxPages bounds cursor pagination loops against runaway cursors
	DefaultMaxPages = 20
	// DefaultRateLimitRetries bounds how often a single call is retried on 429
	DefaultRateLimitRetries = 3
	// DefaultRetryAfter is the backoff used when the API does not say how long to wait
	DefaultRetryAfter = 30 * time.Second
	// DefaultBatchSize is the number of concurrent user lookups per batch
	DefaultBatchSize = 10
	// DefaultBatchPause is the pause between user lookup batches
	DefaultBatchPause = time.Second
	// memberLookupAttempts is the total attempt budget for the member enumeration
	// (initial call plus three retries)
	memberLookupAttempts = 4
)

// client implements interfaces.SlackService
type client struct {
	api        *slack.Client
	apiURL     string
	pageLimit  int
	maxPages   int
	maxRetries int
	batchSize  int
	batchPause time.Duration

	// sleep is replaceable in tests so backoff paths don't slow the suite
	sleep func(ctx context.Context, d time.Duration) error
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIURL overrides the Slack API base URL (must end with a slash)
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.apiURL = url
	}
}

// WithBatchSize sets the number of concurrent user lookups per batch
func WithBatchSize(n int) Option {
	return func(c *client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithBatchPause sets the pause between user lookup batches
func WithBatchPause(d time.Duration) Option {
	return func(c *client) {
		if d >= 0 {
			c.batchPause = d
		}
	}
}

// WithPageLimit sets the page size for paginated API calls
func WithPageLimit(n int) Option {
	return func(c *client) {
		if n > 0 {
			c.pageLimit = n
		}
	}
}

// WithMaxPages sets the pagination guard
func WithMaxPages(n int) Option {
	return func(c *client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithRateLimitRetries sets how often a single call is retried on 429
func WithRateLimitRetries(n int) Option {
	return func(c *client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// withSleeper replaces the backoff sleeper (tests only)
func withSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *client) {
		c.sleep = fn
	}
}

// New creates a Slack service with the provided bot token
func New(token string, opts ...Option) (interfaces.SlackService, error) {
	if token == "" {
		return nil, goerr.New("slack bot token is required",
			goerr.T(types.TagConfiguration))
	}

	c := &client{
		pageLimit:  DefaultPageLimit,
		maxPages:   DefaultMaxPages,
		maxRetries: DefaultRateLimitRetries,
		batchSize:  DefaultBatchSize,
		batchPause: DefaultBatchPause,
		sleep:      sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	var slackOpts []slack.Option
	if c.apiURL != "" {
		slackOpts = append(slackOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, slackOpts...)

	return c, nil
}

// withRetry runs fn, retrying on rate-limit errors up to the configured budget.
// The wait duration comes from the API's Retry-After; DefaultRetryAfter is used
// when the API gives none.
func (c *client) withRetry(ctx context.Context, method string, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()

		wait, limited := rateLimitWait(err)
		if !limited {
			return err
		}

		if attempt >= c.maxRetries {
			return goerr.Wrap(err, "rate limit retry budget exhausted",
				goerr.T(types.TagRateLimited),
				goerr.V(types.MethodKey, method),
				goerr.V("attempts", attempt+1))
		}

		logging.From(ctx).Warn("rate limited by slack api",
			"method", method, "retry_after", wait.String())

		if err := c.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// rateLimitWait reports whether err is a 429 and how long to wait before the
// next attempt. A 429 without a usable Retry-After surfaces from slack-go as a
// plain status-code error instead of a RateLimitedError; both forms count, and
// the missing duration falls back to DefaultRetryAfter.
func rateLimitWait(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}

	var rle *slack.RateLimitedError
	if errors.As(err, &rle) {
		if rle.RetryAfter > 0 {
			return rle.RetryAfter, true
		}
		return DefaultRetryAfter, true
	}

	var sce slack.StatusCodeError
	if errors.As(err, &sce) && sce.Code == http.StatusTooManyRequests {
		return DefaultRetryAfter, true
	}

	return 0, false
}

// wrapAPIError translates a slack-go error into the domain taxonomy. scope
// names the permission the method needs, used for actionable missing_scope
// messages.
func wrapAPIError(err error, method, scope string) error {
	var serr slack.SlackErrorResponse
	if errors.As(err, &serr) {
		switch serr.Err {
		case "missing_scope":
			return goerr.Wrap(err, "slack bot token is missing the required permission scope",
				goerr.T(types.TagMissingScope),
				goerr.V(types.ScopeKey, scope),
				goerr.V(types.MethodKey, method))
		case "channel_not_found", "not_in_channel":
			return goerr.Wrap(err, "channel not found or not accessible",
				goerr.T(types.TagNotFound),
				goerr.V(types.MethodKey, method))
		}
	}

	return goerr.Wrap(err, "slack api call failed", goerr.V(types.MethodKey, method))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
