package usecase

import (
	"sync"
	"time"

	"github.com/taskhubnet/statuswatch/pkg/domain/interfaces"
)

const (
	// DefaultChannel is used when a caller passes an empty channel name
	DefaultChannel = "general"
	// DefaultExtractConcurrency throttles per-user tag extraction so large
	// channels do not trip the API rate limit
	DefaultExtractConcurrency = 10
	// DefaultCacheTTL is how long a cached report is served without rebuilding
	DefaultCacheTTL = 5 * time.Minute
)

// UseCases builds tag-status reports from live Slack channel state
type UseCases struct {
	slack          interfaces.SlackService
	cache          interfaces.ReportCache
	cacheTTL       time.Duration
	defaultChannel string
	tags           TagSet
	extractLimit   int
	now            func() time.Time

	// refreshing tracks cache keys with a background rebuild in flight so
	// concurrent reads of a hot key trigger at most one channel scan
	refreshing sync.Map
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithCache enables the report cache with the given freshness TTL
func WithCache(cache interfaces.ReportCache, ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.cache = cache
		if ttl > 0 {
			uc.cacheTTL = ttl
		}
	}
}

// WithDefaultChannel overrides the channel used for empty channel arguments
func WithDefaultChannel(channel string) Option {
	return func(uc *UseCases) {
		if channel != "" {
			uc.defaultChannel = channel
		}
	}
}

// WithTags overrides the tag spellings scanned for each report family
func WithTags(tags TagSet) Option {
	return func(uc *UseCases) {
		uc.tags = tags
	}
}

// WithExtractConcurrency sets the per-user extraction fan-out limit
func WithExtractConcurrency(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.extractLimit = n
		}
	}
}

// withNow replaces the clock (tests only)
func withNow(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// New creates the report use cases on top of a Slack service
func New(slack interfaces.SlackService, opts ...Option) *UseCases {
	uc := &UseCases{
		slack:          slack,
		cacheTTL:       DefaultCacheTTL,
		defaultChannel: DefaultChannel,
		tags:           DefaultTagSet(),
		extractLimit:   DefaultExtractConcurrency,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func (uc *UseCases) channelOrDefault(channel string) string {
	if channel == "" {
		return uc.defaultChannel
	}
	return channel
}
