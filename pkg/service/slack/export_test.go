package slack

// Export internal knobs for testing
var (
	// WithSleeper replaces the backoff sleeper so retry paths run instantly
	WithSleeper = withSleeper
)
