package cli

// Export internal helpers for testing
var (
	Truncate = truncate
)
