package usecase

// Export internal knobs and helpers for testing
var (
	// WithNow replaces the clock so window math is deterministic
	WithNow = withNow

	// ExtractPair and ExtractTagged expose the extractor core
	ExtractPair   = extractPair
	ExtractTagged = extractTagged
)
