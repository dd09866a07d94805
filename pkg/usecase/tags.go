package usecase

// TagSet holds the hashtag spellings scanned for each report family. Tags are
// matched as case-insensitive substrings of message text, not structured
// metadata.
type TagSet struct {
	LunchStart string
	LunchEnds  []string
	Update     string
	Report     string
}

// DefaultTagSet returns the conventional tag spellings
func DefaultTagSet() TagSet {
	return TagSet{
		LunchStart: "#lunchstart",
		LunchEnds:  []string{"#lunchend", "#lunchover"},
		Update:     "#update",
		Report:     "#report",
	}
}
