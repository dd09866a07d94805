package types

import "github.com/m-mizutani/goerr/v2"

// ReportKind identifies one of the three tag-based report families
type ReportKind string

const (
	ReportKindLunch  ReportKind = "lunch"
	ReportKindUpdate ReportKind = "update"
	ReportKindReport ReportKind = "report"
)

// AllReportKinds returns all valid report kinds
func AllReportKinds() []ReportKind {
	return []ReportKind{
		ReportKindLunch,
		ReportKindUpdate,
		ReportKindReport,
	}
}

// IsValid checks if the report kind is valid
func (k ReportKind) IsValid() bool {
	switch k {
	case ReportKindLunch,
		ReportKindUpdate,
		ReportKindReport:
		return true
	default:
		return false
	}
}

// String returns the string representation of the report kind
func (k ReportKind) String() string {
	return string(k)
}

// ParseReportKind parses a string into a ReportKind
func ParseReportKind(s string) (ReportKind, error) {
	kind := ReportKind(s)
	if !kind.IsValid() {
		return "", goerr.New("invalid report kind", goerr.V("kind", s), goerr.T(TagBadRequest))
	}
	return kind, nil
}
