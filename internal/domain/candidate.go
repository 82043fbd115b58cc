package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// SafetyLevel is the label the generator (or the local guardrail) attaches to a candidate.
// Labels outside the known set are preserved verbatim.
type SafetyLevel string

const (
	SafetySafe         SafetyLevel = "safe"
	SafetyLowRisk      SafetyLevel = "low_risk"
	SafetyCaution      SafetyLevel = "caution"
	SafetyModerateRisk SafetyLevel = "moderate_risk"
	SafetyDangerous    SafetyLevel = "dangerous"
	SafetyUnknown      SafetyLevel = "unknown"
)

// Rank orders known labels by severity. Unknown labels rank as safe.
func (l SafetyLevel) Rank() int {
	switch SafetyLevel(strings.ToLower(string(l))) {
	case SafetyLowRisk:
		return 1
	case SafetyCaution, SafetyModerateRisk:
		return 2
	case SafetyDangerous:
		return 3
	default:
		return 0
	}
}

// MoreSevereThan reports whether l outranks other.
func (l SafetyLevel) MoreSevereThan(other SafetyLevel) bool {
	return l.Rank() > other.Rank()
}

// IsDangerous reports whether the label sits at the top of the scale.
func (l SafetyLevel) IsDangerous() bool {
	return l.Rank() == SafetyDangerous.Rank()
}

// Describe converts a label to user-facing text.
func (l SafetyLevel) Describe() string {
	switch SafetyLevel(strings.ToLower(string(l))) {
	case SafetySafe:
		return "Safe - read-only command"
	case SafetyLowRisk:
		return "Low risk - minor system changes"
	case SafetyCaution, SafetyModerateRisk:
		return "Caution - system modifications"
	case SafetyDangerous:
		return "Warning - potentially destructive"
	default:
		return "Unknown risk level"
	}
}

// CommandCandidate is one proposed shell command with its metadata.
type CommandCandidate struct {
	Command     string      `json:"command"`
	Description string      `json:"description"`
	SafetyLevel SafetyLevel `json:"safety_level"`
}

// FormatLabel renders the display label for the candidate at the given 1-based index.
func FormatLabel(index int, c CommandCandidate) string {
	return fmt.Sprintf("%d: %s", index, c.Command)
}

// ParseLabelIndex extracts the leading 1-based index from a display label.
func ParseLabelIndex(label string) (int, error) {
	trimmed := strings.TrimLeftFunc(label, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(trimmed)
	}
	if end == 0 {
		return 0, fmt.Errorf("label %q has no leading index", label)
	}
	idx, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, fmt.Errorf("label %q: %w", label, err)
	}
	if idx < 1 {
		return 0, fmt.Errorf("label %q: index must be >= 1", label)
	}
	return idx, nil
}
