package domain_test

import (
	"testing"

	"github.com/doeshing/clio-go/internal/domain"
)

// TestSafetyLevel_Rank tests the ordering used for escalation
func TestSafetyLevel_Rank(t *testing.T) {
	ordered := []domain.SafetyLevel{
		domain.SafetySafe,
		domain.SafetyLowRisk,
		domain.SafetyCaution,
		domain.SafetyDangerous,
	}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].MoreSevereThan(ordered[i-1]) {
			t.Errorf("%s should be more severe than %s", ordered[i], ordered[i-1])
		}
	}

	if domain.SafetyModerateRisk.Rank() != domain.SafetyCaution.Rank() {
		t.Error("moderate_risk and caution should rank equally")
	}
	if domain.SafetyLevel("weird").MoreSevereThan(domain.SafetySafe) {
		t.Error("unknown labels rank as safe")
	}
	if !domain.SafetyDangerous.IsDangerous() || domain.SafetyCaution.IsDangerous() {
		t.Error("only dangerous is dangerous")
	}
}

// TestParseLabelIndex tests label round-trips and rejection of malformed labels
func TestParseLabelIndex(t *testing.T) {
	candidate := domain.CommandCandidate{Command: "42: tricky command with 7 digits"}
	for i := 1; i <= 120; i++ {
		label := domain.FormatLabel(i, candidate)
		got, err := domain.ParseLabelIndex(label)
		if err != nil {
			t.Fatalf("ParseLabelIndex(%q) error: %v", label, err)
		}
		if got != i {
			t.Fatalf("ParseLabelIndex(%q) = %d, want %d", label, got, i)
		}
	}

	for _, label := range []string{"", "ls -la", ": missing", "0: zero", "-1: negative"} {
		if _, err := domain.ParseLabelIndex(label); err == nil {
			t.Errorf("ParseLabelIndex(%q) expected error", label)
		}
	}
}
