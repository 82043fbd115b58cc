package helpers

import (
	"bytes"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/doeshing/clio-go/internal/domain"
)

func TestSetNestedMapValue(t *testing.T) {
	root := map[string]interface{}{
		"generator": map[string]interface{}{"timeout": 60},
		"history":   "flat",
	}

	assert.Assert(t, SetNestedMapValue(root, []string{"generator", "timeout"}, 30))
	assert.Assert(t, SetNestedMapValue(root, []string{"history", "enabled"}, false))
	assert.Assert(t, !SetNestedMapValue(root, nil, 1))

	got, ok := TraverseNestedMap(root, []string{"generator", "timeout"})
	assert.Assert(t, ok)
	assert.Equal(t, got, 30)

	got, ok = TraverseNestedMap(root, []string{"history", "enabled"})
	assert.Assert(t, ok)
	assert.Equal(t, got, false)

	_, ok = TraverseNestedMap(root, []string{"missing", "key"})
	assert.Assert(t, !ok)
}

func TestParseYAMLValue(t *testing.T) {
	assert.Equal(t, ParseYAMLValue("42"), 42)
	assert.Equal(t, ParseYAMLValue("true"), true)
	assert.Equal(t, ParseYAMLValue("python3 clio.py"), "python3 clio.py")
	assert.DeepEqual(t, ParseYAMLValue("[1, 2]"), []interface{}{1, 2})
	assert.Equal(t, ParseYAMLValue("key: [unterminated"), "key: [unterminated")
}

func TestConfigMapRoundTrip(t *testing.T) {
	cfg := domain.Config{
		ConfigFormatVersion: "1",
		Generator:           domain.GeneratorSettings{Command: "python3 clio.py", SoftExitCodes: []int{1}},
		Security:            domain.SecuritySettings{Enabled: true, RulesFile: "~/.clio/guardrail.yaml"},
	}
	m, err := ConfigToMap(cfg)
	assert.NilError(t, err)
	assert.Assert(t, SetNestedMapValue(m, []string{"generator", "timeout"}, 15))

	updated, err := MapToConfig(m)
	assert.NilError(t, err)
	assert.Equal(t, updated.Generator.TimeoutSeconds, 15)
	assert.Equal(t, updated.Generator.Command, "python3 clio.py")
}

func TestMapToConfigValidates(t *testing.T) {
	_, err := MapToConfig(map[string]interface{}{
		"generator": map[string]interface{}{"command": ""},
	})
	assert.ErrorContains(t, err, "validation failed")
}

func TestCalculateTopCommands(t *testing.T) {
	stats := CalculateTopCommands(map[string]int{"ls": 3, "pwd": 1, "date": 3}, 2)
	assert.DeepEqual(t, stats, []CommandStatistic{{Command: "date", Count: 3}, {Command: "ls", Count: 3}})
}

func TestSafetyDistributionOrdersBySeverity(t *testing.T) {
	records := []domain.HistoryRecord{
		{SafetyLevel: domain.SafetySafe},
		{SafetyLevel: domain.SafetyDangerous},
		{SafetyLevel: domain.SafetySafe},
		{SafetyLevel: domain.SafetyLowRisk},
	}
	assert.DeepEqual(t, SafetyDistribution(records), []CommandStatistic{
		{Command: "dangerous", Count: 1},
		{Command: "low_risk", Count: 1},
		{Command: "safe", Count: 2},
	})
}

func TestDeriveUndoHints(t *testing.T) {
	hints := DeriveUndoHints([]domain.HistoryRecord{
		{Command: "git reset --hard"},
		{Command: "GIT status"},
		{Command: "ls"},
	})
	assert.Equal(t, len(hints), 1)
	assert.Assert(t, strings.Contains(hints[0], "git reflog"))
}

func TestWizardPrompterYesNo(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "\n", def: true, want: true},
		{input: "\n", want: false},
		{input: "nope\n", def: true, want: false},
		{input: "", def: true, want: true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := NewWizardPrompter(strings.NewReader(tt.input), &out).AskYesNo("Continue?", tt.def)
		assert.NilError(t, err)
		assert.Equal(t, got, tt.want, "input %q", tt.input)
	}
}

func TestWizardPrompterStringDefault(t *testing.T) {
	var out bytes.Buffer
	prompter := NewWizardPrompter(strings.NewReader("\nOPENAI_KEY\n"), &out)

	got, err := prompter.AskString("Generator command", "python3 clio.py")
	assert.NilError(t, err)
	assert.Equal(t, got, "python3 clio.py")
	assert.Assert(t, strings.Contains(out.String(), "(default: python3 clio.py)"))

	got, err = prompter.AskString("API key variable", "OPENROUTER_API_KEY")
	assert.NilError(t, err)
	assert.Equal(t, got, "OPENAI_KEY")
}
