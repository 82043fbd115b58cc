package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/clio-go/assets"
	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/pkg/filesystem"
	"github.com/doeshing/clio-go/internal/ports"
)

// Guardrail implements the SafetyClassifier port.
type Guardrail struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule DangerPattern
}

// DangerPattern describes a regex-based guardrail rule.
type DangerPattern struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DangerPatterns []DangerPattern `yaml:"danger_patterns"`
	} `yaml:"rules"`
}

// NewGuardrail loads guardrail rules from disk (or the embedded defaults when missing).
func NewGuardrail(path string) (*Guardrail, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	var compiled []compiledPattern
	for _, pattern := range rules.Rules.DangerPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, fmt.Errorf("guardrail pattern %q: %w", pattern.Pattern, err)
		}
		compiled = append(compiled, compiledPattern{
			re:   re,
			rule: pattern,
		})
	}

	return &Guardrail{patterns: compiled}, nil
}

// Classify implements ports.SafetyClassifier.
func (g *Guardrail) Classify(command string) (domain.SafetyAssessment, error) {
	if g == nil {
		return domain.SafetyAssessment{}, errors.New("guardrail nil")
	}
	assessment := domain.SafetyAssessment{Level: domain.SafetySafe}
	for _, pattern := range g.patterns {
		if !pattern.re.MatchString(command) {
			continue
		}
		level := domain.SafetyLevel(pattern.rule.Level)
		if level.MoreSevereThan(assessment.Level) {
			assessment.Level = level
		}
		assessment.Reasons = append(assessment.Reasons, pattern.rule.Message)
		assessment.MatchedRules = append(assessment.MatchedRules, pattern.rule.Pattern)
	}
	return assessment, nil
}

// RuleCount returns the number of loaded rules.
func (g *Guardrail) RuleCount() int {
	return len(g.patterns)
}

// InstallDefaultRules writes the embedded rules to path so they can be edited.
// An existing file is kept unless overwrite is set. It reports whether it wrote.
func InstallDefaultRules(path string, overwrite bool) (bool, error) {
	dest := filesystem.ExpandPath(path)
	if _, err := os.Stat(dest); err == nil && !overwrite {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirectoryPermissions); err != nil {
		return false, err
	}
	if err := os.WriteFile(dest, assets.DefaultGuardrailYAML, domain.SecureFilePermissions); err != nil {
		return false, err
	}
	return true, nil
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	data, err := os.ReadFile(filesystem.ExpandPath(path))
	if path == "" || err != nil {
		// fall back to defaults
		return defaultRules()
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse guardrail rules: %w", err)
	}
	if len(rules.Rules.DangerPatterns) == 0 {
		return defaultRules()
	}
	return rules, nil
}

func defaultRules() (RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(assets.DefaultGuardrailYAML, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse embedded guardrail rules: %w", err)
	}
	return rules, nil
}

var _ ports.SafetyClassifier = (*Guardrail)(nil)
