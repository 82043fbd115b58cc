package domain

// SafetyAssessment is the guardrail's verdict for a single command.
type SafetyAssessment struct {
	Level        SafetyLevel
	Reasons      []string
	MatchedRules []string
}
