package domain

// Config mirrors ~/.clio/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Generator           GeneratorSettings `yaml:"generator"`
	Execution           ExecutionSettings `yaml:"execution"`
	Security            SecuritySettings  `yaml:"security"`
	History             HistorySettings   `yaml:"history"`
}

// GeneratorSettings describes how the external generator is invoked and how
// its exit status is interpreted.
type GeneratorSettings struct {
	Command              string `yaml:"command"`
	StructuredOutputFlag string `yaml:"structured_output_flag"`
	SoftExitCodes        []int  `yaml:"soft_exit_codes"`
	TimeoutSeconds       int    `yaml:"timeout"`
	APIKeyEnv            string `yaml:"api_key_env"`
}

// ExecutionSettings controls the shell session.
type ExecutionSettings struct {
	Shell            string `yaml:"shell"`
	ConfirmDangerous bool   `yaml:"confirm_dangerous"`
}

// SecuritySettings defines guardrail behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// HistorySettings controls the audit trail of submitted commands.
type HistorySettings struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}
