package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Generator defaults
const (
	DefaultStructuredOutputFlag = "--json-only"
	DefaultGeneratorTimeout     = 60 * time.Second
	DefaultAPIKeyEnv            = "OPENROUTER_API_KEY"
	// DefaultSoftExitCode is the exit code the generator uses for a structured error.
	DefaultSoftExitCode = 1
)

// Shell defaults
const (
	ShellAuto    = "auto"
	DefaultShell = "/bin/sh"
	// DefaultSessionQueueSize bounds pending submissions per session.
	DefaultSessionQueueSize = 64
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

// DefaultDescription fills in candidates the generator left undescribed.
const DefaultDescription = "No description provided"
