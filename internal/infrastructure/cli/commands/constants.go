package commands

import "github.com/doeshing/clio-go/internal/domain"

// Defaults shared by history subcommands
const (
	DefaultHistoryLimit       = domain.DefaultHistoryLimit
	DefaultHistorySearchLimit = domain.DefaultHistorySearchLimit
	DefaultHistoryRetainDays  = domain.DefaultHistoryRetainDays
	MaxHistoryAnalysisRecords = 1000
	TimestampFormat           = domain.TimestampFormat
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrKeychainUnavailable      = "keychain unavailable"
	ErrQueryRequired            = "--query required"
	ErrInvalidRetainDays        = "--days must be > 0"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgInitCancelled            = "Init cancelled."
)
