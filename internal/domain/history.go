package domain

import "time"

// HistoryRecord is the audit entry for one command submitted to a session.
type HistoryRecord struct {
	Timestamp   time.Time   `json:"timestamp"`
	Query       string      `json:"query"`
	Command     string      `json:"command"`
	Description string      `json:"description"`
	SafetyLevel SafetyLevel `json:"safety_level"`
	SessionID   string      `json:"session_id"`
}
