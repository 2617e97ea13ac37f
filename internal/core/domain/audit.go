package domain

import "time"

// Audit actions recorded for authentication activity.
const (
	AuditLoginSucceeded = "login_succeeded"
	AuditLoginFailed    = "login_failed"
	AuditRegistered     = "registered"
	AuditAccountDeleted = "account_deleted"
)

// AuditEvent is one entry in the authentication audit trail.
type AuditEvent struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id,omitempty"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
