package domain

import "time"

// AuditAction identifies the kind of account activity being recorded.
type AuditAction string

const (
	AuditLoginSucceeded   AuditAction = "login_succeeded"
	AuditLoginFailed      AuditAction = "login_failed"
	AuditPasswordChanged  AuditAction = "password_changed"
	AuditUserActivated    AuditAction = "user_activated"
	AuditUserDeactivated  AuditAction = "user_deactivated"
	AuditUserCreated      AuditAction = "user_created"
	AuditUserDeleted      AuditAction = "user_deleted"
)

// AuditEvent is an append-only record of account activity, keyed by the
// username the activity was aimed at (which may not exist for failed logins).
type AuditEvent struct {
	Username   string      `json:"username"`
	Action     AuditAction `json:"action"`
	ActorID    int64       `json:"actor_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}
