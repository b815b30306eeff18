package model

import "time"

type AuditAction string

const (
	AuditRateLimited         AuditAction = "RATE_LIMITED"
	AuditValidationFailed    AuditAction = "VALIDATION_FAILED"
	AuditDuplicateEmail      AuditAction = "DUPLICATE_EMAIL"
	AuditInsertFailed        AuditAction = "INSERT_FAILED"
	AuditRegistrationSuccess AuditAction = "REGISTRATION_SUCCESS"
)

func (a AuditAction) String() string { return string(a) }

// AuditEvent is one append-only row in the audit_log table.
type AuditEvent struct {
	Action    AuditAction `db:"action"`
	TableName string      `db:"table_name"`
	IPAddress string      `db:"ip_address"`
	UserAgent string      `db:"user_agent"`
	Details   string      `db:"details"` // JSON payload
	Timestamp time.Time   `db:"ts"`
}
