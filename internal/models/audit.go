package models

import "time"

// AuditStatus is the outcome recorded for an authentication attempt
type AuditStatus string

const (
	AuditSuccess AuditStatus = "SUCCESS"
	AuditFail    AuditStatus = "FAIL"
)

// AuditEntry is one append-only record of an authentication attempt.
// The username is stored exactly as submitted, typos included.
type AuditEntry struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Status    AuditStatus `json:"status"`
	Details   string      `json:"details"`
	CreatedAt time.Time   `json:"created_at"`
}

// Audit detail strings written by the login flow
const (
	AuditUserNotFound      = "user not found"
	AuditIncorrectPassword = "incorrect password"
	AuditPasswordMatched   = "password matched"
)
