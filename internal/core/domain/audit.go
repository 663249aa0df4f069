package domain

import "time"

// Audit actions recorded for the authentication surface.
const (
	AuditRegister      = "register"
	AuditLogin         = "login"
	AuditTokenRejected = "token_rejected"
)

// Audit outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuditEvent is one entry in the authentication audit trail. Actor is the
// email the event concerns; events for the same actor are persisted in the
// order they occurred.
type AuditEvent struct {
	ID      string
	Actor   string
	Action  string
	Outcome string
	Reason  string
	At      time.Time
}
