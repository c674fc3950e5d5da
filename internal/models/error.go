package models

import "errors"

// Sentinel errors for rejected credential attempts. These are carried
// in State.Reason while the gate is Denied.
var (
	ErrEmptyField      = errors.New("both fields are required")
	ErrUnknownIdentity = errors.New("unknown identity")
	ErrIncorrectSecret = errors.New("incorrect secret")
)

// Lifecycle errors returned by gate operations.
var (
	ErrGateClosed       = errors.New("gate is closed")
	ErrNotAwaitingInput = errors.New("gate is not awaiting input")
	ErrNotTimeLocked    = errors.New("gate is not time-locked")
)

// ReasonCode returns a short machine-readable code for a rejection
// reason, suitable for audit logs.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyField):
		return "empty_field"
	case errors.Is(err, ErrUnknownIdentity):
		return "unknown_identity"
	case errors.Is(err, ErrIncorrectSecret):
		return "incorrect_secret"
	default:
		return "rejected"
	}
}
