package models

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is a single submitted identity/secret pair. It lives only for
// the duration of one check and is never stored.
type Attempt struct {
	ID       string
	Identity string
	Secret   string
	At       time.Time
}

// NewAttempt stamps a submission with a fresh ID so its log lines can be
// correlated.
func NewAttempt(identity, secret string, at time.Time) Attempt {
	return Attempt{
		ID:       uuid.NewString(),
		Identity: identity,
		Secret:   secret,
		At:       at,
	}
}
