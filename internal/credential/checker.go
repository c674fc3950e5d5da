// Package credential validates a submitted identity/secret pair against
// a fixed allow-list.
package credential

import (
	"errors"
	"fmt"

	"github.com/BradenHooton/valentine/internal/models"
	pkgauth "github.com/BradenHooton/valentine/pkg/auth"
)

// Result is the outcome of one check. Reason is nil when Accepted.
type Result struct {
	Accepted bool
	Bypass   bool
	Reason   error
}

// Checker holds the allow-list. It is immutable after construction and
// safe for concurrent use.
type Checker struct {
	identities map[string]struct{}
	secrets    []string
	bypass     string
}

// NewChecker builds a Checker. Identities are normalized; secrets may be
// plain text or bcrypt hashes of the normalized secret. Both lists must
// contain at least one non-empty entry, and an entry that starts like a
// bcrypt hash must be one. An empty bypassSecret disables
// bypass detection.
func NewChecker(identities, secrets []string, bypassSecret string) (*Checker, error) {
	c := &Checker{
		identities: make(map[string]struct{}, len(identities)),
		bypass:     pkgauth.Normalize(bypassSecret),
	}
	for _, identity := range identities {
		if n := pkgauth.Normalize(identity); n != "" {
			c.identities[n] = struct{}{}
		}
	}
	for _, secret := range secrets {
		if pkgauth.MalformedHash(secret) {
			return nil, fmt.Errorf("allow-list secret %q is not a complete bcrypt hash", secret)
		}
		if pkgauth.IsHash(secret) {
			c.secrets = append(c.secrets, secret)
		} else if n := pkgauth.Normalize(secret); n != "" {
			c.secrets = append(c.secrets, n)
		}
	}

	if len(c.identities) == 0 {
		return nil, errors.New("allow-list needs at least one identity")
	}
	if len(c.secrets) == 0 {
		return nil, errors.New("allow-list needs at least one secret")
	}
	return c, nil
}

// Check compares a submission against the allow-list after trimming and
// lower-casing both fields.
//
// The bypass secret counts only when both fields are filled in and the
// identity is allow-listed; it is implicitly an accepted secret.
// Whether a bypass is honoured is the caller's decision.
func (c *Checker) Check(identity, secret string) Result {
	identity = pkgauth.Normalize(identity)
	secret = pkgauth.Normalize(secret)

	if identity == "" || secret == "" {
		return Result{Reason: models.ErrEmptyField}
	}
	if _, ok := c.identities[identity]; !ok {
		return Result{Reason: models.ErrUnknownIdentity}
	}
	if c.bypass != "" && secret == c.bypass {
		return Result{Accepted: true, Bypass: true}
	}
	for _, entry := range c.secrets {
		if pkgauth.MatchSecret(entry, secret) {
			return Result{Accepted: true}
		}
	}
	return Result{Reason: models.ErrIncorrectSecret}
}
