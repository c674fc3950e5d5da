package credential_test

import (
	"testing"

	"github.com/BradenHooton/valentine/internal/credential"
	"github.com/BradenHooton/valentine/internal/models"
	pkgauth "github.com/BradenHooton/valentine/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChecker(t *testing.T) *credential.Checker {
	t.Helper()
	checker, err := credential.NewChecker(
		[]string{"Tamanna", "valentine", "testing"},
		[]string{"MyLove", "rose"},
		"testing",
	)
	require.NoError(t, err)
	return checker
}

func TestChecker_Check(t *testing.T) {
	checker := newChecker(t)

	tests := []struct {
		name       string
		identity   string
		secret     string
		wantAccept bool
		wantBypass bool
		wantReason error
	}{
		{name: "mixed case matches allow-list", identity: "Tamanna", secret: "MyLove", wantAccept: true},
		{name: "surrounding whitespace trimmed", identity: "  tamanna ", secret: "\tmylove\n", wantAccept: true},
		{name: "upper case secret", identity: "valentine", secret: "ROSE", wantAccept: true},
		{name: "bypass secret", identity: "testing", secret: "testing", wantAccept: true, wantBypass: true},
		{name: "bypass secret with other identity", identity: "Tamanna", secret: "Testing", wantAccept: true, wantBypass: true},
		{name: "unknown identity", identity: "stranger", secret: "whatever", wantReason: models.ErrUnknownIdentity},
		{name: "unknown identity with bypass secret", identity: "stranger", secret: "testing", wantReason: models.ErrUnknownIdentity},
		{name: "wrong secret", identity: "tamanna", secret: "tulip", wantReason: models.ErrIncorrectSecret},
		{name: "empty identity", identity: "", secret: "rose", wantReason: models.ErrEmptyField},
		{name: "blank secret", identity: "tamanna", secret: "   ", wantReason: models.ErrEmptyField},
		{name: "bypass secret without identity", identity: "", secret: "testing", wantReason: models.ErrEmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.Check(tt.identity, tt.secret)

			assert.Equal(t, tt.wantAccept, result.Accepted)
			assert.Equal(t, tt.wantBypass, result.Bypass)
			if tt.wantReason == nil {
				assert.NoError(t, result.Reason)
			} else {
				assert.ErrorIs(t, result.Reason, tt.wantReason)
			}
		})
	}
}

func TestChecker_HashedSecret(t *testing.T) {
	hash, err := pkgauth.HashSecret("Sunflower")
	require.NoError(t, err)

	checker, err := credential.NewChecker([]string{"you"}, []string{hash}, "")
	require.NoError(t, err)

	assert.True(t, checker.Check("YOU", " sunflower ").Accepted)
	assert.ErrorIs(t, checker.Check("you", "daisy").Reason, models.ErrIncorrectSecret)
}

func TestChecker_NoBypassConfigured(t *testing.T) {
	checker, err := credential.NewChecker([]string{"you"}, []string{"love"}, "")
	require.NoError(t, err)

	result := checker.Check("you", "testing")
	assert.False(t, result.Bypass)
	assert.ErrorIs(t, result.Reason, models.ErrIncorrectSecret)
}

func TestNewChecker_RequiresNonEmptyLists(t *testing.T) {
	_, err := credential.NewChecker(nil, []string{"love"}, "")
	assert.Error(t, err)

	_, err = credential.NewChecker([]string{"  "}, []string{"love"}, "")
	assert.Error(t, err)

	_, err = credential.NewChecker([]string{"you"}, []string{""}, "")
	assert.Error(t, err)
}

func TestNewChecker_RejectsTruncatedHash(t *testing.T) {
	hash, err := pkgauth.HashSecret("rose")
	require.NoError(t, err)

	_, err = credential.NewChecker([]string{"you"}, []string{"love", hash[:30]}, "")
	assert.Error(t, err)

	_, err = credential.NewChecker([]string{"you"}, []string{"love", hash}, "")
	assert.NoError(t, err)
}
