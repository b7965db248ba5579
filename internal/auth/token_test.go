package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestVerifyRejections(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	valid, err := issuer.Issue(1, "a@x.com")
	require.NoError(t, err)

	otherIssuer := NewTokenIssuer("other-secret", time.Hour)
	foreign, err := otherIssuer.Issue(1, "a@x.com")
	require.NoError(t, err)

	expiredIssuer := NewTokenIssuer("test-secret", -time.Minute)
	expired, err := expiredIssuer.Issue(1, "a@x.com")
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "wrong signature", token: foreign},
		{name: "expired", token: expired},
		{name: "truncated", token: valid[:len(valid)-5]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Every rejection maps to the same error so callers cannot tell
			// an expired token from a forged one.
			_, err := issuer.Verify(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
