package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/testutil"
)

func TestNewGate_RequiresSecret(t *testing.T) {
	_, err := NewGate("", time.Hour)
	assert.Error(t, err)
}

func TestGate_IssueThenAuthenticate(t *testing.T) {
	gate, err := NewGate(testutil.TestSecret, time.Hour)
	require.NoError(t, err)

	token, err := gate.Issue("alice")
	require.NoError(t, err)

	for _, credential := range []string{token, "Bearer " + token, "bearer " + token, "  Bearer   " + token + " "} {
		username, err := gate.Authenticate(credential)
		require.NoError(t, err, credential)
		assert.Equal(t, "alice", username)
	}
}

func TestGate_Authenticate_Rejects(t *testing.T) {
	gate, err := NewGate(testutil.TestSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
	}{
		{"missing", ""},
		{"bearer only", "Bearer "},
		{"malformed", "Bearer not-a-jwt"},
		{"wrong signature", "Bearer " + testutil.GenerateTestToken("other-secret", "alice")},
		{"expired", "Bearer " + testutil.GenerateExpiredToken(testutil.TestSecret, "alice")},
		{"empty subject", "Bearer " + testutil.GenerateTestToken(testutil.TestSecret, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, err := gate.Authenticate(tt.credential)
			assert.ErrorIs(t, err, apperr.ErrUnauthorized)
			assert.Empty(t, username)
		})
	}
}

func TestGate_Issue_EmptyUsername(t *testing.T) {
	gate, err := NewGate(testutil.TestSecret, time.Hour)
	require.NoError(t, err)

	_, err = gate.Issue("")
	assert.Error(t, err)
}
