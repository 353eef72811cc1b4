package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	now := time.Now().UTC()

	token, err := New(secret, "42", "a@x.com", now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, now.Add(TokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := New([]byte("right"), "1", "a@x.com", time.Now())
	require.NoError(t, err)

	_, err = ClaimsFromToken(token, []byte("wrong"))
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := New(secret, "1", "a@x.com", time.Now().Add(-2*TokenTTL))
	require.NoError(t, err)

	_, err = ClaimsFromToken(token, secret)
	require.Error(t, err)
}
