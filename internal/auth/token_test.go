package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finderapp/finder-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Email:    "family@example.com",
		Name:     "Jane Doe",
		Role:     domain.RoleFamily,
		Verified: true,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "family@example.com", claims.Email)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, domain.RoleFamily, claims.Role)
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Millisecond)

	token, _, err := tm.Generate(testUser())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenTampering(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.Generate(testUser())
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = tm.Parse(tampered)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenManager("key-one", time.Hour)
	verifier := NewTokenManager("key-two", time.Hour)

	token, _, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenGarbageInput(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Parse(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}

func TestTokenDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 7*24*time.Hour, tm.TTL())
}
