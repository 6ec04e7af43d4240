package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("unit-test-secret")

func TestSessionTokenRoundTrip(t *testing.T) {
	now := time.Now()
	token, claims, err := GenerateSessionToken(secret, 7, "kasir", time.Hour, now)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := ParseSessionToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), parsed.UserID)
	assert.Equal(t, "kasir", parsed.Username)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.Equal(t, "armaso-pos", parsed.Issuer)
}

func TestSessionTokenTwoLoginsGetDistinctIDs(t *testing.T) {
	now := time.Now()
	_, a, err := GenerateSessionToken(secret, 1, "a", time.Hour, now)
	require.NoError(t, err)
	_, b, err := GenerateSessionToken(secret, 1, "a", time.Hour, now)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseSessionTokenRejects(t *testing.T) {
	expired, _, err := GenerateSessionToken(secret, 1, "a", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	valid, _, err := GenerateSessionToken(secret, 1, "a", time.Hour, time.Now())
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(secret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ID: "x", Issuer: "armaso-pos"},
	}).SignedString(secret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Issuer:    "armaso-pos",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct {
		secret []byte
		token  string
	}{
		"expired":      {secret, expired},
		"wrong secret": {[]byte("other"), valid},
		"wrong issuer": {secret, wrongIssuer},
		"no expiry":    {secret, noExpiry},
		"alg none":     {secret, unsigned},
		"garbage":      {secret, "not.a.token"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSessionToken(tc.secret, tc.token)
			assert.ErrorIs(t, err, ErrInvalidSessionToken)
		})
	}
}
