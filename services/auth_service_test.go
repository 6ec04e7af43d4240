package services

import (
	"context"
	"testing"
	"time"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-session-secret")

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	hashed, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: "kasir", Password: string(hashed)}).Error)
	return NewAuthService(db, testSecret, time.Hour)
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, " kasir ", "rahasia")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "kasir", session.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	got, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.ID, got.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()

	for _, tc := range []struct{ user, pass string }{
		{"kasir", "salah"},
		{"tamu", "rahasia"},
		{"", "rahasia"},
		{"kasir", ""},
	} {
		_, err := svc.Login(ctx, tc.user, tc.pass)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "%s/%s", tc.user, tc.pass)
	}
}

func TestAuthenticateRejectsForeignAndGarbageTokens(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Authenticate(ctx, "bm90LWEtand0")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	other := NewAuthService(svc.DB, []byte("another-secret"), time.Hour)
	session, err := other.Login(ctx, "kasir", "rahasia")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "kasir", "rahasia")
	require.NoError(t, err)
	other, err := svc.Login(ctx, "kasir", "rahasia")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))
	require.NoError(t, svc.Logout(ctx, session.Token), "logout is idempotent")
	require.NoError(t, svc.Logout(ctx, "garbage"))

	_, err = svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, other.Token)
	assert.NoError(t, err, "other sessions stay valid")

	var revoked int64
	require.NoError(t, svc.DB.Model(&models.RevokedSession{}).Count(&revoked).Error)
	assert.Equal(t, int64(1), revoked)
}

func TestLogoutPurgesExpiredRevocations(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()
	require.NoError(t, svc.DB.Create(&models.RevokedSession{
		ID:        "00000000-0000-0000-0000-000000000001",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Hour).UTC(),
		RevokedAt: time.Now().Add(-2 * time.Hour).UTC(),
	}).Error)

	session, err := svc.Login(ctx, "kasir", "rahasia")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, session.Token))

	var ids []string
	require.NoError(t, svc.DB.Model(&models.RevokedSession{}).Pluck("id", &ids).Error)
	assert.Equal(t, []string{session.ID}, ids)
}
