package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uph-campus/campus-events-backend/config"
)

func newTestService(t *testing.T) (*service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	svc := NewService(repo, &config.Config{JWTSecret: "test-secret", SessionTTLHours: 6}, nil).(*service)
	require.NoError(t, svc.SeedAdmin(context.Background(), "Admin@Campus.example", "hunter22"))
	return svc, repo
}

func TestLogin_IssuesSessionToken(t *testing.T) {
	svc, repo := newTestService(t)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	res, err := svc.Login(context.Background(), LoginInput{Email: "admin@campus.example", Password: "hunter22"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(6*time.Hour), res.ExpiresAt)

	sess, err := svc.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Admin.ID, sess.AdminID)
	assert.Equal(t, "admin@campus.example", sess.Email)

	stored, err := repo.FindByID(context.Background(), res.Admin.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.Equal(t, now, *stored.LastLoginAt)
}

func TestLogin_Rejects(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Email: "admin@campus.example", Password: "wrong"}, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@campus.example", Password: "hunter22"}, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	admin, err := repo.FindByEmail(ctx, "admin@campus.example")
	require.NoError(t, err)
	admin.Active = false
	repo.admins[admin.ID] = *admin
	_, err = svc.Login(ctx, LoginInput{Email: "admin@campus.example", Password: "hunter22"}, "")
	assert.ErrorIs(t, err, ErrInactive)
}

func TestParseToken_Expired(t *testing.T) {
	svc, _ := newTestService(t)
	issued := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	res, err := svc.Login(context.Background(), LoginInput{Email: "admin@campus.example", Password: "hunter22"}, "")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(7 * time.Hour) }
	_, err = svc.ParseToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	svc, repo := newTestService(t)
	require.NoError(t, svc.SeedAdmin(context.Background(), "admin@campus.example", "other"))
	assert.Len(t, repo.admins, 1)

	require.NoError(t, svc.SeedAdmin(context.Background(), "", ""), "blank seed is skipped")
	assert.Len(t, repo.admins, 1)
}

func TestAuthenticate_RechecksAdmin(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	res, err := svc.Login(ctx, LoginInput{Email: "admin@campus.example", Password: "hunter22"}, "")
	require.NoError(t, err)

	sess, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Admin.ID, sess.AdminID)

	a := repo.admins[res.Admin.ID]
	a.Active = false
	repo.admins[res.Admin.ID] = a
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrInactive)

	delete(repo.admins, res.Admin.ID)
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
