package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/cryptox"
	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	return NewAuthService(db, rm, testConfig()), rm
}

func seedUser(t *testing.T, rm *fakeRepoManager, email, password string) *models.User {
	t.Helper()
	hash, err := cryptox.HashPassword(password, 4)
	require.NoError(t, err)
	u, err := rm.users.Create(context.Background(), &models.User{Name: "N", Email: email, PasswordHash: hash})
	require.NoError(t, err)
	return u
}

func TestIssueAndVerifyToken(t *testing.T) {
	s, rm := newAuthService(t)
	ctx := context.Background()
	u := seedUser(t, rm, "a@x.com", "secret12")

	tok1, err := s.IssueToken(ctx, s.db, u.ID)
	require.NoError(t, err)
	tok2, err := s.IssueToken(ctx, s.db, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, tok1, tok2)
	assert.Equal(t, []string{tok1, tok2}, rm.tokens.byUser[u.ID])

	got, err := s.VerifyToken(ctx, tok1)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestVerifyToken_Rejections(t *testing.T) {
	s, rm := newAuthService(t)
	ctx := context.Background()
	u := seedUser(t, rm, "a@x.com", "secret12")

	// signed but never stored
	orphan, err := auth.GenerateToken(u.ID, s.jwtSecret)
	require.NoError(t, err)

	// stored but signed with another key
	foreign, err := auth.GenerateToken(u.ID, []byte("other"))
	require.NoError(t, err)
	rm.tokens.byUser[u.ID] = append(rm.tokens.byUser[u.ID], foreign)

	// valid signature, subject is not a uuid
	notUUID, err := auth.GenerateToken("42", s.jwtSecret)
	require.NoError(t, err)

	// valid signature, user gone
	ghost, err := auth.GenerateToken("6f1c1d1e-0000-4000-8000-000000000000", s.jwtSecret)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage": "not-a-jwt",
		"orphan":  orphan,
		"foreign": foreign,
		"notUUID": notUUID,
		"ghost":   ghost,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.VerifyToken(ctx, tok)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}
}

func TestVerifyToken_AfterRevoke(t *testing.T) {
	s, rm := newAuthService(t)
	ctx := context.Background()
	u := seedUser(t, rm, "a@x.com", "secret12")

	keep, _ := s.IssueToken(ctx, s.db, u.ID)
	drop, _ := s.IssueToken(ctx, s.db, u.ID)

	require.NoError(t, s.RevokeToken(ctx, u.ID, drop))
	_, err := s.VerifyToken(ctx, drop)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	_, err = s.VerifyToken(ctx, keep)
	assert.NoError(t, err)

	require.NoError(t, s.RevokeAll(ctx, u.ID))
	_, err = s.VerifyToken(ctx, keep)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifyToken_StoreErrors(t *testing.T) {
	s, rm := newAuthService(t)
	ctx := context.Background()
	u := seedUser(t, rm, "a@x.com", "secret12")
	tok, _ := s.IssueToken(ctx, s.db, u.ID)

	rm.tokens.existsErr = errBoom
	_, err := s.VerifyToken(ctx, tok)
	assert.ErrorIs(t, err, common.ErrorInternal)

	rm.users.getErr = errBoom
	_, err = s.VerifyToken(ctx, tok)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestAuthenticate(t *testing.T) {
	s, rm := newAuthService(t)
	ctx := context.Background()
	u := seedUser(t, rm, "ann@x.com", "secret12")

	got, err := s.Authenticate(ctx, "  ANN@x.com ", "secret12")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate(ctx, "ann@x.com", "wrong-pass")
	assert.ErrorIs(t, err, common.ErrorUnableToLogin)
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody@x.com", "secret12")
	assert.ErrorIs(t, err, common.ErrorUnableToLogin)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	rm.users.getErr = errBoom
	_, err = s.Authenticate(ctx, "ann@x.com", "secret12")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestIssueToken_StoreError(t *testing.T) {
	s, rm := newAuthService(t)
	rm.tokens.addErr = errBoom

	_, err := s.IssueToken(context.Background(), s.db, "u1")
	assert.ErrorIs(t, err, errBoom)
}

func TestHashPassword(t *testing.T) {
	s, _ := newAuthService(t)

	hash, err := s.HashPassword("secret12")
	require.NoError(t, err)
	assert.NotEqual(t, "secret12", hash)
	assert.NoError(t, cryptox.ComparePassword(hash, "secret12"))

	s.bcryptCost = 1000
	_, err = s.HashPassword("secret12")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRevoke_StoreErrors(t *testing.T) {
	s, rm := newAuthService(t)
	rm.tokens.removeErr = errBoom

	assert.ErrorIs(t, s.RevokeToken(context.Background(), "u1", "t"), errBoom)
	assert.ErrorIs(t, s.RevokeAll(context.Background(), "u1"), errBoom)
}
