package service

import (
	"testing"

	"flowdeck/internal/model"
	redisrepo "flowdeck/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func userFixture(t *testing.T) (*gorm.DB, *UserService, *EmailService, *redisrepo.CodeRepository, *redisrepo.SessionRepository) {
	t.Helper()
	db := openTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	codes := &redisrepo.CodeRepository{Client: client}
	sessions := &redisrepo.SessionRepository{Client: client}
	emailSvc := NewEmailService(codes, noopMailer)
	return db, NewUserService(db, sessions, emailSvc), emailSvc, codes, sessions
}

func TestRegisterRequiresCode(t *testing.T) {
	db, svc, _, codes, _ := userFixture(t)

	err := svc.Register("alice", "pw", "alice@example.com", "123456")
	assert.ErrorIs(t, err, ErrValidation, "no code issued yet is the caller's mistake, not a server error")

	require.NoError(t, codes.SetCode(CodeScopeRegister, "alice@example.com", "123456"))
	err = svc.Register("alice", "pw", "alice@example.com", "000000")
	assert.ErrorIs(t, err, ErrValidation, "wrong code")

	require.NoError(t, svc.Register("alice", "pw", "alice@example.com", "123456"))

	var u model.User
	require.NoError(t, db.Where("username = ?", "alice").First(&u).Error)
	assert.NotEqual(t, "pw", u.Password, "password must be stored hashed")

	// the code is consumed on success
	require.NoError(t, codes.SetCode(CodeScopeRegister, "bob@example.com", "654321"))
	require.NoError(t, svc.Register("bob", "pw", "bob@example.com", "654321"))
	err = svc.Register("bob2", "pw2", "bob@example.com", "654321")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginLogout(t *testing.T) {
	_, svc, _, codes, sessions := userFixture(t)

	require.NoError(t, codes.SetCode(CodeScopeRegister, "alice@example.com", "123456"))
	require.NoError(t, svc.Register("alice", "pw", "alice@example.com", "123456"))

	_, err := svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Login("nobody", "pw")
	assert.ErrorIs(t, err, ErrNotFound)

	pair, err := svc.Login("alice", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// email works as the login name too
	_, err = svc.Login("alice@example.com", "pw")
	require.NoError(t, err)

	// the access token is pinned in redis for the session check
	got, err := sessions.GetUserToken(1)
	require.NoError(t, err)
	assert.NotEmpty(t, got)

	require.NoError(t, svc.Logout(1))
	_, err = sessions.GetUserToken(1)
	assert.ErrorIs(t, err, redisrepo.ErrTokenNotFound)
}

func TestChangePasswordKillsSession(t *testing.T) {
	_, svc, _, codes, sessions := userFixture(t)

	require.NoError(t, codes.SetCode(CodeScopeRegister, "alice@example.com", "123456"))
	require.NoError(t, svc.Register("alice", "old", "alice@example.com", "123456"))
	_, err := svc.Login("alice", "old")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(1, "wrong", "new"), ErrValidation)
	require.NoError(t, svc.ChangePassword(1, "old", "new"))

	_, err = sessions.GetUserToken(1)
	assert.ErrorIs(t, err, redisrepo.ErrTokenNotFound)

	_, err = svc.Login("alice", "new")
	require.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	_, svc, _, codes, _ := userFixture(t)

	require.NoError(t, codes.SetCode(CodeScopeRegister, "alice@example.com", "123456"))
	require.NoError(t, svc.Register("alice", "old", "alice@example.com", "123456"))

	assert.ErrorIs(t, svc.ResetPassword("alice@example.com", "999999", "new"), ErrValidation)

	require.NoError(t, codes.SetCode(CodeScopeReset, "alice@example.com", "111111"))
	require.NoError(t, svc.ResetPassword("alice@example.com", "111111", "new"))

	_, err := svc.Login("alice", "new")
	require.NoError(t, err)
}

func TestUpdateDigestPrefs(t *testing.T) {
	db, svc, _, codes, _ := userFixture(t)

	require.NoError(t, codes.SetCode(CodeScopeRegister, "alice@example.com", "123456"))
	require.NoError(t, svc.Register("alice", "pw", "alice@example.com", "123456"))

	assert.ErrorIs(t, svc.UpdateDigestPrefs(1, true, "fortnightly"), ErrValidation)
	require.NoError(t, svc.UpdateDigestPrefs(1, false, model.DigestWeekly))

	var u model.User
	require.NoError(t, db.First(&u, 1).Error)
	assert.False(t, u.EmailDigestEnabled)
	assert.Equal(t, model.DigestWeekly, u.EmailDigestFrequency)
}
