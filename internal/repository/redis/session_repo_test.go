package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionTokenLifecycle(t *testing.T) {
	mr, client := testClient(t)
	repo := &SessionRepository{Client: client}

	_, err := repo.GetUserToken(1)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, repo.AddUserToken(1, "token-a"))
	got, err := repo.GetUserToken(1)
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)

	// a later login simply overwrites; old sessions lose
	require.NoError(t, repo.AddUserToken(1, "token-b"))
	got, err = repo.GetUserToken(1)
	require.NoError(t, err)
	assert.Equal(t, "token-b", got)

	require.NoError(t, repo.DeleteUserToken(1))
	_, err = repo.GetUserToken(1)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// the TTL expires tokens on its own
	require.NoError(t, repo.AddUserToken(2, "token-c"))
	mr.FastForward(31 * time.Minute)
	_, err = repo.GetUserToken(2)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestExtendUserToken(t *testing.T) {
	mr, client := testClient(t)
	repo := &SessionRepository{Client: client}

	require.NoError(t, repo.AddUserToken(1, "token"))
	mr.FastForward(20 * time.Minute)
	require.NoError(t, repo.ExtendUserToken(1))
	mr.FastForward(20 * time.Minute)

	// 40 minutes after login, but only 20 since the extension
	got, err := repo.GetUserToken(1)
	require.NoError(t, err)
	assert.Equal(t, "token", got)
}

func TestCodeLifecycle(t *testing.T) {
	mr, client := testClient(t)
	repo := &CodeRepository{Client: client}

	_, err := repo.GetCode("register", "a@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	require.NoError(t, repo.SetCode("register", "a@example.com", "123456"))

	// scopes do not leak into each other
	_, err = repo.GetCode("reset", "a@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	got, err := repo.GetCode("register", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got)

	require.NoError(t, repo.DeleteCode("register", "a@example.com"))
	_, err = repo.GetCode("register", "a@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	require.NoError(t, repo.SetCode("reset", "a@example.com", "654321"))
	mr.FastForward(DefaultEmailCodeTTL + time.Second)
	_, err = repo.GetCode("reset", "a@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}
