package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	sessionTokenPrefix = "login:user:token"
	sessionTokenExpire = 30 * time.Minute
)

// SessionRepository keeps the single active access token per user; a login
// elsewhere overwrites it and invalidates older sessions.
type SessionRepository struct {
	Client *redis.Client
}

func sessionKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", sessionTokenPrefix, userID)
}

func (r *SessionRepository) AddUserToken(userID uint64, token string) error {
	if err := r.Client.Set(context.Background(), sessionKey(userID), token, sessionTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) GetUserToken(userID uint64) (string, error) {
	token, err := r.Client.Get(context.Background(), sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) ExtendUserToken(userID uint64) error {
	if _, err := r.Client.Expire(context.Background(), sessionKey(userID), sessionTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteUserToken(userID uint64) error {
	if err := r.Client.Del(context.Background(), sessionKey(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
