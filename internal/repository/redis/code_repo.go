package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	emailCodePrefix     = "email:code"
)

var (
	ErrCodeNotFound  = errors.New("email code not found")
	ErrCodeSetFailed = errors.New("email code set failed")
	ErrCodeDelFailed = errors.New("email code delete failed")
)

// CodeRepository stores one-time email verification codes per scope
// (register / reset) with a short TTL.
type CodeRepository struct {
	Client *redis.Client
}

func codeKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", emailCodePrefix, scope, email)
}

func (r *CodeRepository) SetCode(scope, email, code string) error {
	if err := r.Client.Set(context.Background(), codeKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrCodeSetFailed
	}
	return nil
}

func (r *CodeRepository) GetCode(scope, email string) (string, error) {
	val, err := r.Client.Get(context.Background(), codeKey(scope, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *CodeRepository) DeleteCode(scope, email string) error {
	if err := r.Client.Del(context.Background(), codeKey(scope, email)).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}
