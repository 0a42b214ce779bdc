package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TokenPurposeReset   = "reset"
	TokenPurposeConfirm = "confirm"
)

var ErrTokenNotFound = errors.New("token not found or expired")

var _ ITokenStorage = (*TokenStorage)(nil)

type ITokenStorage interface {
	Save(ctx context.Context, purpose, token, uid string, ttl time.Duration) error
	Consume(ctx context.Context, purpose, token string) (string, error)
}

// TokenStorage 一次性令牌(重置密码/邮箱确认), 值为用户ID
type TokenStorage struct {
	redis *redis.Client
}

func NewTokenStorage(rds *redis.Client) *TokenStorage {
	return &TokenStorage{redis: rds}
}

// Save 保存令牌
// @params purpose  用途 reset/confirm
// @params token    令牌
// @params uid      用户ID
func (t *TokenStorage) Save(ctx context.Context, purpose, token, uid string, ttl time.Duration) error {
	return t.redis.Set(ctx, t.name(purpose, token), uid, ttl).Err()
}

// Consume 读取并删除令牌, 只能使用一次
func (t *TokenStorage) Consume(ctx context.Context, purpose, token string) (string, error) {
	uid, err := t.redis.GetDel(ctx, t.name(purpose, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return uid, nil
}

// auth:token:purpose:token
func (t *TokenStorage) name(purpose, token string) string {
	return fmt.Sprintf("auth:token:%s:%s", purpose, token)
}
