package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionRepository 记录已注销账号，使其签发的令牌失效。
// Redis 为 nil 时不做任何记录。
type SessionRepository struct {
	Redis *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{Redis: rdb}
}

func revokedKey(userID string) string {
	return fmt.Sprintf("auth:revoked:%s", userID)
}

// RevokeUser ttl 取令牌有效期即可
func (r *SessionRepository) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if r.Redis == nil {
		return nil
	}
	return r.Redis.Set(ctx, revokedKey(userID), time.Now().Unix(), ttl).Err()
}

func (r *SessionRepository) IsRevoked(ctx context.Context, userID string) (bool, error) {
	if r.Redis == nil {
		return false, nil
	}
	n, err := r.Redis.Exists(ctx, revokedKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
