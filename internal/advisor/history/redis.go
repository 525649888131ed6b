package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	errx "github.com/krishigpt/server/internal/core/error"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

// RedisBackend persists a user's whole history as one JSON-encoded value
// with a rolling TTL.
type RedisBackend struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisBackend(rdb redis.Cmdable, ttl time.Duration) *RedisBackend {
	return &RedisBackend{rdb: rdb, ttl: ttl}
}

func (r *RedisBackend) conversationKey(userID string) string {
	return fmt.Sprintf("conversation:%s:messages", userID)
}

func (r *RedisBackend) Load(ctx context.Context, userID string) ([]*schema.Message, bool, error) {
	raw, err := r.rdb.Get(ctx, r.conversationKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errx.WrapRedis(err)
	}

	var msgs []*schema.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, false, fmt.Errorf("unmarshal history for %s: %w", userID, err)
	}
	return msgs, true, nil
}

func (r *RedisBackend) Save(ctx context.Context, userID string, msgs []*schema.Message) error {
	b, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("marshal history for %s: %w", userID, err)
	}

	if err := r.rdb.Set(ctx, r.conversationKey(userID), b, r.ttl).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, r.conversationKey(userID)).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Backend = (*RedisBackend)(nil)
