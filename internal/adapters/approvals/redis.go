package approvals

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"flex_reviews/internal/adapters/observability"
)

const redisKey = "reviews:approvals"

// RedisStore keeps the mapping in a single Redis hash. HSET is atomic per
// field, so this backend needs no read-modify-write cycle on Set.
type RedisStore struct{ c *redis.Client }

func NewRedisStore(addr, pass string, db int) *RedisStore {
	return &RedisStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *RedisStore) Load(ctx context.Context) (map[string]bool, error) {
	raw, err := r.c.HGetAll(ctx, redisKey).Result()
	if err != nil {
		observability.ObserveStore("redis", "error")
		return nil, err
	}
	m := make(map[string]bool, len(raw))
	for id, v := range raw {
		if b, err := strconv.ParseBool(v); err == nil {
			m[id] = b
		}
	}
	observability.ObserveStore("redis", "load")
	return m, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, approved bool) error {
	if err := r.c.HSet(ctx, redisKey, id, strconv.FormatBool(approved)).Err(); err != nil {
		observability.ObserveStore("redis", "error")
		return err
	}
	observability.ObserveStore("redis", "set")
	return nil
}
