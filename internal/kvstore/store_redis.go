package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	id "anamnesis/pkg/domain"
)

const redisKeyPrefix = "kv:"

// RedisStore keeps values under kv:{user}:{key}. Values do not expire.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(userID id.UserID, key Key) string {
	return redisKeyPrefix + userID.String() + ":" + string(key)
}

func (s *RedisStore) Get(ctx context.Context, userID id.UserID, key Key) (string, bool, error) {
	v, err := s.client.Get(ctx, redisKey(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, userID id.UserID, key Key, value string) error {
	if err := s.client.Set(ctx, redisKey(userID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, userID id.UserID, key Key) error {
	if err := s.client.Del(ctx, redisKey(userID, key)).Err(); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// GetMany reads all keys with a single MGET.
func (s *RedisStore) GetMany(ctx context.Context, userID id.UserID, keys []Key) (map[Key]string, error) {
	out := make(map[Key]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = redisKey(userID, k)
	}
	values, err := s.client.MGet(ctx, names...).Result()
	if err != nil {
		return nil, fmt.Errorf("get many: %w", err)
	}
	for i, v := range values {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}
