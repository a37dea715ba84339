package redis

import (
	"context"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/cache"
	"github.com/redis/go-redis/v9"
)

// KVStore backs the result cache with Redis so session history survives
// process restarts.
type KVStore struct {
	client *redis.Client
}

func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", cache.ErrKeyNotFound
	}
	return value, err
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	// History entries are kept without expiry; each (email, timestamp) key
	// is written once and never updated.
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
