package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps JSON-encoded values under "<namespace>:<key>" without expiry.
type RedisStore[V any] struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore[V any](client *redis.Client, namespace string) *RedisStore[V] {
	return &RedisStore[V]{client: client, namespace: namespace}
}

func (s *RedisStore[V]) redisKey(key string) string {
	return s.namespace + ":" + key
}

func (s *RedisStore[V]) Put(ctx context.Context, key string, value V) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.redisKey(key), err)
	}
	if err := s.client.Set(ctx, s.redisKey(key), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to put %s: %w", s.redisKey(key), err)
	}
	return nil
}

func (s *RedisStore[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	raw, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to get %s: %w", s.redisKey(key), err)
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, fmt.Errorf("failed to decode %s: %w", s.redisKey(key), err)
	}
	return value, nil
}

func (s *RedisStore[V]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.redisKey(key), err)
	}
	return nil
}

// List has no ordering guarantee.
func (s *RedisStore[V]) List(ctx context.Context) ([]V, error) {
	var values []V
	iter := s.client.Scan(ctx, 0, s.namespace+":*", 100).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get %s: %w", iter.Val(), err)
		}
		var value V
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", iter.Val(), err)
		}
		values = append(values, value)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.namespace, err)
	}
	return values, nil
}
