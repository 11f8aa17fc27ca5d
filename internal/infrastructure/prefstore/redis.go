package prefstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/infrastructure/metrics"
)

const (
	backendRedis = "redis"

	// prefsKeyPrefix is the prefix for preference keys in Redis.
	prefsKeyPrefix = "prefs:"
)

// RedisStore implements PreferenceStore on Redis, for deployments where
// several viewer instances share one preference namespace. Values keep
// the same encoding as the file store: JSON arrays for sets, raw strings
// for scalars. Entries have no TTL; preferences persist until overwritten.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed preference store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// GetSet returns the persisted id list. An absent key or unparsable value
// reads as an empty list.
func (s *RedisStore) GetSet(ctx context.Context, profileID, name string) ([]string, error) {
	data, err := s.client.Get(ctx, s.key(profileID, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendRedis, metrics.PrefStatusSuccess).Inc()
			return []string{}, nil
		}
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendRedis, metrics.PrefStatusError).Inc()
		return nil, fmt.Errorf("redis get %s: %w", name, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendRedis, metrics.PrefStatusSuccess).Inc()
		return []string{}, nil
	}

	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendRedis, metrics.PrefStatusSuccess).Inc()
	return ids, nil
}

// SetSet overwrites the persisted set.
func (s *RedisStore) SetSet(ctx context.Context, profileID, name string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendRedis, metrics.PrefStatusError).Inc()
		return fmt.Errorf("encode set %s: %w", name, err)
	}

	if err := s.client.Set(ctx, s.key(profileID, name), data, 0).Err(); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendRedis, metrics.PrefStatusError).Inc()
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendRedis, metrics.PrefStatusSuccess).Inc()
	return nil
}

// GetScalar returns the persisted value and whether it was present.
func (s *RedisStore) GetScalar(ctx context.Context, profileID, name string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(profileID, name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetScalar, backendRedis, metrics.PrefStatusSuccess).Inc()
			return "", false, nil
		}
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetScalar, backendRedis, metrics.PrefStatusError).Inc()
		return "", false, fmt.Errorf("redis get %s: %w", name, err)
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetScalar, backendRedis, metrics.PrefStatusSuccess).Inc()
	return value, true, nil
}

// SetScalar overwrites the persisted value.
func (s *RedisStore) SetScalar(ctx context.Context, profileID, name, value string) error {
	if err := s.client.Set(ctx, s.key(profileID, name), value, 0).Err(); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetScalar, backendRedis, metrics.PrefStatusError).Inc()
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetScalar, backendRedis, metrics.PrefStatusSuccess).Inc()
	return nil
}

// DeleteScalar removes the persisted value.
func (s *RedisStore) DeleteScalar(ctx context.Context, profileID, name string) error {
	if err := s.client.Del(ctx, s.key(profileID, name)).Err(); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpDeleteScalar, backendRedis, metrics.PrefStatusError).Inc()
		return fmt.Errorf("redis del %s: %w", name, err)
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpDeleteScalar, backendRedis, metrics.PrefStatusSuccess).Inc()
	return nil
}

func (s *RedisStore) key(profileID, name string) string {
	return prefsKeyPrefix + profileID + ":" + name
}

// Compile-time verification that RedisStore implements PreferenceStore.
var _ repository.PreferenceStore = (*RedisStore)(nil)
