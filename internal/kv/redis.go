package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	redisClient *redis.Client
	keyPrefix   string
}

// NewRedisStorage stores each slot as a plain string key under keyPrefix
func NewRedisStorage(redisClient *redis.Client, keyPrefix string) Storage {
	return &redisStorage{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (s *redisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil // Slot never written
		}
		return "", false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}

	return val, true, nil
}

func (s *redisStorage) Set(ctx context.Context, key, value string) error {
	err := s.redisClient.Set(ctx, s.keyPrefix+key, value, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

func (s *redisStorage) Delete(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}
