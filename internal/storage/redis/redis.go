package redis

import (
	"context"
	"errors"
	"fmt"
	"moviehub/proj/internal/storage"

	"github.com/redis/go-redis/v9"
)

type Storage struct {
	client *redis.Client
	prefix string
}

func New(ctx context.Context, addr, password string, db int, prefix string) (*Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Storage{client: client, prefix: prefix}, nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	return value, nil
}

// Set stores value without expiration.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}
