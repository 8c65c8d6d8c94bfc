package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore serves assets stored as plain string keys "<prefix><path>"
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// NewRedisStore creates a new Redis backed store
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "examkit:asset:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Key returns the redis key an asset path is stored under
func (s *RedisStore) Key(name string) string {
	return s.prefix + CleanPath(name)
}

// ReadFile returns the value stored for a path
func (s *RedisStore) ReadFile(ctx context.Context, name string) ([]byte, error) {
	name = CleanPath(name)
	data, err := s.client.Get(ctx, s.prefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notExist("read", name)
		}
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

// ReadDir scans keys below dir and keeps direct children only
func (s *RedisStore) ReadDir(ctx context.Context, dir string) ([]string, error) {
	dir = CleanPath(dir)
	base := s.prefix
	if dir != "." {
		base += dir + "/"
	}
	pattern := escapeGlob(base) + "*"

	var (
		cursor uint64
		names  []string
		found  bool
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		for _, key := range keys {
			found = true
			rest := strings.TrimPrefix(key, base)
			if rest == "" || strings.Contains(rest, "/") {
				continue
			}
			names = append(names, rest)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if !found {
		return nil, notExist("readdir", dir)
	}
	return names, nil
}

// Ping verifies Redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// escapeGlob escapes the characters SCAN MATCH treats specially
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
