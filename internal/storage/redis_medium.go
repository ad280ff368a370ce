package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisTimeout = 3 * time.Second
	redisScanCount      = 100
)

// RedisMedium stores entries as plain Redis strings. Keys are written as given, so
// several stores with different prefixes can share a database.
type RedisMedium struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRedisMedium(client *redis.Client, timeout time.Duration) *RedisMedium {
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	return &RedisMedium{client: client, timeout: timeout}
}

// OpenRedisMedium parses a redis:// URL and checks the server answers.
func OpenRedisMedium(url string) (*RedisMedium, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	medium := NewRedisMedium(redis.NewClient(options), defaultRedisTimeout)

	ctx, cancel := medium.context()
	defer cancel()
	if err := medium.client.Ping(ctx).Err(); err != nil {
		_ = medium.client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return medium, nil
}

func (medium *RedisMedium) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), medium.timeout)
}

func (medium *RedisMedium) GetString(key string) (string, bool, error) {
	ctx, cancel := medium.context()
	defer cancel()

	value, err := medium.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (medium *RedisMedium) SetString(key string, value string) error {
	ctx, cancel := medium.context()
	defer cancel()
	return medium.client.Set(ctx, key, value, 0).Err()
}

func (medium *RedisMedium) RemoveKey(key string) error {
	ctx, cancel := medium.context()
	defer cancel()
	return medium.client.Del(ctx, key).Err()
}

func (medium *RedisMedium) ListKeys() ([]string, error) {
	return medium.scan("*")
}

// ListKeysWithPrefix matches on the server so a shared database is not walked
// key by key. Glob metacharacters in prefix are escaped.
func (medium *RedisMedium) ListKeysWithPrefix(prefix string) ([]string, error) {
	return medium.scan(escapeRedisGlob(prefix) + "*")
}

func (medium *RedisMedium) scan(match string) ([]string, error) {
	ctx, cancel := medium.context()
	defer cancel()

	var keys []string
	iter := medium.client.Scan(ctx, 0, match, redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func escapeRedisGlob(pattern string) string {
	var builder strings.Builder
	for _, char := range pattern {
		switch char {
		case '*', '?', '[', ']', '\\':
			builder.WriteRune('\\')
		}
		builder.WriteRune(char)
	}
	return builder.String()
}

func (medium *RedisMedium) Close() error {
	return medium.client.Close()
}
