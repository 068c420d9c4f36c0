package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/phanxgames/sticker"
)

// DefaultKeyPrefix namespaces configuration keys in Redis.
const DefaultKeyPrefix = "sticker:config:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore keeps each configuration as a JSON string value.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return newRedisStore(client, cfg.KeyPrefix), nil
}

func newRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Load(ctx context.Context, id string) (sticker.Config, error) {
	if err := validID(id); err != nil {
		return sticker.Config{}, err
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sticker.Config{}, fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return sticker.Config{}, fmt.Errorf("redis get %s: %w", id, err)
	}
	return decode(id, data)
}

func (s *RedisStore) Save(ctx context.Context, cfg sticker.Config) (string, error) {
	cfg, data, err := prepare(cfg)
	if err != nil {
		return "", fmt.Errorf("save config: %w", err)
	}
	if err := s.client.Set(ctx, s.key(cfg.ID), data, 0).Err(); err != nil {
		return "", fmt.Errorf("redis set %s: %w", cfg.ID, err)
	}
	return cfg.ID, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", id, err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements ConfigStore.
var _ ConfigStore = (*RedisStore)(nil)
