package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// Storage adapts a redis client to fiber.Storage so limiter counters are shared
// between instances. Keys are namespaced by Prefix.
type Storage struct {
	Client  *redis.Client
	Prefix  string
	Timeout time.Duration
}

func NewStorage(client *redis.Client, prefix string) *Storage {
	return &Storage{Client: client, Prefix: prefix, Timeout: time.Second}
}

func (s *Storage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.Timeout)
}

func (s *Storage) key(k string) string {
	return s.Prefix + k
}

func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.Client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.Client.Set(ctx, s.key(key), val, exp).Err()
}

func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.Client.Del(ctx, s.key(key)).Err()
}

// Reset removes every key under Prefix.
func (s *Storage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.Client.Scan(ctx, 0, s.Prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the client is owned by main.
func (s *Storage) Close() error {
	return nil
}
