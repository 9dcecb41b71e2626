package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
)

// incrScript counts the leading digits of the stored value and treats
// missing or non-numeric values as zero, unlike plain INCR which fails on
// them.
const incrScript = `
local raw = redis.call("GET", KEYS[1])
local digits = raw and string.match(raw, "^%s*(%d+)")
local v = 0
if digits then
  v = tonumber(digits)
end
v = v + 1
redis.call("SET", KEYS[1], v)
return v
`

// Options configures the Redis counter store.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key.
	Prefix string
}

// Store keeps counters in Redis. Keys never expire.
type Store struct {
	client *goredis.Client
	incr   *goredis.Script
	prefix string
}

func New(opts Options) (*Store, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(opts.Password),
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.Prefix), nil
}

func NewWithClient(client *goredis.Client, prefix string) *Store {
	return &Store{
		client: client,
		incr:   goredis.NewScript(incrScript),
		prefix: prefix,
	}
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	n, err := s.incr.Run(ctx, s.client, []string{s.key(key)}).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
