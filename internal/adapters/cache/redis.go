package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key this cache writes.
const DefaultPrefix = "dashboard:views"

// RedisCache is a ViewCache shared by every server instance.
// Each collection has a generation counter; entries are written under the
// generation the reader observed and Invalidate bumps it, orphaning older
// entries until their TTL expires. Keys of one collection share a hash tag so
// the conditional write stays on a single cluster slot.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Compile-time check that *RedisCache satisfies ViewCache.
var _ ViewCache = (*RedisCache)(nil)

// NewRedisCache wraps client. A ttl <= 0 keeps entries until invalidated.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisCacheFromURL parses a redis:// URL and verifies the server is reachable.
func NewRedisCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return NewRedisCache(client, "", ttl), nil
}

// Close releases the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) genKey(collection string) string {
	return r.prefix + ":{" + collection + "}:gen"
}

func (r *RedisCache) entryKey(collection string, gen int64, key string) string {
	return fmt.Sprintf("%s:{%s}:%d:%s", r.prefix, collection, gen, key)
}

// putIfCurrent writes KEYS[2] only while KEYS[1] still holds generation ARGV[1].
// ARGV[3] is the TTL in milliseconds; 0 keeps the entry until invalidated.
var putIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

func (r *RedisCache) generation(ctx context.Context, collection string) (int64, error) {
	gen, err := r.client.Get(ctx, r.genKey(collection)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read generation: %w", err)
	}
	return gen, nil
}

// Get returns the cached view for key under the collection's current generation,
// along with that generation.
func (r *RedisCache) Get(ctx context.Context, collection, key string) ([]byte, int64, bool, error) {
	gen, err := r.generation(ctx, collection)
	if err != nil {
		return nil, 0, false, err
	}
	v, err := r.client.Get(ctx, r.entryKey(collection, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("read view: %w", err)
	}
	return v, gen, true, nil
}

// Put stores a view under gen, atomically skipping the write when the
// collection has been invalidated since gen was read.
func (r *RedisCache) Put(ctx context.Context, collection, key string, gen int64, value []byte) error {
	ttl := int64(0)
	if r.ttl > 0 {
		ttl = max(r.ttl.Milliseconds(), 1)
	}
	keys := []string{r.genKey(collection), r.entryKey(collection, gen, key)}
	if err := putIfCurrent.Run(ctx, r.client, keys, strconv.FormatInt(gen, 10), value, ttl).Err(); err != nil {
		return fmt.Errorf("write view: %w", err)
	}
	return nil
}

// Invalidate advances the collection's generation.
func (r *RedisCache) Invalidate(ctx context.Context, collection string) error {
	if err := r.client.Incr(ctx, r.genKey(collection)).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", collection, err)
	}
	return nil
}
