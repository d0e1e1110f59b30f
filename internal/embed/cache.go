package embed

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/shared/util"
)

// KV is the subset of *redis.Client the cache needs.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cached memoizes another Embedder in Redis.
type Cached struct {
	next Embedder
	kv   KV
	ttl  time.Duration
}

// NewCached wraps next. A nil kv returns next unchanged.
func NewCached(next Embedder, kv KV, ttl time.Duration) Embedder {
	if kv == nil {
		return next
	}
	return &Cached{next: next, kv: kv, ttl: ttl}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (c *Cached) Model() string {
	return c.next.Model()
}

// Embed returns the cached vector when present. Cache faults are logged and
// the underlying embedder is used.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	key := CacheKey(c.next.Model(), text)

	raw, err := c.kv.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if vec, ok := decodeVector(raw); ok {
			return vec, nil
		}
		telemetry.Warn("embedding cache entry corrupt", map[string]any{"key": key})
	case !errors.Is(err, redis.Nil):
		telemetry.Warn("embedding cache read failed", map[string]any{"key": key, "error": err.Error()})
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.kv.Set(ctx, key, encodeVector(vec), c.ttl).Err(); err != nil {
		telemetry.Warn("embedding cache write failed", map[string]any{"key": key, "error": err.Error()})
	}
	return vec, nil
}

// CacheKey is embed:<model>:<sha256 of text>.
func CacheKey(model, text string) string {
	return "embed:" + model + ":" + util.HashText(text)
}

func encodeVector(vec []float32) []byte {
	out := make([]byte, 0, len(vec)*4)
	for _, v := range vec {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func decodeVector(raw []byte) ([]float32, bool) {
	if len(raw) == 0 || len(raw)%4 != 0 {
		return nil, false
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return vec, true
}
