package store

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUStoreConfig configures LRUStore. Size is the maximum number of entries
// kept before the least-recently-used one is evicted.
type LRUStoreConfig struct {
	Size int `mapstructure:"size"`
}

type lruEntry[V any] struct {
	val       V
	expiresAt time.Time
}

func (e lruEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// LRUStore is a bounded in-process Store: once Size entries are held, the
// least-recently-used one is evicted to make room for a new Set.
//
// The original has no LRU-bounded store (hash_map_store.rs grows
// unboundedly); this is enrichment drawn from the rest of this module's
// dependency set (golang-lru/v2), wired in because a config/object cache
// layer in front of RedisStore benefits from a bounded local tier.
type LRUStore[K comparable, V any] struct {
	c *lru.Cache[K, lruEntry[V]]
}

// NewLRUStore returns an LRUStore holding at most cfg.Size entries (default
// 1024 if unset or non-positive).
func NewLRUStore[K comparable, V any](cfg LRUStoreConfig) (*LRUStore[K, V], error) {
	size := cfg.Size
	if size <= 0 {
		size = 1024
	}
	c, err := lru.New[K, lruEntry[V]](size)
	if err != nil {
		return nil, err
	}
	return &LRUStore[K, V]{c: c}, nil
}

func expiresAtFor(opts SetOptions) time.Time {
	if opts.Expiration <= 0 {
		return time.Time{}
	}
	return time.Now().Add(opts.Expiration)
}

func (s *LRUStore[K, V]) Set(_ context.Context, key K, val V, opts SetOptions) error {
	if opts.IfNotExist {
		if e, ok := s.c.Peek(key); ok && !e.expired(time.Now()) {
			return ErrConditionFailed
		}
	}
	s.c.Add(key, lruEntry[V]{val: val, expiresAt: expiresAtFor(opts)})
	return nil
}

func (s *LRUStore[K, V]) Get(_ context.Context, key K) (V, error) {
	var zero V
	e, ok := s.c.Get(key)
	if !ok || e.expired(time.Now()) {
		return zero, ErrKeyNotFound
	}
	return e.val, nil
}

func (s *LRUStore[K, V]) Del(_ context.Context, key K) error {
	s.c.Remove(key)
	return nil
}

func (s *LRUStore[K, V]) BatchSet(ctx context.Context, keys []K, vals []V, opts SetOptions) ([]error, error) {
	if len(keys) != len(vals) {
		return nil, lengthMismatch(len(keys), len(vals))
	}
	results := make([]error, len(keys))
	for i, key := range keys {
		results[i] = s.Set(ctx, key, vals[i], opts)
	}
	return results, nil
}

func (s *LRUStore[K, V]) BatchGet(ctx context.Context, keys []K) ([]*V, []error, error) {
	vals := make([]*V, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		v, err := s.Get(ctx, key)
		if err != nil {
			errs[i] = err
			continue
		}
		vals[i] = &v
	}
	return vals, errs, nil
}

func (s *LRUStore[K, V]) BatchDel(ctx context.Context, keys []K) ([]error, error) {
	for _, key := range keys {
		s.c.Remove(key)
	}
	return make([]error, len(keys)), nil
}

func (s *LRUStore[K, V]) Close(_ context.Context) error {
	s.c.Purge()
	return nil
}
