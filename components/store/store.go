// Package store implements the generic key-value Store used by the
// domain stack: an in-process map, a bounded LRU cache, and a Redis-backed
// network store, all behind one interface.
//
// Grounded on _examples/original_source/src/kv/store/core.rs's Store<K, V>
// trait and its SetOptions/KvError.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound is returned by Get, and in BatchGet's per-key errors, for a
// missing key. Del and BatchDel succeed for a missing key.
var ErrKeyNotFound = errors.New("store: key not found")

// ErrConditionFailed is returned by Set when SetOptions.IfNotExist is set
// and the key already exists.
var ErrConditionFailed = errors.New("store: condition failed")

// SetOptions configures a Set call. The zero value sets the key
// unconditionally with no expiration, matching the original's
// SetOptions::new().
type SetOptions struct {
	Expiration time.Duration
	IfNotExist bool
}

// WithExpiration returns a copy of o with Expiration set.
func (o SetOptions) WithExpiration(d time.Duration) SetOptions {
	o.Expiration = d
	return o
}

// WithIfNotExist returns a copy of o with IfNotExist set.
func (o SetOptions) WithIfNotExist() SetOptions {
	o.IfNotExist = true
	return o
}

// Store is a generic key-value store. Every method is safe for concurrent
// use by multiple goroutines.
type Store[K comparable, V any] interface {
	Set(ctx context.Context, key K, val V, opts SetOptions) error
	Get(ctx context.Context, key K) (V, error)
	Del(ctx context.Context, key K) error

	BatchSet(ctx context.Context, keys []K, vals []V, opts SetOptions) ([]error, error)
	BatchGet(ctx context.Context, keys []K) ([]*V, []error, error)
	BatchDel(ctx context.Context, keys []K) ([]error, error)

	Close(ctx context.Context) error
}

func lengthMismatch(keys, vals int) error {
	return fmt.Errorf("store: keys and values length mismatch (%d != %d)", keys, vals)
}
