package store

import (
	"github.com/hatlonely/goflux/internal/registry"
)

// init registers the canonical Store[string, []byte] instantiation — the
// byte-blob cache shape a config or object layer needs — into the type
// registry, under three implementation names. Other K/V instantiations are
// constructed directly: Go's per-type-parameter registry partitioning (see
// internal/registry) makes one blanket registration for "any K, V"
// impossible, the same constraint the original faces needing
// register_serde_serializers::<T>() called once per concrete T.
func init() {
	registry.RegisterInterface[Store[string, []byte], *MapStore[string, []byte]](
		"map",
		func(cfg MapStoreConfig) (*MapStore[string, []byte], error) {
			return NewMapStoreWithConfig[string, []byte](cfg), nil
		},
	)

	registry.RegisterInterface[Store[string, []byte], *LRUStore[string, []byte]](
		"lru",
		func(cfg LRUStoreConfig) (*LRUStore[string, []byte], error) {
			return NewLRUStore[string, []byte](cfg)
		},
	)

	registry.RegisterInterface[Store[string, []byte], *RedisStore[string, []byte]](
		"redis",
		func(cfg RedisStoreConfig) (*RedisStore[string, []byte], error) {
			return NewRedisStore[string, []byte](cfg, nil, nil)
		},
	)
}
