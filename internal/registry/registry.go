// Package registry implements the type registry and factory: a process-
// global mapping from type name to constructor, for both concrete types and
// for named implementations of a Go interface.
//
// Grounded on the two parallel tables in the original's registry.rs — one by
// concrete name, one by (TypeId, name) — adapted to Go generics, since Go has
// no call-site TypeId the way Rust's TypeId::of::<Trait>() does. The
// interface table instead fingerprints on the reflect.Type of a
// pointer-to-nil-interface, derived at each RegisterInterface and
// CreateInterface call.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hatlonely/goflux/internal/component"
	"github.com/hatlonely/goflux/internal/typeopt"
	"github.com/hatlonely/goflux/internal/value"
)

type builder func(opts value.Value) (interface{}, error)

var (
	concreteMu sync.RWMutex
	concrete   = map[string]builder{}

	interfaceMu sync.RWMutex
	// interfaces is keyed by (interface fingerprint, type name).
	interfaces = map[reflect.Type]map[string]builder{}
)

// fingerprint returns the reflect.Type identifying interface I, derived from
// a typed nil pointer on every call; each generic instantiation of I yields
// its own reflect.Type.
func fingerprint[I any]() reflect.Type {
	return reflect.TypeOf((*I)(nil)).Elem()
}

// RegisterConcrete registers a constructor for a concrete type T, decoding
// its options into C before calling build. Re-registering under the same
// name overwrites the previous constructor but does not affect instances
// already built from it (matches registry.rs's test_duplicate_registration).
func RegisterConcrete[T, C any](name string, build func(C) (T, error)) {
	concreteMu.Lock()
	defer concreteMu.Unlock()
	concrete[name] = func(opts value.Value) (interface{}, error) {
		cfg, err := typeopt.Decode[C](opts)
		if err != nil {
			return nil, err
		}
		out, err := build(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", component.ErrConstructionFailed, err)
		}
		return out, nil
	}
}

// RegisterInterface registers a constructor for type T under name, filed
// under interface I's registry partition. Multiple concrete types may
// implement I and register distinct names into the same partition; distinct
// interfaces never share a partition even if registered under the same name
// (matches registry.rs's test_trait_and_concrete_type_registry_independent).
func RegisterInterface[I, T, C any](name string, build func(C) (T, error)) {
	fp := fingerprint[I]()

	interfaceMu.Lock()
	defer interfaceMu.Unlock()
	partition, ok := interfaces[fp]
	if !ok {
		partition = map[string]builder{}
		interfaces[fp] = partition
	}
	partition[name] = func(opts value.Value) (interface{}, error) {
		cfg, err := typeopt.Decode[C](opts)
		if err != nil {
			return nil, err
		}
		out, err := build(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", component.ErrConstructionFailed, err)
		}
		var iface interface{} = out
		result, ok := iface.(I)
		if !ok {
			return nil, component.ErrWrongType
		}
		return result, nil
	}
}

// CreateConcrete looks up opts.Type in the concrete registry and builds T
// from opts.Options.
func CreateConcrete[T any](opts typeopt.TypeOptions) (T, error) {
	var zero T

	concreteMu.RLock()
	build, ok := concrete[opts.Type]
	concreteMu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %q", component.ErrUnregistered, opts.Type)
	}

	out, err := build(opts.Options)
	if err != nil {
		return zero, err
	}
	result, ok := out.(T)
	if !ok {
		return zero, component.ErrWrongType
	}
	return result, nil
}

// CreateInterface looks up opts.Type within interface I's partition and
// builds the implementation, returning it as I.
func CreateInterface[I any](opts typeopt.TypeOptions) (I, error) {
	var zero I
	fp := fingerprint[I]()

	interfaceMu.RLock()
	partition, ok := interfaces[fp]
	var build builder
	if ok {
		build = partition[opts.Type]
	}
	interfaceMu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: no implementations registered for this interface", component.ErrUnregistered)
	}

	if build == nil {
		return zero, fmt.Errorf("%w: %q", component.ErrUnregistered, opts.Type)
	}

	out, err := build(opts.Options)
	if err != nil {
		return zero, err
	}
	result, ok := out.(I)
	if !ok {
		return zero, component.ErrWrongType
	}
	return result, nil
}
