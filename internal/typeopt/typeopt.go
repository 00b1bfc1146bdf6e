// Package typeopt implements TypeOptions, the {type, options} envelope that
// every registered component is configured through, and ComponentConfig, the
// sum type distinguishing a fresh construction from a reference to an
// existing named instance.
package typeopt

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/hatlonely/goflux/internal/component"
	"github.com/hatlonely/goflux/internal/value"
)

// InstanceKey is the reserved options key that, when present, turns a
// ComponentConfig into a Reference instead of a Create.
const InstanceKey = "$instance"

// TypeOptions is the {type, options} envelope every registered component
// config decodes from.
type TypeOptions struct {
	Type    string
	Options value.Value
}

// ComponentConfig is either a Create (Type/Options name a constructor to
// run) or a Reference (InstanceName names an already-built sibling
// instance), mirroring the Rust original's TypeOptions plus the `$instance`
// convention documented in spec.md §6.
type ComponentConfig struct {
	IsReference  bool
	InstanceName string
	TypeOptions  TypeOptions
}

// ParseComponentConfig inspects a decoded value.Value for the reserved
// $instance key at the top level and classifies it as a Reference or a
// Create TypeOptions.
func ParseComponentConfig(v value.Value) (ComponentConfig, error) {
	if v.Kind != value.KindObject {
		return ComponentConfig{}, fmt.Errorf("component config must be an object, got %v", v.Kind)
	}

	if ref, ok := v.Object.Get(InstanceKey); ok {
		if ref.Kind != value.KindString {
			return ComponentConfig{}, fmt.Errorf("%s must be a string instance name, got %v", InstanceKey, ref.Kind)
		}
		return ComponentConfig{IsReference: true, InstanceName: ref.String}, nil
	}

	typeName, ok := v.Object.Get("type")
	if !ok || typeName.Kind != value.KindString {
		return ComponentConfig{}, fmt.Errorf("component config missing string 'type' field")
	}

	opts, ok := v.Object.Get("options")
	if !ok {
		opts = value.Obj(value.NewObject())
	}

	return ComponentConfig{
		TypeOptions: TypeOptions{Type: typeName.String, Options: opts},
	}, nil
}

// Equal reports whether two ComponentConfig values describe the same
// construction: same reference target, or same type name with
// value.Equal-equal options. Used by the reload plan to decide whether an
// existing instance can be reused across a config update.
func (c ComponentConfig) Equal(other ComponentConfig) bool {
	if c.IsReference != other.IsReference {
		return false
	}
	if c.IsReference {
		return c.InstanceName == other.InstanceName
	}
	return c.TypeOptions.Type == other.TypeOptions.Type &&
		value.Equal(c.TypeOptions.Options, other.TypeOptions.Options)
}

// Decode converts a TypeOptions' Options into an arbitrary config struct C
// via mapstructure, matching the original's serde_json::from_value step in
// create_from_type_options.
func Decode[C any](opts value.Value) (C, error) {
	var out C
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return out, fmt.Errorf("%w: %v", component.ErrConfigParseFailed, err)
	}
	if err := decoder.Decode(value.ToNative(opts)); err != nil {
		return out, fmt.Errorf("%w: %v", component.ErrConfigParseFailed, err)
	}
	return out, nil
}
