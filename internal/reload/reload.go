// Package reload implements the configuration reload protocol shared by any
// keyed collection of components: diff the old and new component configs,
// build only what changed in a scratch area, then swap it in.
//
// Grounded on aop_manager.rs's ConfigReloader<AopManagerConfig> impl: keys
// whose Create config is unchanged reuse the existing instance, keys whose
// config changed (or that are new) are rebuilt, and keys absent from the new
// config are dropped.
package reload

import (
	"context"

	"github.com/hatlonely/goflux/internal/typeopt"
)

// Reloader is implemented by anything that can accept a new configuration in
// place, matching the original's ConfigReloader<C> trait.
type Reloader[C any] interface {
	Reload(ctx context.Context, next C) error
}

// Decision is the outcome of diffing one key's old and new ComponentConfig.
type Decision int

const (
	// DecisionBuild means the key is new or its config changed: construct a
	// fresh instance.
	DecisionBuild Decision = iota
	// DecisionReuse means the key's config is unchanged: keep the existing
	// instance, do not reconstruct it.
	DecisionReuse
	// DecisionDrop means the key existed before but is absent from the new
	// config: remove it.
	DecisionDrop
)

// Plan diffs oldConfigs against newConfigs and returns, for every key that
// appears in either map, the action to take. Reference-kind entries always
// come back as DecisionBuild; the caller resolves references against the
// scratch map (built-so-far) and then the global sibling lookup, in that
// order, the same way aop_manager.rs's resolve_aop_config_by_name does.
func Plan(oldConfigs, newConfigs map[string]typeopt.ComponentConfig) map[string]Decision {
	plan := make(map[string]Decision, len(newConfigs))

	for key, next := range newConfigs {
		prev, existed := oldConfigs[key]
		switch {
		case next.IsReference:
			plan[key] = DecisionBuild
		case existed && prev.Equal(next):
			plan[key] = DecisionReuse
		default:
			plan[key] = DecisionBuild
		}
	}

	for key := range oldConfigs {
		if _, ok := newConfigs[key]; !ok {
			plan[key] = DecisionDrop
		}
	}

	return plan
}
