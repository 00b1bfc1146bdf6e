package reload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hatlonely/goflux/internal/reload"
	"github.com/hatlonely/goflux/internal/typeopt"
	"github.com/hatlonely/goflux/internal/value"
)

func create(typeName string, count int64) typeopt.ComponentConfig {
	opts := value.NewObject()
	opts.Set("count", value.Int(count))
	return typeopt.ComponentConfig{
		TypeOptions: typeopt.TypeOptions{Type: typeName, Options: value.Obj(opts)},
	}
}

func reference(name string) typeopt.ComponentConfig {
	return typeopt.ComponentConfig{IsReference: true, InstanceName: name}
}

func TestPlanReuseUnchanged(t *testing.T) {
	old := map[string]typeopt.ComponentConfig{"main": create("svc", 1), "db": create("svc", 2)}
	next := map[string]typeopt.ComponentConfig{"main": create("svc", 1), "db": create("svc", 2)}

	plan := reload.Plan(old, next)
	assert.Equal(t, reload.DecisionReuse, plan["main"])
	assert.Equal(t, reload.DecisionReuse, plan["db"])
}

func TestPlanBuildsChangedConfig(t *testing.T) {
	old := map[string]typeopt.ComponentConfig{"main": create("svc", 1), "db": create("svc", 2)}
	next := map[string]typeopt.ComponentConfig{"main": create("svc", 5), "db": create("svc", 2)}

	plan := reload.Plan(old, next)
	assert.Equal(t, reload.DecisionBuild, plan["main"])
	assert.Equal(t, reload.DecisionReuse, plan["db"])
}

func TestPlanAddAndRemove(t *testing.T) {
	old := map[string]typeopt.ComponentConfig{"main": create("svc", 1), "db": create("svc", 2)}
	next := map[string]typeopt.ComponentConfig{"main": create("svc", 1), "api": create("svc", 3)}

	plan := reload.Plan(old, next)
	assert.Equal(t, reload.DecisionReuse, plan["main"])
	assert.Equal(t, reload.DecisionDrop, plan["db"])
	assert.Equal(t, reload.DecisionBuild, plan["api"])
}

func TestPlanReferencesAlwaysRebuild(t *testing.T) {
	old := map[string]typeopt.ComponentConfig{"api": reference("main")}
	next := map[string]typeopt.ComponentConfig{"api": reference("main")}

	plan := reload.Plan(old, next)
	assert.Equal(t, reload.DecisionBuild, plan["api"])
}
