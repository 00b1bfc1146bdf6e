package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatlonely/goflux/internal/component"
	"github.com/hatlonely/goflux/internal/manager"
	"github.com/hatlonely/goflux/internal/typeopt"
	"github.com/hatlonely/goflux/internal/value"
)

type svc struct {
	maxTimes int
}

func createConfig(maxTimes int64) typeopt.ComponentConfig {
	opts := value.NewObject()
	opts.Set("max_times", value.Int(maxTimes))
	return typeopt.ComponentConfig{
		TypeOptions: typeopt.TypeOptions{Type: "retry_svc", Options: value.Obj(opts)},
	}
}

func refConfig(name string) typeopt.ComponentConfig {
	return typeopt.ComponentConfig{IsReference: true, InstanceName: name}
}

func build(opts typeopt.TypeOptions) (*svc, error) {
	cfg, err := typeopt.Decode[struct {
		MaxTimes int `mapstructure:"max_times"`
	}](opts.Options)
	if err != nil {
		return nil, err
	}
	return &svc{maxTimes: cfg.MaxTimes}, nil
}

func TestManagerNewAndContains(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(3),
		Named: map[string]typeopt.ComponentConfig{
			"main": createConfig(3),
			"db":   createConfig(3),
		},
	}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	assert.True(t, m.Contains("main"))
	assert.True(t, m.Contains("db"))
	assert.False(t, m.Contains("nonexistent"))
	assert.NotNil(t, m.Default())
}

func TestManagerGetOrDefault(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(3),
		Named:   map[string]typeopt.ComponentConfig{"main": createConfig(3)},
	}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	main, err := m.Get("main")
	require.NoError(t, err)
	assert.Equal(t, 3, main.maxTimes)

	fallback := m.GetOrDefault("nonexistent")
	assert.Equal(t, m.Default(), fallback)
}

func TestManagerAddKeysRemove(t *testing.T) {
	cfg := manager.Config{Default: createConfig(1), Named: map[string]typeopt.ComponentConfig{
		"a": createConfig(1), "b": createConfig(1), "c": createConfig(1),
	}}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, m.Keys())

	m.Add("dynamic", &svc{maxTimes: 99})
	assert.True(t, m.Contains("dynamic"))

	removed, ok := m.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 1, removed.maxTimes)
	assert.False(t, m.Contains("a"))

	_, ok = m.Remove("nonexistent")
	assert.False(t, ok)
}

func TestManagerReferenceInstanceSharesPointer(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(1),
		Named: map[string]typeopt.ComponentConfig{
			"main":    createConfig(1),
			"api":     refConfig("main"),
			"service": refConfig("main"),
		},
	}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	main, _ := m.Get("main")
	api, _ := m.Get("api")
	service, _ := m.Get("service")
	assert.Same(t, main, api)
	assert.Same(t, main, service)
}

func TestManagerReloadKeepsUnchangedInstances(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"main": createConfig(1), "db": createConfig(1)},
	}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	oldMain, _ := m.Get("main")
	oldDB, _ := m.Get("db")
	oldDefault := m.Default()

	require.NoError(t, m.Reload(context.Background(), manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"main": createConfig(1), "db": createConfig(1)},
	}))

	newMain, _ := m.Get("main")
	newDB, _ := m.Get("db")
	assert.Same(t, oldMain, newMain)
	assert.Same(t, oldDB, newDB)
	assert.Same(t, oldDefault, m.Default())
}

func TestManagerReloadRebuildsChangedConfig(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"main": createConfig(1), "db": createConfig(1)},
	}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	oldMain, _ := m.Get("main")
	oldDB, _ := m.Get("db")

	require.NoError(t, m.Reload(context.Background(), manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"main": createConfig(5), "db": createConfig(1)},
	}))

	newMain, _ := m.Get("main")
	newDB, _ := m.Get("db")
	assert.NotSame(t, oldMain, newMain)
	assert.Equal(t, 5, newMain.maxTimes)
	assert.Same(t, oldDB, newDB)
}

func TestManagerReloadAddRemove(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"main": createConfig(1), "db": createConfig(1)},
	}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	oldMain, _ := m.Get("main")

	require.NoError(t, m.Reload(context.Background(), manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"main": createConfig(1), "api": createConfig(1)},
	}))

	assert.True(t, m.Contains("main"))
	assert.False(t, m.Contains("db"))
	assert.True(t, m.Contains("api"))

	newMain, _ := m.Get("main")
	assert.Same(t, oldMain, newMain)
}

func TestManagerReloadWithReferenceTracksTarget(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(1),
		Named: map[string]typeopt.ComponentConfig{
			"main": createConfig(1),
			"api":  refConfig("main"),
		},
	}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	main1, _ := m.Get("main")
	api1, _ := m.Get("api")
	assert.Same(t, main1, api1)

	require.NoError(t, m.Reload(context.Background(), manager.Config{
		Default: createConfig(1),
		Named: map[string]typeopt.ComponentConfig{
			"main": createConfig(10),
			"api":  refConfig("main"),
		},
	}))

	main2, _ := m.Get("main")
	api2, _ := m.Get("api")
	assert.Same(t, main2, api2)
	assert.NotSame(t, main1, main2)
	assert.Equal(t, 10, main2.maxTimes)
}

func TestManagerGlobalFallbackForUnresolvedReference(t *testing.T) {
	sibling := &svc{maxTimes: 42}
	global := func(name string) (*svc, bool) {
		if name == "shared" {
			return sibling, true
		}
		return nil, false
	}

	cfg := manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"api": refConfig("shared")},
	}
	m, err := manager.New[*svc](cfg, build, global)
	require.NoError(t, err)

	api, err := m.Get("api")
	require.NoError(t, err)
	assert.Same(t, sibling, api)
}

func TestManagerUnresolvedReferenceErrors(t *testing.T) {
	cfg := manager.Config{
		Default: createConfig(1),
		Named:   map[string]typeopt.ComponentConfig{"api": refConfig("nowhere")},
	}
	_, err := manager.New[*svc](cfg, build, nil)
	require.Error(t, err)
}

func TestManagerGetMissingKeyErrorsPipeNotFound(t *testing.T) {
	cfg := manager.Config{Default: createConfig(1)}
	m, err := manager.New[*svc](cfg, build, nil)
	require.NoError(t, err)

	_, err = m.Get("does not exist")
	require.ErrorIs(t, err, component.ErrPipeNotFound)
}
