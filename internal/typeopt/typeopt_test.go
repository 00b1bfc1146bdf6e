package typeopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatlonely/goflux/internal/value"
)

func TestParseComponentConfigCreate(t *testing.T) {
	doc := value.NewObject()
	doc.Set("type", value.Str("my_type"))
	opts := value.NewObject()
	opts.Set("count", value.Int(3))
	doc.Set("options", value.Obj(opts))

	cc, err := ParseComponentConfig(value.Obj(doc))
	require.NoError(t, err)
	assert.False(t, cc.IsReference)
	assert.Equal(t, "my_type", cc.TypeOptions.Type)
}

func TestParseComponentConfigReference(t *testing.T) {
	doc := value.NewObject()
	doc.Set("$instance", value.Str("shared_store"))

	cc, err := ParseComponentConfig(value.Obj(doc))
	require.NoError(t, err)
	assert.True(t, cc.IsReference)
	assert.Equal(t, "shared_store", cc.InstanceName)
}

func TestParseComponentConfigMissingType(t *testing.T) {
	doc := value.NewObject()
	doc.Set("options", value.Obj(value.NewObject()))

	_, err := ParseComponentConfig(value.Obj(doc))
	assert.Error(t, err)
}

func TestParseComponentConfigDefaultsEmptyOptions(t *testing.T) {
	doc := value.NewObject()
	doc.Set("type", value.Str("no_options"))

	cc, err := ParseComponentConfig(value.Obj(doc))
	require.NoError(t, err)
	assert.Equal(t, value.KindObject, cc.TypeOptions.Options.Kind)
	assert.Equal(t, 0, cc.TypeOptions.Options.Object.Len())
}

type sampleConfig struct {
	Message string `mapstructure:"message"`
	Count   int    `mapstructure:"count"`
}

func TestDecode(t *testing.T) {
	opts := value.NewObject()
	opts.Set("message", value.Str("hi"))
	opts.Set("count", value.Int(5))

	cfg, err := Decode[sampleConfig](value.Obj(opts))
	require.NoError(t, err)
	assert.Equal(t, "hi", cfg.Message)
	assert.Equal(t, 5, cfg.Count)
}

func TestDecodeWrongShape(t *testing.T) {
	opts := value.NewObject()
	opts.Set("message", value.Arr(value.Int(1)))

	_, err := Decode[sampleConfig](value.Obj(opts))
	assert.Error(t, err)
}
