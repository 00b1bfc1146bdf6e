// Package cfgsource implements the configuration source abstraction that
// feeds internal/manager with raw, format-decoded configuration documents
// and notifies callers when the backing document changes.
//
// Grounded on _examples/original_source/src/cfg/configurable.rs's
// create_with_watch (load once, re-deliver through a callback when the
// backing store changes) and src/cfg/register.rs's register_sources(),
// which registers both a FileSource and an ApolloSource under the same
// ConfigSource trait.
package cfgsource

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hatlonely/goflux/internal/value"
)

// Source loads a configuration document identified by key into a
// value.Value, and can notify a caller when the document behind key
// changes.
type Source interface {
	Load(key string) (value.Value, error)
	Watch(key string, onChange func(value.Value)) error
}

func formatFromExt(path string) (value.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return value.FormatJSON, nil
	case ".jsonc":
		return value.FormatRelaxedJSON, nil
	case ".yaml", ".yml":
		return value.FormatYAML, nil
	case ".toml":
		return value.FormatTOML, nil
	default:
		return "", fmt.Errorf("cfgsource: cannot infer format from extension: %s", path)
	}
}
