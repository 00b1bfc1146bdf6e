package cfgsource

import (
	"github.com/hatlonely/goflux/internal/registry"
)

// init registers FileSource and ApolloSource under the Source interface
// fingerprint, mirroring the original's register_sources().
func init() {
	registry.RegisterInterface[Source, *FileSource](
		"file",
		NewFileSourceWithConfig,
	)
	registry.RegisterInterface[Source, *ApolloSource](
		"apollo",
		NewApolloSourceWithConfig,
	)
}
