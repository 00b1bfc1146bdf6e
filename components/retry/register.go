package retry

import (
	"github.com/hatlonely/goflux/internal/registry"
)

// init registers Policy as a concrete type under its two strategy names,
// matching the original's RetryConfig.strategy field (aop.rs).
func init() {
	registry.RegisterConcrete[*Policy, Config]("constant", func(cfg Config) (*Policy, error) {
		return NewConstant(cfg), nil
	})
	registry.RegisterConcrete[*Policy, Config]("exponential", func(cfg Config) (*Policy, error) {
		return NewExponential(cfg), nil
	})
}
