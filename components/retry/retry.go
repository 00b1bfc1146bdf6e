// Package retry implements a reusable bounded retry policy, with constant or
// exponential backoff, for the network-facing domain-stack components (store, objstore).
//
// Grounded on the retryable, bounded-attempt shape exercised by
// _examples/original_source/src/aop/aop_manager.rs's tests (svc.maxTimes /
// AopConfig's retry semantics), generalized out of any single component
// since store and objstore both need the same wrapping.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Strategy selects the backoff shape between retries, mirroring the
// original's RetryConfig.strategy field.
type Strategy string

const (
	Constant    Strategy = "constant"
	Exponential Strategy = "exponential"
)

// Config configures a Policy's backoff.
type Config struct {
	Strategy          Strategy `mapstructure:"strategy"`
	MaxRetries        int      `mapstructure:"max_retries"`
	InitialIntervalMs int64    `mapstructure:"initial_interval_ms"`
	MaxIntervalMs     int64    `mapstructure:"max_interval_ms"`
	Multiplier        float64  `mapstructure:"multiplier"`
}

// DefaultConfig mirrors backoff.NewExponentialBackOff's own defaults, capped
// at 3 retries.
func DefaultConfig() Config {
	return Config{
		Strategy:          Exponential,
		MaxRetries:        3,
		InitialIntervalMs: 500,
		MaxIntervalMs:     60_000,
		Multiplier:        1.5,
	}
}

// Policy retries a failing operation up to MaxRetries times, waiting between
// attempts per its Strategy (a constant or an exponential backoff).
type Policy struct {
	cfg Config
}

// New is Policy's only constructor.
func New(cfg Config) *Policy {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultConfig().MaxRetries
	}
	if cfg.InitialIntervalMs <= 0 {
		cfg.InitialIntervalMs = DefaultConfig().InitialIntervalMs
	}
	if cfg.MaxIntervalMs <= 0 {
		cfg.MaxIntervalMs = DefaultConfig().MaxIntervalMs
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = DefaultConfig().Multiplier
	}
	if cfg.Strategy == "" {
		cfg.Strategy = DefaultConfig().Strategy
	}
	return &Policy{cfg: cfg}
}

// NewConstant builds a Policy that waits a fixed interval between attempts,
// registered under the "constant" name.
func NewConstant(cfg Config) *Policy {
	cfg.Strategy = Constant
	return New(cfg)
}

// NewExponential builds a Policy that backs off exponentially between
// attempts, registered under the "exponential" name.
func NewExponential(cfg Config) *Policy {
	cfg.Strategy = Exponential
	return New(cfg)
}

func (p *Policy) backOff(ctx context.Context) backoff.BackOff {
	var bo backoff.BackOff
	switch p.cfg.Strategy {
	case Constant:
		bo = backoff.NewConstantBackOff(time.Duration(p.cfg.InitialIntervalMs) * time.Millisecond)
	default:
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = time.Duration(p.cfg.InitialIntervalMs) * time.Millisecond
		eb.MaxInterval = time.Duration(p.cfg.MaxIntervalMs) * time.Millisecond
		eb.Multiplier = p.cfg.Multiplier
		eb.MaxElapsedTime = 0
		bo = eb
	}

	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.cfg.MaxRetries)), ctx)
}

// Do runs op, retrying on error per the policy's backoff schedule until it
// succeeds, the retry budget is exhausted, or ctx is cancelled.
func (p *Policy) Do(ctx context.Context, op func() error) error {
	return backoff.Retry(op, p.backOff(ctx))
}
