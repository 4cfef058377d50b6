// File: options.go
// Role: functional options for Builder, generalizing builder/options.go's
//       BuilderOption pattern from graph-construction knobs (RNG, ID
//       scheme, edge weight) to build-orchestration knobs (logging,
//       metrics, chunk size).

package cagra

import (
	"github.com/cagraph/cagra/logx"
	"github.com/cagraph/cagra/metrics"
)

type builderConfig struct {
	logger    logx.Logger
	recorder  metrics.Recorder
	chunkSize int32
}

func newBuilderConfig(opts ...Option) *builderConfig {
	cfg := &builderConfig{
		logger:    logx.Null{},
		recorder:  metrics.NopRecorder{},
		chunkSize: 0, // 0 means "let each stage use its own default"
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option customizes a Builder before it runs. Later options override
// earlier ones, in the order newBuilderConfig applies them.
type Option func(*builderConfig)

// WithLogger attaches a logx.Logger for stage progress lines. A nil
// logger is ignored rather than panicking -- the orchestration knobs
// this package exposes are never a programmer-error surface the way the
// teacher's RNG/ID-scheme options are.
func WithLogger(l logx.Logger) Option {
	return func(c *builderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics attaches a metrics.Recorder for stage-duration and output-
// degree observations.
func WithMetrics(r metrics.Recorder) Option {
	return func(c *builderConfig) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithChunkSize overrides the dynamic scheduling granularity (spec.md
// S5's "~100 nodes per work unit") used by every stage. Non-positive
// values are ignored.
func WithChunkSize(n int32) Option {
	return func(c *builderConfig) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}
