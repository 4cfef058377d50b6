// File: builder.go
// Role: Builder -- the single orchestrator running reorder -> reverse ->
//       merge in sequence, releasing the KNNG as soon as reorder
//       finishes (spec.md S4.5, S5's "peak memory" policy).

package cagra

import (
	"context"
	"time"

	"github.com/cagraph/cagra/graphstore"
	"github.com/cagraph/cagra/merge"
	"github.com/cagraph/cagra/metrics"
	"github.com/cagraph/cagra/reorder"
	"github.com/cagraph/cagra/reverse"
)

// Builder runs the three-stage transform for one GraphInfo shape. A
// Builder is used for exactly one Build call; it is not reusable across
// differently shaped inputs.
type Builder struct {
	info graphstore.GraphInfo
	cfg  *builderConfig
}

// New constructs a Builder for the given shape. Options customize
// logging, metrics, and the dynamic chunking granularity; info itself is
// validated lazily, at Build time, matching spec.md S4.5 step 1.
func New(info graphstore.GraphInfo, opts ...Option) *Builder {
	return &Builder{info: info, cfg: newBuilderConfig(opts...)}
}

// Build validates info, then runs ReorderStage, ReverseStage, and
// MergeStage in order, returning the final fixed-degree graph.
//
// A context cancelled before a stage starts is honored; one already
// running is not interrupted mid-stage -- this is the idiomatic Go
// reading of spec.md S5's "no cancellation: once build starts, it runs
// to completion" (recorded as an Open Question resolution in DESIGN.md).
func (b *Builder) Build(ctx context.Context, knng *graphstore.FixedDegreeGraph) (*graphstore.FixedDegreeGraph, error) {
	if err := b.info.Validate(); err != nil {
		return nil, err
	}

	log := b.cfg.logger.WithField("n", b.info.N).WithField("r", b.info.R)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reordered, err := runStage(b.cfg.recorder, "reorder", func() (*graphstore.FixedDegreeGraph, error) {
		return reorder.Run(ctx, knng, b.info, b.cfg.chunkSize)
	})
	if err != nil {
		return nil, err
	}
	log.Info("reorder complete")

	if err := knng.Close(); err != nil {
		log.Warn("failed to release KNNG storage: %v", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rev, err := runStage(b.cfg.recorder, "reverse", func() (*reverse.Result, error) {
		return reverse.Run(ctx, reordered, b.info, b.cfg.chunkSize)
	})
	if err != nil {
		return nil, err
	}
	log.Info("reverse complete")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	final, err := runStage(b.cfg.recorder, "merge", func() (*graphstore.FixedDegreeGraph, error) {
		return merge.Run(ctx, reordered, rev, b.info, b.cfg.chunkSize)
	})
	if err != nil {
		return nil, err
	}
	log.Info("merge complete")

	if err := reordered.Close(); err != nil {
		log.Warn("failed to release reordered graph storage: %v", err)
	}
	if err := rev.Graph.Close(); err != nil {
		log.Warn("failed to release reverse graph storage: %v", err)
	}

	for x := int32(0); x < final.N(); x++ {
		var degree float64
		for _, id := range final.Row(x) {
			if id != graphstore.EmptyID {
				degree++
			}
		}
		b.cfg.recorder.ObserveOutputDegree(degree)
	}

	return final, nil
}

// runStage times a stage closure and reports it through recorder, so
// every stage -- regardless of return type -- gets the same timing
// treatment without repeating the time.Since boilerplate at each call
// site.
func runStage[T any](recorder metrics.Recorder, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fn()
	recorder.ObserveStageDuration(name, time.Since(start).Seconds())
	return out, err
}
