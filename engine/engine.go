// Package engine is a toy stand-in for a data-parallel compute
// framework: it schedules one operator instance per worker and
// performs the all-reduce that combines their sketches. A production
// deployment would hand this role to a real data-flow engine; this
// package exists so the sketch's merge algebra has somewhere to run
// end to end.
package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/distsketch/hllpp"
)

// Engine runs an all-reduce over a fixed set of worker-local sketches
// using a binary tree of pairwise merges, so that Merge's commutativity
// and associativity are the only properties the reduction
// depends on — the pairing order is deliberately not left-to-right.
type Engine struct {
	logger *zap.Logger
}

// New returns an Engine that logs with logger. A nil logger is replaced
// with zap.NewNop, matching the "no observability is still valid
// configuration" posture of the ambient logging stack.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// AllReduce merges sketches into one, returning the result every worker
// would converge to regardless of how the tree is shaped. It mutates
// and reuses sketches[0] as the accumulator when the tree bottoms out,
// consistent with Merge's "returns a" contract.
func (e *Engine) AllReduce(ctx context.Context, sketches []*hllpp.Sketch) (*hllpp.Sketch, error) {
	if len(sketches) == 0 {
		return nil, nil
	}
	e.logger.Debug("all-reduce starting", zap.Int("workers", len(sketches)))

	level := sketches
	for len(level) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		next := make([]*hllpp.Sketch, (len(level)+1)/2)

		for i := range next {
			i := i
			left := level[2*i]
			var right *hllpp.Sketch
			if 2*i+1 < len(level) {
				right = level[2*i+1]
			}
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if right == nil {
					next[i] = left
					return nil
				}
				merged, err := hllpp.Merge(left, right)
				if err != nil {
					return err
				}
				next[i] = merged
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
		level = next
	}

	e.logger.Debug("all-reduce complete")
	return level[0], nil
}
