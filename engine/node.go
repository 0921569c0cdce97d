package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/distsketch/hllpp"
)

// HyperLogLogNode models one worker-local operator instance: it
// absorbs its share of the input stream into its own sketch, then the
// engine's all-reduce combines every worker's sketch into the single
// value the estimator runs on.
type HyperLogLogNode[T any] struct {
	Precision uint8
	Hasher    hllpp.Hasher[T]
}

// Run feeds each of inputs into its own Sketch concurrently (one
// goroutine per worker, mirroring one operator instance per partition),
// all-reduces the resulting sketches on e, and returns the estimator's
// result for the merged sketch. It returns early with the first error
// from either sketch construction or the all-reduce.
func (n HyperLogLogNode[T]) Run(ctx context.Context, e *Engine, inputs []<-chan T) (float64, error) {
	sketches := make([]*hllpp.Sketch, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			s, err := hllpp.New(n.Precision)
			if err != nil {
				return err
			}
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case v, ok := <-in:
					if !ok {
						sketches[i] = s
						return nil
					}
					hllpp.Add(s, v, n.Hasher)
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	merged, err := e.AllReduce(ctx, sketches)
	if err != nil {
		return 0, err
	}

	e.logger.Info("estimate computed", zap.Uint8("precision", n.Precision))
	return hllpp.Estimate(merged), nil
}
