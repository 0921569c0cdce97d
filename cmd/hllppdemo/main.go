// Command hllppdemo wires the engine and sketch packages together over
// a small in-memory fan of input channels, logging the result with the
// same structured logger the engine package uses. It exists to give the
// all-reduce and estimator code an end-to-end path to run through;
// production use is expected to plug hllpp.Sketch into a real data-flow
// engine instead.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/distsketch/hllpp"
	"github.com/distsketch/hllpp/engine"
)

const (
	precision  = 14
	numWorkers = 8
	perWorker  = 50000
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hllppdemo: logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	inputs := make([]<-chan string, numWorkers)
	for w := 0; w < numWorkers; w++ {
		ch := make(chan string)
		inputs[w] = ch
		go func(w int, ch chan<- string) {
			defer close(ch)
			for i := 0; i < perWorker; i++ {
				ch <- strconv.Itoa(w*perWorker + i)
			}
		}(w, ch)
	}

	node := engine.HyperLogLogNode[string]{
		Precision: precision,
		Hasher:    hllpp.StringHasher,
	}

	estimate, err := node.Run(context.Background(), engine.New(logger), inputs)
	if err != nil {
		logger.Fatal("hyperloglog run failed", zap.Error(err))
	}

	exact := float64(numWorkers * perWorker)
	logger.Info("cardinality estimate",
		zap.Float64("estimate", estimate),
		zap.Float64("exact", exact),
		zap.Float64("relative_error", (estimate-exact)/exact),
	)
}
