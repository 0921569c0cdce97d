package hllpp

import (
	"math"
	"sort"
)

// alpha returns the HyperLogLog bias-correction constant α_p for a
// dense array of size m,
func alpha(p uint8, m float64) float64 {
	switch p {
	case 4:
		return 0.673
	case 5:
		return 0.697
	case 6:
		return 0.709
	default:
		return 0.7213 / (1 + 1.079/m)
	}
}

// linearCounting is the small-range estimator: m*ln(m/v), used both by
// the sparse path (over the full 25-bit index space) and the dense
// path's zero-register fallback.
func linearCounting(m, v float64) float64 {
	return m * math.Log(m/v)
}

// Estimate returns the bias-corrected cardinality estimate for s. It
// does not mutate s's logical content, though a sparse sketch is
// flushed in place first (folding any buffered tmp-set entries into the
// sparse list) so the unique-index count it reads is accurate.
func Estimate(s *Sketch) float64 {
	if s.sparse {
		s.flushSparse()
		if s.sparseLen == 0 {
			return 0
		}
		m := float64(mPrime)
		v := m - float64(s.sparseLen)
		return linearCounting(m, v)
	}
	return estimateDense(s)
}

func estimateDense(s *Sketch) float64 {
	m := float64(s.m)

	var sum float64
	var zeros float64
	for _, v := range s.dense {
		sum += 1.0 / float64(uint64(1)<<v)
		if v == 0 {
			zeros++
		}
	}
	if sum == 0 {
		return 0
	}

	e := alpha(s.p, m) * m * m / sum

	ep := e
	if e <= 5*m {
		ep = e - biasFor(s.p, e)
	}

	h := ep
	if zeros > 0 {
		h = linearCounting(m, zeros)
	}

	if h <= thresholds[s.p-MinPrecision] {
		return h
	}
	return ep
}

// biasFor estimates the bias to subtract from raw estimate e at
// precision p: binary search the raw-estimate table for the insertion
// point of e, then average the biases of the k=6 nearest neighbors by
// absolute distance in raw-estimate space, breaking distance ties in
// favor of the lower-indexed (smaller raw estimate) neighbor.
func biasFor(p uint8, e float64) float64 {
	estimates := rawEstimateData[p-MinPrecision]
	biases := biasData[p-MinPrecision]

	n := len(estimates)
	if n == 0 {
		return 0
	}

	insertAt := sort.SearchFloat64s(estimates, e)
	const k = 6

	type neighbor struct {
		dist float64
		idx  int
	}
	neighbors := make([]neighbor, 0, k*2)
	for idx := insertAt - k; idx < insertAt+k; idx++ {
		if idx < 0 || idx >= n {
			continue
		}
		neighbors = append(neighbors, neighbor{math.Abs(estimates[idx] - e), idx})
	}

	sort.SliceStable(neighbors, func(a, b int) bool {
		if neighbors[a].dist != neighbors[b].dist {
			return neighbors[a].dist < neighbors[b].dist
		}
		return neighbors[a].idx < neighbors[b].idx
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}

	var total float64
	for _, nb := range neighbors {
		total += biases[nb.idx]
	}
	return total / float64(len(neighbors))
}
