package finder

import (
	"hash/fnv"
	"math/rand"
)

// newPathRNG returns a per-call deterministic random source seeded
// from the path id, so concurrent FindPath calls never share mutable
// RNG state and a given path id always samples the same sequence.
func newPathRNG(pathID string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(pathID))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// probabilityScale stands in for the source's RAND_MAX-scaled cutoff:
// probabilities are integerized against this scale, and any candidate
// whose scaled probability falls below one unit is pruned.
const probabilityScale = 1 << 20

// integerizeProbability scales a [0,1] probability to an integer
// weight on probabilityScale, per the prob_i < 1 pruning rule.
func integerizeProbability(p float64) int {
	return int(p * probabilityScale)
}

// chooseByCumulative draws a uniform integer in [0, total) and returns
// the index of the first entry whose cumulative sum exceeds the draw,
// so each entry is chosen with probability weight/total and a
// zero-weight entry is never chosen.
// Returns ok=false when total is zero (nothing to choose from).
func chooseByCumulative(rng *rand.Rand, weights []int, total int) (int, bool) {
	if total <= 0 {
		return 0, false
	}
	draw := rng.Intn(total)
	cum := 0
	for i, w := range weights {
		cum += w
		if cum >= draw+1 {
			return i, true
		}
	}
	return len(weights) - 1, true
}
