package algo

import (
	"golang.org/x/exp/slog"

	"github.com/ttpr0/transit-pathfinder/supply"
)

// Tally computes a linear combination of named link attributes using a
// weight vector: Σ weights[name] × attrs[name] over the names present
// in weights. An attribute a weight names but that is absent from attrs
// is logged and its term skipped rather than treated as zero or as an
// error — the cost evaluator never fails on a missing attribute.
func Tally(weights supply.WeightVector, attrs supply.AttrBundle) float64 {
	var cost float64
	for name, w := range weights {
		v, ok := attrs[name]
		if !ok {
			slog.Warn("algo: missing attribute for weighted term", "attribute", name)
			continue
		}
		cost += w * v
	}
	return cost
}
