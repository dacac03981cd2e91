package spatial

import (
	"math"
	"sort"
)

const initConnectedPct = 0.5

// initPotential samples column c's potential pool from its input-space
// neighborhood and returns the sorted candidate indices.
func initPotential(topo *topology, rng *prng, c int, potentialRadius int, potentialPct float64) []int {
	center := topo.mapColumnCenter(c)
	neighborhood := topo.neighbors(center, potentialRadius, topo.wrapAround)

	numPotential := int(math.Round(float64(len(neighborhood)) * potentialPct))
	if numPotential < 1 {
		numPotential = 1
	}
	sampled := rng.sampleWithoutReplacement(neighborhood, numPotential)
	sort.Ints(sampled)
	return sampled
}

// initPermanence assigns an initial permanence value to each potential
// synapse: with probability initConnectedPct it starts above the connected
// threshold, otherwise below it.
func initPermanence(rng *prng, indices []int, synPermConnected float64) []float64 {
	perms := make([]float64, len(indices))
	for i := range indices {
		var p float64
		if rng.Float64() <= initConnectedPct {
			p = synPermConnected + (1.0-synPermConnected)*rng.Float64()
		} else {
			p = synPermConnected * rng.Float64()
		}
		perms[i] = round5(p)
	}
	return perms
}

func round5(v float64) float64 {
	return math.Floor(v*1e5) / 1e5
}

// initTieBreakers builds the instance-constant per-column tie-breaker vector
// used to deterministically order otherwise-equal overlap scores during
// inhibition. Values live in [0, 0.01).
func initTieBreakers(rng *prng, columnCount int) []float64 {
	out := make([]float64, columnCount)
	for c := range out {
		out[c] = rng.Float64() * 0.01
	}
	return out
}
