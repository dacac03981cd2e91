package spatial

import "sort"

// tieBrokenScores pairs each column's boosted overlap with its
// instance-constant tie-breaker, pre-summed so every comparison in this file
// is a plain float comparison and ties are always broken the same
// deterministic way.
func tieBrokenScores(boosted []float64, tieBreakers []float64) []float64 {
	scores := make([]float64, len(boosted))
	for i := range boosted {
		scores[i] = boosted[i] + tieBreakers[i]
	}
	return scores
}

// controllerDensity computes the single target activation density shared by
// both inhibition strategies: LocalAreaDensity is used directly when set,
// otherwise NumActiveColumnsPerInhArea is normalized against the inhibition
// area (2R+1 per dimension, capped at the total column count) and the result
// is capped at 0.5, matching the reference implementation's inhibition
// controller.
func controllerDensity(localAreaDensity, numActiveColumnsPerInhArea float64, numColumns, inhibitionRadius, rank int) float64 {
	if localAreaDensity >= 0 {
		return localAreaDensity
	}
	area := 1
	side := 2*inhibitionRadius + 1
	for i := 0; i < rank; i++ {
		area *= side
	}
	if area > numColumns || area <= 0 {
		area = numColumns
	}
	if area == 0 {
		return 0
	}
	density := numActiveColumnsPerInhArea / float64(area)
	if density > 0.5 {
		density = 0.5
	}
	return density
}

// globalInhibition picks the top-scoring columns across the whole column
// space. numActive is truncated from density, matching the reference
// implementation's int(density * numColumns).
func globalInhibition(boosted []float64, tieBreakers []float64, density float64) []int {
	scores := tieBrokenScores(boosted, tieBreakers)
	numActive := int(density * float64(len(scores)))
	if numActive > len(scores) {
		numActive = len(scores)
	}
	if numActive < 0 {
		numActive = 0
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return scores[order[i]] > scores[order[j]] })

	winners := append([]int(nil), order[:numActive]...)
	sort.Ints(winners)
	return winners
}

// localInhibition runs the per-neighborhood competition: a column wins iff
// fewer than its neighborhood's density-derived quota of neighbors (including
// itself) score higher. Neighborhoods are always non-wrapping in column space
// regardless of the instance's WrapAround setting, matching the reference
// implementation's local-inhibition neighbor enumeration. Each committed
// winner's score is bumped by max(scores)/1000 in place, so later columns in
// the same pass see it as an already-won neighbor, matching nupic's
// addToWinners feedback step.
func localInhibition(topo *topology, boosted []float64, tieBreakers []float64, inhibitionRadius int, density float64) []int {
	scores := tieBrokenScores(boosted, tieBreakers)

	addToWinners := 0.0
	for _, s := range scores {
		if s > addToWinners {
			addToWinners = s
		}
	}
	addToWinners /= 1000.0

	var winners []int
	for c := range scores {
		neighbors := topo.columnNeighbors(c, inhibitionRadius, false)
		areaSize := len(neighbors) + 1
		numActive := int(0.5 + density*float64(areaSize))

		numBigger := 0
		for _, n := range neighbors {
			if scores[n] > scores[c] {
				numBigger++
			}
		}
		if numBigger < numActive {
			winners = append(winners, c)
			scores[c] += addToWinners
		}
	}
	sort.Ints(winners)
	return winners
}
