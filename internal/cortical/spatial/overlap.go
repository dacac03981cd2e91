package spatial

// computeOverlap counts, for every column, how many of its connected
// synapses see an active input bit. Columns whose raw overlap does not
// reach stimulusThreshold are zeroed so they can never win inhibition.
func computeOverlap(store *synapseStore, input []bool) []int {
	overlaps := make([]int, store.columnCount)
	for c := 0; c < store.columnCount; c++ {
		count := 0
		for _, idx := range store.potential[c] {
			if store.connected[c][idx] && input[idx] {
				count++
			}
		}
		if count < store.stimulusThreshold {
			count = 0
		}
		overlaps[c] = count
	}
	return overlaps
}

// applyBoost scales raw overlaps by each column's current boost factor,
// producing the score inhibition actually competes on.
func applyBoost(overlaps []int, boostFactors []float64) []float64 {
	boosted := make([]float64, len(overlaps))
	for c, o := range overlaps {
		boosted[c] = float64(o) * boostFactors[c]
	}
	return boosted
}
