package spatial

// applyLearning runs Hebbian permanence adaptation on the winning columns of
// one Compute step: every potential synapse seeing an active input bit is
// strengthened, every other potential synapse is weakened. The guarded
// update path re-raises each touched column to the stimulus threshold
// afterward, same as initialization. A winner's potential pool size never
// changes after construction, so the stimulus-threshold guard that already
// passed at init time can never fail here.
func applyLearning(store *synapseStore, winners []int, input []bool, synPermActiveInc, synPermInactiveDec float64) {
	for _, c := range winners {
		row := store.permanence[c].RawVector().Data
		for _, idx := range store.potential[c] {
			if input[idx] {
				row[idx] += synPermActiveInc
			} else {
				row[idx] -= synPermInactiveDec
			}
		}
		_ = store.updateColumn(c, true)
	}
}
