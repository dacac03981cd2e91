package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOverlapCountsOnlyConnectedActiveSynapses(t *testing.T) {
	store := newSynapseStore(1, 5, 0.1, 0.05, 0)
	require.NoError(t, store.setPotential(0, []int{0, 1, 2, 3, 4}, []float64{0.2, 0.2, 0.05, 0.2, 0.0}, false))

	input := []bool{true, false, true, true, true}
	overlaps := computeOverlap(store, input)

	// connected: 0,1,3 (perm 0.05 at idx2 is below SynPermConnected=0.1, idx4 is 0).
	// active inputs: 0,2,3,4. intersection of connected and active: 0,3 -> overlap 2.
	assert.Equal(t, []int{2}, overlaps)
}

func TestComputeOverlapZeroesBelowStimulusThreshold(t *testing.T) {
	store := newSynapseStore(1, 5, 0.1, 0.05, 3)
	require.NoError(t, store.setPotential(0, []int{0, 1, 2, 3, 4}, []float64{0.2, 0.2, 0.0, 0.0, 0.0}, false))

	input := []bool{true, true, true, true, true}
	overlaps := computeOverlap(store, input)

	assert.Equal(t, []int{0}, overlaps, "overlap of 2 is below stimulusThreshold of 3 and must be zeroed")
}

func TestApplyBoostScalesEachColumnIndependently(t *testing.T) {
	boosted := applyBoost([]int{2, 0, 5}, []float64{1.5, 3.0, 1.0})
	assert.Equal(t, []float64{3.0, 0.0, 5.0}, boosted)
}
