package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDutyCyclesHelperConvergesTowardSteadyInput(t *testing.T) {
	dutyCycles := []float64{0, 0, 0}
	newValues := []float64{1, 1, 1}
	for i := 0; i < 1000; i++ {
		updateDutyCyclesHelper(dutyCycles, newValues, 10)
	}
	for _, d := range dutyCycles {
		assert.InDelta(t, 1.0, d, 1e-6)
	}
}

func TestUpdateDutyCyclesHelperSinglePeriodStepIsExactEMA(t *testing.T) {
	dutyCycles := []float64{0.5}
	newValues := []float64{1.0}
	updateDutyCyclesHelper(dutyCycles, newValues, 4)
	// (0.5*3 + 1.0) / 4 = 0.625
	assert.InDelta(t, 0.625, dutyCycles[0], 1e-9)
}

func TestOverlapActivityIsBinary(t *testing.T) {
	activity := overlapActivity([]int{0, 3, 0, 7})
	assert.Equal(t, []float64{0, 1, 0, 1}, activity)
}

func TestActiveActivityMarksOnlyWinners(t *testing.T) {
	activity := activeActivity(5, []int{1, 3})
	assert.Equal(t, []float64{0, 1, 0, 1, 0}, activity)
}

func TestUpdateMinDutyCyclesGlobalScalesByPopulationMax(t *testing.T) {
	dutyCycles := []float64{0.1, 0.4, 0.2}
	out := make([]float64, 3)
	updateMinDutyCyclesGlobal(dutyCycles, 0.5, out)
	for _, v := range out {
		assert.InDelta(t, 0.2, v, 1e-9)
	}
}

func TestUpdateMinDutyCyclesLocalUsesNeighborhoodMax(t *testing.T) {
	topo := newTopology([]int{5}, []int{5}, false)
	dutyCycles := []float64{0.1, 0.9, 0.1, 0.1, 0.1}
	out := make([]float64, 5)
	updateMinDutyCyclesLocal(topo, dutyCycles, 1, 0.5, out)
	// column 0's neighborhood is {1} (no wrap): floor = 0.5 * max(0.1, 0.9)
	assert.InDelta(t, 0.45, out[0], 1e-9)
}

func TestBumpUpWeakColumnsRaisesOnlyColumnsBelowFloor(t *testing.T) {
	store := newSynapseStore(2, 10, 0.1, 0.05, 0)
	require.NoError(t, store.setPotential(0, []int{0, 1, 2}, []float64{0.05, 0.05, 0.05}, false))
	require.NoError(t, store.setPotential(1, []int{0, 1, 2}, []float64{0.05, 0.05, 0.05}, false))

	overlapDutyCycles := []float64{0.01, 0.9}
	minOverlapDutyCycles := []float64{0.5, 0.5}

	before := append([]float64(nil), store.permanenceRow(1)...)
	bumpUpWeakColumns(store, overlapDutyCycles, minOverlapDutyCycles)
	after := store.permanenceRow(1)
	assert.Equal(t, before, after, "column above its floor must be left untouched")

	bumped := store.permanenceRow(0)
	assert.Greater(t, bumped[0], 0.05, "column below its floor must be bumped")
}

func TestUpdateBoostFactorsClampedToOneWhenAtOrAboveFloor(t *testing.T) {
	out := make([]float64, 1)
	updateBoostFactors([]float64{0.5}, []float64{0.2}, 3.0, out)
	assert.Equal(t, 1.0, out[0])
}

func TestUpdateBoostFactorsReachesMaxBoostAtZeroActivity(t *testing.T) {
	out := make([]float64, 1)
	updateBoostFactors([]float64{0.0}, []float64{0.2}, 3.0, out)
	assert.Equal(t, 3.0, out[0])
}

func TestUpdateBoostFactorsStaysWithinBoundsAcrossRange(t *testing.T) {
	out := make([]float64, 1)
	for _, active := range []float64{0, 0.05, 0.1, 0.15, 0.2, 0.5} {
		updateBoostFactors([]float64{active}, []float64{0.2}, 3.0, out)
		assert.GreaterOrEqual(t, out[0], 1.0)
		assert.LessOrEqual(t, out[0], 3.0)
	}
}

func TestUpdateBoostFactorsLeavesZeroFloorColumnsAtTheirPreviousBoost(t *testing.T) {
	// minActiveDutyCycles[c] == 0 is the normal state before the first
	// min-duty-cycle recompute; such a column must keep whatever boost it
	// already had, not jump to maxBoost.
	out := []float64{1.7}
	updateBoostFactors([]float64{0.0}, []float64{0.0}, 3.0, out)
	assert.Equal(t, 1.7, out[0], "a zero floor must leave the previous boost untouched")
}

func TestUpdateInhibitionRadiusNeverFallsBelowOne(t *testing.T) {
	topo := newTopology([]int{4}, []int{4}, false)
	store := newSynapseStore(4, 4, 0.1, 0.05, 0)
	for c := 0; c < 4; c++ {
		require.NoError(t, store.setPotential(c, []int{c}, []float64{0.2}, false))
	}
	radius := updateInhibitionRadius(topo, store)
	assert.GreaterOrEqual(t, radius, 1)
}
