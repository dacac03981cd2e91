package spatial

import (
	"testing"

	"github.com/htm-project/neural-api/internal/domain/htm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseScenarioConfig() *htm.SpatialPoolerConfig {
	return &htm.SpatialPoolerConfig{
		InputDimensions:            []int{10},
		ColumnDimensions:           []int{5},
		PotentialRadius:            3,
		PotentialPct:               0.5,
		GlobalInhibition:           true,
		LocalAreaDensity:           -1,
		NumActiveColumnsPerInhArea: 2,
		StimulusThreshold:          0,
		SynPermInactiveDec:         0.008,
		SynPermActiveInc:           0.05,
		SynPermConnected:           0.1,
		MinPctOverlapDutyCycles:    0.001,
		MinPctActiveDutyCycles:     0.001,
		DutyCyclePeriod:            1000,
		MaxBoost:                   2.0,
		Seed:                       42,
		WrapAround:                 true,
		SpVerbosity:                0,
		Mode:                       htm.SpatialPoolerModeDeterministic,
		LearningEnabled:            true,
		SemanticThresholds: htm.SemanticThresholds{
			SimilarInputMinOverlap:   0.5,
			DifferentInputMaxOverlap: 0.1,
		},
	}
}

func TestComputeIsDeterministicAcrossInstances(t *testing.T) {
	cfg := baseScenarioConfig()
	spA, err := NewSpatialPooler(cfg)
	require.NoError(t, err)
	spB, err := NewSpatialPooler(baseScenarioConfig())
	require.NoError(t, err)

	input := make([]bool, 10)
	for i := 0; i < 10; i += 2 {
		input[i] = true
	}

	for step := 0; step < 20; step++ {
		winnersA, _, _, errA := spA.Compute(input, true)
		winnersB, _, _, errB := spB.Compute(input, true)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, winnersA, winnersB, "identical config/seed/input must yield identical winners at step %d", step)
	}
}

func TestComputeAllZeroInputPicksExactlyConfiguredWinners(t *testing.T) {
	cfg := baseScenarioConfig()
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	input := make([]bool, 10)
	winners, _, _, err := sp.Compute(input, true)
	require.NoError(t, err)
	assert.Len(t, winners, 2, "density-2 global inhibition must always pick exactly 2 winners, even with zero overlap")
}

func TestComputeAllOnesInputPicksExactlyConfiguredWinners(t *testing.T) {
	cfg := baseScenarioConfig()
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	input := make([]bool, 10)
	for i := range input {
		input[i] = true
	}
	winners, _, _, err := sp.Compute(input, true)
	require.NoError(t, err)
	assert.Len(t, winners, 2)
}

func TestComputeWinnersAccrueHigherActiveDutyCycleThanLosers(t *testing.T) {
	cfg := baseScenarioConfig()
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	input := make([]bool, 10)
	for i := range input {
		input[i] = true
	}

	var lastWinners []int
	for step := 0; step < 30; step++ {
		winners, _, _, err := sp.Compute(input, true)
		require.NoError(t, err)
		lastWinners = winners
	}

	winnerSet := make(map[int]bool)
	for _, c := range lastWinners {
		winnerSet[c] = true
	}
	for c := 0; c < cfg.ColumnCount(); c++ {
		if winnerSet[c] {
			continue
		}
		for _, w := range lastWinners {
			assert.Greater(t, sp.activeDutyCycles[w], sp.activeDutyCycles[c],
				"a repeated winner's active duty cycle must exceed a non-winner's")
		}
	}
}

func TestComputeWithLearnFalseIsPureAndDeterministic(t *testing.T) {
	cfg := baseScenarioConfig()
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	input := make([]bool, 10)
	input[1] = true
	input[4] = true
	input[7] = true

	winnersFirst, overlapsFirst, _, err := sp.Compute(input, false)
	require.NoError(t, err)
	iterationAfterFirst := sp.iteration

	winnersSecond, overlapsSecond, _, err := sp.Compute(input, false)
	require.NoError(t, err)

	assert.Equal(t, winnersFirst, winnersSecond, "learn=false must be a pure function of state and input")
	assert.Equal(t, overlapsFirst, overlapsSecond)
	assert.NotEqual(t, iterationAfterFirst, sp.iteration, "iteration still advances even when learning is disabled")
}

func TestComputeRejectsWrongShapedInput(t *testing.T) {
	cfg := baseScenarioConfig()
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	_, _, _, err = sp.Compute(make([]bool, 3), true)
	require.Error(t, err)
	var shapeErr *ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestSetPotentialRejectsTooFewNonZeroSynapsesAndLeavesStateUnchanged(t *testing.T) {
	cfg := baseScenarioConfig()
	cfg.StimulusThreshold = 3
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	before, err := sp.GetPotential(0)
	require.NoError(t, err)
	beforePermanence, err := sp.GetPermanence(0)
	require.NoError(t, err)

	err = sp.SetPotential(0, []int{0, 1, 2, 3}, []float64{0.2, 0.2, 0, 0})
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	after, err := sp.GetPotential(0)
	require.NoError(t, err)
	afterPermanence, err := sp.GetPermanence(0)
	require.NoError(t, err)

	assert.Equal(t, before, after, "rejected SetPotential must leave the potential pool untouched")
	assert.Equal(t, beforePermanence, afterPermanence, "rejected SetPotential must leave permanences untouched")
}

func TestSetPotentialAcceptsSufficientNonZeroSynapses(t *testing.T) {
	cfg := baseScenarioConfig()
	cfg.StimulusThreshold = 2
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	err = sp.SetPotential(0, []int{0, 1, 2}, []float64{0.2, 0.2, 0.2})
	require.NoError(t, err)

	potential, err := sp.GetPotential(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, potential)
}

func TestSaveLoadRoundTripProducesIdenticalFutureOutputs(t *testing.T) {
	cfg := baseScenarioConfig()
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	input := make([]bool, 10)
	for i := 0; i < 10; i += 3 {
		input[i] = true
	}
	for step := 0; step < 5; step++ {
		_, _, _, err := sp.Compute(input, true)
		require.NoError(t, err)
	}

	data, err := sp.Save()
	require.NoError(t, err)

	restored, err := LoadSpatialPooler(data)
	require.NoError(t, err)

	for step := 0; step < 100; step++ {
		wantWinners, wantOverlaps, _, err := sp.Compute(input, true)
		require.NoError(t, err)
		gotWinners, gotOverlaps, _, err := restored.Compute(input, true)
		require.NoError(t, err)
		assert.Equal(t, wantWinners, gotWinners, "step %d", step)
		assert.Equal(t, wantOverlaps, gotOverlaps, "step %d", step)
	}
}

func TestInhibitionRadiusGrowsMonotonicallyUnderRepeatedAllOnesInput(t *testing.T) {
	cfg := baseScenarioConfig()
	cfg.GlobalInhibition = false
	cfg.LocalAreaDensity = 0.4
	cfg.NumActiveColumnsPerInhArea = 0
	sp, err := NewSpatialPooler(cfg)
	require.NoError(t, err)

	input := make([]bool, 10)
	for i := range input {
		input[i] = true
	}

	radius := sp.GetInhibitionRadius()
	for step := 0; step < updatePeriod*3; step++ {
		_, _, _, err := sp.Compute(input, true)
		require.NoError(t, err)
		current := sp.GetInhibitionRadius()
		assert.GreaterOrEqual(t, current, radius, "inhibition radius must never shrink under saturating input")
		radius = current
	}
}

func TestGlobalVsLocalInhibitionAgreeWhenRadiusCoversColumnSpace(t *testing.T) {
	cfg := baseScenarioConfig()
	cfg.ColumnDimensions = []int{32, 32}
	cfg.InputDimensions = []int{32, 32}
	cfg.GlobalInhibition = true
	cfg.NumActiveColumnsPerInhArea = 64

	globalSP, err := NewSpatialPooler(cfg)
	require.NoError(t, err)
	// controllerDensity derives its inhibition area from inhibitionRadius
	// itself (matching the reference implementation's formulaic area, not the
	// actual neighbor count), so both instances must share the same radius
	// for their densities - and thus their winner counts - to agree. The
	// radius equals the largest column dimension (32): it covers the whole
	// column space while not exceeding it, so Compute still takes the local
	// path instead of falling back to global inhibition.
	globalSP.inhibitionRadius = 32

	localCfg := baseScenarioConfig()
	localCfg.ColumnDimensions = []int{32, 32}
	localCfg.InputDimensions = []int{32, 32}
	localCfg.GlobalInhibition = false
	localCfg.NumActiveColumnsPerInhArea = 64
	localSP, err := NewSpatialPooler(localCfg)
	require.NoError(t, err)
	localSP.inhibitionRadius = 32

	input := make([]bool, globalSP.topo.inputSize())
	for i := 0; i < len(input); i += 2 {
		input[i] = true
	}

	globalWinners, _, _, err := globalSP.Compute(input, false)
	require.NoError(t, err)
	localWinners, _, _, err := localSP.Compute(input, false)
	require.NoError(t, err)

	assert.Equal(t, globalWinners, localWinners,
		"local inhibition with a radius covering the whole column space must agree with global inhibition")
}
