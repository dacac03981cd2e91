package spatial

import (
	"fmt"
	"time"

	"github.com/htm-project/neural-api/internal/cortical/sdr"
	"github.com/htm-project/neural-api/internal/domain/htm"
)

// updatePeriod is how often the inhibition radius and the min-duty-cycle
// floors are recomputed: on a learning Compute call whose iteration count
// (which counts every Compute call, learning or not) is a multiple of it,
// matching the reference implementation's fixed schedule.
const updatePeriod = 50

// SpatialPooler is the HTM spatial pooler step controller: it owns the
// topology, the guarded synapse store, the per-column homeostatic state,
// and the deterministic PRNG, and orchestrates one Compute call through
// overlap -> boost -> inhibition -> learning -> homeostasis in the exact
// order the reference implementation uses.
type SpatialPooler struct {
	config *htm.SpatialPoolerConfig
	topo   *topology
	store  *synapseStore
	rng    *prng

	tieBreakers          []float64
	overlapDutyCycles    []float64
	activeDutyCycles     []float64
	minOverlapDutyCycles []float64
	minActiveDutyCycles  []float64
	boostFactors         []float64
	inhibitionRadius     int
	iteration            int64

	metrics *htm.SpatialPoolerMetrics
}

// NewSpatialPooler constructs and initializes a spatial pooler instance from
// configuration, sampling every column's potential pool and permanence
// values.
func NewSpatialPooler(config *htm.SpatialPoolerConfig) (*SpatialPooler, error) {
	if config == nil {
		return nil, &ConfigError{Field: "config", Message: "configuration must not be nil"}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	topo := newTopology(config.InputDimensions, config.ColumnDimensions, config.WrapAround)
	store := newSynapseStore(topo.columnCount(), topo.inputSize(), config.SynPermConnected, config.SynPermActiveInc, config.StimulusThreshold)
	rng := newPRNG(config.Seed, config.IsDeterministic())

	sp := &SpatialPooler{
		config:  config,
		topo:    topo,
		store:   store,
		rng:     rng,
		metrics: htm.NewSpatialPoolerMetrics(),
	}
	if err := sp.initialize(); err != nil {
		return nil, err
	}
	return sp, nil
}

func (sp *SpatialPooler) initialize() error {
	n := sp.store.columnCount
	sp.tieBreakers = initTieBreakers(sp.rng, n)
	sp.overlapDutyCycles = make([]float64, n)
	sp.activeDutyCycles = make([]float64, n)
	sp.minOverlapDutyCycles = make([]float64, n)
	sp.minActiveDutyCycles = make([]float64, n)
	sp.boostFactors = make([]float64, n)
	for i := range sp.boostFactors {
		sp.boostFactors[i] = 1.0
	}

	for c := 0; c < n; c++ {
		idxs := initPotential(sp.topo, sp.rng, c, sp.config.PotentialRadius, sp.config.PotentialPct)
		perms := initPermanence(sp.rng, idxs, sp.config.SynPermConnected)
		if err := sp.store.setPotential(c, idxs, perms, true); err != nil {
			return err
		}
	}

	sp.inhibitionRadius = updateInhibitionRadius(sp.topo, sp.store)
	return nil
}

func (sp *SpatialPooler) dutyCyclePeriod() int {
	period := sp.config.DutyCyclePeriod
	if int64(period) > sp.iteration {
		period = int(sp.iteration)
	}
	if period < 1 {
		period = 1
	}
	return period
}

// Compute runs one full step of the algorithm against a dense input vector
// and returns the sorted winning column indices, the raw (unboosted)
// overlap of every column, and whether any winner was currently boosted.
func (sp *SpatialPooler) Compute(input []bool, learn bool) (winners []int, overlaps []int, boosted bool, err error) {
	if len(input) != sp.topo.inputSize() {
		return nil, nil, false, &ShapeError{Expected: sp.topo.inputSize(), Actual: len(input), What: "input vector"}
	}

	sp.iteration++

	overlaps = computeOverlap(sp.store, input)

	var boostedScores []float64
	if learn {
		boostedScores = applyBoost(overlaps, sp.boostFactors)
	} else {
		boostedScores = make([]float64, len(overlaps))
		for i, o := range overlaps {
			boostedScores[i] = float64(o)
		}
	}

	density := controllerDensity(sp.config.LocalAreaDensity, sp.config.NumActiveColumnsPerInhArea, sp.store.columnCount, sp.inhibitionRadius, len(sp.topo.columnDims))

	if sp.config.GlobalInhibition || sp.inhibitionRadius > sp.topo.maxColumnDim() {
		winners = globalInhibition(boostedScores, sp.tieBreakers, density)
	} else {
		winners = localInhibition(sp.topo, boostedScores, sp.tieBreakers, sp.inhibitionRadius, density)
	}

	for _, c := range winners {
		if sp.boostFactors[c] > 1.0 {
			boosted = true
			break
		}
	}

	if learn {
		applyLearning(sp.store, winners, input, sp.config.SynPermActiveInc, sp.config.SynPermInactiveDec)

		period := sp.dutyCyclePeriod()
		updateDutyCyclesHelper(sp.overlapDutyCycles, overlapActivity(overlaps), period)
		updateDutyCyclesHelper(sp.activeDutyCycles, activeActivity(sp.store.columnCount, winners), period)

		bumpUpWeakColumns(sp.store, sp.overlapDutyCycles, sp.minOverlapDutyCycles)
		updateBoostFactors(sp.activeDutyCycles, sp.minActiveDutyCycles, sp.config.MaxBoost, sp.boostFactors)

		if sp.iteration%updatePeriod == 0 {
			sp.inhibitionRadius = updateInhibitionRadius(sp.topo, sp.store)
			if sp.config.GlobalInhibition {
				updateMinDutyCyclesGlobal(sp.overlapDutyCycles, sp.config.MinPctOverlapDutyCycles, sp.minOverlapDutyCycles)
				updateMinDutyCyclesGlobal(sp.activeDutyCycles, sp.config.MinPctActiveDutyCycles, sp.minActiveDutyCycles)
			} else {
				updateMinDutyCyclesLocal(sp.topo, sp.overlapDutyCycles, sp.inhibitionRadius, sp.config.MinPctOverlapDutyCycles, sp.minOverlapDutyCycles)
				updateMinDutyCyclesLocal(sp.topo, sp.activeDutyCycles, sp.inhibitionRadius, sp.config.MinPctActiveDutyCycles, sp.minActiveDutyCycles)
			}
		}
	}

	return winners, overlaps, boosted, nil
}

// Process adapts Compute to the service layer's request/result DTOs.
func (sp *SpatialPooler) Process(input *htm.PoolingInput) (*htm.PoolingResult, error) {
	start := time.Now()

	dense := input.EncoderOutput.Dense()
	winners, overlaps, boosted, err := sp.Compute(dense, input.LearningEnabled)
	if err != nil {
		sp.metrics.RecordError(htm.PoolingErrorProcessing)
		return nil, htm.NewPoolingErrorWithInput(htm.PoolingErrorProcessing, err.Error(), input.InputID)
	}

	elapsedMs := time.Since(start).Milliseconds()
	outWidth := sp.store.columnCount
	outSDR, err := sdr.NewSDR(outWidth, winners)
	if err != nil {
		sp.metrics.RecordError(htm.PoolingErrorProcessing)
		return nil, htm.NewPoolingErrorWithInput(htm.PoolingErrorProcessing, err.Error(), input.InputID)
	}

	sum := 0
	for _, c := range winners {
		sum += overlaps[c]
	}
	avgOverlap := 0.0
	if len(winners) > 0 {
		avgOverlap = float64(sum) / float64(len(winners))
	}

	sparsity := 0.0
	if outWidth > 0 {
		sparsity = float64(len(winners)) / float64(outWidth)
	}

	result := &htm.PoolingResult{
		NormalizedSDR:    *outSDR,
		InputID:          input.InputID,
		ProcessingTime:   elapsedMs,
		ActiveColumns:    winners,
		AvgOverlap:       avgOverlap,
		SparsityLevel:    sparsity,
		LearningOccurred: input.LearningEnabled,
		BoostingApplied:  boosted,
	}

	sp.metrics.RecordProcessing(elapsedMs, sparsity, input.LearningEnabled, boosted)
	return result, nil
}

// GetConfiguration returns a copy of the pooler's configuration.
func (sp *SpatialPooler) GetConfiguration() *htm.SpatialPoolerConfig {
	cfg := *sp.config
	return &cfg
}

// UpdateConfiguration applies a new configuration in place. Changing input
// or column dimensions requires constructing a new instance instead, since
// that invalidates every potential pool and duty-cycle array.
func (sp *SpatialPooler) UpdateConfiguration(config *htm.SpatialPoolerConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if !dimsEqual(config.InputDimensions, sp.config.InputDimensions) || !dimsEqual(config.ColumnDimensions, sp.config.ColumnDimensions) {
		return &ConfigError{Field: "input_dimensions/column_dimensions", Message: "changing shape requires creating a new spatial pooler"}
	}
	sp.config = config
	return nil
}

func dimsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GetMetrics returns the pooler's running metrics.
func (sp *SpatialPooler) GetMetrics() *htm.SpatialPoolerMetrics {
	return sp.metrics
}

// IsHealthy reports whether the pooler can currently process input.
func (sp *SpatialPooler) IsHealthy() bool {
	return sp.store != nil && sp.topo != nil
}

// Diagnostics returns a structured snapshot of internal state, gated by
// SpVerbosity rather than printed to the console.
func (sp *SpatialPooler) Diagnostics() map[string]interface{} {
	diag := map[string]interface{}{
		"iteration":         sp.iteration,
		"inhibition_radius": sp.inhibitionRadius,
		"column_count":      sp.store.columnCount,
		"input_size":        sp.store.inputSize,
	}
	if sp.config.SpVerbosity >= 1 {
		diag["avg_boost_factor"] = average(sp.boostFactors)
		diag["avg_overlap_duty_cycle"] = average(sp.overlapDutyCycles)
		diag["avg_active_duty_cycle"] = average(sp.activeDutyCycles)
	}
	if sp.config.SpVerbosity >= 2 {
		connected := make([]int, sp.store.columnCount)
		for c := range connected {
			connected[c] = sp.store.connectedCount[c]
		}
		diag["connected_counts"] = connected
	}
	return diag
}

func average(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// columnBound validates a column index and returns the appropriate error.
func (sp *SpatialPooler) columnBound(c int) error {
	if c < 0 || c >= sp.store.columnCount {
		return &IndexError{Index: c, Bound: sp.store.columnCount}
	}
	return nil
}

// GetPotential returns column c's potential pool (sorted input indices).
func (sp *SpatialPooler) GetPotential(c int) ([]int, error) {
	if err := sp.columnBound(c); err != nil {
		return nil, err
	}
	out := append([]int(nil), sp.store.potential[c]...)
	return out, nil
}

// SetPotential replaces column c's potential pool and permanence values,
// running them through the guarded update path with raise=true.
func (sp *SpatialPooler) SetPotential(c int, indices []int, permanences []float64) error {
	if err := sp.columnBound(c); err != nil {
		return err
	}
	if len(indices) != len(permanences) {
		return &ShapeError{Expected: len(indices), Actual: len(permanences), What: "potential/permanence pair"}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= sp.store.inputSize {
			return &IndexError{Index: idx, Bound: sp.store.inputSize}
		}
	}
	nonZero := 0
	for _, p := range permanences {
		if p > 0 {
			nonZero++
		}
	}
	if nonZero < sp.config.StimulusThreshold {
		return &ConfigError{Field: "potential", Message: fmt.Sprintf("only %d non-zero synapses, need at least %d", nonZero, sp.config.StimulusThreshold)}
	}
	return sp.store.setPotential(c, indices, permanences, true)
}

// GetPermanence returns the full dense permanence row for column c.
func (sp *SpatialPooler) GetPermanence(c int) ([]float64, error) {
	if err := sp.columnBound(c); err != nil {
		return nil, err
	}
	return sp.store.permanenceRow(c), nil
}

// SetPermanence overwrites column c's permanence values at its existing
// potential-pool indices (same order as GetPotential) and re-runs the
// guarded update.
func (sp *SpatialPooler) SetPermanence(c int, permanences []float64) error {
	if err := sp.columnBound(c); err != nil {
		return err
	}
	idxs := sp.store.potential[c]
	if len(permanences) != len(idxs) {
		return &ShapeError{Expected: len(idxs), Actual: len(permanences), What: "permanence row"}
	}
	row := sp.store.permanence[c].RawVector().Data
	for i, idx := range idxs {
		row[idx] = permanences[i]
	}
	return sp.store.updateColumn(c, true)
}

// GetConnectedSynapses returns the sorted input indices column c is
// currently connected to.
func (sp *SpatialPooler) GetConnectedSynapses(c int) ([]int, error) {
	if err := sp.columnBound(c); err != nil {
		return nil, err
	}
	return sp.store.connectedIndices(c), nil
}

// GetConnectedCounts returns |K(c)| for every column.
func (sp *SpatialPooler) GetConnectedCounts() []int {
	out := make([]int, sp.store.columnCount)
	copy(out, sp.store.connectedCount)
	return out
}

// GetBoostFactors returns a copy of the current per-column boost factors.
func (sp *SpatialPooler) GetBoostFactors() []float64 {
	out := make([]float64, len(sp.boostFactors))
	copy(out, sp.boostFactors)
	return out
}

// GetInhibitionRadius returns the current local-inhibition neighborhood radius.
func (sp *SpatialPooler) GetInhibitionRadius() int {
	return sp.inhibitionRadius
}

func (sp *SpatialPooler) String() string {
	return fmt.Sprintf("SpatialPooler(inputSize=%d, columnCount=%d, iteration=%d)",
		sp.store.inputSize, sp.store.columnCount, sp.iteration)
}
