package spatial

import (
	"encoding/json"

	"github.com/htm-project/neural-api/internal/domain/htm"
)

// currentSnapshotVersion is bumped whenever the persisted schema changes in
// a way that requires load-time compatibility handling.
const currentSnapshotVersion = 2

// snapshot is the on-the-wire persistence schema. Potential pools and
// permanences are stored sparsely (index/value pairs per column) rather
// than as dense rows, since potential pools are typically a small fraction
// of the input space.
type snapshot struct {
	Version int `json:"version"`

	InputDimensions            []int   `json:"input_dimensions"`
	ColumnDimensions           []int   `json:"column_dimensions"`
	PotentialRadius            int     `json:"potential_radius"`
	PotentialPct               float64 `json:"potential_pct"`
	GlobalInhibition           bool    `json:"global_inhibition"`
	LocalAreaDensity           float64 `json:"local_area_density"`
	NumActiveColumnsPerInhArea float64 `json:"num_active_columns_per_inh_area"`
	StimulusThreshold          int     `json:"stimulus_threshold"`
	SynPermInactiveDec         float64 `json:"syn_perm_inactive_dec"`
	SynPermActiveInc           float64 `json:"syn_perm_active_inc"`
	SynPermConnected           float64 `json:"syn_perm_connected"`
	MinPctOverlapDutyCycles    float64 `json:"min_pct_overlap_duty_cycles"`
	MinPctActiveDutyCycles     float64 `json:"min_pct_active_duty_cycles"`
	DutyCyclePeriod            int     `json:"duty_cycle_period"`
	MaxBoost                   float64 `json:"max_boost"`
	Seed                       int64   `json:"seed"`
	// WrapAround is absent in version-1 snapshots; its zero value (false)
	// is never trusted directly, see LoadSpatialPooler.
	WrapAround  bool `json:"wrap_around"`
	SpVerbosity int  `json:"sp_verbosity"`

	Iteration        int64   `json:"iteration"`
	InhibitionRadius int     `json:"inhibition_radius"`
	TieBreakers      []float64 `json:"tie_breakers"`

	Potential  [][]int     `json:"potential"`
	Permanence [][]float64 `json:"permanence"`

	OverlapDutyCycles    []float64 `json:"overlap_duty_cycles"`
	ActiveDutyCycles     []float64 `json:"active_duty_cycles"`
	MinOverlapDutyCycles []float64 `json:"min_overlap_duty_cycles"`
	MinActiveDutyCycles  []float64 `json:"min_active_duty_cycles"`
	BoostFactors         []float64 `json:"boost_factors"`
}

// Save serializes the pooler's full state, sufficient to reconstruct an
// identical instance via LoadSpatialPooler.
func (sp *SpatialPooler) Save() ([]byte, error) {
	n := sp.store.columnCount
	potential := make([][]int, n)
	permanence := make([][]float64, n)
	for c := 0; c < n; c++ {
		potential[c] = append([]int(nil), sp.store.potential[c]...)
		row := sp.store.permanence[c].RawVector().Data
		perms := make([]float64, len(potential[c]))
		for i, idx := range potential[c] {
			perms[i] = row[idx]
		}
		permanence[c] = perms
	}

	snap := snapshot{
		Version:                    currentSnapshotVersion,
		InputDimensions:            sp.config.InputDimensions,
		ColumnDimensions:           sp.config.ColumnDimensions,
		PotentialRadius:            sp.config.PotentialRadius,
		PotentialPct:               sp.config.PotentialPct,
		GlobalInhibition:           sp.config.GlobalInhibition,
		LocalAreaDensity:           sp.config.LocalAreaDensity,
		NumActiveColumnsPerInhArea: sp.config.NumActiveColumnsPerInhArea,
		StimulusThreshold:          sp.config.StimulusThreshold,
		SynPermInactiveDec:         sp.config.SynPermInactiveDec,
		SynPermActiveInc:           sp.config.SynPermActiveInc,
		SynPermConnected:           sp.config.SynPermConnected,
		MinPctOverlapDutyCycles:    sp.config.MinPctOverlapDutyCycles,
		MinPctActiveDutyCycles:     sp.config.MinPctActiveDutyCycles,
		DutyCyclePeriod:            sp.config.DutyCyclePeriod,
		MaxBoost:                   sp.config.MaxBoost,
		Seed:                       sp.config.Seed,
		WrapAround:                 sp.config.WrapAround,
		SpVerbosity:                sp.config.SpVerbosity,

		Iteration:        sp.iteration,
		InhibitionRadius: sp.inhibitionRadius,
		TieBreakers:      sp.tieBreakers,

		Potential:  potential,
		Permanence: permanence,

		OverlapDutyCycles:    sp.overlapDutyCycles,
		ActiveDutyCycles:     sp.activeDutyCycles,
		MinOverlapDutyCycles: sp.minOverlapDutyCycles,
		MinActiveDutyCycles:  sp.minActiveDutyCycles,
		BoostFactors:         sp.boostFactors,
	}

	return json.Marshal(snap)
}

// LoadSpatialPooler reconstructs a spatial pooler from a Save() payload.
// Version-1 payloads predate the WrapAround field and are loaded with
// WrapAround forced to true, matching their only supported topology.
func LoadSpatialPooler(data []byte) (*SpatialPooler, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &ConfigError{Field: "snapshot", Message: err.Error()}
	}

	wrapAround := snap.WrapAround
	if snap.Version == 1 {
		wrapAround = true
	}

	config := &htm.SpatialPoolerConfig{
		InputDimensions:            snap.InputDimensions,
		ColumnDimensions:           snap.ColumnDimensions,
		PotentialRadius:            snap.PotentialRadius,
		PotentialPct:               snap.PotentialPct,
		GlobalInhibition:           snap.GlobalInhibition,
		LocalAreaDensity:           snap.LocalAreaDensity,
		NumActiveColumnsPerInhArea: snap.NumActiveColumnsPerInhArea,
		StimulusThreshold:          snap.StimulusThreshold,
		SynPermInactiveDec:         snap.SynPermInactiveDec,
		SynPermActiveInc:           snap.SynPermActiveInc,
		SynPermConnected:           snap.SynPermConnected,
		MinPctOverlapDutyCycles:    snap.MinPctOverlapDutyCycles,
		MinPctActiveDutyCycles:     snap.MinPctActiveDutyCycles,
		DutyCyclePeriod:            snap.DutyCyclePeriod,
		MaxBoost:                   snap.MaxBoost,
		Seed:                       snap.Seed,
		WrapAround:                 wrapAround,
		SpVerbosity:                snap.SpVerbosity,
		Mode:                       htm.SpatialPoolerModeDeterministic,
		LearningEnabled:            true,
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	topo := newTopology(config.InputDimensions, config.ColumnDimensions, wrapAround)
	store := newSynapseStore(topo.columnCount(), topo.inputSize(), config.SynPermConnected, config.SynPermActiveInc, config.StimulusThreshold)

	for c := 0; c < store.columnCount; c++ {
		// raise=false: connected sets are re-derived from the persisted
		// permanence values as-is, never re-raised above what was saved, so
		// the stimulus-threshold guard in raisePermanenceToThreshold never runs.
		_ = store.setPotential(c, snap.Potential[c], snap.Permanence[c], false)
	}

	sp := &SpatialPooler{
		config:               config,
		topo:                 topo,
		store:                store,
		rng:                  newPRNG(config.Seed, config.IsDeterministic()),
		tieBreakers:          snap.TieBreakers,
		overlapDutyCycles:    snap.OverlapDutyCycles,
		activeDutyCycles:     snap.ActiveDutyCycles,
		minOverlapDutyCycles: snap.MinOverlapDutyCycles,
		minActiveDutyCycles:  snap.MinActiveDutyCycles,
		boostFactors:         snap.BoostFactors,
		inhibitionRadius:     snap.InhibitionRadius,
		iteration:            snap.Iteration,
		metrics:              htm.NewSpatialPoolerMetrics(),
	}
	return sp, nil
}
