package spatial

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// synapseStore is the single owner of per-column potential pools and
// permanence values. Every mutation to permanence or connected state goes
// through updateColumn; nothing else in this package writes permanence or
// the connected bitset directly.
type synapseStore struct {
	columnCount int
	inputSize   int

	// potential[c] is the sorted list of input indices column c may connect to.
	potential [][]int
	// permanence[c] is a dense row over the full input space, backed by gonum.
	// Only indices in potential[c] are ever non-zero.
	permanence []*mat.VecDense
	// connected[c][i] mirrors permanence[c].AtVec(i) >= synPermConnected,
	// restricted to potential[c].
	connected      [][]bool
	connectedCount []int

	synPermConnected        float64
	synPermTrimThreshold    float64
	synPermBelowStimulusInc float64
	stimulusThreshold       int
}

func newSynapseStore(columnCount, inputSize int, synPermConnected, synPermActiveInc float64, stimulusThreshold int) *synapseStore {
	s := &synapseStore{
		columnCount:             columnCount,
		inputSize:               inputSize,
		potential:               make([][]int, columnCount),
		permanence:              make([]*mat.VecDense, columnCount),
		connected:               make([][]bool, columnCount),
		connectedCount:          make([]int, columnCount),
		synPermConnected:        synPermConnected,
		synPermTrimThreshold:    synPermActiveInc / 2.0,
		synPermBelowStimulusInc: synPermConnected / 10.0,
		stimulusThreshold:       stimulusThreshold,
	}
	for c := 0; c < columnCount; c++ {
		s.permanence[c] = mat.NewVecDense(inputSize, nil)
		s.connected[c] = make([]bool, inputSize)
	}
	return s
}

// setPotential installs column c's potential pool (sorted input indices) and
// its initial permanence values for those indices. raise controls whether
// raisePermanenceToThreshold runs as part of this guarded write.
func (s *synapseStore) setPotential(c int, indices []int, initialPerm []float64, raise bool) error {
	s.potential[c] = indices
	row := s.permanence[c].RawVector().Data
	for i := range row {
		row[i] = 0
	}
	for i, idx := range indices {
		row[idx] = initialPerm[i]
	}
	return s.updateColumn(c, raise)
}

// updateColumn is the guarded update path: optionally raise to the stimulus
// threshold, then trim, then clip, then recompute the connected set — the
// same order as the reference implementation's raise -> trim -> clip ->
// recompute. Raising first means a synapse bumped up from 0 can still land
// below the trim threshold and be zeroed again, so every stored permanence
// stays in {0} ∪ [trimThreshold, 1].
func (s *synapseStore) updateColumn(c int, raise bool) error {
	idxs := s.potential[c]

	if raise {
		if err := s.raisePermanenceToThreshold(c); err != nil {
			return err
		}
	}

	row := s.permanence[c].RawVector().Data
	for _, idx := range idxs {
		v := row[idx]
		if v < s.synPermTrimThreshold {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		if v < 0 {
			v = 0
		}
		row[idx] = v
	}

	connRow := s.connected[c]
	count := 0
	for _, idx := range idxs {
		if row[idx] >= s.synPermConnected {
			connRow[idx] = true
			count++
		} else {
			connRow[idx] = false
		}
	}
	s.connectedCount[c] = count
	return nil
}

// raisePermanenceToThreshold repeatedly bumps every potential synapse of
// column c by synPermBelowStimulusInc until the number of synapses with
// permanence strictly greater than synPermConnected reaches stimulusThreshold.
// The stop condition intentionally counts with a strict '>' while the
// caller's final connected-set recompute in updateColumn uses '>=' — both
// are drawn from the same guarded write, so |K(c)| >= stimulusThreshold
// always holds after a raise=true update even though the two comparisons
// differ. A pool smaller than stimulusThreshold can never reach it no matter
// how many times it is bumped, so that case is rejected up front instead of
// looping forever.
func (s *synapseStore) raisePermanenceToThreshold(c int) error {
	idxs := s.potential[c]
	if len(idxs) < s.stimulusThreshold {
		return &ConfigError{Field: "potential", Message: fmt.Sprintf("potential pool of size %d cannot reach stimulusThreshold %d", len(idxs), s.stimulusThreshold)}
	}
	if len(idxs) == 0 {
		return nil
	}
	row := s.permanence[c].RawVector().Data
	for {
		count := 0
		for _, idx := range idxs {
			if row[idx] > s.synPermConnected {
				count++
			}
		}
		if count >= s.stimulusThreshold {
			return nil
		}
		for _, idx := range idxs {
			v := row[idx] + s.synPermBelowStimulusInc
			if v > 1 {
				v = 1
			}
			row[idx] = v
		}
	}
}

// permanenceAt returns the permanence of column c at input index i.
func (s *synapseStore) permanenceAt(c, i int) float64 {
	return s.permanence[c].AtVec(i)
}

// permanenceRow returns a copy of column c's full permanence row.
func (s *synapseStore) permanenceRow(c int) []float64 {
	out := make([]float64, s.inputSize)
	copy(out, s.permanence[c].RawVector().Data)
	return out
}

// connectedIndices returns the sorted input indices column c is connected to.
func (s *synapseStore) connectedIndices(c int) []int {
	out := make([]int, 0, s.connectedCount[c])
	for _, idx := range s.potential[c] {
		if s.connected[c][idx] {
			out = append(out, idx)
		}
	}
	return out
}
