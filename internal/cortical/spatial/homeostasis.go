package spatial

import "math"

// updateDutyCyclesHelper advances an exponential moving average duty cycle
// toward newValues over the given period, identical in shape for overlap
// and active duty cycles alike.
func updateDutyCyclesHelper(dutyCycles []float64, newValues []float64, period int) {
	p := float64(period)
	for i := range dutyCycles {
		dutyCycles[i] = (dutyCycles[i]*(p-1) + newValues[i]) / p
	}
}

// overlapActivity returns 1.0 where overlap[c] > 0, else 0, the "did this
// column see any connected input" signal the overlap duty cycle tracks.
func overlapActivity(overlaps []int) []float64 {
	out := make([]float64, len(overlaps))
	for i, o := range overlaps {
		if o > 0 {
			out[i] = 1.0
		}
	}
	return out
}

// activeActivity returns 1.0 for columns present in winners, else 0, the
// signal the active duty cycle tracks.
func activeActivity(columnCount int, winners []int) []float64 {
	out := make([]float64, columnCount)
	for _, c := range winners {
		out[c] = 1.0
	}
	return out
}

// updateMinDutyCyclesGlobal sets every column's floor to a fixed percentage
// of the population's current maximum duty cycle.
func updateMinDutyCyclesGlobal(dutyCycles []float64, minPct float64, out []float64) {
	max := 0.0
	for _, d := range dutyCycles {
		if d > max {
			max = d
		}
	}
	floor := minPct * max
	for i := range out {
		out[i] = floor
	}
}

// updateMinDutyCyclesLocal sets each column's floor to a fixed percentage of
// the maximum duty cycle within its own inhibition neighborhood. Unlike
// localInhibition's neighbor enumeration, this honors the instance's
// WrapAround setting, matching the reference implementation's ND duty-cycle
// neighborhood lookup.
func updateMinDutyCyclesLocal(topo *topology, dutyCycles []float64, inhibitionRadius int, minPct float64, out []float64) {
	for c := range dutyCycles {
		neighbors := topo.columnNeighbors(c, inhibitionRadius, topo.wrapAround)
		max := dutyCycles[c]
		for _, n := range neighbors {
			if dutyCycles[n] > max {
				max = dutyCycles[n]
			}
		}
		out[c] = minPct * max
	}
}

// bumpUpWeakColumns raises every potential synapse of columns whose overlap
// duty cycle has fallen below its floor by synPermBelowStimulusInc. This
// intentionally uses the guarded update's raise=false path: a weak column
// may still fall short of stimulusThreshold after the bump, since the point
// is to nudge it toward relevance, not to force it connected outright.
func bumpUpWeakColumns(store *synapseStore, overlapDutyCycles, minOverlapDutyCycles []float64) {
	for c := range overlapDutyCycles {
		if overlapDutyCycles[c] >= minOverlapDutyCycles[c] {
			continue
		}
		row := store.permanence[c].RawVector().Data
		for _, idx := range store.potential[c] {
			row[idx] += store.synPermBelowStimulusInc
		}
		_ = store.updateColumn(c, false)
	}
}

// updateBoostFactors recomputes every column's boost factor from the
// classic linear envelope: a column at or above its active-duty floor gets
// boost 1; a column at zero active duty gets maxBoost; values in between are
// interpolated linearly. Clamped defensively to [1, maxBoost]. A column whose
// floor is still zero (true for every column until the first min-duty-cycle
// recompute) is left untouched, keeping its previous boost rather than
// jumping to maxBoost, matching the reference implementation's
// minActiveDutyCycles > 0 mask.
func updateBoostFactors(activeDutyCycles, minActiveDutyCycles []float64, maxBoost float64, out []float64) {
	for c := range activeDutyCycles {
		floor := minActiveDutyCycles[c]
		if floor <= 0 {
			continue
		}
		var boost float64
		if activeDutyCycles[c] >= floor {
			boost = 1.0
		} else {
			boost = ((1.0-maxBoost)/floor)*activeDutyCycles[c] + maxBoost
		}
		if boost < 1 {
			boost = 1
		}
		if boost > maxBoost {
			boost = maxBoost
		}
		out[c] = boost
	}
}

// avgColumnsPerInput is the mean, across dimensions, of columns-per-input
// scale — how many columns cover one unit of input space.
func avgColumnsPerInput(topo *topology) float64 {
	sum := 0.0
	for i := range topo.columnDims {
		sum += float64(topo.columnDims[i]) / float64(topo.inputDims[i])
	}
	return sum / float64(len(topo.columnDims))
}

// avgConnectedSpanForColumn returns the mean bounding-box span, across input
// dimensions, of column c's connected synapses (non-wrapping bounding box).
func avgConnectedSpanForColumn(topo *topology, store *synapseStore, c int) float64 {
	idxs := store.connectedIndices(c)
	if len(idxs) == 0 {
		return 0
	}
	dims := len(topo.inputDims)
	maxCoord := make([]int, dims)
	minCoord := make([]int, dims)
	for d := 0; d < dims; d++ {
		minCoord[d] = topo.inputDims[d]
		maxCoord[d] = -1
	}
	for _, idx := range idxs {
		coord := indexToCoords(idx, topo.inputDims)
		for d := 0; d < dims; d++ {
			if coord[d] > maxCoord[d] {
				maxCoord[d] = coord[d]
			}
			if coord[d] < minCoord[d] {
				minCoord[d] = coord[d]
			}
		}
	}
	sum := 0.0
	for d := 0; d < dims; d++ {
		sum += float64(maxCoord[d]-minCoord[d]) + 1
	}
	return sum / float64(dims)
}

// updateInhibitionRadius recomputes the effective neighborhood radius used
// by local inhibition and local duty-cycle floors from the current average
// connected-synapse span. Only meaningful when GlobalInhibition is false.
func updateInhibitionRadius(topo *topology, store *synapseStore) int {
	total := 0.0
	for c := 0; c < store.columnCount; c++ {
		total += avgConnectedSpanForColumn(topo, store, c)
	}
	avgSpan := total / float64(store.columnCount)
	diameter := avgSpan * avgColumnsPerInput(topo)
	radius := (diameter - 1) / 2.0
	if radius < 1 {
		radius = 1
	}
	return int(math.Round(radius))
}
