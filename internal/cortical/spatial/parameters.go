package spatial

import (
	"fmt"
	"math"

	"github.com/htm-project/neural-api/internal/domain/htm"
)

// ParameterManager handles spatial pooler parameter diagnostics and tuning.
type ParameterManager struct {
	config *htm.SpatialPoolerConfig
}

// NewParameterManager creates a new parameter manager.
func NewParameterManager(config *htm.SpatialPoolerConfig) *ParameterManager {
	return &ParameterManager{config: config}
}

// ValidateParameterConsistency checks for parameter consistency issues
// beyond what Validate() enforces structurally.
func (pm *ParameterManager) ValidateParameterConsistency() []string {
	var issues []string

	if pm.config.GetExpectedActiveColumns() < 1 {
		issues = append(issues, "density configuration would produce < 1 active column")
	}

	if !pm.config.GlobalInhibition && pm.config.PotentialRadius >= pm.config.ColumnCount() {
		issues = append(issues, "potential radius >= column count with local inhibition enabled")
	}

	if pm.config.SynPermActiveInc <= pm.config.SynPermInactiveDec/10 {
		issues = append(issues, "active increment is unusually small relative to inactive decrement")
	}

	if pm.config.SemanticThresholds.SimilarInputMinOverlap <= pm.config.SemanticThresholds.DifferentInputMaxOverlap {
		issues = append(issues, "similar input threshold <= different input threshold")
	}

	return issues
}

// OptimizeForThroughput returns a config variant biased toward raw speed:
// global inhibition and a long duty-cycle averaging window. The periodic
// radius/min-duty recompute schedule (updatePeriod) is not affected.
func (pm *ParameterManager) OptimizeForThroughput() *htm.SpatialPoolerConfig {
	optimized := *pm.config
	optimized.GlobalInhibition = true
	optimized.Mode = htm.SpatialPoolerModeDeterministic
	optimized.DutyCyclePeriod = 10000
	return &optimized
}

// OptimizeForAccuracy returns a config variant biased toward representation
// quality: local inhibition for topology-sensitive activation and more
// aggressive boosting.
func (pm *ParameterManager) OptimizeForAccuracy() *htm.SpatialPoolerConfig {
	optimized := *pm.config
	optimized.LearningEnabled = true
	optimized.GlobalInhibition = false
	optimized.MaxBoost = 3.0
	optimized.SemanticThresholds.SimilarInputMinOverlap = 0.6
	optimized.SemanticThresholds.DifferentInputMaxOverlap = 0.1
	return &optimized
}

// CalculateOptimalColumnCount estimates a column count that keeps the
// expected active-column count within a reasonable computational range for
// the given input width and target sparsity.
func (pm *ParameterManager) CalculateOptimalColumnCount(inputWidth int, targetSparsity float64) int {
	minColumns := int(float64(inputWidth) * 1.5)
	maxColumns := int(float64(inputWidth) * 2.0)

	minActiveColumns := 20
	maxActiveColumns := 200

	optimalColumns := minColumns
	for cols := minColumns; cols <= maxColumns; cols += 10 {
		activeCount := int(float64(cols) * targetSparsity)
		if activeCount >= minActiveColumns && activeCount <= maxActiveColumns {
			optimalColumns = cols
			break
		}
	}

	return optimalColumns
}

// EstimateMemoryUsage estimates memory usage for the current configuration.
// Permanence storage is one dense row per column (see synapseStore), so the
// estimate reflects that rather than a single flattened matrix.
func (pm *ParameterManager) EstimateMemoryUsage() *MemoryEstimate {
	cols := pm.config.ColumnCount()
	inputs := pm.config.InputWidth()

	permanencesBytes := cols * inputs * 8
	connectedBytes := cols * inputs * 1 // bool per entry

	dutyCyclesBytes := cols * 8 * 2
	boostFactorsBytes := cols * 8
	tieBreakersBytes := cols * 8

	totalBytes := permanencesBytes + connectedBytes + dutyCyclesBytes + boostFactorsBytes + tieBreakersBytes

	return &MemoryEstimate{
		TotalBytes:       totalBytes,
		TotalMB:          float64(totalBytes) / (1024 * 1024),
		PermanencesBytes: permanencesBytes,
		StateBytes:       dutyCyclesBytes + boostFactorsBytes + tieBreakersBytes,
		Breakdown: map[string]int{
			"permanences":   permanencesBytes,
			"connected":     connectedBytes,
			"duty_cycles":   dutyCyclesBytes,
			"boost_factors": boostFactorsBytes,
			"tie_breakers":  tieBreakersBytes,
		},
	}
}

// MemoryEstimate contains memory usage estimation.
type MemoryEstimate struct {
	TotalBytes       int            `json:"total_bytes"`
	TotalMB          float64        `json:"total_mb"`
	PermanencesBytes int            `json:"permanences_bytes"`
	StateBytes       int            `json:"state_bytes"`
	Breakdown        map[string]int `json:"breakdown"`
}

// CalculateProcessingComplexity estimates computational complexity of one
// Compute() call under the current configuration.
func (pm *ParameterManager) CalculateProcessingComplexity() *ComplexityEstimate {
	cols := pm.config.ColumnCount()
	inputs := pm.config.InputWidth()

	overlapOps := cols * inputs
	inhibitionOps := int(float64(cols) * math.Log2(float64(cols)))

	activeColumns := pm.config.GetExpectedActiveColumns()
	learningOps := 0
	if pm.config.LearningEnabled {
		learningOps = activeColumns * inputs
	}

	totalOps := overlapOps + inhibitionOps + learningOps

	return &ComplexityEstimate{
		TotalOperations:       totalOps,
		OverlapOps:            overlapOps,
		InhibitionOps:         inhibitionOps,
		LearningOps:           learningOps,
		EstimatedMicroseconds: int64(float64(totalOps) / 1000),
	}
}

// ComplexityEstimate contains computational complexity analysis.
type ComplexityEstimate struct {
	TotalOperations       int   `json:"total_operations"`
	OverlapOps            int   `json:"overlap_ops"`
	InhibitionOps         int   `json:"inhibition_ops"`
	LearningOps           int   `json:"learning_ops"`
	EstimatedMicroseconds int64 `json:"estimated_microseconds"`
}

// AutoTuneParameters adjusts parameters based on observed performance
// feedback against a target.
func (pm *ParameterManager) AutoTuneParameters(metrics *htm.SpatialPoolerMetrics, targetPerformance *PerformanceTarget) *htm.SpatialPoolerConfig {
	tuned := *pm.config

	if metrics.AverageProcessingTime > targetPerformance.MaxProcessingTimeMs {
		if tuned.LearningEnabled && targetPerformance.AccuracyPriority < 0.8 {
			tuned.LearningEnabled = false
		}
	}

	if metrics.AverageSparsity < targetPerformance.MinSparsity && tuned.LocalAreaDensity >= 0 {
		tuned.LocalAreaDensity = math.Min(0.05, tuned.LocalAreaDensity*1.1)
	} else if metrics.AverageSparsity > targetPerformance.MaxSparsity && tuned.LocalAreaDensity >= 0 {
		tuned.LocalAreaDensity = math.Max(0.01, tuned.LocalAreaDensity*0.9)
	}

	return &tuned
}

// PerformanceTarget defines performance optimization targets.
type PerformanceTarget struct {
	MaxProcessingTimeMs int64   `json:"max_processing_time_ms"`
	MinSparsity         float64 `json:"min_sparsity"`
	MaxSparsity         float64 `json:"max_sparsity"`
	AccuracyPriority    float64 `json:"accuracy_priority"`
}

// GetParameterRecommendations provides parameter recommendations for common
// use cases.
func (pm *ParameterManager) GetParameterRecommendations(useCase string) (*htm.SpatialPoolerConfig, error) {
	base := htm.DefaultSpatialPoolerConfig()

	switch useCase {
	case "high_throughput":
		base.LearningEnabled = false
		base.Mode = htm.SpatialPoolerModeDeterministic
		base.GlobalInhibition = true

	case "high_accuracy":
		base.LearningEnabled = true
		base.MaxBoost = 3.0
		base.GlobalInhibition = false
		base.SemanticThresholds.SimilarInputMinOverlap = 0.7
		base.SemanticThresholds.DifferentInputMaxOverlap = 0.05

	case "balanced":
		base.LearningEnabled = true
		base.MaxBoost = 2.0

	case "memory_efficient":
		base.ColumnDimensions = base.InputDimensions
		base.LocalAreaDensity = 0.02

	default:
		return nil, fmt.Errorf("unknown use case: %s", useCase)
	}

	return base, nil
}
