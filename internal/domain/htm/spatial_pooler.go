package htm

import (
	"fmt"
	"strings"

	"github.com/htm-project/neural-api/internal/cortical/sdr"
)

// SpatialPoolerMode represents the processing mode for the spatial pooler
type SpatialPoolerMode string

const (
	// SpatialPoolerModeDeterministic - a fixed seed drives the permanence PRNG and
	// the instance-constant tie-breaker vector, so identical configuration plus
	// identical input history always reaches identical column activations.
	SpatialPoolerModeDeterministic SpatialPoolerMode = "deterministic"
	// SpatialPoolerModeRandomized - the PRNG is seeded from process entropy.
	SpatialPoolerModeRandomized SpatialPoolerMode = "randomized"
)

// IsValid checks if the spatial pooler mode is valid
func (m SpatialPoolerMode) IsValid() bool {
	switch m {
	case SpatialPoolerModeDeterministic, SpatialPoolerModeRandomized:
		return true
	default:
		return false
	}
}

// String returns the string representation of the mode
func (m SpatialPoolerMode) String() string {
	return string(m)
}

// ParseSpatialPoolerMode parses a string into a SpatialPoolerMode
func ParseSpatialPoolerMode(s string) (SpatialPoolerMode, error) {
	mode := SpatialPoolerMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid spatial pooler mode: %s", s)
	}
	return mode, nil
}

// PoolingError represents errors that can occur during spatial pooling operations
type PoolingError struct {
	ErrorType   PoolingErrorType `json:"error_type"`
	Message     string           `json:"message"`
	InputID     string           `json:"input_id,omitempty"`
	ConfigField string           `json:"config_field,omitempty"`
}

// Error implements the error interface
func (e *PoolingError) Error() string {
	if e.InputID != "" {
		return fmt.Sprintf("%s: %s (input: %s)", e.ErrorType, e.Message, e.InputID)
	}
	if e.ConfigField != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.ErrorType, e.Message, e.ConfigField)
	}
	return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
}

// PoolingErrorType represents the category of pooling error
type PoolingErrorType string

const (
	// PoolingErrorInvalidInput - Input validation failed
	PoolingErrorInvalidInput PoolingErrorType = "invalid_input"
	// PoolingErrorConfiguration - Invalid spatial pooler configuration
	PoolingErrorConfiguration PoolingErrorType = "configuration_error"
	// PoolingErrorProcessing - Error during spatial pooling computation
	PoolingErrorProcessing PoolingErrorType = "processing_error"
	// PoolingErrorPerformance - Processing exceeded time/memory constraints
	PoolingErrorPerformance PoolingErrorType = "performance_error"
	// PoolingErrorLearning - Error during learning rule application
	PoolingErrorLearning PoolingErrorType = "learning_error"
)

// IsValid checks if the pooling error type is valid
func (e PoolingErrorType) IsValid() bool {
	switch e {
	case PoolingErrorInvalidInput, PoolingErrorConfiguration, PoolingErrorProcessing,
		PoolingErrorPerformance, PoolingErrorLearning:
		return true
	default:
		return false
	}
}

// String returns the string representation of the error type
func (e PoolingErrorType) String() string {
	return string(e)
}

// NewPoolingError creates a new pooling error
func NewPoolingError(errorType PoolingErrorType, message string) *PoolingError {
	return &PoolingError{
		ErrorType: errorType,
		Message:   message,
	}
}

// NewPoolingErrorWithInput creates a new pooling error with input ID
func NewPoolingErrorWithInput(errorType PoolingErrorType, message, inputID string) *PoolingError {
	return &PoolingError{
		ErrorType: errorType,
		Message:   message,
		InputID:   inputID,
	}
}

// NewPoolingErrorWithField creates a new pooling error with config field
func NewPoolingErrorWithField(errorType PoolingErrorType, message, configField string) *PoolingError {
	return &PoolingError{
		ErrorType:   errorType,
		Message:     message,
		ConfigField: configField,
	}
}

// PoolingInput represents input structure for spatial pooler processing
type PoolingInput struct {
	EncoderOutput   EncoderOutput          `json:"encoder_output" validate:"required"`
	InputWidth      int                    `json:"input_width" validate:"required,gt=0"`
	InputID         string                 `json:"input_id" validate:"required"`
	LearningEnabled bool                   `json:"learning_enabled"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// EncoderOutput represents raw bit array from sensor encoder
type EncoderOutput struct {
	Width      int     `json:"width" validate:"required,gt=0"`
	ActiveBits []int   `json:"active_bits" validate:"required"`
	Sparsity   float64 `json:"sparsity" validate:"gte=0,lte=1"`
}

// Validate validates the pooling input
func (p *PoolingInput) Validate() error {
	if p.EncoderOutput.Width <= 0 {
		return NewPoolingError(PoolingErrorInvalidInput, "encoder output width must be positive")
	}

	if p.InputWidth != p.EncoderOutput.Width {
		return NewPoolingErrorWithInput(PoolingErrorInvalidInput,
			fmt.Sprintf("input width (%d) must match encoder output width (%d)", p.InputWidth, p.EncoderOutput.Width),
			p.InputID)
	}

	if p.InputID == "" {
		return NewPoolingError(PoolingErrorInvalidInput, "input ID cannot be empty")
	}

	for _, bit := range p.EncoderOutput.ActiveBits {
		if bit < 0 || bit >= p.EncoderOutput.Width {
			return NewPoolingErrorWithInput(PoolingErrorInvalidInput,
				fmt.Sprintf("active bit %d is out of range [0, %d)", bit, p.EncoderOutput.Width),
				p.InputID)
		}
	}

	return nil
}

// Dense expands the active-bit list into a dense boolean input vector sized
// to the encoder output width. The spatial pooler's algorithmic core never
// special-cases a sparse representation; this is the one conversion point.
func (e *EncoderOutput) Dense() []bool {
	vec := make([]bool, e.Width)
	for _, bit := range e.ActiveBits {
		vec[bit] = true
	}
	return vec
}

// PoolingResult represents output structure containing true SDR produced by spatial pooler
type PoolingResult struct {
	NormalizedSDR    sdr.SDR `json:"normalized_sdr"`
	InputID          string  `json:"input_id"`
	ProcessingTime   int64   `json:"processing_time_ms"`
	ActiveColumns    []int   `json:"active_columns"`
	AvgOverlap       float64 `json:"avg_overlap"`
	SparsityLevel    float64 `json:"sparsity_level"`
	LearningOccurred bool    `json:"learning_occurred"`
	BoostingApplied  bool    `json:"boosting_applied"`
}

// Validate validates the pooling result's internal consistency. Sparsity and
// timing bounds are no longer fixed HTM constants; they follow from whatever
// configuration produced the result, so this only checks shape invariants.
func (r *PoolingResult) Validate() error {
	for i, col := range r.ActiveColumns {
		if col < 0 {
			return NewPoolingError(PoolingErrorProcessing,
				fmt.Sprintf("active column %d is negative", col))
		}
		if i > 0 && col <= r.ActiveColumns[i-1] {
			return NewPoolingError(PoolingErrorProcessing, "active columns must be sorted and unique")
		}
	}

	if r.NormalizedSDR.Width > 0 {
		expectedSparsity := float64(len(r.NormalizedSDR.ActiveBits)) / float64(r.NormalizedSDR.Width)
		if abs(r.SparsityLevel-expectedSparsity) > 1e-9 {
			return NewPoolingError(PoolingErrorProcessing,
				fmt.Sprintf("sparsity level %.6f does not match SDR sparsity %.6f", r.SparsityLevel, expectedSparsity))
		}
	}

	return nil
}

// SpatialPoolerMetrics represents performance and behavioral metrics
type SpatialPoolerMetrics struct {
	TotalProcessed           int64                      `json:"total_processed"`
	AverageProcessingTime    int64                      `json:"average_processing_time_ms"`
	LearningIterations       int64                      `json:"learning_iterations"`
	ColumnUsageDistribution  []float64                  `json:"column_usage_distribution,omitempty"`
	AverageSparsity          float64                    `json:"average_sparsity"`
	OverlapScoreDistribution []float64                  `json:"overlap_score_distribution,omitempty"`
	BoostingEvents           int64                      `json:"boosting_events"`
	ErrorCounts              map[PoolingErrorType]int64 `json:"error_counts"`
}

// NewSpatialPoolerMetrics creates a new metrics instance
func NewSpatialPoolerMetrics() *SpatialPoolerMetrics {
	return &SpatialPoolerMetrics{
		ErrorCounts: make(map[PoolingErrorType]int64),
	}
}

// RecordProcessing records a successful processing operation
func (m *SpatialPoolerMetrics) RecordProcessing(processingTime int64, sparsity float64, learningOccurred bool, boostingApplied bool) {
	m.TotalProcessed++

	if m.TotalProcessed == 1 {
		m.AverageProcessingTime = processingTime
	} else {
		m.AverageProcessingTime = m.AverageProcessingTime + (processingTime-m.AverageProcessingTime)/m.TotalProcessed
	}

	if m.TotalProcessed == 1 {
		m.AverageSparsity = sparsity
	} else {
		m.AverageSparsity = m.AverageSparsity + (sparsity-m.AverageSparsity)/float64(m.TotalProcessed)
	}

	if learningOccurred {
		m.LearningIterations++
	}

	if boostingApplied {
		m.BoostingEvents++
	}
}

// RecordError records an error occurrence
func (m *SpatialPoolerMetrics) RecordError(errorType PoolingErrorType) {
	if m.ErrorCounts == nil {
		m.ErrorCounts = make(map[PoolingErrorType]int64)
	}
	m.ErrorCounts[errorType]++
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// SpatialPoolerConfig is the full N-dimensional configuration for a spatial
// pooler instance. Field names follow the algorithm's own vocabulary rather
// than a fixed HTM sparsity band, since column/input shape and density are
// caller-chosen, not hardcoded constants.
type SpatialPoolerConfig struct {
	// InputDimensions is the shape of the input space, e.g. [1024] or [32, 32].
	InputDimensions []int `json:"input_dimensions" validate:"required,min=1"`
	// ColumnDimensions is the shape of the column space.
	ColumnDimensions []int `json:"column_dimensions" validate:"required,min=1"`

	// PotentialRadius bounds how far (in input-space coordinates) a column's
	// potential synapses may reach from its mapped center.
	PotentialRadius int `json:"potential_radius" validate:"gte=0"`
	// PotentialPct is the fraction of the potential radius's neighborhood
	// sampled into each column's potential pool.
	PotentialPct float64 `json:"potential_pct" validate:"gt=0,lte=1"`

	// GlobalInhibition selects global (single shared top-K) vs local
	// (per-neighborhood) competitive inhibition.
	GlobalInhibition bool `json:"global_inhibition"`
	// LocalAreaDensity, when >= 0, fixes the target activation density
	// directly. When negative, NumActiveColumnsPerInhArea governs density
	// instead (the two are mutually exclusive, never both non-negative).
	LocalAreaDensity float64 `json:"local_area_density"`
	// NumActiveColumnsPerInhArea is used when LocalAreaDensity is negative.
	NumActiveColumnsPerInhArea float64 `json:"num_active_columns_per_inh_area"`

	// StimulusThreshold is the minimum connected-synapse overlap a column
	// needs before it is eligible to win inhibition.
	StimulusThreshold int `json:"stimulus_threshold" validate:"gte=0"`

	// SynPermInactiveDec/SynPermActiveInc/SynPermConnected are the permanence
	// learning step sizes and the connected threshold.
	SynPermInactiveDec float64 `json:"syn_perm_inactive_dec" validate:"gt=0,lt=1"`
	SynPermActiveInc   float64 `json:"syn_perm_active_inc" validate:"gt=0,lt=1"`
	SynPermConnected   float64 `json:"syn_perm_connected" validate:"gt=0,lt=1"`

	// MinPctOverlapDutyCycles/MinPctActiveDutyCycles set the homeostatic
	// floors relative to neighborhood-maximum duty cycles.
	MinPctOverlapDutyCycles float64 `json:"min_pct_overlap_duty_cycles" validate:"gte=0"`
	MinPctActiveDutyCycles  float64 `json:"min_pct_active_duty_cycles" validate:"gte=0"`
	// DutyCyclePeriod bounds the duty-cycle exponential moving average window.
	DutyCyclePeriod int `json:"duty_cycle_period" validate:"gt=0"`
	// MaxBoost is the boost factor a column receives at zero active duty cycle.
	MaxBoost float64 `json:"max_boost" validate:"gte=1"`

	// Seed drives the deterministic PRNG; WrapAround controls whether the
	// topology wraps at its edges for potential-pool sampling and for the
	// column neighborhoods of the local min-duty-cycle floors.
	Seed       int64 `json:"seed"`
	WrapAround bool  `json:"wrap_around"`

	// SpVerbosity gates how much detail Diagnostics() returns; it never
	// produces console output.
	SpVerbosity int `json:"sp_verbosity" validate:"gte=0,lte=3"`

	// Mode selects a Seed-driven PRNG (deterministic) or a clock-seeded one
	// (randomized). LearningEnabled/SemanticThresholds are retained for the
	// HTTP layer's compatibility reporting; the algorithmic core itself takes
	// its learn/no-learn decision per Compute() call, not from config.
	Mode               SpatialPoolerMode  `json:"mode" validate:"required"`
	LearningEnabled    bool               `json:"learning_enabled"`
	SemanticThresholds SemanticThresholds `json:"semantic_thresholds"`
}

// SemanticThresholds represents thresholds for semantic similarity preservation
type SemanticThresholds struct {
	SimilarInputMinOverlap   float64 `json:"similar_input_min_overlap" validate:"gte=0,lte=1"`
	DifferentInputMaxOverlap float64 `json:"different_input_max_overlap" validate:"gte=0,lte=1"`
}

// InputWidth returns the flattened size of the input space.
func (c *SpatialPoolerConfig) InputWidth() int {
	return product(c.InputDimensions)
}

// ColumnCount returns the flattened number of columns.
func (c *SpatialPoolerConfig) ColumnCount() int {
	return product(c.ColumnDimensions)
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// DefaultSpatialPoolerConfig returns a reasonable default configuration.
func DefaultSpatialPoolerConfig() *SpatialPoolerConfig {
	return &SpatialPoolerConfig{
		InputDimensions:            []int{1024},
		ColumnDimensions:           []int{2048},
		PotentialRadius:            16,
		PotentialPct:               0.5,
		GlobalInhibition:           true,
		LocalAreaDensity:           -1,
		NumActiveColumnsPerInhArea: 40,
		StimulusThreshold:          0,
		SynPermInactiveDec:         0.008,
		SynPermActiveInc:           0.05,
		SynPermConnected:           0.1,
		MinPctOverlapDutyCycles:    0.001,
		MinPctActiveDutyCycles:     0.001,
		DutyCyclePeriod:            1000,
		MaxBoost:                  2.0,
		Seed:                       42,
		WrapAround:                 true,
		SpVerbosity:                0,
		Mode:                       SpatialPoolerModeDeterministic,
		LearningEnabled:            true,
		SemanticThresholds: SemanticThresholds{
			SimilarInputMinOverlap:   0.5,
			DifferentInputMaxOverlap: 0.1,
		},
	}
}

// Validate validates the spatial pooler configuration.
func (c *SpatialPoolerConfig) Validate() error {
	if len(c.InputDimensions) == 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "input dimensions must not be empty", "input_dimensions")
	}
	if len(c.ColumnDimensions) == 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "column dimensions must not be empty", "column_dimensions")
	}
	for i, d := range c.InputDimensions {
		if d <= 0 {
			return NewPoolingErrorWithField(PoolingErrorConfiguration,
				fmt.Sprintf("input dimension %d must be positive, got %d", i, d), "input_dimensions")
		}
	}
	for i, d := range c.ColumnDimensions {
		if d <= 0 {
			return NewPoolingErrorWithField(PoolingErrorConfiguration,
				fmt.Sprintf("column dimension %d must be positive, got %d", i, d), "column_dimensions")
		}
	}

	if c.PotentialRadius < 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "potential radius cannot be negative", "potential_radius")
	}
	if c.PotentialPct <= 0 || c.PotentialPct > 1 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "potential pct must be in (0, 1]", "potential_pct")
	}

	if c.LocalAreaDensity > 1 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "local area density must be <= 1", "local_area_density")
	}
	if c.LocalAreaDensity >= 0 && c.NumActiveColumnsPerInhArea > 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration,
			"local_area_density and num_active_columns_per_inh_area are mutually exclusive", "local_area_density")
	}
	if c.LocalAreaDensity < 0 && c.NumActiveColumnsPerInhArea <= 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration,
			"exactly one of local_area_density or num_active_columns_per_inh_area must be set", "num_active_columns_per_inh_area")
	}

	if c.StimulusThreshold < 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "stimulus threshold cannot be negative", "stimulus_threshold")
	}

	if c.SynPermInactiveDec <= 0 || c.SynPermInactiveDec >= 1 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "syn perm inactive dec must be in (0, 1)", "syn_perm_inactive_dec")
	}
	if c.SynPermActiveInc <= 0 || c.SynPermActiveInc >= 1 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "syn perm active inc must be in (0, 1)", "syn_perm_active_inc")
	}
	if c.SynPermConnected <= 0 || c.SynPermConnected >= 1 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "syn perm connected must be in (0, 1)", "syn_perm_connected")
	}

	if c.MinPctOverlapDutyCycles < 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "min pct overlap duty cycles cannot be negative", "min_pct_overlap_duty_cycles")
	}
	if c.MinPctActiveDutyCycles < 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "min pct active duty cycles cannot be negative", "min_pct_active_duty_cycles")
	}
	if c.DutyCyclePeriod <= 0 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "duty cycle period must be positive", "duty_cycle_period")
	}
	if c.MaxBoost < 1 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "max boost must be >= 1", "max_boost")
	}

	if c.SpVerbosity < 0 || c.SpVerbosity > 3 {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, "sp verbosity must be in [0, 3]", "sp_verbosity")
	}

	if !c.Mode.IsValid() {
		return NewPoolingErrorWithField(PoolingErrorConfiguration, fmt.Sprintf("invalid mode: %s", c.Mode), "mode")
	}

	if c.SemanticThresholds.SimilarInputMinOverlap < c.SemanticThresholds.DifferentInputMaxOverlap {
		return NewPoolingErrorWithField(PoolingErrorConfiguration,
			"similar input min overlap must be >= different input max overlap", "semantic_thresholds")
	}

	return nil
}

// GetExpectedActiveColumns estimates the number of columns that will be
// active per inhibition round under the current density configuration.
func (c *SpatialPoolerConfig) GetExpectedActiveColumns() int {
	if c.LocalAreaDensity >= 0 {
		return int(c.LocalAreaDensity * float64(c.ColumnCount()))
	}
	return int(c.NumActiveColumnsPerInhArea)
}

// GetExpectedSparsity returns the expected activation sparsity.
func (c *SpatialPoolerConfig) GetExpectedSparsity() float64 {
	if c.LocalAreaDensity >= 0 {
		return c.LocalAreaDensity
	}
	n := c.ColumnCount()
	if n == 0 {
		return 0
	}
	return c.NumActiveColumnsPerInhArea / float64(n)
}

// IsDeterministic returns true if the pooler is configured for deterministic operation.
func (c *SpatialPoolerConfig) IsDeterministic() bool {
	return c.Mode == SpatialPoolerModeDeterministic
}

// IsLearningEnabled returns true if learning is enabled by default.
func (c *SpatialPoolerConfig) IsLearningEnabled() bool {
	return c.LearningEnabled
}
