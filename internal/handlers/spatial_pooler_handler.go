package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/htm-project/neural-api/internal/domain/htm"
	"github.com/htm-project/neural-api/internal/ports"
)

// SpatialPoolerHandler handles HTTP requests for spatial pooling operations
type SpatialPoolerHandler struct {
	spatialPoolingService ports.SpatialPoolingService
}

// NewSpatialPoolerHandler creates a new spatial pooler HTTP handler
func NewSpatialPoolerHandler(spatialPoolingService ports.SpatialPoolingService) *SpatialPoolerHandler {
	return &SpatialPoolerHandler{
		spatialPoolingService: spatialPoolingService,
	}
}

// ProcessSpatialPooler handles POST /api/v1/spatial-pooler/process requests
func (h *SpatialPoolerHandler) ProcessSpatialPooler(c *gin.Context) {
	var request SpatialPoolerProcessRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if err := h.validateProcessRequest(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Request validation failed",
			"details": err.Error(),
		})
		return
	}

	poolingInput := &htm.PoolingInput{
		EncoderOutput: htm.EncoderOutput{
			Width:      request.EncoderOutput.Width,
			ActiveBits: request.EncoderOutput.ActiveBits,
			Sparsity:   request.EncoderOutput.Sparsity,
		},
		InputWidth:      request.InputWidth,
		InputID:         request.InputID,
		LearningEnabled: request.LearningEnabled,
		Metadata:        request.Metadata,
	}

	result, err := h.spatialPoolingService.ProcessSpatialPooling(c.Request.Context(), poolingInput)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Spatial pooling processing failed",
			"details": err.Error(),
		})
		return
	}

	response := SpatialPoolerProcessResponse{
		NormalizedSDR: SDRResponse{
			Width:      result.NormalizedSDR.Width,
			ActiveBits: result.NormalizedSDR.ActiveBits,
			Sparsity:   result.NormalizedSDR.Sparsity,
		},
		InputID:          result.InputID,
		ProcessingTimeMs: result.ProcessingTime,
		ActiveColumns:    result.ActiveColumns,
		AvgOverlap:       result.AvgOverlap,
		SparsityLevel:    result.SparsityLevel,
		LearningOccurred: result.LearningOccurred,
		BoostingApplied:  result.BoostingApplied,
	}

	c.JSON(http.StatusOK, response)
}

// GetSpatialPoolerConfig handles GET /api/v1/spatial-pooler/config requests
func (h *SpatialPoolerHandler) GetSpatialPoolerConfig(c *gin.Context) {
	config, err := h.spatialPoolingService.GetConfiguration(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get configuration",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, configToResponse(config))
}

// UpdateSpatialPoolerConfig handles PUT /api/v1/spatial-pooler/config requests
func (h *SpatialPoolerHandler) UpdateSpatialPoolerConfig(c *gin.Context) {
	var request SpatialPoolerConfigUpdateRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	config, err := requestToConfig(&request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid configuration",
			"details": err.Error(),
		})
		return
	}

	if err := h.spatialPoolingService.UpdateConfiguration(c.Request.Context(), config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Configuration update failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Configuration updated successfully",
	})
}

// GetSpatialPoolerMetrics handles GET /api/v1/spatial-pooler/metrics requests
func (h *SpatialPoolerHandler) GetSpatialPoolerMetrics(c *gin.Context) {
	metrics, err := h.spatialPoolingService.GetMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get metrics",
			"details": err.Error(),
		})
		return
	}

	response := SpatialPoolerMetricsResponse{
		TotalProcessed:           metrics.TotalProcessed,
		AverageProcessingTimeMs:  metrics.AverageProcessingTime,
		LearningIterations:       metrics.LearningIterations,
		ColumnUsageDistribution:  metrics.ColumnUsageDistribution,
		AverageSparsity:          metrics.AverageSparsity,
		OverlapScoreDistribution: metrics.OverlapScoreDistribution,
		BoostingEvents:           metrics.BoostingEvents,
		ErrorCounts:              make(map[string]int64),
	}

	for errorType, count := range metrics.ErrorCounts {
		response.ErrorCounts[string(errorType)] = count
	}

	c.JSON(http.StatusOK, response)
}

// ResetSpatialPoolerMetrics handles POST /api/v1/spatial-pooler/metrics/reset requests
func (h *SpatialPoolerHandler) ResetSpatialPoolerMetrics(c *gin.Context) {
	if err := h.spatialPoolingService.ResetMetrics(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reset metrics",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Metrics reset successfully",
	})
}

// GetSpatialPoolerHealth handles GET /api/v1/spatial-pooler/health requests
func (h *SpatialPoolerHandler) GetSpatialPoolerHealth(c *gin.Context) {
	if err := h.spatialPoolingService.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	info := h.spatialPoolingService.GetInstanceInfo(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"info":   info,
	})
}

// GetSpatialPoolerStatus handles GET /api/v1/spatial-pooler/status requests
func (h *SpatialPoolerHandler) GetSpatialPoolerStatus(c *gin.Context) {
	info := h.spatialPoolingService.GetInstanceInfo(c.Request.Context())

	config, err := h.spatialPoolingService.GetConfiguration(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get spatial pooler configuration",
			"details": err.Error(),
		})
		return
	}

	metrics, err := h.spatialPoolingService.GetMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get spatial pooler metrics",
			"details": err.Error(),
		})
		return
	}

	isHealthy := true
	var healthError string
	if err := h.spatialPoolingService.HealthCheck(c.Request.Context()); err != nil {
		isHealthy = false
		healthError = err.Error()
	}

	status := gin.H{
		"status":        "operational",
		"healthy":       isHealthy,
		"instance":      info,
		"configuration": configToResponse(config),
		"metrics":       metrics,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	}

	if !isHealthy {
		status["health_error"] = healthError
		status["status"] = "degraded"
	}

	c.JSON(http.StatusOK, status)
}

// ValidateConfigRequest handles POST /api/v1/spatial-pooler/config/validate requests
func (h *SpatialPoolerHandler) ValidateConfigRequest(c *gin.Context) {
	var request SpatialPoolerConfigUpdateRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	config, err := requestToConfig(&request)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"error":   "Invalid configuration",
			"details": err.Error(),
		})
		return
	}

	if err := h.spatialPoolingService.ValidateConfiguration(c.Request.Context(), config); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"error":   "Configuration validation failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"message": "Configuration is valid",
	})
}

// GetHTMProperties handles GET /api/v1/spatial-pooler/validation/htm-properties requests
func (h *SpatialPoolerHandler) GetHTMProperties(c *gin.Context) {
	config, err := h.spatialPoolingService.GetConfiguration(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get spatial pooler configuration",
			"details": err.Error(),
		})
		return
	}

	metrics, err := h.spatialPoolingService.GetMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get spatial pooler metrics",
			"details": err.Error(),
		})
		return
	}

	expectedSparsity := config.GetExpectedSparsity()

	properties := gin.H{
		"htm_compliance": gin.H{
			"biological_constraints": gin.H{
				"expected_sparsity_percentage": expectedSparsity * 100,
				"stimulus_threshold":           config.StimulusThreshold,
			},
			"learning_properties": gin.H{
				"learning_enabled":   config.LearningEnabled,
				"syn_perm_active_inc": config.SynPermActiveInc,
				"syn_perm_inactive_dec": config.SynPermInactiveDec,
				"max_boost":          config.MaxBoost,
			},
			"topology_properties": gin.H{
				"column_dimensions":  config.ColumnDimensions,
				"input_dimensions":   config.InputDimensions,
				"global_inhibition":  config.GlobalInhibition,
				"local_area_density": config.LocalAreaDensity,
			},
		},
		"runtime_metrics": gin.H{
			"current_sparsity":        metrics.AverageSparsity * 100,
			"total_processed":         metrics.TotalProcessed,
			"average_processing_time": metrics.AverageProcessingTime,
			"learning_iterations":     metrics.LearningIterations,
			"boosting_events":         metrics.BoostingEvents,
		},
		"validation_status": gin.H{
			"overall_compliant": h.validateOverallHTMCompliance(config, metrics),
			"warnings":          h.generateHTMWarnings(config, metrics),
			"recommendations":   h.generateHTMRecommendations(config, metrics),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, properties)
}

func (h *SpatialPoolerHandler) validateOverallHTMCompliance(config *htm.SpatialPoolerConfig, metrics *htm.SpatialPoolerMetrics) bool {
	sparsityCompliant := config.GetExpectedSparsity() > 0 && config.GetExpectedSparsity() < 0.5
	topologyCompliant := config.ColumnCount() > 0 && config.InputWidth() > 0
	return sparsityCompliant && topologyCompliant
}

func (h *SpatialPoolerHandler) generateHTMWarnings(config *htm.SpatialPoolerConfig, metrics *htm.SpatialPoolerMetrics) []string {
	warnings := []string{}

	if config.GetExpectedSparsity() > 0.1 {
		warnings = append(warnings, "Expected sparsity is unusually high; representations may overlap too readily")
	}

	if !config.LearningEnabled {
		warnings = append(warnings, "Learning is disabled by default - override per request if adaptation is desired")
	}

	if len(metrics.ErrorCounts) > 0 {
		warnings = append(warnings, "Processing errors detected - check spatial pooler stability")
	}

	return warnings
}

func (h *SpatialPoolerHandler) generateHTMRecommendations(config *htm.SpatialPoolerConfig, metrics *htm.SpatialPoolerMetrics) []string {
	recommendations := []string{}

	if config.GetExpectedSparsity() > 0.1 {
		recommendations = append(recommendations, "Lower local_area_density or num_active_columns_per_inh_area for sparser activations")
	}

	if config.MaxBoost <= 1 && metrics.BoostingEvents == 0 {
		recommendations = append(recommendations, "Raise max_boost above 1 to let underused columns recover")
	}

	return recommendations
}

func (h *SpatialPoolerHandler) validateProcessRequest(request *SpatialPoolerProcessRequest) error {
	if request.InputID == "" {
		return fmt.Errorf("input_id is required")
	}
	if request.InputWidth <= 0 {
		return fmt.Errorf("input_width must be positive")
	}
	if request.EncoderOutput.Width <= 0 {
		return fmt.Errorf("encoder_output.width must be positive")
	}
	if request.InputWidth != request.EncoderOutput.Width {
		return fmt.Errorf("input_width must match encoder_output.width")
	}
	for _, bit := range request.EncoderOutput.ActiveBits {
		if bit < 0 || bit >= request.EncoderOutput.Width {
			return fmt.Errorf("active bit %d out of range [0, %d)", bit, request.EncoderOutput.Width)
		}
	}
	return nil
}

func configToResponse(config *htm.SpatialPoolerConfig) SpatialPoolerConfigResponse {
	return SpatialPoolerConfigResponse{
		InputDimensions:            config.InputDimensions,
		ColumnDimensions:           config.ColumnDimensions,
		PotentialRadius:            config.PotentialRadius,
		PotentialPct:               config.PotentialPct,
		GlobalInhibition:           config.GlobalInhibition,
		LocalAreaDensity:           config.LocalAreaDensity,
		NumActiveColumnsPerInhArea: config.NumActiveColumnsPerInhArea,
		StimulusThreshold:          config.StimulusThreshold,
		SynPermInactiveDec:         config.SynPermInactiveDec,
		SynPermActiveInc:           config.SynPermActiveInc,
		SynPermConnected:           config.SynPermConnected,
		MinPctOverlapDutyCycles:    config.MinPctOverlapDutyCycles,
		MinPctActiveDutyCycles:     config.MinPctActiveDutyCycles,
		DutyCyclePeriod:            config.DutyCyclePeriod,
		MaxBoost:                   config.MaxBoost,
		Seed:                       config.Seed,
		WrapAround:                 config.WrapAround,
		Mode:                       string(config.Mode),
		LearningEnabled:            config.LearningEnabled,
		SemanticThresholds: SemanticThresholdsResponse{
			SimilarInputMinOverlap:   config.SemanticThresholds.SimilarInputMinOverlap,
			DifferentInputMaxOverlap: config.SemanticThresholds.DifferentInputMaxOverlap,
		},
	}
}

func requestToConfig(request *SpatialPoolerConfigUpdateRequest) (*htm.SpatialPoolerConfig, error) {
	mode, err := htm.ParseSpatialPoolerMode(request.Mode)
	if err != nil {
		return nil, err
	}
	return &htm.SpatialPoolerConfig{
		InputDimensions:            request.InputDimensions,
		ColumnDimensions:           request.ColumnDimensions,
		PotentialRadius:            request.PotentialRadius,
		PotentialPct:               request.PotentialPct,
		GlobalInhibition:           request.GlobalInhibition,
		LocalAreaDensity:           request.LocalAreaDensity,
		NumActiveColumnsPerInhArea: request.NumActiveColumnsPerInhArea,
		StimulusThreshold:          request.StimulusThreshold,
		SynPermInactiveDec:         request.SynPermInactiveDec,
		SynPermActiveInc:           request.SynPermActiveInc,
		SynPermConnected:           request.SynPermConnected,
		MinPctOverlapDutyCycles:    request.MinPctOverlapDutyCycles,
		MinPctActiveDutyCycles:     request.MinPctActiveDutyCycles,
		DutyCyclePeriod:            request.DutyCyclePeriod,
		MaxBoost:                   request.MaxBoost,
		Seed:                       request.Seed,
		WrapAround:                 request.WrapAround,
		Mode:                       mode,
		LearningEnabled:            request.LearningEnabled,
		SemanticThresholds: htm.SemanticThresholds{
			SimilarInputMinOverlap:   request.SemanticThresholds.SimilarInputMinOverlap,
			DifferentInputMaxOverlap: request.SemanticThresholds.DifferentInputMaxOverlap,
		},
	}, nil
}

// GetColumnPotential handles GET /api/v1/spatial-pooler/columns/:id/potential
func (h *SpatialPoolerHandler) GetColumnPotential(c *gin.Context) {
	column, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid column id"})
		return
	}

	accessor, ok := h.spatialPoolingService.(ports.SpatialPoolingAccessor)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "accessor not supported by this service"})
		return
	}

	indices, err := accessor.GetPotential(c.Request.Context(), column)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"column": column, "potential": indices})
}

// GetColumnPermanence handles GET /api/v1/spatial-pooler/columns/:id/permanence
func (h *SpatialPoolerHandler) GetColumnPermanence(c *gin.Context) {
	column, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid column id"})
		return
	}

	accessor, ok := h.spatialPoolingService.(ports.SpatialPoolingAccessor)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "accessor not supported by this service"})
		return
	}

	perms, err := accessor.GetPermanence(c.Request.Context(), column)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"column": column, "permanence": perms})
}

// SaveSnapshot handles POST /api/v1/spatial-pooler/snapshot
func (h *SpatialPoolerHandler) SaveSnapshot(c *gin.Context) {
	accessor, ok := h.spatialPoolingService.(ports.SpatialPoolingAccessor)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "snapshotting not supported by this service"})
		return
	}

	data, err := accessor.Save(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

// LoadSnapshot handles PUT /api/v1/spatial-pooler/snapshot
func (h *SpatialPoolerHandler) LoadSnapshot(c *gin.Context) {
	accessor, ok := h.spatialPoolingService.(ports.SpatialPoolingAccessor)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "snapshotting not supported by this service"})
		return
	}

	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := accessor.Load(c.Request.Context(), data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "snapshot loaded"})
}

// Request/Response types

type SpatialPoolerProcessRequest struct {
	EncoderOutput   EncoderOutputRequest   `json:"encoder_output" binding:"required"`
	InputWidth      int                    `json:"input_width" binding:"required,gt=0"`
	InputID         string                 `json:"input_id" binding:"required"`
	LearningEnabled bool                   `json:"learning_enabled"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

type EncoderOutputRequest struct {
	Width      int     `json:"width" binding:"required,gt=0"`
	ActiveBits []int   `json:"active_bits" binding:"required"`
	Sparsity   float64 `json:"sparsity" binding:"gte=0,lte=1"`
}

type SpatialPoolerProcessResponse struct {
	NormalizedSDR    SDRResponse `json:"normalized_sdr"`
	InputID          string      `json:"input_id"`
	ProcessingTimeMs int64       `json:"processing_time_ms"`
	ActiveColumns    []int       `json:"active_columns"`
	AvgOverlap       float64     `json:"avg_overlap"`
	SparsityLevel    float64     `json:"sparsity_level"`
	LearningOccurred bool        `json:"learning_occurred"`
	BoostingApplied  bool        `json:"boosting_applied"`
}

type SDRResponse struct {
	Width      int     `json:"width"`
	ActiveBits []int   `json:"active_bits"`
	Sparsity   float64 `json:"sparsity"`
}

type SpatialPoolerConfigResponse struct {
	InputDimensions            []int                      `json:"input_dimensions"`
	ColumnDimensions           []int                      `json:"column_dimensions"`
	PotentialRadius            int                        `json:"potential_radius"`
	PotentialPct               float64                    `json:"potential_pct"`
	GlobalInhibition           bool                       `json:"global_inhibition"`
	LocalAreaDensity           float64                    `json:"local_area_density"`
	NumActiveColumnsPerInhArea float64                    `json:"num_active_columns_per_inh_area"`
	StimulusThreshold          int                        `json:"stimulus_threshold"`
	SynPermInactiveDec         float64                    `json:"syn_perm_inactive_dec"`
	SynPermActiveInc           float64                    `json:"syn_perm_active_inc"`
	SynPermConnected           float64                    `json:"syn_perm_connected"`
	MinPctOverlapDutyCycles    float64                    `json:"min_pct_overlap_duty_cycles"`
	MinPctActiveDutyCycles     float64                    `json:"min_pct_active_duty_cycles"`
	DutyCyclePeriod            int                        `json:"duty_cycle_period"`
	MaxBoost                   float64                    `json:"max_boost"`
	Seed                       int64                      `json:"seed"`
	WrapAround                 bool                       `json:"wrap_around"`
	Mode                       string                     `json:"mode"`
	LearningEnabled            bool                       `json:"learning_enabled"`
	SemanticThresholds         SemanticThresholdsResponse `json:"semantic_thresholds"`
}

type SemanticThresholdsResponse struct {
	SimilarInputMinOverlap   float64 `json:"similar_input_min_overlap"`
	DifferentInputMaxOverlap float64 `json:"different_input_max_overlap"`
}

type SpatialPoolerConfigUpdateRequest struct {
	InputDimensions            []int                           `json:"input_dimensions" binding:"required"`
	ColumnDimensions           []int                            `json:"column_dimensions" binding:"required"`
	PotentialRadius            int                              `json:"potential_radius" binding:"gte=0"`
	PotentialPct               float64                          `json:"potential_pct" binding:"gt=0,lte=1"`
	GlobalInhibition           bool                             `json:"global_inhibition"`
	LocalAreaDensity           float64                          `json:"local_area_density"`
	NumActiveColumnsPerInhArea float64                          `json:"num_active_columns_per_inh_area"`
	StimulusThreshold          int                              `json:"stimulus_threshold" binding:"gte=0"`
	SynPermInactiveDec         float64                          `json:"syn_perm_inactive_dec" binding:"gt=0,lt=1"`
	SynPermActiveInc           float64                          `json:"syn_perm_active_inc" binding:"gt=0,lt=1"`
	SynPermConnected           float64                          `json:"syn_perm_connected" binding:"gt=0,lt=1"`
	MinPctOverlapDutyCycles    float64                          `json:"min_pct_overlap_duty_cycles" binding:"gte=0"`
	MinPctActiveDutyCycles     float64                          `json:"min_pct_active_duty_cycles" binding:"gte=0"`
	DutyCyclePeriod            int                              `json:"duty_cycle_period" binding:"gt=0"`
	MaxBoost                   float64                          `json:"max_boost" binding:"gte=1"`
	Seed                       int64                            `json:"seed"`
	WrapAround                 bool                             `json:"wrap_around"`
	Mode                       string                           `json:"mode" binding:"required"`
	LearningEnabled            bool                             `json:"learning_enabled"`
	SemanticThresholds         SemanticThresholdsUpdateRequest  `json:"semantic_thresholds" binding:"required"`
}

type SemanticThresholdsUpdateRequest struct {
	SimilarInputMinOverlap   float64 `json:"similar_input_min_overlap" binding:"gte=0,lte=1"`
	DifferentInputMaxOverlap float64 `json:"different_input_max_overlap" binding:"gte=0,lte=1"`
}

type SpatialPoolerMetricsResponse struct {
	TotalProcessed           int64            `json:"total_processed"`
	AverageProcessingTimeMs  int64            `json:"average_processing_time_ms"`
	LearningIterations       int64            `json:"learning_iterations"`
	ColumnUsageDistribution  []float64        `json:"column_usage_distribution,omitempty"`
	AverageSparsity          float64          `json:"average_sparsity"`
	OverlapScoreDistribution []float64        `json:"overlap_score_distribution,omitempty"`
	BoostingEvents           int64            `json:"boosting_events"`
	ErrorCounts              map[string]int64 `json:"error_counts"`
}
