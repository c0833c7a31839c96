package detection

import (
	"fmt"

	"github.com/ironsheep/shape-count/internal/bitmap"
	"github.com/ironsheep/shape-count/internal/morphology"
)

// Config holds the tunable parameters of the analysis pipeline.
//
// Masks are plain values: build them with bitmap.Full, bitmap.Plus or
// bitmap.NewMask and pass them in. Nothing in the pipeline reads a global.
type Config struct {
	// Operation picks erosion (inward envelope) or dilation (outward envelope).
	Operation morphology.Operation

	// StructuringMask is used for hole extraction and for the erode/dilate step.
	StructuringMask bitmap.Mask

	// TotalMask defines connectivity when counting envelope components (shapes).
	TotalMask bitmap.Mask

	// HoleMask defines connectivity when counting hole components.
	HoleMask bitmap.Mask

	// MinShapeArea drops envelope components with fewer pixels than this.
	// Zero keeps every component.
	MinShapeArea int
}

// DefaultConfig returns the reference configuration:
// erosion, Full structuring and total masks, Plus hole mask, no area filter.
func DefaultConfig() Config {
	return Config{
		Operation:       morphology.Erosion,
		StructuringMask: bitmap.Full(),
		TotalMask:       bitmap.Full(),
		HoleMask:        bitmap.Plus(),
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if !c.Operation.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Operation)
	}
	if c.StructuringMask.IsZero() {
		return fmt.Errorf("%w: structuring mask is empty", ErrInvalidConfig)
	}
	if c.TotalMask.IsZero() {
		return fmt.Errorf("%w: total mask is empty", ErrInvalidConfig)
	}
	if c.HoleMask.IsZero() {
		return fmt.Errorf("%w: hole mask is empty", ErrInvalidConfig)
	}
	if c.MinShapeArea < 0 {
		return fmt.Errorf("%w: min shape area %d is negative", ErrInvalidConfig, c.MinShapeArea)
	}
	return nil
}

// ParseConfig builds a Config from textual settings as accepted on the
// command line and by the MCP tools. Empty or zero arguments keep the
// DefaultConfig value; connectivities must be 4 or 8.
func ParseConfig(operation string, totalConnectivity, holeConnectivity, minArea int) (Config, error) {
	cfg := DefaultConfig()
	if operation != "" {
		op, err := morphology.ParseOperation(operation)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		cfg.Operation = op
	}
	if totalConnectivity != 0 {
		m, err := bitmap.Connectivity(totalConnectivity)
		if err != nil {
			return Config{}, fmt.Errorf("%w: total connectivity: %v", ErrInvalidConfig, err)
		}
		cfg.TotalMask = m
	}
	if holeConnectivity != 0 {
		m, err := bitmap.Connectivity(holeConnectivity)
		if err != nil {
			return Config{}, fmt.Errorf("%w: hole connectivity: %v", ErrInvalidConfig, err)
		}
		cfg.HoleMask = m
	}
	cfg.MinShapeArea = minArea
	return cfg, cfg.Validate()
}
