// Scaling configuration for the flow-scale rewriting engine
//
// Copyright (C) 2026  flow-scale authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package scale

import (
	"fmt"

	"github.com/nuxeh/flow-scale/pkg/errors"
)

// Config holds the immutable parameters of one scaling run. It is built once
// by the CLI resolver; the engine never reads flags or environment itself.
type Config struct {
	// FlowRatio multiplies every in-range extrusion delta. Required, > 0.
	FlowRatio float64

	// ZStart and ZEnd bound the height window, inclusive. A nil bound is
	// open-ended; both nil means no Z window.
	ZStart *float64
	ZEnd   *float64

	// LayerStart and LayerEnd bound the layer window, inclusive and
	// 1-based. A nil bound is open-ended; both nil means no layer window.
	LayerStart *int
	LayerEnd   *int

	// LayerHeight converts heights to layer indices. Required whenever a
	// layer window is set.
	LayerHeight *float64

	// Force skips the G92 E0 safety validation.
	Force bool
}

// Validate checks the configuration before any line is processed.
func (c *Config) Validate() error {
	if c.FlowRatio <= 0 {
		return errors.ConfigRatioError(fmt.Sprintf("must be > 0, got %g", c.FlowRatio))
	}
	if c.ZStart != nil && c.ZEnd != nil && *c.ZStart > *c.ZEnd {
		return errors.ConfigRangeError(fmt.Sprintf("z-start %g is above z-end %g", *c.ZStart, *c.ZEnd))
	}
	if c.LayerStart != nil && *c.LayerStart < 0 {
		return errors.ConfigRangeError(fmt.Sprintf("layer start must not be negative, got %d", *c.LayerStart))
	}
	if c.LayerEnd != nil && *c.LayerEnd < 0 {
		return errors.ConfigRangeError(fmt.Sprintf("layer end must not be negative, got %d", *c.LayerEnd))
	}
	if c.LayerStart != nil && c.LayerEnd != nil && *c.LayerStart > *c.LayerEnd {
		return errors.ConfigRangeError(fmt.Sprintf("layer start %d is above layer end %d", *c.LayerStart, *c.LayerEnd))
	}
	if c.hasLayerWindow() {
		if c.LayerHeight == nil {
			return errors.ConfigLayerHeightError("required for layer ranges; pass --layer-height or run from a slicer that exports it")
		}
		if *c.LayerHeight <= 0 {
			return errors.ConfigLayerHeightError(fmt.Sprintf("must be > 0, got %g", *c.LayerHeight))
		}
	}
	return nil
}

func (c *Config) hasZWindow() bool {
	return c.ZStart != nil || c.ZEnd != nil
}

func (c *Config) hasLayerWindow() bool {
	return c.LayerStart != nil || c.LayerEnd != nil
}
