// Line-by-line extrusion scaling engine
//
// The engine consumes a G-code stream once, in order, tracking vertical
// position, extrusion addressing mode and the last known E coordinates, and
// rewrites the E word of motion commands that fall inside the configured
// Z/layer window. Lines it does not understand pass through byte-for-byte.
//
// Copyright (C) 2026  flow-scale authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package scale

import (
	"math"

	"github.com/nuxeh/flow-scale/pkg/errors"
	"github.com/nuxeh/flow-scale/pkg/gcode"
)

// Mode is the extrusion addressing mode.
type Mode int

const (
	// ModeAbsolute treats E words as absolute coordinates (M82, default).
	ModeAbsolute Mode = iota

	// ModeRelative treats E words as deltas (M83).
	ModeRelative
)

func (m Mode) String() string {
	switch m {
	case ModeAbsolute:
		return "absolute"
	case ModeRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// Engine rewrites one stream. Create one per run with New; it is not safe
// for concurrent use and holds no resources that outlive the run.
type Engine struct {
	cfg Config

	currentZ float64
	mode     Mode

	// lastE is the last absolute E seen in the source; deltas are computed
	// against it so scaling never compounds. lastEmitted is the last
	// absolute E written to the output, the baseline scaled deltas are
	// added onto.
	lastE       float64
	lastEmitted float64

	resetSeen     bool
	safetyChecked bool

	stats Stats
}

// New validates cfg and returns an engine for a single run.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, mode: ModeAbsolute}
	e.stats.ZStart = cfg.ZStart
	e.stats.ZEnd = cfg.ZEnd
	e.stats.LayerStart = cfg.LayerStart
	e.stats.LayerEnd = cfg.LayerEnd
	e.stats.LayerHeight = cfg.LayerHeight
	return e, nil
}

// ProcessLine consumes one input line and returns the line to emit. Exactly
// one output line per input line, in order. The only error it can return is
// the safety validation failure; everything unparsable passes through.
func (e *Engine) ProcessLine(raw string) (string, error) {
	e.stats.LinesTotal++

	ln := gcode.Parse(raw)
	switch ln.Cmd {
	case "M82":
		e.mode = ModeAbsolute
		return raw, nil
	case "M83":
		e.mode = ModeRelative
		return raw, nil
	case "G92":
		e.handleReset(ln)
		return raw, nil
	case "G0", "G1":
		return e.handleMove(ln)
	default:
		return raw, nil
	}
}

// handleReset tracks G92 re-bases of the E coordinate. Only an explicit E0
// counts as a reset for stats and safety purposes.
func (e *Engine) handleReset(ln gcode.Line) {
	if ln.Malformed() {
		return
	}
	w, ok := ln.Word('E')
	if !ok {
		return
	}
	if w.Value == 0 {
		e.stats.G92Resets++
		e.resetSeen = true
	}
	e.lastE = w.Value
	e.lastEmitted = w.Value
}

func (e *Engine) handleMove(ln gcode.Line) (string, error) {
	if ln.Malformed() {
		return ln.Raw, nil
	}

	if z, ok := ln.Word('Z'); ok {
		e.currentZ = z.Value
	}

	ew, ok := ln.Word('E')
	if !ok {
		// Z-only travel move; bookkeeping above still applies.
		return ln.Raw, nil
	}

	if !e.inRange() {
		// The machine still executes the unscaled value.
		if e.mode == ModeAbsolute {
			e.lastE = ew.Value
			e.lastEmitted = ew.Value
		}
		return ln.Raw, nil
	}

	if !e.safetyChecked {
		e.safetyChecked = true
		if e.mode == ModeAbsolute && !e.resetSeen && !e.cfg.Force {
			return "", errors.SafetyNoResetError(e.stats.LinesTotal)
		}
	}

	var out string
	if e.mode == ModeRelative {
		out = ln.Replace(ew, ew.Value*e.cfg.FlowRatio)
	} else {
		delta := ew.Value - e.lastE
		var scaled float64
		if e.cfg.FlowRatio == 1 && e.lastEmitted == e.lastE {
			// No drift accumulated and nothing to scale: reproduce
			// the source exactly. a+(b-a) is not b in floats.
			scaled = ew.Value
		} else {
			scaled = e.lastEmitted + delta*e.cfg.FlowRatio
		}
		out = ln.Replace(ew, scaled)
		e.lastE = ew.Value
		e.lastEmitted = scaled
	}
	e.stats.LinesModified++
	return out, nil
}

// inRange reports whether the current position satisfies both configured
// windows. Bounds are inclusive; an absent bound is unbounded.
func (e *Engine) inRange() bool {
	if e.cfg.hasZWindow() {
		if e.cfg.ZStart != nil && e.currentZ < *e.cfg.ZStart {
			return false
		}
		if e.cfg.ZEnd != nil && e.currentZ > *e.cfg.ZEnd {
			return false
		}
	}
	if e.cfg.hasLayerWindow() {
		layer := e.currentLayer()
		if e.cfg.LayerStart != nil && layer < *e.cfg.LayerStart {
			return false
		}
		if e.cfg.LayerEnd != nil && layer > *e.cfg.LayerEnd {
			return false
		}
	}
	return true
}

// currentLayer derives the layer index from the tracked height. Rounding to
// the nearest layer absorbs float noise in slicer Z values (0.6000001/0.2).
// The layer is always derived from Z, never counted separately, so the two
// can never disagree at a window boundary.
func (e *Engine) currentLayer() int {
	return int(math.Round(e.currentZ / *e.cfg.LayerHeight))
}

// Mode returns the extrusion addressing mode the stream was last in.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Stats returns a copy of the accumulated run statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}
