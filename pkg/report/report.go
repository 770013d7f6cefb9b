// Debug report rendering for flow-scale runs
//
// Renders the engine's run statistics and the resolved configuration as the
// key/value block the original post-processor emitted, for stderr and/or a
// report file. Report failures are never fatal: a print that cannot write
// its debug file must not fail the print.
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/nuxeh/flow-scale/pkg/log"
	"github.com/nuxeh/flow-scale/pkg/scale"
)

// DefaultFilePath is where -D/--debug-file writes when no path is given.
const DefaultFilePath = "/tmp/flow_scale_debug.txt"

// Report collects everything the debug output shows about one run.
type Report struct {
	InputPath  string
	OutputPath string
	FlowRatio  float64
	Inplace    bool
	Mode       scale.Mode
	Stats      scale.Stats
}

// Render formats the report as a human-readable block.
func (r Report) Render() string {
	var sb strings.Builder
	sb.WriteString("=== flow-scale debug info ===\n")

	add := func(key string, value interface{}) {
		fmt.Fprintf(&sb, "%s: %v\n", key, value)
	}

	add("Input file", r.InputPath)
	add("Output file", r.OutputPath)
	add("Flow ratio", r.FlowRatio)
	add("Inplace", r.Inplace)
	add("Z-start", floatOrNone(r.Stats.ZStart))
	add("Z-end", floatOrNone(r.Stats.ZEnd))
	add("Layer start", intOrNone(r.Stats.LayerStart))
	add("Layer end", intOrNone(r.Stats.LayerEnd))
	add("Layer height", floatOrNone(r.Stats.LayerHeight))
	add("Extrusion mode", r.Mode)
	add("G92 E0 resets", r.Stats.G92Resets)
	add("Total lines", r.Stats.LinesTotal)
	add("Lines modified", r.Stats.LinesModified)
	add("Modified %", fmt.Sprintf("%.2f%%", r.Stats.ModifiedPercent()))
	return sb.String()
}

// Emit writes the rendered report to stderr and/or filePath, whichever are
// requested. An unwritable debug file only warns.
func (r Report) Emit(toStderr bool, filePath string) {
	text := r.Render()
	if toStderr {
		fmt.Fprint(os.Stderr, text)
	}
	if filePath != "" {
		if err := os.WriteFile(filePath, []byte(text), 0644); err != nil {
			log.GetLogger("report").Warn("could not write debug file %s: %v", filePath, err)
		}
	}
}

func floatOrNone(v *float64) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%g", *v)
}

func intOrNone(v *int) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *v)
}
