// flow-scale rewrites sliced G-code, scaling extrusion by a flow ratio
// inside an optional Z-height or layer window. It is meant to run as a
// slicer post-processing script, or standalone as a stdin/stdout filter.
//
// Usage:
//
//	flow-scale -r 0.95 -i print.gcode -o fixed.gcode
//	flow-scale -r 1.05 -z 0.2 -Z 1.0 < print.gcode > fixed.gcode
//	flow-scale -r 0.9 -l 2:5 -L 0.2 -p print.gcode
//
// Copyright (C) 2026  flow-scale authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.
package main

import (
	"os"

	"github.com/nuxeh/flow-scale/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
