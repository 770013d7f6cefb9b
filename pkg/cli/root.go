// Package cli implements the flow-scale command line interface.
//
// It owns everything the rewriting engine is deliberately ignorant of:
// flags, slicer environment discovery, input/output resolution and the
// debug report. The engine only ever sees a resolved scale.Config.
//
// Copyright (C) 2026  flow-scale authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nuxeh/flow-scale/pkg/log"
	"github.com/nuxeh/flow-scale/pkg/report"
	"github.com/nuxeh/flow-scale/pkg/scale"
	"github.com/nuxeh/flow-scale/pkg/stream"
)

var rootCmd = &cobra.Command{
	Use:   "flow-scale [flags] [input.gcode]",
	Short: "Scale G-code extrusion by a flow ratio within a Z or layer range",
	Long: `flow-scale rewrites sliced G-code, scaling the E (extrusion) values of
motion commands by a fixed flow ratio. Scaling can be restricted to a Z
height window, a layer window, or both; everything outside the window
passes through byte-for-byte.

Intended as a slicer post-processing script: when run from OrcaSlicer,
SuperSlicer, PrusaSlicer/Slic3r or Bambu Studio, the G-code path and
layer height are picked up from the slicer's environment.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addFlags(rootCmd.Flags())
	_ = rootCmd.MarkFlagRequired("flow-ratio")
}

func addFlags(f *pflag.FlagSet) {
	f.StringP("in", "i", "", "input G-code file (default: slicer env path, positional arg, or stdin)")
	f.StringP("out", "o", stream.Stdio, "output G-code file (default: stdout)")
	f.Float64P("flow-ratio", "r", 0, "flow ratio to scale E values (required)")
	f.Float64P("z-start", "z", 0, "start Z height, inclusive (mm)")
	f.Float64P("z-end", "Z", 0, "end Z height, inclusive (mm)")
	f.StringP("layers", "l", "", "layer range to scale, N or N:M (1-based, inclusive)")
	f.Float64P("layer-height", "L", 0, "layer height in mm (default: slicer environment)")
	f.BoolP("force", "f", false, "skip the G92 E0 safety check")
	f.BoolP("inplace", "p", false, "rewrite the input file in place")
	f.BoolP("debug", "d", false, "print a debug report to stderr")
	f.StringP("debug-file", "D", "", "write a debug report to a file")
	f.Lookup("debug-file").NoOptDefVal = report.DefaultFilePath
}

func run(cmd *cobra.Command, args []string) error {
	spec, err := resolve(cmd, args)
	if err != nil {
		return err
	}

	logger := log.GetLogger("cli")
	logger.Debug("input=%s output=%s inplace=%v ratio=%g",
		spec.InputPath, spec.OutputPath, spec.Inplace, spec.Config.FlowRatio)

	eng, err := scale.New(spec.Config)
	if err != nil {
		return err
	}
	if err := stream.Process(eng, spec.InputPath, spec.OutputPath, spec.Inplace); err != nil {
		return err
	}

	if spec.DebugStderr || spec.DebugFile != "" {
		rep := report.Report{
			InputPath:  spec.InputPath,
			OutputPath: spec.outputForReport(),
			FlowRatio:  spec.Config.FlowRatio,
			Inplace:    spec.Inplace,
			Mode:       eng.Mode(),
			Stats:      eng.Stats(),
		}
		rep.Emit(spec.DebugStderr, spec.DebugFile)
	}
	return nil
}
