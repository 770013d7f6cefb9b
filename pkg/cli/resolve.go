// Configuration resolution: flags, slicer environment, positional arguments
//
// Slicers hand their post-processing scripts the G-code path and print
// settings through environment variables, each slicer under its own name.
// Everything ambient is resolved here, once, into a runSpec; the engine
// never reads the environment.
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nuxeh/flow-scale/pkg/errors"
	"github.com/nuxeh/flow-scale/pkg/log"
	"github.com/nuxeh/flow-scale/pkg/scale"
	"github.com/nuxeh/flow-scale/pkg/stream"
)

// layerHeightEnvVars are consulted in order when --layer-height is absent.
var layerHeightEnvVars = []string{
	"ORCASLICER_LAYER_HEIGHT",
	"SUPERSLICER_LAYER_HEIGHT",
	"SLIC3R_LAYER_HEIGHT",
	"BAMBU_LAYER_HEIGHT",
	"LAYER_HEIGHT",
	"layer_height",
	"LAYERHEIGHT",
}

// gcodePathEnvVars are consulted in order when --in is absent; the first one
// naming an existing file wins.
var gcodePathEnvVars = []string{
	"ORCASLICER_GCODE_OUTPUT_PATH",
	"SUPERSLICER_GCODE_OUTPUT_PATH",
	"SLIC3R_PP_OUTPUT_NAME",
	"BAMBU_GCODE_PATH",
}

// runSpec is the fully resolved configuration of one invocation.
type runSpec struct {
	Config      scale.Config
	InputPath   string
	OutputPath  string
	Inplace     bool
	DebugStderr bool
	DebugFile   string
}

// outputForReport names the destination as the debug report should show it.
func (s runSpec) outputForReport() string {
	if s.Inplace {
		return s.InputPath
	}
	if s.OutputPath == "" {
		return stream.Stdio
	}
	return s.OutputPath
}

// slicerEnv binds the per-slicer environment variables into a fresh viper
// instance, checked in precedence order.
func slicerEnv() *viper.Viper {
	v := viper.New()
	_ = v.BindEnv(append([]string{"layer-height"}, layerHeightEnvVars...)...)
	return v
}

func resolve(cmd *cobra.Command, args []string) (runSpec, error) {
	f := cmd.Flags()
	var spec runSpec
	logger := log.GetLogger("resolve")

	spec.Config.FlowRatio, _ = f.GetFloat64("flow-ratio")

	if f.Changed("z-start") {
		v, _ := f.GetFloat64("z-start")
		spec.Config.ZStart = &v
	}
	if f.Changed("z-end") {
		v, _ := f.GetFloat64("z-end")
		spec.Config.ZEnd = &v
	}

	if layers, _ := f.GetString("layers"); layers != "" {
		start, end, err := parseLayerSpec(layers)
		if err != nil {
			return spec, err
		}
		spec.Config.LayerStart = &start
		spec.Config.LayerEnd = &end
	}

	if f.Changed("layer-height") {
		v, _ := f.GetFloat64("layer-height")
		spec.Config.LayerHeight = &v
	} else if raw := slicerEnv().GetString("layer-height"); raw != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return spec, errors.ConfigLayerHeightError(
				fmt.Sprintf("slicer environment supplied %q, not a number", raw))
		}
		logger.Debug("layer height %g from slicer environment", v)
		spec.Config.LayerHeight = &v
	}

	spec.Config.Force, _ = f.GetBool("force")
	spec.Inplace, _ = f.GetBool("inplace")
	spec.DebugStderr, _ = f.GetBool("debug")
	spec.DebugFile, _ = f.GetString("debug-file")

	spec.InputPath = resolveInput(f.Changed("in"), mustString(f.GetString("in")), args, logger)
	spec.OutputPath, _ = f.GetString("out")

	if spec.Inplace && spec.InputPath == stream.Stdio {
		return spec, errors.ConfigInputError("cannot use --inplace with stdin input")
	}
	return spec, nil
}

// resolveInput applies the input source precedence: explicit flag, slicer
// environment path (first existing), positional argument, stdin.
func resolveInput(flagSet bool, flagVal string, args []string, logger *log.Logger) string {
	if flagSet {
		return flagVal
	}
	for _, name := range gcodePathEnvVars {
		path := os.Getenv(name)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			logger.Debug("%s=%s does not exist, skipping", name, path)
			continue
		}
		logger.Debug("input %s from %s", path, name)
		return path
	}
	if len(args) == 1 {
		return args[0]
	}
	return stream.Stdio
}

// parseLayerSpec parses "N" or "N:M" into an inclusive 1-based range.
func parseLayerSpec(spec string) (start, end int, err error) {
	if i := strings.IndexByte(spec, ':'); i >= 0 {
		start, err = strconv.Atoi(spec[:i])
		if err != nil {
			return 0, 0, errors.ConfigLayerSpecError(spec, err)
		}
		end, err = strconv.Atoi(spec[i+1:])
		if err != nil {
			return 0, 0, errors.ConfigLayerSpecError(spec, err)
		}
		return start, end, nil
	}
	start, err = strconv.Atoi(spec)
	if err != nil {
		return 0, 0, errors.ConfigLayerSpecError(spec, err)
	}
	return start, start, nil
}

func mustString(s string, _ error) string {
	return s
}
