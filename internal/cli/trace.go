package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhersche/isoline/pkg/pipeline"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	levelsStr  string // comma-separated explicit thresholds
	levelCount int    // number of evenly spaced levels when no explicit ones
	epsilon    float64
	workers    int
	formatsStr string
	output     string // output file (single format) or base path (multiple)
	noCache    bool
	refresh    bool
}

// traceCommand creates the trace command for extracting isolines.
func (c *CLI) traceCommand() *cobra.Command {
	opts := traceOpts{
		levelCount: c.Config.LevelCount,
		workers:    c.Config.Workers,
	}

	cmd := &cobra.Command{
		Use:   "trace [field.json|field.csv]",
		Short: "Extract isolines from a scalar field",
		Long: `Extract isolines from a regularly sampled scalar field.

The trace command reads a field file (JSON or CSV), traces closed contour
lines at the requested levels, and writes the result as JSON or GeoJSON.
Levels can be given explicitly with --levels or spread evenly across the
field's value range with --level-count.

Results are cached locally for faster subsequent runs.

When no file is given, an interactive picker lists the field files in the
current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			} else {
				picked, err := pickFieldFile(".")
				if err != nil {
					return err
				}
				if picked == "" {
					return nil // user quit the picker
				}
				input = picked
			}
			return c.runTrace(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.levelsStr, "levels", "l", "", "comma-separated thresholds (e.g. 0.2,0.5,0.8)")
	cmd.Flags().IntVarP(&opts.levelCount, "level-count", "n", opts.levelCount, "number of evenly spaced levels")
	cmd.Flags().Float64Var(&opts.epsilon, "epsilon", 0, "endpoint coincidence tolerance (squared distance)")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "number of levels traced concurrently")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", c.Config.Format, "output format(s): json, geojson (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and retrace")

	return cmd
}

// runTrace runs the pipeline on the input file and writes the artifacts.
func (c *CLI) runTrace(ctx context.Context, input string, opts *traceOpts) error {
	logger := loggerFromContext(ctx)

	levels, err := parseLevels(opts.levelsStr)
	if err != nil {
		return err
	}
	logger.Debugf("Tracing %s with %d explicit levels", input, len(levels))

	popts := pipeline.Options{
		GridPath:   input,
		Levels:     levels,
		LevelCount: opts.levelCount,
		Epsilon:    opts.epsilon,
		Workers:    opts.workers,
		Refresh:    opts.refresh,
		Formats:    parseFormats(opts.formatsStr),
		Logger:     c.Logger,
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tracing %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Trace failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(result.Artifacts, popts.Formats, input, opts.output)
	if err != nil {
		return err
	}

	printSuccess("Trace complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(len(result.Contours), len(result.Levels), result.CacheInfo.TraceHit)
	printNewline()
	printNextStep("Serve over HTTP", appName+" serve")

	return nil
}

// parseLevels parses a comma-separated list of float thresholds.
// An empty string yields nil, deferring to --level-count.
func parseLevels(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	levels := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", p, err)
		}
		levels = append(levels, v)
	}
	return levels, nil
}

// artifactExt maps a format to its output file extension.
func artifactExt(format string) string {
	if format == "geojson" {
		return ".geojson"
	}
	return ".contours.json"
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
func basePath(output, input string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeArtifacts writes each encoded artifact next to the input file (or
// under the explicit output path) and returns the written paths.
// A single format with an explicit output writes to exactly that path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	single := len(formats) == 1 && output != ""

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := output
		if !single {
			path = basePath(output, input) + artifactExt(format)
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
