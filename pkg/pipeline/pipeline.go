// Package pipeline provides the core tracing pipeline for the isoline
// toolkit.
//
// This package implements the complete load → trace → encode pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a scalar field from a file or an inline value matrix
//  2. Trace: Extract closed isolines at the requested levels
//  3. Encode: Serialize the contours in various formats (JSON, GeoJSON)
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    GridPath: "field.json",
//	    Levels:   []float64{0.25, 0.5, 0.75},
//	    Formats:  []string{"geojson"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	geojson := result.Artifacts["geojson"]
//
// Run individual stages:
//
//	// Load only
//	g, err := runner.Load(ctx, opts)
//
//	// Trace an existing field
//	contours, err := runner.Trace(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhersche/isoline/pkg/cache"
	"github.com/mhersche/isoline/pkg/contour"
	"github.com/mhersche/isoline/pkg/errors"
	"github.com/mhersche/isoline/pkg/grid"
	"github.com/mhersche/isoline/pkg/gridio"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultLevelCount is the number of evenly spaced levels traced when
	// the caller gives no explicit thresholds.
	DefaultLevelCount = 10

	// DefaultWorkers traces levels sequentially; callers opt in to
	// concurrency explicitly.
	DefaultWorkers = 1
)

// DefaultFormat is the default artifact format.
const DefaultFormat = gridio.FormatJSON

// ValidFormats is the set of supported artifact formats.
var ValidFormats = []string{gridio.FormatJSON, gridio.FormatGeoJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the tracing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of GridPath and Values must be set:
	// a field file on disk, or an inline row-major value matrix
	// (bottom row first) on the unit lattice.
	GridPath string        `json:"grid_path,omitempty"`
	Values   [][]float64   `json:"values,omitempty"`
	Spacing  *grid.Spacing `json:"spacing,omitempty"`

	// Trace options. Levels takes precedence over LevelCount; when both
	// are empty, DefaultLevelCount evenly spaced levels are traced.
	Levels     []float64 `json:"levels,omitempty"`
	LevelCount int       `json:"level_count,omitempty"`
	Epsilon    float64   `json:"epsilon,omitempty"`
	Workers    int       `json:"workers,omitempty"`
	Refresh    bool      `json:"refresh,omitempty"`

	// Encode options.
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the loaded field.
	Grid *grid.Grid

	// GridHash is the content hash of the field.
	GridHash string

	// Levels are the thresholds that were traced, after defaulting.
	Levels []float64

	// Contours are the traced polylines.
	Contours []contour.Contour

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SampleCount  int
	ContourCount int
	LoadTime     time.Duration
	TraceTime    time.Duration
	EncodeTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TraceHit  bool // Whether the trace result came from cache
	EncodeHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForTrace(); err != nil {
		return err
	}
	if err := o.ValidateForEncode(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.GridPath == "" && len(o.Values) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid_path or values is required")
	}
	if o.GridPath != "" && len(o.Values) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid_path and values are mutually exclusive")
	}
	if o.GridPath != "" {
		if err := errors.ValidatePath(o.GridPath); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForTrace validates and sets defaults for tracing.
func (o *Options) ValidateForTrace() error {
	if len(o.Levels) > 0 {
		if err := errors.ValidateLevels(o.Levels); err != nil {
			return err
		}
	} else if o.LevelCount == 0 {
		o.LevelCount = DefaultLevelCount
	} else if o.LevelCount < 0 {
		return errors.New(errors.ErrCodeInvalidLevels, "level_count must be positive, got %d", o.LevelCount)
	}
	if o.Epsilon < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "epsilon must not be negative, got %v", o.Epsilon)
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForEncode validates and sets defaults for encoding.
func (o *Options) ValidateForEncode() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, ValidFormats...); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// epsilon returns the effective coincidence tolerance.
func (o *Options) epsilon() float64 {
	if o.Epsilon > 0 {
		return o.Epsilon
	}
	return contour.DefaultEpsilon
}

// levelsFor resolves the effective thresholds for a loaded field:
// explicit levels when given, evenly spaced ones otherwise.
func (o *Options) levelsFor(g *grid.Grid) []float64 {
	if len(o.Levels) > 0 {
		return o.Levels
	}
	return g.Levels(o.LevelCount)
}

// traceOptions converts to the contour package's option struct.
func (o *Options) traceOptions() *contour.Options {
	return &contour.Options{
		Epsilon: o.Epsilon,
		Workers: o.Workers,
	}
}

// TraceKeyOpts returns cache key options for the trace stage.
func (o *Options) TraceKeyOpts(levels []float64) cache.TraceKeyOpts {
	return cache.TraceKeyOpts{
		Levels:  levels,
		Epsilon: o.epsilon(),
	}
}

// ArtifactKeyOpts returns cache key options for the encode stage.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}
