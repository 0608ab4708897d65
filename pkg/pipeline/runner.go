package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhersche/isoline/pkg/cache"
	"github.com/mhersche/isoline/pkg/contour"
	"github.com/mhersche/isoline/pkg/errors"
	"github.com/mhersche/isoline/pkg/grid"
	"github.com/mhersche/isoline/pkg/gridio"
	"github.com/mhersche/isoline/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → trace → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SampleCount = len(g.Samples())

	// Compute the field hash for cache keys and API responses
	if gridData, err := marshalGrid(g); err == nil {
		result.GridHash = cache.Hash(gridData)
	}
	result.Levels = opts.levelsFor(g)

	r.Logger.Info("loaded field",
		"samples", result.Stats.SampleCount,
		"levels", len(result.Levels),
		"duration", result.Stats.LoadTime)

	// Stage 2: Trace
	traceStart := time.Now()
	contours, traceHit, err := r.TraceWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Contours = contours
	result.Stats.TraceTime = time.Since(traceStart)
	result.Stats.ContourCount = len(contours)
	result.CacheInfo.TraceHit = traceHit

	r.Logger.Info("traced contours",
		"contours", len(contours),
		"duration", result.Stats.TraceTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	artifacts, encodeHit, err := r.EncodeWithCacheInfo(ctx, contours, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.CacheInfo.EncodeHit = encodeHit

	r.Logger.Info("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	return result, nil
}

// Load reads the field named by the options: a file when GridPath is
// set, the inline value matrix otherwise.
func (r *Runner) Load(ctx context.Context, opts Options) (*grid.Grid, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	source := opts.GridPath
	if source == "" {
		source = "inline"
	}
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()

	var g *grid.Grid
	var err error
	if opts.GridPath != "" {
		g, err = gridio.ImportGrid(opts.GridPath)
	} else {
		sp := grid.UnitSpacing
		if opts.Spacing != nil {
			sp = *opts.Spacing
		}
		g, err = grid.FromRows(opts.Values, sp)
	}

	samples := 0
	if g != nil {
		samples = len(g.Samples())
	}
	observability.Pipeline().OnLoadComplete(ctx, source, samples, time.Since(start), err)
	return g, err
}

// TraceWithCacheInfo traces the field with caching and returns cache hit
// info.
func (r *Runner) TraceWithCacheInfo(ctx context.Context, g *grid.Grid, opts Options) ([]contour.Contour, bool, error) {
	if err := opts.ValidateForTrace(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	levels := opts.levelsFor(g)

	// Compute cache key
	gridData, err := marshalGrid(g)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.TraceKey(cache.Hash(gridData), opts.TraceKeyOpts(levels))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var contours []contour.Contour
			if err := json.Unmarshal(data, &contours); err == nil {
				observability.Cache().OnCacheHit(ctx, "trace")
				return contours, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "trace")
	}

	// Trace
	observability.Pipeline().OnTraceStart(ctx, len(levels), len(g.Samples()))
	start := time.Now()
	contours := contour.Trace(grid.NewMesh(g), levels, opts.traceOptions())
	observability.Pipeline().OnTraceComplete(ctx, len(contours), time.Since(start), nil)

	// Cache the result
	if data, err := json.Marshal(contours); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTrace)
		observability.Cache().OnCacheSet(ctx, "trace", len(data))
	}

	return contours, false, nil // Cache miss
}

// Trace is a convenience wrapper that calls TraceWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Trace(ctx context.Context, g *grid.Grid, opts Options) ([]contour.Contour, error) {
	contours, _, err := r.TraceWithCacheInfo(ctx, g, opts)
	return contours, err
}

// EncodeWithCacheInfo encodes artifacts with caching and returns cache
// hit info.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, contours []contour.Contour, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForEncode(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the trace result
	traceData, err := json.Marshal(contours)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize contours for cache key")
	}
	traceHash := cache.Hash(traceData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(traceHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Encode all formats
	observability.Pipeline().OnEncodeStart(ctx, opts.Formats)
	start := time.Now()
	encoded := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := encodeFormat(contours, format)
		if err != nil {
			observability.Pipeline().OnEncodeComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		encoded[format] = data
	}
	observability.Pipeline().OnEncodeComplete(ctx, opts.Formats, time.Since(start), nil)

	// Cache each format
	for format, data := range encoded {
		cacheKey := r.Keyer.ArtifactKey(traceHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return encoded, false, nil // Cache miss
}

// Encode is a convenience wrapper that calls EncodeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Encode(ctx context.Context, contours []contour.Contour, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.EncodeWithCacheInfo(ctx, contours, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// marshalGrid serializes a field for content hashing.
func marshalGrid(g *grid.Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := gridio.WriteGrid(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeFormat serializes contours in one artifact format.
func encodeFormat(contours []contour.Contour, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case gridio.FormatGeoJSON:
		if err := gridio.WriteGeoJSON(contours, &buf); err != nil {
			return nil, err
		}
	default:
		if err := gridio.WriteContours(contours, &buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
