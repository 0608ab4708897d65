// Package cache provides pluggable byte caches and cache-key generation
// for the tracing pipeline.
//
// Three backends are available:
//
//   - [FileCache]: entries as files on disk, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: no-op, for tests or when caching is disabled
//
// Keys are produced by a [Keyer] so that every consumer derives them the
// same way. [ScopedKeyer] prefixes keys for namespace isolation when
// several deployments share one backend.
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Trace results depend only on the field and
// the trace options, so they keep well; encoded artifacts are cheap to
// rebuild and expire sooner.
const (
	TTLTrace    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an expired or corrupt entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TraceKeyOpts are the inputs that change a trace result for a given
// field.
type TraceKeyOpts struct {
	Levels  []float64
	Epsilon float64
}

// ArtifactKeyOpts are the inputs that change an encoded artifact for a
// given trace result.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// TraceKey keys a trace result by the field's content hash and the
	// trace options.
	TraceKey(gridHash string, opts TraceKeyOpts) string

	// ArtifactKey keys an encoded artifact by the trace result's content
	// hash and the encoding options.
	ArtifactKey(traceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing the stage inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TraceKey generates a key for trace result caching.
func (k *DefaultKeyer) TraceKey(gridHash string, opts TraceKeyOpts) string {
	return hashKey("trace", gridHash, opts.Levels, opts.Epsilon)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", traceHash, opts.Format)
}
