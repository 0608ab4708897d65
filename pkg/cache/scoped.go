package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several deployments or users share one cache backend.
//
// Example usage:
//
//	// Per-deployment keys on a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TraceKey generates a prefixed key for trace result caching.
func (k *ScopedKeyer) TraceKey(gridHash string, opts TraceKeyOpts) string {
	return k.prefix + k.inner.TraceKey(gridHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(traceHash, opts)
}
