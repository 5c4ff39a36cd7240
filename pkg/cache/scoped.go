package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Deployments sharing one Redis or MongoDB backend use this to keep
// their entries apart, and a service can scope per tenant the same way.
//
// Example usage:
//
//	// Per-deployment namespace from config
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Globally shared keys
//	keyer := NewDefaultKeyer()
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

// DatasetKey generates a prefixed key for dataset documents.
func (k *ScopedKeyer) DatasetKey(datasetHash string) string {
	return k.prefix + k.inner.DatasetKey(datasetHash)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(datasetHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
