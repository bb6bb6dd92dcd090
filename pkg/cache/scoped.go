package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share
// one cache backend without colliding.
//
// Example usage:
//
//	// Keys for one project in a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "docs-site:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// OutlineKey generates a prefixed key for outline caching.
func (k *ScopedKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return k.prefix + k.inner.OutlineKey(docHash, opts)
}
