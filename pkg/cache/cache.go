// Package cache stores rendered artifacts keyed by document content and
// render options.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: JSON entries under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance
//
// # Keys
//
// A [Keyer] derives keys from the BLAKE3 hash of the input document and
// the options that influence the output. Changing any option that changes
// the rendered bytes must change the key.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	ArtifactTTL = 24 * time.Hour
	OutlineTTL  = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ArtifactKeyOpts are the render options that affect an artifact.
type ArtifactKeyOpts struct {
	Format          string            `json:"format"`
	MaxSectionLevel int               `json:"max_section_level"`
	NumberCaptions  bool              `json:"number_captions,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	Version         string            `json:"version,omitempty"`
}

// OutlineKeyOpts are the options that affect an outline.
type OutlineKeyOpts struct {
	Format     string            `json:"format"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Version    string            `json:"version,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
	OutlineKey(docHash string, opts OutlineKeyOpts) string
}

// DefaultKeyer produces "artifact:<hash>" and "outline:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the document hash together with opts. Attribute maps
// are encoded with sorted keys, so equal maps give equal keys.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// OutlineKey hashes the document hash together with opts.
func (DefaultKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return hashKey("outline", docHash, opts)
}
