package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/docsink/pkg/cache"
	"github.com/matzehuels/docsink/pkg/doc"
	docio "github.com/matzehuels/docsink/pkg/io"
	"github.com/matzehuels/docsink/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default entry lifetime when positive.
	TTL time.Duration
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

// Execute renders t into every requested format, serving formats from the
// cache when all of them are present.
func (r *Runner) Execute(ctx context.Context, t *doc.Tree, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	docHash, err := HashTree(t)
	if err != nil {
		return nil, err
	}
	result = &Result{
		DocHash:   docHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.NodeCount = countNodes(t)

	useCache := opts.Cacheable()
	if useCache && !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, docHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("artifacts from cache", "formats", opts.Formats, "hash", docHash[:12])
			return result, nil
		}
	}

	renderStart := time.Now()
	rec, err := Record(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.EventCount = len(rec.Events)

	r.Logger.Info("rendered document",
		"nodes", result.Stats.NodeCount,
		"events", result.Stats.EventCount,
		"duration", result.Stats.RenderTime)

	encodeStart := time.Now()
	artifacts, err := Encode(ctx, rec, opts.Formats)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Info("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	if useCache {
		for format, data := range artifacts {
			key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			r.store(ctx, "artifact", key, data, r.ttl(cache.ArtifactTTL))
		}
	}
	return result, nil
}

// cachedArtifacts returns every requested format from the cache, or false
// if any one is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, docHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.lookup(ctx, "artifact", r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

// Outline renders the section outline of t with caching.
func (r *Runner) Outline(ctx context.Context, t *doc.Tree, opts OutlineOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	docHash, err := HashTree(t)
	if err != nil {
		return nil, err
	}

	key := r.Keyer.OutlineKey(docHash, opts.OutlineKeyOpts())
	if !opts.Refresh {
		if data, ok := r.lookup(ctx, "outline", key); ok {
			return data, nil
		}
	}

	data, err := RenderOutline(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	r.store(ctx, "outline", key, data, r.ttl(cache.OutlineTTL))
	return data, nil
}

// lookup reads key from the cache. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		hit = false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes data under key. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// HashTree returns the content hash of t's canonical JSON encoding.
func HashTree(t *doc.Tree) (string, error) {
	var buf bytes.Buffer
	if err := docio.WriteJSON(t, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
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
