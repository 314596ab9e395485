// Package cache provides byte-level caching for rendered plant artifacts.
//
// # Overview
//
// Layout computation is cheap and is never cached: every request recomputes
// the scene from its parameters. Rendering (SVG, Graphviz schematics,
// PNG/PDF conversion) is comparatively expensive, so rendered artifacts are
// cached under keys derived from the scene's content hash and the render
// options.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [MemoryCache]: in-process LRU, used by the HTTP service without Redis
//   - [FileCache]: on-disk, used by the CLI between invocations
//   - [RedisCache]: shared cache for multiple service replicas
//
// # Keys
//
// A [Keyer] builds keys. [ScopedKeyer] prefixes every key, which isolates
// tenants or deployments that share one Redis instance:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
//	key := keyer.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLs for cached values.
const (
	// TTLArtifact applies to rendered outputs (svg, png, pdf, dot).
	// Artifacts are content-addressed, so they only expire to bound storage.
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the scene
	// whose content hash is sceneHash.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Labels   bool    `json:"labels,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the scene hash together with the render options.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
