// Package cache provides pluggable byte caching for the palette pipeline.
//
// Three backends are included: a file cache for CLI usage, a Redis cache for
// the preview server, and a null cache that disables caching entirely. Keys
// are built by a Keyer so the CLI and server agree on key layout; ScopedKeyer
// adds a prefix for namespace isolation.
package cache

import (
	"context"
	"time"
)

// TTLs for the cacheable pipeline stages.
const (
	// TTLFit covers slice allocations. Fitting is pure, so entries only
	// go stale when the algorithm changes.
	TTLFit = 30 * 24 * time.Hour

	// TTLArtifact covers rendered SVG and PNG artifacts.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLHTTP covers fetched resources such as the colornames CSV, which
	// is refreshed at most once a day.
	TTLHTTP = 24 * time.Hour
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// FitKeyOpts distinguishes slice allocations computed with different
// settings for the same palette document.
type FitKeyOpts struct {
	Items   int  `json:"items"`
	Slivers bool `json:"slivers"`
	Spread  bool `json:"spread"`
}

// ArtifactKeyOpts distinguishes rendered artifacts of the same allocation.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	PrintWidth float64 `json:"print_width"`
}

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey keys a fetched resource within a namespace.
	HTTPKey(namespace, key string) string

	// FitKey keys the slice allocation for a palette document hash.
	FitKey(docHash string, opts FitKeyOpts) string

	// ArtifactKey keys a rendered artifact for a palette document hash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (*DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http:"+namespace, key)
}

// FitKey generates a key for slice allocation caching.
func (*DefaultKeyer) FitKey(docHash string, opts FitKeyOpts) string {
	return hashKey("fit", docHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (*DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
