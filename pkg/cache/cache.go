// Package cache provides content-addressed caching for layout pipelines.
//
// Every pipeline stage is cached under a key derived from the content
// hash of its input, so identical datasets never pay for a second force
// run and identical layouts never pay for a second render. Backends
// cover the usual deployment shapes:
//
//   - [FileCache] for the CLI (persistent, per-user directory)
//   - [RedisCache] for services that want fast shared storage
//   - [MongoCache] for services that want durable shared storage
//   - [NullCache] to disable caching entirely
//
// # Keys
//
// A [Keyer] turns stage inputs into cache keys. The [DefaultKeyer]
// produces globally shareable keys; wrap it in a [ScopedKeyer] to give
// each deployment or tenant its own namespace.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an expired or corrupt entry counts as a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Stats summarizes what a backend currently holds.
type Stats struct {
	Entries int64 // number of live entries
	Bytes   int64 // total stored bytes, 0 when the backend cannot tell
}

// Statser is implemented by backends that can report their contents.
type Statser interface {
	Stats(ctx context.Context) (Stats, error)
}

// Clearer is implemented by backends that can drop everything at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Stage TTLs applied by the pipeline runner.
const (
	// TTLDataset never expires: dataset documents are content-addressed,
	// so a stored document can never go stale.
	TTLDataset = time.Duration(0)

	// TTLLayout keeps computed layouts for thirty days.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact keeps rendered artifacts for seven days.
	TTLArtifact = 7 * 24 * time.Hour
)

// LayoutKeyOpts captures everything besides the dataset that changes a
// computed layout.
type LayoutKeyOpts struct {
	Engine      string // layout engine name
	Orientation string // tree orientation, empty for non-tree engines
	Root        int    // pinned root index, -1 when auto-detected
	Iterations  int    // force iteration cap, 0 for non-force engines
}

// ArtifactKeyOpts captures everything besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  // artifact format (svg, png, dot, json)
	Scale      float64 // render-space to point scale factor
	PixelRatio float64 // PNG raster density multiplier
	HideLabels bool    // whether node labels are suppressed
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DatasetKey generates a key for storing canonical dataset documents.
	DatasetKey(datasetHash string) string

	// LayoutKey generates a key for computed layout caching.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates globally shareable cache keys. Two processes
// pointed at the same backend will hit each other's entries.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for storing canonical dataset documents.
func (k *DefaultKeyer) DatasetKey(datasetHash string) string {
	return "dataset:" + datasetHash
}

// LayoutKey generates a key for computed layout caching.
func (k *DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
