package tracer

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/rayengine/go-ray-engine/pkg/core"
)

// IrradianceCache accelerates indirect diffuse lighting by caching incoming
// radiance estimates at quantized surface locations. A single instance is
// shared by all worker goroutines and synchronized internally; the legacy
// renderer shared this state implicitly across forked processes, here the
// sharing is an explicit lock-guarded map.
//
// Cached estimates make results dependent on completion order across workers,
// so the cache trades strict cross-run determinism for speed. Leave it
// disabled when bit-identical output matters.
type IrradianceCache struct {
	mu         sync.RWMutex
	entries    map[cacheKey]core.Vec3
	resolution float64 // World-space cell size for position quantization
	hits       int64   // Atomic counters, readable without the lock
	misses     int64
}

type cacheKey struct {
	x, y, z int32
	// Dominant-axis octant of the normal, so opposite faces of a thin
	// surface never share an entry
	face int8
}

// NewIrradianceCache creates a cache with the given spatial resolution.
// Resolution must be positive; typical values are 0.05–0.5 world units.
func NewIrradianceCache(resolution float64) *IrradianceCache {
	if resolution <= 0 {
		resolution = 0.1
	}
	return &IrradianceCache{
		entries:    make(map[cacheKey]core.Vec3),
		resolution: resolution,
	}
}

// Lookup returns the cached irradiance estimate near the given surface point,
// if one exists
func (ic *IrradianceCache) Lookup(point, normal core.Vec3) (core.Vec3, bool) {
	key := ic.keyFor(point, normal)

	ic.mu.RLock()
	value, ok := ic.entries[key]
	ic.mu.RUnlock()

	if ok {
		atomic.AddInt64(&ic.hits, 1)
	} else {
		atomic.AddInt64(&ic.misses, 1)
	}
	return value, ok
}

// Store records an irradiance estimate for the given surface point. The first
// writer for a cell wins; later estimates for the same cell are blended to
// smooth out sampling noise.
func (ic *IrradianceCache) Store(point, normal, irradiance core.Vec3) {
	key := ic.keyFor(point, normal)

	ic.mu.Lock()
	defer ic.mu.Unlock()

	if existing, ok := ic.entries[key]; ok {
		ic.entries[key] = existing.Lerp(irradiance, 0.25)
	} else {
		ic.entries[key] = irradiance
	}
}

// Len returns the number of cached entries
func (ic *IrradianceCache) Len() int {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return len(ic.entries)
}

// Stats returns the cumulative hit and miss counts
func (ic *IrradianceCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&ic.hits), atomic.LoadInt64(&ic.misses)
}

func (ic *IrradianceCache) keyFor(point, normal core.Vec3) cacheKey {
	return cacheKey{
		x:    int32(math.Floor(point.X / ic.resolution)),
		y:    int32(math.Floor(point.Y / ic.resolution)),
		z:    int32(math.Floor(point.Z / ic.resolution)),
		face: dominantFace(normal),
	}
}

// dominantFace maps a normal to one of six axis-aligned faces
func dominantFace(n core.Vec3) int8 {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		if n.X >= 0 {
			return 0
		}
		return 1
	case ay >= az:
		if n.Y >= 0 {
			return 2
		}
		return 3
	default:
		if n.Z >= 0 {
			return 4
		}
		return 5
	}
}
