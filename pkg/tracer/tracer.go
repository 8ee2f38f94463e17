package tracer

import (
	"fmt"
	"math/rand"

	"github.com/rayengine/go-ray-engine/pkg/core"
)

// Scene provides the geometry and lighting environment for tracing.
// Defined here to avoid a dependency on any particular scene package.
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetShapes() []core.Shape
}

// Config contains path tracing configuration
type Config struct {
	MaxDepth int   // Maximum ray bounce depth
	Seed     int64 // Base seed for per-ray random streams
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth: 25,
		Seed:     42,
	}
}

// PathTracer evaluates the radiance carried by individual rays using
// recursive Monte Carlo path tracing. It implements engine.Evaluator.
//
// Each ray gets its own random stream derived from the base seed and the
// ray's sequence number, so a given ray produces the same sample no matter
// which worker evaluates it or how many workers are running.
type PathTracer struct {
	scene  Scene
	config Config
	cache  *IrradianceCache // Optional, shared across workers when set
}

// NewPathTracer creates a path tracer for the given scene
func NewPathTracer(scene Scene, config Config) *PathTracer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	return &PathTracer{scene: scene, config: config}
}

// SetIrradianceCache attaches a shared irradiance cache. The cache must be
// set before evaluation starts and is safe for concurrent use.
func (pt *PathTracer) SetIrradianceCache(cache *IrradianceCache) {
	pt.cache = cache
}

// EvaluateRay computes the radiance sample for a single ray
func (pt *PathTracer) EvaluateRay(ray core.Ray, seq uint64) (core.RadianceSample, error) {
	if !ray.Direction.IsFinite() || ray.Direction.LengthSquared() == 0 {
		return core.RadianceSample{}, fmt.Errorf("degenerate ray direction %+v", ray.Direction)
	}

	random := rand.New(rand.NewSource(pt.raySeed(seq)))

	bounces := 0
	color := pt.rayColor(ray, pt.config.MaxDepth, random, &bounces)
	if !color.IsFinite() {
		return core.RadianceSample{}, fmt.Errorf("non-finite radiance for ray %d", seq)
	}

	return core.RadianceSample{Color: color, Bounces: bounces}, nil
}

// raySeed derives an independent seed for one ray's random stream
func (pt *PathTracer) raySeed(seq uint64) int64 {
	// SplitMix64-style scramble so consecutive sequence numbers do not
	// produce correlated streams
	z := uint64(pt.config.Seed) + seq*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// hitWorld checks if a ray hits any object in the scene
func (pt *PathTracer) hitWorld(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range pt.scene.GetShapes() {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// backgroundGradient returns a gradient color based on ray direction
func (pt *PathTracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := pt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}

// rayColor returns the radiance for a ray, recursing for scattered rays
func (pt *PathTracer) rayColor(r core.Ray, depth int, random *rand.Rand, bounces *int) core.Vec3 {
	// Bounce limit reached, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := pt.hitWorld(r, 0.001, 1000.0)
	if !isHit {
		return pt.backgroundGradient(r)
	}

	emitted := hit.Material.Emitted()

	scatter, didScatter := hit.Material.Scatter(r, *hit, random)
	if !didScatter {
		return emitted // Absorbed: only emission contributes
	}

	*bounces++

	if scatter.IsSpecular() {
		incoming := pt.rayColor(scatter.Scattered, depth-1, random, bounces)
		return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
	}

	return emitted.Add(pt.diffuseColor(scatter, hit, depth, random, bounces))
}

// diffuseColor estimates the diffuse contribution with a Monte Carlo
// estimator, consulting the shared irradiance cache when one is attached
func (pt *PathTracer) diffuseColor(scatter core.ScatterResult, hit *core.HitRecord, depth int, random *rand.Rand, bounces *int) core.Vec3 {
	scatterDirection := scatter.Scattered.Direction.Normalize()
	cosine := scatterDirection.Dot(hit.Normal)
	if cosine < 0 {
		cosine = 0
	}
	if scatter.PDF <= 0 {
		return core.Vec3{}
	}

	var incoming core.Vec3
	if pt.cache != nil {
		if cached, ok := pt.cache.Lookup(hit.Point, hit.Normal); ok {
			incoming = cached
		} else {
			incoming = pt.rayColor(scatter.Scattered, depth-1, random, bounces)
			pt.cache.Store(hit.Point, hit.Normal, incoming)
		}
	} else {
		incoming = pt.rayColor(scatter.Scattered, depth-1, random, bounces)
	}

	// Estimator: (BRDF * incoming * cosθ) / PDF
	return scatter.Attenuation.Multiply(cosine / scatter.PDF).MultiplyVec(incoming)
}
