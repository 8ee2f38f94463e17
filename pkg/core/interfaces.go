package core

import "math/rand"

// Logger interface for engine and renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	Point     Vec3     // Intersection point
	Normal    Vec3     // Surface normal at intersection (always against the ray)
	T         float64  // Ray parameter at intersection
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material at the intersection
}

// SetFaceNormal orients the normal against the incoming ray direction
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Shape defines the interface for geometric objects that rays can intersect
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// ScatterResult contains the outcome of a material scattering a ray
type ScatterResult struct {
	Scattered   Ray     // The scattered ray
	Attenuation Vec3    // Color attenuation (BRDF value for diffuse materials)
	PDF         float64 // Probability density of the scattered direction (0 for specular)
	Emission    Vec3    // Emitted radiance, if any
}

// IsSpecular reports whether the scatter was a specular (delta) event
func (s ScatterResult) IsSpecular() bool {
	return s.PDF == 0
}

// Material defines how surfaces interact with light
type Material interface {
	// Scatter computes the interaction of an incoming ray with the surface.
	// Returns false if the ray was absorbed.
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)

	// Emitted returns the radiance emitted by the surface, if any
	Emitted() Vec3
}
