package tracer

import (
	"math"
	"math/rand"

	"github.com/rayengine/go-ray-engine/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements cosine-weighted diffuse scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, random)
	scattered := core.Ray{Origin: hit.Point, Direction: scatterDirection}

	// PDF: cos(θ)/π for cosine-weighted hemisphere sampling
	cosTheta := scatterDirection.Normalize().Dot(hit.Normal)
	if cosTheta < 0 {
		cosTheta = 0
	}
	pdf := cosTheta / math.Pi

	// BRDF: albedo/π for energy conservation
	attenuation := l.Albedo.Multiply(1.0 / math.Pi)

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
		PDF:         pdf,
	}, true
}

// Emitted returns zero: lambertian surfaces emit no light
func (l *Lambertian) Emitted() core.Vec3 {
	return core.Vec3{}
}

// Metal represents a reflective material with optional fuzziness
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64 // 0 = perfect mirror, 1 = very rough
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: math.Min(fuzz, 1.0)}
}

// Scatter implements specular reflection with fuzz perturbation
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SampleUnitSphere(random).Multiply(m.Fuzz))
	}

	// Absorb rays scattered below the surface
	if reflected.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: reflected},
		Attenuation: m.Albedo,
		PDF:         0, // Specular: delta distribution
	}, true
}

// Emitted returns zero: metal surfaces emit no light
func (m *Metal) Emitted() core.Vec3 {
	return core.Vec3{}
}

// Emissive represents a light-emitting surface
type Emissive struct {
	Emit core.Vec3
}

// NewEmissive creates a new emissive material
func NewEmissive(emit core.Vec3) *Emissive {
	return &Emissive{Emit: emit}
}

// Scatter absorbs all incoming rays: lights only emit
func (e *Emissive) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted returns the emitted radiance
func (e *Emissive) Emitted() core.Vec3 {
	return e.Emit
}
