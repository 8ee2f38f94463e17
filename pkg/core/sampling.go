package core

import (
	"math"
	"math/rand"
)

// SampleCosineHemisphere generates a cosine-weighted random direction in the
// hemisphere around the normal. The PDF of the returned direction is cos(θ)/π.
func SampleCosineHemisphere(normal Vec3, random *rand.Rand) Vec3 {
	// Generate point on unit disk, then project up to the hemisphere
	a := 2.0 * math.Pi * random.Float64()
	z := random.Float64()
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	// Build an orthonormal basis around the normal
	tangent, bitangent := buildOrthonormalBasis(normal)

	return tangent.Multiply(x).
		Add(bitangent.Multiply(y)).
		Add(normal.Multiply(zCoord))
}

// SampleUnitSphere generates a uniformly distributed point inside the unit sphere
func SampleUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// buildOrthonormalBasis constructs two vectors perpendicular to n and each other
func buildOrthonormalBasis(n Vec3) (tangent, bitangent Vec3) {
	// Pick the axis least aligned with n to avoid degenerate cross products
	var up Vec3
	if math.Abs(n.X) > 0.9 {
		up = Vec3{Y: 1}
	} else {
		up = Vec3{X: 1}
	}
	tangent = up.Cross(n).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}
