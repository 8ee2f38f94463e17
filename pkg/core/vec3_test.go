package core

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); got != NewVec3(5, 7, 9) {
		t.Errorf("Add: expected (5,7,9), got %v", got)
	}
	if got := b.Subtract(a); got != NewVec3(3, 3, 3) {
		t.Errorf("Subtract: expected (3,3,3), got %v", got)
	}
	if got := a.Multiply(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Multiply: expected (2,4,6), got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, 10, 18) {
		t.Errorf("MultiplyVec: expected (4,10,18), got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: expected 32, got %v", got)
	}
	if got := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)); got != NewVec3(0, 0, 1) {
		t.Errorf("Cross: expected (0,0,1), got %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("Expected unit length, got %v", v.Length())
	}

	// Zero vector normalizes to itself rather than NaN
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Expected zero vector unchanged, got %v", got)
	}
}

func TestVec3Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	normal := NewVec3(0, 1, 0)
	if got := incoming.Reflect(normal); got != NewVec3(1, 1, 0) {
		t.Errorf("Expected reflection (1,1,0), got %v", got)
	}
}

func TestVec3Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	if v != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0,0.5,1), got %v", v)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, 6)
	if got := a.Lerp(b, 0.5); got != NewVec3(1, 2, 3) {
		t.Errorf("Expected midpoint (1,2,3), got %v", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Expected start point, got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Expected end point, got %v", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Finite vector reported as non-finite")
	}
	if (Vec3{X: math.NaN()}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if (Vec3{Z: math.Inf(-1)}).IsFinite() {
		t.Error("Infinite vector reported as finite")
	}
}

func TestVec3GammaCorrect(t *testing.T) {
	v := NewVec3(0.25, 1, 0).GammaCorrect(2.0)
	if math.Abs(v.X-0.5) > 1e-9 {
		t.Errorf("Expected gamma(0.25)=0.5, got %v", v.X)
	}
	if v.Y != 1 || v.Z != 0 {
		t.Errorf("Gamma correction moved endpoints: %v", v)
	}
}
