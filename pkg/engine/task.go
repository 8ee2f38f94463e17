package engine

import (
	"github.com/rayengine/go-ray-engine/pkg/core"
)

// RayTask is one unit of rendering work: a ray to be traced and evaluated
// for radiance. Tasks are immutable once created.
type RayTask struct {
	Seq uint64   // Submission sequence number, unique and monotonic per run
	Ray core.Ray // Ray descriptor forwarded to the evaluator
}

// RayResult is the outcome of evaluating one RayTask. Exactly one result is
// produced per submitted task, success or failure.
type RayResult struct {
	Seq    uint64
	Sample core.RadianceSample
	Err    error // nil means the evaluation succeeded
}

// Ok reports whether the evaluation succeeded
func (r RayResult) Ok() bool {
	return r.Err == nil
}

// Evaluator computes the radiance sample for a single ray. Implementations
// must be safe to call concurrently from distinct worker goroutines; any
// shared cache they consult is their responsibility to synchronize.
type Evaluator interface {
	EvaluateRay(ray core.Ray, seq uint64) (core.RadianceSample, error)
}

// RaySource produces the lazy sequence of rays to trace, in submission order.
// Next returns false when the sequence is exhausted; Err reports whether the
// sequence ended abnormally.
type RaySource interface {
	Next() (core.Ray, bool)
	Err() error
}
