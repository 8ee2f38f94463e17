package tracer

import (
	"math/rand"

	"github.com/rayengine/go-ray-engine/pkg/core"
)

// CameraRaySource enumerates primary rays for a viewport in scanline order,
// top row first, with samplesPerPixel jittered rays per pixel. It implements
// engine.RaySource and is consumed by a single dispatcher goroutine, so it
// needs no locking. Jitter comes from its own random stream, independent of
// the per-ray evaluation streams.
type CameraRaySource struct {
	camera          *Camera
	width, height   int
	samplesPerPixel int
	random          *rand.Rand

	i, j, s int
}

// NewCameraRaySource creates a source producing width*height*samplesPerPixel rays
func NewCameraRaySource(camera *Camera, width, height, samplesPerPixel int, seed int64) *CameraRaySource {
	if samplesPerPixel < 1 {
		samplesPerPixel = 1
	}
	return &CameraRaySource{
		camera:          camera,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
		random:          rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next primary ray, or false once the viewport is exhausted
func (cs *CameraRaySource) Next() (core.Ray, bool) {
	if cs.j >= cs.height {
		return core.Ray{}, false
	}

	// Jittered sample position within the pixel
	s := (float64(cs.i) + cs.random.Float64()) / float64(cs.width)
	t := (float64(cs.height-1-cs.j) + cs.random.Float64()) / float64(cs.height)
	ray := cs.camera.GetRay(s, t)

	cs.s++
	if cs.s == cs.samplesPerPixel {
		cs.s = 0
		cs.i++
		if cs.i == cs.width {
			cs.i = 0
			cs.j++
		}
	}
	return ray, true
}

// Err always returns nil: viewport enumeration cannot fail
func (cs *CameraRaySource) Err() error {
	return nil
}

// TotalRays returns the number of rays the source will produce
func (cs *CameraRaySource) TotalRays() uint64 {
	return uint64(cs.width) * uint64(cs.height) * uint64(cs.samplesPerPixel)
}

// SamplesPerPixel returns the configured per-pixel sample count
func (cs *CameraRaySource) SamplesPerPixel() int {
	return cs.samplesPerPixel
}
