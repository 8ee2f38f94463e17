package scene

import (
	"sort"

	"github.com/rayengine/go-ray-engine/pkg/core"
	"github.com/rayengine/go-ray-engine/pkg/tracer"
)

// Scene contains geometry, camera and lighting for rendering.
// It implements tracer.Scene.
type Scene struct {
	Camera      *tracer.Camera
	TopColor    core.Vec3 // Background gradient top
	BottomColor core.Vec3 // Background gradient bottom
	Shapes      []core.Shape
	Width       int // Recommended viewport width
	Height      int // Recommended viewport height
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *tracer.Camera {
	return s.Camera
}

// GetBackgroundColors returns the background gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetShapes returns all shapes in the scene
func (s *Scene) GetShapes() []core.Shape {
	return s.Shapes
}

// NewDefaultScene creates a scene with spheres on a ground plane under a sky
// gradient, lit by the background
func NewDefaultScene() *Scene {
	width, height := 400, 225

	camera := tracer.NewCamera(tracer.CameraConfig{
		LookFrom:    core.NewVec3(0, 1, 3),
		LookAt:      core.NewVec3(0, 0.5, 0),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        45,
		AspectRatio: float64(width) / float64(height),
	})

	ground := tracer.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	matte := tracer.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	mirror := tracer.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05)
	brushed := tracer.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.4)

	return &Scene{
		Camera:      camera,
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
		Width:       width,
		Height:      height,
		Shapes: []core.Shape{
			tracer.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
			tracer.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, matte),
			tracer.NewSphere(core.NewVec3(-1.1, 0.5, 0), 0.5, mirror),
			tracer.NewSphere(core.NewVec3(1.1, 0.5, 0), 0.5, brushed),
		},
	}
}

// NewCornellScene creates a Cornell-style box with colored walls and a single
// area light, with no background contribution
func NewCornellScene() *Scene {
	size := 400

	camera := tracer.NewCamera(tracer.CameraConfig{
		LookFrom:    core.NewVec3(0, 1, 3.5),
		LookAt:      core.NewVec3(0, 1, 0),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1.0,
	})

	white := tracer.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := tracer.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := tracer.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := tracer.NewEmissive(core.NewVec3(7, 7, 7))
	mirror := tracer.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)

	return &Scene{
		Camera: camera,
		// Box interiors get no sky light
		TopColor:    core.Vec3{},
		BottomColor: core.Vec3{},
		Width:       size,
		Height:      size,
		Shapes: []core.Shape{
			tracer.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), white),  // Floor
			tracer.NewPlane(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), white), // Ceiling
			tracer.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), white), // Back wall
			tracer.NewPlane(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0), red),   // Left wall
			tracer.NewPlane(core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0), green), // Right wall
			tracer.NewSphere(core.NewVec3(0, 1.99, 0), 0.35, light),               // Area light at ceiling
			tracer.NewSphere(core.NewVec3(-0.4, 0.4, -0.3), 0.4, white),
			tracer.NewSphere(core.NewVec3(0.45, 0.3, 0.3), 0.3, mirror),
		},
	}
}

var builders = map[string]func() *Scene{
	"default": NewDefaultScene,
	"cornell": NewCornellScene,
}

// Names returns the available scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns the scene builder for the given name
func ByName(name string) (*Scene, bool) {
	builder, ok := builders[name]
	if !ok {
		return nil, false
	}
	return builder(), true
}
