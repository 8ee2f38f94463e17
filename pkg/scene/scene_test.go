package scene

import (
	"testing"

	"github.com/rayengine/go-ray-engine/pkg/core"
	"github.com/rayengine/go-ray-engine/pkg/tracer"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expectOK  bool
	}{
		{"default scene", "default", true},
		{"cornell scene", "cornell", true},
		{"unknown scene", "nonexistent", false},
		{"empty scene name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ByName(tt.sceneType)
			if ok != tt.expectOK {
				t.Fatalf("ByName(%q) ok = %v, expected %v", tt.sceneType, ok, tt.expectOK)
			}
			if !tt.expectOK {
				return
			}

			if s.Camera == nil {
				t.Error("Scene has no camera")
			}
			if len(s.GetShapes()) == 0 {
				t.Error("Scene has no shapes")
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Scene viewport %dx%d not positive", s.Width, s.Height)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 {
		t.Fatalf("Expected 2 scene names, got %v", names)
	}
	for _, name := range names {
		if _, ok := ByName(name); !ok {
			t.Errorf("Listed scene %q cannot be built", name)
		}
	}
}

func TestCornellHasLight(t *testing.T) {
	s := NewCornellScene()

	// With a black background the box must carry its own light source
	top, bottom := s.GetBackgroundColors()
	if top.Length() != 0 || bottom.Length() != 0 {
		t.Error("Cornell scene should have no background light")
	}

	hasEmitter := false
	for _, shape := range s.Shapes {
		var material core.Material
		switch geo := shape.(type) {
		case *tracer.Sphere:
			material = geo.Material
		case *tracer.Plane:
			material = geo.Material
		}
		if material != nil && material.Emitted().Length() > 0 {
			hasEmitter = true
		}
	}
	if !hasEmitter {
		t.Error("Cornell scene has no emissive material to light it")
	}
}
