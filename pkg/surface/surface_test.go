package surface

import (
	"math"
	"testing"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

func downwardRay(x, y, z float64) core.Ray {
	return core.Ray{Origin: core.NewVec3(x, y, z), Direction: core.NewVec3(0, 0, -1)}
}

func TestSphericalCap_ApertureBoundary(t *testing.T) {
	front := NewSphericalCap(core.NewVec3(0, 0, 0), 2.0, 1.0, 1)

	tests := []struct {
		name      string
		x         float64
		expectHit bool
	}{
		{"well inside aperture", 0.5, true},
		{"exactly at aperture radius", 1.0, true},
		{"just outside aperture", 1.0 + 1e-6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := front.Intersect(downwardRay(tt.x, 0, 5))
			if ok != tt.expectHit {
				t.Errorf("Expected hit=%t at x=%g, got %t", tt.expectHit, tt.x, ok)
			}
		})
	}
}

func TestSphericalCap_NormalIsOutward(t *testing.T) {
	front := NewSphericalCap(core.NewVec3(0, 0, 0), 2.0, 1.0, 1)

	hit, ok := front.Intersect(downwardRay(0.5, 0, 5))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}

	expected := hit.Point.Normalize() // sphere centered at origin
	if hit.Normal.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected an outside-approach hit")
	}
}

func TestSphericalCap_HemisphereSelection(t *testing.T) {
	front := NewSphericalCap(core.NewVec3(0, 0, 0), 2.0, 1.0, 1)

	// From below, the first root lies on the lower hemisphere and must be
	// rejected; the second root on the upper hemisphere is the hit.
	ray := core.Ray{Origin: core.NewVec3(0.5, 0, -5), Direction: core.NewVec3(0, 0, 1)}
	hit, ok := front.Intersect(ray)
	if !ok {
		t.Fatal("Expected upper-hemisphere hit, got miss")
	}
	if hit.Point.Z <= 0 {
		t.Errorf("Expected hit on upper hemisphere, got Z=%f", hit.Point.Z)
	}
}

func TestSphericalCap_SelfIntersectionGuard(t *testing.T) {
	front := NewSphericalCap(core.NewVec3(0, 0, 0), 2.0, 1.0, 1)

	hit, ok := front.Intersect(downwardRay(0.5, 0, 5))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}

	// Re-query from the hit point: the same surface point must not hit again
	again := core.Ray{Origin: hit.Point, Direction: core.NewVec3(0, 0, -1)}
	if _, ok := front.Intersect(again); ok {
		t.Error("Expected self-intersection to be rejected")
	}
}

func TestPlanarFace_Intersect(t *testing.T) {
	face := NewPlanarFace(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), 2.0)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectT   float64
	}{
		{
			name:      "perpendicular hit",
			ray:       downwardRay(0.5, 0.5, 4),
			expectHit: true,
			expectT:   3.0,
		},
		{
			name:      "near-parallel rejected",
			ray:       core.Ray{Origin: core.NewVec3(0, 0, 1), Direction: core.NewVec3(1, 0, 0)},
			expectHit: false,
		},
		{
			name:      "outside aperture",
			ray:       downwardRay(2.5, 0, 4),
			expectHit: false,
		},
		{
			name:      "behind the origin",
			ray:       core.Ray{Origin: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, -1)},
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := face.Intersect(tt.ray)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, ok)
			}
			if ok && math.Abs(hit.T-tt.expectT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectT, hit.T)
			}
		})
	}
}

func TestCylindricalFace_Intersect(t *testing.T) {
	barrel := NewCylindricalFace(1.0, -1.0, 1.0)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
	}{
		{
			name:      "radial hit within extent",
			ray:       core.Ray{Origin: core.NewVec3(-5, 0, 0), Direction: core.NewVec3(1, 0, 0)},
			expectHit: true,
		},
		{
			name:      "outside axial extent",
			ray:       core.Ray{Origin: core.NewVec3(-5, 0, 2), Direction: core.NewVec3(1, 0, 0)},
			expectHit: false,
		},
		{
			name:      "parallel to axis",
			ray:       core.Ray{Origin: core.NewVec3(0.5, 0, -5), Direction: core.NewVec3(0, 0, 1)},
			expectHit: false,
		},
		{
			name:      "missing the barrel",
			ray:       core.Ray{Origin: core.NewVec3(-5, 3, 0), Direction: core.NewVec3(1, 0, 0)},
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := barrel.Intersect(tt.ray)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, ok)
			}
			if ok {
				// Radial unit normal in the transverse plane
				expected := core.NewVec3(hit.Point.X, hit.Point.Y, 0)
				if hit.Normal.Subtract(expected).Length() > 1e-9 {
					t.Errorf("Expected radial normal %v, got %v", expected, hit.Normal)
				}
			}
		})
	}
}
