package core

import (
	"math"
	"testing"
)

func TestFrame_RoundTrip(t *testing.T) {
	frame := NewFrame(NewVec3(2, -1, 3), NewVec3(0.3, -0.2, 0.5))

	points := []Vec3{
		NewVec3(0, 0, 0),
		NewVec3(1, 2, 3),
		NewVec3(-0.5, 0.25, -4),
	}

	for _, p := range points {
		back := frame.ToLocalPoint(frame.ToWorldPoint(p))
		if back.Subtract(p).Length() > 1e-12 {
			t.Errorf("Point round trip drifted: %v -> %v", p, back)
		}
	}

	d := NewVec3(0.2, -0.7, 0.4).Normalize()
	back := frame.ToLocalDirection(frame.ToWorldDirection(d))
	if back.Subtract(d).Length() > 1e-12 {
		t.Errorf("Direction round trip drifted: %v -> %v", d, back)
	}
}

func TestFrame_PreservesLength(t *testing.T) {
	frame := NewFrame(NewVec3(0, 0, 0), NewVec3(1.1, 0.4, -0.8))
	d := NewVec3(3, -4, 12)

	world := frame.ToWorldDirection(d)
	if math.Abs(world.Length()-d.Length()) > 1e-12 {
		t.Errorf("Rotation changed length: %f -> %f", d.Length(), world.Length())
	}
}

func TestFrame_Translation(t *testing.T) {
	frame := NewFrame(NewVec3(5, 0, 0), NewVec3(0, 0, 0))

	world := frame.ToWorldPoint(NewVec3(1, 0, 0))
	if world != NewVec3(6, 0, 0) {
		t.Errorf("Expected (6,0,0), got %v", world)
	}

	// Directions are unaffected by translation
	d := frame.ToWorldDirection(NewVec3(1, 0, 0))
	if d != NewVec3(1, 0, 0) {
		t.Errorf("Expected direction unchanged, got %v", d)
	}
}
