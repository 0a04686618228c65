package core

import "math"

// Frame is a component placement: a position plus a rotation given as Euler
// angles applied around X, Y, Z in that order. It converts between the
// component's local frame and the bench (world) frame.
type Frame struct {
	Position Vec3
	Rotation Vec3 // radians
}

// NewFrame creates a placement frame
func NewFrame(position, rotation Vec3) Frame {
	return Frame{Position: position, Rotation: rotation}
}

// ToWorldPoint transforms a local point to the world frame
func (f Frame) ToWorldPoint(p Vec3) Vec3 {
	return f.rotate(p, false).Add(f.Position)
}

// ToLocalPoint transforms a world point to the local frame
func (f Frame) ToLocalPoint(p Vec3) Vec3 {
	return f.rotate(p.Subtract(f.Position), true)
}

// ToWorldDirection rotates a local direction into the world frame
func (f Frame) ToWorldDirection(d Vec3) Vec3 {
	return f.rotate(d, false)
}

// ToLocalDirection rotates a world direction into the local frame
func (f Frame) ToLocalDirection(d Vec3) Vec3 {
	return f.rotate(d, true)
}

// rotate applies the XYZ Euler rotation, or its inverse (ZYX with negated
// angles) when inverse is true.
func (f Frame) rotate(v Vec3, inverse bool) Vec3 {
	axes := [3]int{0, 1, 2}
	if inverse {
		axes = [3]int{2, 1, 0}
	}
	for _, axis := range axes {
		var angle float64
		switch axis {
		case 0:
			angle = f.Rotation.X
		case 1:
			angle = f.Rotation.Y
		case 2:
			angle = f.Rotation.Z
		}
		if inverse {
			angle = -angle
		}
		if angle == 0 {
			continue
		}
		cos := math.Cos(angle)
		sin := math.Sin(angle)
		switch axis {
		case 0:
			y := v.Y*cos - v.Z*sin
			z := v.Y*sin + v.Z*cos
			v = NewVec3(v.X, y, z)
		case 1:
			x := v.X*cos + v.Z*sin
			z := -v.X*sin + v.Z*cos
			v = NewVec3(x, v.Y, z)
		case 2:
			x := v.X*cos - v.Y*sin
			y := v.X*sin + v.Y*cos
			v = NewVec3(x, y, v.Z)
		}
	}
	return v
}
