package component

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/optics"
	"gonum.org/v1/gonum/mat"
)

// specimenSphere is one sphere of the specimen constellation
type specimenSphere struct {
	Center core.Vec3
	Radius float64
}

// Sample is an absorbing specimen built from a small fixed constellation of
// spheres. Rays pass through geometrically unmodified; attenuation is a
// separate chord-length query feeding Beer-Lambert transmission.
type Sample struct {
	Absorption float64 // α, per unit length
	Frame      core.Frame

	spheres []specimenSphere
}

// NewSample creates a specimen with the standard constellation: a head
// sphere of radius 0.5 at the local origin and two smaller body spheres
// stacked below it along -Z.
func NewSample(absorption float64, frame core.Frame) *Sample {
	return &Sample{
		Absorption: absorption,
		Frame:      frame,
		spheres: []specimenSphere{
			{Center: core.NewVec3(0, 0, 0), Radius: 0.5},
			{Center: core.NewVec3(0, 0, -0.9), Radius: 0.35},
			{Center: core.NewVec3(0, 0, -1.5), Radius: 0.25},
		},
	}
}

// ApertureRadius returns the radius of the largest specimen sphere
func (s *Sample) ApertureRadius() float64 {
	radius := 0.0
	for _, sphere := range s.spheres {
		if sphere.Radius > radius {
			radius = sphere.Radius
		}
	}
	return radius
}

// ABCDMatrix returns the ray-transfer matrix; the specimen has no paraxial
// power
func (s *Sample) ABCDMatrix() *mat.Dense {
	return identityABCD()
}

// roots solves the ray-sphere quadratic for a unit direction, returning the
// two t values in ascending order
func (sp specimenSphere) roots(origin, direction core.Vec3) (float64, float64, bool) {
	oc := origin.Subtract(sp.Center)
	halfB := oc.Dot(direction)
	c := oc.LengthSquared() - sp.Radius*sp.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return -halfB - sqrtD, -halfB + sqrtD, true
}

// Intersect finds the nearest forward hit across all specimen spheres
func (s *Sample) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	direction := ray.Direction.Normalize()
	var nearest *core.HitRecord

	for _, sphere := range s.spheres {
		t0, t1, ok := sphere.roots(ray.Origin, direction)
		if !ok {
			continue
		}

		t := t0
		if t <= 1e-6 {
			t = t1
		}
		if t <= 1e-6 || (nearest != nil && t >= nearest.T) {
			continue
		}

		point := ray.At(t)
		hit := &core.HitRecord{T: t, Point: point}
		hit.SetFaceNormal(ray, point.Subtract(sphere.Center).Normalize())
		nearest = hit
	}

	if nearest == nil {
		return nil, false
	}
	cacheLocal(nearest, ray)
	return nearest, true
}

// Interact passes the ray through unmodified; absorption is handled by the
// chord-length query, not here
func (s *Sample) Interact(ray core.Ray, hit *core.HitRecord) optics.Result {
	child := ray
	child.Origin = s.Frame.ToWorldPoint(hit.Point)
	child.PathLength = ray.PathLength + hit.T
	return optics.Continued(child)
}

// ChordLength sums the forward-clipped entry/exit distances of a local-frame
// ray across all specimen spheres
func (s *Sample) ChordLength(origin, direction core.Vec3) float64 {
	direction = direction.Normalize()
	total := 0.0

	for _, sphere := range s.spheres {
		t0, t1, ok := sphere.roots(origin, direction)
		if !ok || t1 <= 0 {
			continue
		}
		if t0 < 0 {
			t0 = 0 // ray starts inside the sphere
		}
		total += t1 - t0
	}

	return total
}

// Transmission evaluates Beer-Lambert attenuation T = exp(-α·d) for a
// local-frame ray through the specimen
func (s *Sample) Transmission(origin, direction core.Vec3) float64 {
	return math.Exp(-s.Absorption * s.ChordLength(origin, direction))
}
