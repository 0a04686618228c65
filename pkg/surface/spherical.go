package surface

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// SphericalCap is the portion of a sphere on one side of the transverse
// plane through its center, clipped to a circular aperture around the local
// Z axis. HemisphereSign selects which side: +1 keeps hits with Z above the
// sphere center, -1 below.
type SphericalCap struct {
	Center         core.Vec3
	Radius         float64
	ApertureRadius float64
	HemisphereSign float64
}

// NewSphericalCap creates a spherical cap surface
func NewSphericalCap(center core.Vec3, radius, apertureRadius, hemisphereSign float64) *SphericalCap {
	return &SphericalCap{
		Center:         center,
		Radius:         radius,
		ApertureRadius: apertureRadius,
		HemisphereSign: hemisphereSign,
	}
}

// Intersect finds the nearest forward hit on the cap using the geometric
// (projection) method for the underlying sphere.
func (s *SphericalCap) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	toCenter := s.Center.Subtract(ray.Origin)
	tca := toCenter.Dot(ray.Direction)
	perpSq := toCenter.LengthSquared() - tca*tca
	if perpSq > s.Radius*s.Radius {
		return nil, false
	}

	thc := math.Sqrt(s.Radius*s.Radius - perpSq)

	// Candidates in ascending order; pick the first that survives all clips
	for _, t := range [2]float64{tca - thc, tca + thc} {
		if t <= Epsilon {
			continue
		}
		point := ray.At(t)

		dx := point.X - s.Center.X
		dy := point.Y - s.Center.Y
		if dx*dx+dy*dy > s.ApertureRadius*s.ApertureRadius {
			continue
		}

		// Wrong hemisphere: signed axial offset must match the cap side
		if (point.Z-s.Center.Z)*s.HemisphereSign < 0 {
			continue
		}

		hit := &core.HitRecord{T: t, Point: point}
		hit.SetFaceNormal(ray, point.Subtract(s.Center).Normalize())
		return hit, true
	}

	return nil, false
}
