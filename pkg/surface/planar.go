package surface

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// PlanarFace is a flat circular face with a fixed outward normal
type PlanarFace struct {
	Origin         core.Vec3
	Normal         core.Vec3
	ApertureRadius float64
}

// NewPlanarFace creates a planar face; the normal is normalized
func NewPlanarFace(origin, normal core.Vec3, apertureRadius float64) *PlanarFace {
	return &PlanarFace{
		Origin:         origin,
		Normal:         normal.Normalize(),
		ApertureRadius: apertureRadius,
	}
}

// Intersect finds the forward hit on the face, if any
func (p *PlanarFace) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-10 {
		return nil, false // near-parallel
	}

	t := p.Normal.Dot(p.Origin.Subtract(ray.Origin)) / denom
	if t <= Epsilon {
		return nil, false
	}

	point := ray.At(t)
	if point.Subtract(p.Origin).LengthSquared() > p.ApertureRadius*p.ApertureRadius {
		return nil, false
	}

	hit := &core.HitRecord{T: t, Point: point}
	hit.SetFaceNormal(ray, p.Normal)
	return hit, true
}
