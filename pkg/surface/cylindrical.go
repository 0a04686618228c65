package surface

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// CylindricalFace is the barrel of a cylinder around the local Z axis,
// bounded by [ZMin, ZMax].
type CylindricalFace struct {
	Radius float64
	ZMin   float64
	ZMax   float64
}

// NewCylindricalFace creates a cylindrical face
func NewCylindricalFace(radius, zMin, zMax float64) *CylindricalFace {
	return &CylindricalFace{Radius: radius, ZMin: zMin, ZMax: zMax}
}

// Intersect finds the nearest forward hit on the barrel within the axial
// extent by solving the infinite-cylinder quadratic in the transverse axes.
func (c *CylindricalFace) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	a := ray.Direction.X*ray.Direction.X + ray.Direction.Y*ray.Direction.Y
	if a < 1e-12 {
		return nil, false // parallel to the cylinder axis
	}

	b := 2 * (ray.Origin.X*ray.Direction.X + ray.Origin.Y*ray.Direction.Y)
	cc := ray.Origin.X*ray.Origin.X + ray.Origin.Y*ray.Origin.Y - c.Radius*c.Radius

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	for _, t := range [2]float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)} {
		if t <= Epsilon {
			continue
		}
		point := ray.At(t)
		if point.Z < c.ZMin || point.Z > c.ZMax {
			continue
		}

		hit := &core.HitRecord{T: t, Point: point}
		hit.SetFaceNormal(ray, core.NewVec3(point.X, point.Y, 0).Multiply(1.0/c.Radius))
		return hit, true
	}

	return nil, false
}
