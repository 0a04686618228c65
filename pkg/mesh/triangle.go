package mesh

import (
	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// Triangle is one face of a watertight solid. Each corner carries the exact
// analytical normal of the generating surface at that vertex; the normal
// reported for a hit is the barycentric interpolation of the three, never
// the flat triangle normal.
type Triangle struct {
	V0, V1, V2 core.Vec3
	N0, N1, N2 core.Vec3
	bbox       core.AABB
}

// NewTriangle creates a triangle with per-vertex analytical normals. The
// bounding box is padded so axis-aligned triangles keep a nonzero slab
// interval.
func NewTriangle(v0, v1, v2, n0, n1, n2 core.Vec3) Triangle {
	return Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0, N1: n1, N2: n2,
		bbox: core.NewAABBFromPoints(v0, v1, v2).Expand(1e-9),
	}
}

// BoundingBox returns the triangle's axis-aligned bounding box
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Hit tests the ray against the triangle using the Möller-Trumbore
// algorithm. On a hit it fills the record with the interpolated normal.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, record *core.HitRecord) bool {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Determinant near zero: ray lies in the triangle's plane
	if a > -epsilon && a < epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return false
	}

	record.T = tParam
	record.Point = ray.At(tParam)
	record.SetFaceNormal(ray, t.interpolateNormal(u, v))
	return true
}

// interpolateNormal blends the three analytical vertex normals with the
// barycentric weights of (u, v), giving a continuous normal field across
// shared edges.
func (t *Triangle) interpolateNormal(u, v float64) core.Vec3 {
	w := 1.0 - u - v
	return t.N0.Multiply(w).
		Add(t.N1.Multiply(u)).
		Add(t.N2.Multiply(v)).
		Normalize()
}
