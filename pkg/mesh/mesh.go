// Package mesh provides a universal ray intersector for watertight
// triangulated solids. Every vertex carries the exact analytical normal of
// the generating surface, supplied at build time by a callback, and hit
// normals are barycentric interpolations of those vertex normals. A flat
// normal field would kink at shared edges and the kinks show up directly as
// wrong refraction.
package mesh

import (
	"sort"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// Epsilon is the forward guard for mesh queries: hits at t <= Epsilon are
// treated as self-intersection and skipped.
const Epsilon = 1e-6

// NormalFunc returns the exact analytical normal of the generating surface
// at a vertex. It receives the vertex position and its index into the
// vertex array.
type NormalFunc func(position core.Vec3, index int) core.Vec3

// Mesh is a watertight triangulated solid with one analytical normal per
// vertex and a bounding-volume hierarchy for ray queries.
type Mesh struct {
	vertices []core.Vec3
	normals  []core.Vec3
	faces    []int

	triangles []Triangle
	bvh       *BVH
	bbox      core.AABB
}

// NewMesh builds a mesh from vertices and face indices (three per
// triangle). normalFn is invoked once per vertex to obtain its analytical
// normal. Vertices and normals are component-chomped so that
// revolution-generated near-zero asymmetries cannot open seams.
func NewMesh(vertices []core.Vec3, faces []int, normalFn NormalFunc) *Mesh {
	if len(faces)%3 != 0 {
		panic("mesh: face indices must be a multiple of 3")
	}

	cleanVertices := make([]core.Vec3, len(vertices))
	normals := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		cleanVertices[i] = v.Chomp()
		normals[i] = normalFn(cleanVertices[i], i).Normalize().Chomp()
	}

	numTriangles := len(faces) / 3
	triangles := make([]Triangle, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 ||
			i0 >= len(cleanVertices) || i1 >= len(cleanVertices) || i2 >= len(cleanVertices) {
			panic("mesh: face index out of bounds")
		}
		triangles[i] = NewTriangle(
			cleanVertices[i0], cleanVertices[i1], cleanVertices[i2],
			normals[i0], normals[i1], normals[i2],
		)
	}

	var bbox core.AABB
	if numTriangles > 0 {
		bbox = triangles[0].BoundingBox()
		for i := 1; i < numTriangles; i++ {
			bbox = bbox.Union(triangles[i].BoundingBox())
		}
	}

	return &Mesh{
		vertices:  cleanVertices,
		normals:   normals,
		faces:     faces,
		triangles: triangles,
		bvh:       NewBVH(triangles),
		bbox:      bbox,
	}
}

// IntersectAll returns every forward hit sorted by ascending distance.
// On a watertight solid an entering ray always has a matching exit hit in
// this list; a missing exit signals numerical escape at a vertex or edge
// and callers must treat it as an explicit termination.
func (m *Mesh) IntersectAll(origin, direction core.Vec3) []core.HitRecord {
	ray := core.Ray{Origin: origin, Direction: direction}
	hits := m.bvh.HitAll(ray, Epsilon, 1e30, nil)
	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

// IntersectNearest returns the closest forward hit, or none
func (m *Mesh) IntersectNearest(origin, direction core.Vec3) (*core.HitRecord, bool) {
	ray := core.Ray{Origin: origin, Direction: direction}
	return m.bvh.HitNearest(ray, Epsilon, 1e30)
}

// BoundingBox returns the bounds of the whole solid
func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// TriangleCount returns the number of triangles in the solid
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// VertexNormal returns the stored analytical normal for a vertex
func (m *Mesh) VertexNormal(index int) core.Vec3 {
	return m.normals[index]
}

// Stats reports the shape of the acceleration structure
func (m *Mesh) Stats() Stats {
	return m.bvh.Stats()
}
