// Package surface provides closed-form optical surface primitives. Each
// primitive is stateless given its geometric parameters and returns the
// nearest strictly-forward intersection inside its aperture bound, or none.
package surface

import "github.com/bezlemma/microscope-builder-sub003/pkg/core"

// Epsilon guards against self-intersection: hits at t <= Epsilon are ignored.
const Epsilon = 1e-6

// Surface is an analytical optical surface testable against local-frame rays
type Surface interface {
	Intersect(ray core.Ray) (*core.HitRecord, bool)
}

// Compile-time checks that every primitive satisfies Surface
var (
	_ Surface = (*SphericalCap)(nil)
	_ Surface = (*PlanarFace)(nil)
	_ Surface = (*CylindricalFace)(nil)
)
