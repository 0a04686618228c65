// Package component implements the bench components (Mirror, BeamSplitter,
// Objective, Lens, PrismLens, Sample) behind a single capability interface
// an external ray-propagation scheduler drives. Intersect answers queries in
// the component's local frame; Interact consumes the world-frame ray plus
// the hit and produces world-frame children.
package component

import (
	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/optics"
	"gonum.org/v1/gonum/mat"
)

// Component is the capability surface shared by every bench element
type Component interface {
	// Intersect tests a local-frame ray against the component's geometry
	Intersect(ray core.Ray) (*core.HitRecord, bool)
	// Interact turns a world-frame ray and its hit into continuing rays
	Interact(ray core.Ray, hit *core.HitRecord) optics.Result
	// ApertureRadius is the clear radius rays may pass through
	ApertureRadius() float64
	// ABCDMatrix is the component's 2×2 paraxial ray-transfer matrix
	ABCDMatrix() *mat.Dense
}

// identityABCD is the ray-transfer matrix of an element with no paraxial
// power
func identityABCD() *mat.Dense {
	return mat.NewDense(2, 2, []float64{1, 0, 0, 1})
}

// cacheLocal stores the local-frame hit data on the record so Interact does
// not redo frame transforms that would reintroduce rounding error
func cacheLocal(hit *core.HitRecord, ray core.Ray) {
	point, normal, direction := hit.Point, hit.Normal, ray.Direction
	hit.LocalPoint = &point
	hit.LocalNormal = &normal
	hit.LocalDirection = &direction
}

// localDirection returns the cached local direction or derives it from the
// world ray
func localDirection(hit *core.HitRecord, ray core.Ray, frame core.Frame) core.Vec3 {
	if hit.LocalDirection != nil {
		return *hit.LocalDirection
	}
	return frame.ToLocalDirection(ray.Direction).Normalize()
}

// resultToWorld maps local-frame engine output, including diagnostic
// positions, into the world frame
func resultToWorld(result optics.Result, frame core.Frame) optics.Result {
	for i, r := range result.Rays {
		result.Rays[i] = rayToWorld(r, frame)
	}
	if result.Terminated != nil {
		world := rayToWorld(*result.Terminated, frame)
		result.Terminated = &world
	}
	return result
}

func rayToWorld(r core.Ray, frame core.Frame) core.Ray {
	r.Origin = frame.ToWorldPoint(r.Origin)
	r.Direction = frame.ToWorldDirection(r.Direction)
	if r.EntryPoint != nil {
		entry := frame.ToWorldPoint(*r.EntryPoint)
		r.EntryPoint = &entry
	}
	for i, b := range r.BouncePath {
		r.BouncePath[i] = frame.ToWorldPoint(b)
	}
	if r.TerminatedAt != nil {
		end := frame.ToWorldPoint(*r.TerminatedAt)
		r.TerminatedAt = &end
	}
	return r
}

// Compile-time checks that every specialization satisfies the capability
// interface
var (
	_ Component = (*Mirror)(nil)
	_ Component = (*BeamSplitter)(nil)
	_ Component = (*Objective)(nil)
	_ Component = (*Lens)(nil)
	_ Component = (*PrismLens)(nil)
	_ Component = (*Sample)(nil)
)
