package component

import (
	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/optics"
	"github.com/bezlemma/microscope-builder-sub003/pkg/surface"
	"gonum.org/v1/gonum/mat"
)

// BeamSplitter is a single flat splitting plane sitting exactly at the
// component's placement origin rather than offset to a physical face, so
// the split point coincides with the nominal position. Interferometer
// path-length bookkeeping depends on that coincidence.
type BeamSplitter struct {
	Diameter   float64
	SplitRatio float64 // fraction of intensity sent to the reflected child
	Frame      core.Frame

	plane *surface.PlanarFace
}

// NewBeamSplitter creates a splitter with the given clear diameter and
// split ratio
func NewBeamSplitter(diameter, splitRatio float64, frame core.Frame) *BeamSplitter {
	return &BeamSplitter{Diameter: diameter, SplitRatio: splitRatio, Frame: frame}
}

// Invalidate drops the cached plane geometry after a parameter change
func (b *BeamSplitter) Invalidate() {
	b.plane = nil
}

// ApertureRadius returns the clear radius
func (b *BeamSplitter) ApertureRadius() float64 {
	return b.Diameter / 2
}

// ABCDMatrix returns the ray-transfer matrix of a flat interface
func (b *BeamSplitter) ABCDMatrix() *mat.Dense {
	return identityABCD()
}

func (b *BeamSplitter) geometry() *surface.PlanarFace {
	if b.plane == nil {
		b.plane = surface.NewPlanarFace(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), b.ApertureRadius())
	}
	return b.plane
}

// Intersect finds the forward hit on the splitting plane
func (b *BeamSplitter) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	hit, ok := b.geometry().Intersect(ray)
	if !ok {
		return nil, false
	}
	cacheLocal(hit, ray)
	return hit, true
}

// Interact splits an outside hit into a reflected and a transmitted child
// sharing the hit point and updated optical path length; hits from behind
// pass through unmodified.
func (b *BeamSplitter) Interact(ray core.Ray, hit *core.HitRecord) optics.Result {
	point := b.Frame.ToWorldPoint(hit.Point)
	path := ray.PathLength + hit.T

	if !hit.FrontFace {
		through := ray
		through.Origin = point
		through.PathLength = path
		return optics.Continued(through)
	}

	direction := localDirection(hit, ray, b.Frame)

	reflected := ray
	reflected.Origin = point
	reflected.Direction = b.Frame.ToWorldDirection(optics.Reflect(direction, hit.Normal).Normalize())
	reflected.PathLength = path
	reflected.Intensity = ray.Intensity * b.SplitRatio

	transmitted := ray
	transmitted.Origin = point
	transmitted.PathLength = path
	transmitted.Intensity = ray.Intensity * (1 - b.SplitRatio)

	return optics.Split(reflected, transmitted)
}
