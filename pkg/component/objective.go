package component

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/optics"
	"github.com/bezlemma/microscope-builder-sub003/pkg/surface"
	"gonum.org/v1/gonum/mat"
)

// Objective is an idealized aplanatic objective: a zero-thickness flat
// phase surface at the local origin. Deflection follows the thin-lens
// angular law and the numerical aperture is enforced purely by clipping the
// aperture radius.
type Objective struct {
	FocalLength    float64
	NA             float64
	ImmersionIndex float64
	Frame          core.Frame

	aperture *surface.PlanarFace
}

// NewObjective creates an objective; immersionIndex is 1 for dry objectives
func NewObjective(focalLength, na, immersionIndex float64, frame core.Frame) *Objective {
	return &Objective{
		FocalLength:    focalLength,
		NA:             na,
		ImmersionIndex: immersionIndex,
		Frame:          frame,
	}
}

// Invalidate drops the cached aperture geometry after a parameter change
func (o *Objective) Invalidate() {
	o.aperture = nil
}

// ApertureRadius is the half-angle acceptance of the numerical aperture
// converted to a radius at the focal length: f·tan(asin(NA/n))
func (o *Objective) ApertureRadius() float64 {
	return o.FocalLength * math.Tan(math.Asin(o.NA/o.ImmersionIndex))
}

// ABCDMatrix returns the thin-lens ray-transfer matrix
func (o *Objective) ABCDMatrix() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		-1 / o.FocalLength, 1,
	})
}

func (o *Objective) geometry() *surface.PlanarFace {
	if o.aperture == nil {
		o.aperture = surface.NewPlanarFace(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), o.ApertureRadius())
	}
	return o.aperture
}

// Intersect finds the forward hit on the phase surface; the NA limit is the
// aperture clip
func (o *Objective) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	hit, ok := o.geometry().Intersect(ray)
	if !ok {
		return nil, false
	}
	cacheLocal(hit, ray)
	return hit, true
}

// Interact bends the ray by the thin-lens angular law
// v' = v − (h/f)·r̂ and accumulates the quadratic phase −h²/(2f).
func (o *Objective) Interact(ray core.Ray, hit *core.HitRecord) optics.Result {
	direction := localDirection(hit, ray, o.Frame)
	point := hit.Point

	h := math.Hypot(point.X, point.Y)
	deflected := direction
	if h > 0 {
		radial := core.NewVec3(point.X/h, point.Y/h, 0)
		deflected = direction.Subtract(radial.Multiply(h / o.FocalLength)).Normalize()
	}

	child := ray
	child.Origin = o.Frame.ToWorldPoint(point)
	child.Direction = o.Frame.ToWorldDirection(deflected)
	child.PathLength = ray.PathLength + hit.T - h*h/(2*o.FocalLength)
	return optics.Continued(child)
}
