package component

import (
	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/mesh"
	"github.com/bezlemma/microscope-builder-sub003/pkg/optics"
	"gonum.org/v1/gonum/mat"
)

// PrismLens is a dispersive triangular prism: a triangular cross-section
// extruded along the local Y axis, traced through the interaction engine
// with internal reflection enabled.
type PrismLens struct {
	ApexAngle float64 // radians, between the two slanted faces
	Height    float64
	Width     float64
	BaseIndex float64 // index at 589 nm
	Frame     core.Frame
	Log       core.Logger

	solid  *mesh.Mesh
	engine *optics.Engine
}

// NewPrismLens creates a prism with the given cross-section and base index
func NewPrismLens(apexAngle, height, width, baseIndex float64, frame core.Frame) *PrismLens {
	return &PrismLens{
		ApexAngle: apexAngle,
		Height:    height,
		Width:     width,
		BaseIndex: baseIndex,
		Frame:     frame,
		Log:       core.SilentLogger{},
	}
}

// Invalidate drops the memoized mesh and engine after a shape-affecting
// parameter change; they are rebuilt lazily on the next query
func (p *PrismLens) Invalidate() {
	p.solid = nil
	p.engine = nil
}

// IndexAt evaluates the two-term dispersion law n(λ) = A + B/λ², calibrated
// so n(589 nm) equals BaseIndex
func (p *PrismLens) IndexAt(wavelength float64) float64 {
	return optics.CauchyIndex(p.BaseIndex)(wavelength)
}

// ApertureRadius returns half the larger cross-section extent
func (p *PrismLens) ApertureRadius() float64 {
	if p.Width > p.Height {
		return p.Width / 2
	}
	return p.Height / 2
}

// ABCDMatrix returns the paraxial matrix; a prism deviates but does not
// focus, so the matrix carries no power
func (p *PrismLens) ABCDMatrix() *mat.Dense {
	return identityABCD()
}

func (p *PrismLens) geometry() (*mesh.Mesh, *optics.Engine) {
	if p.solid == nil {
		p.solid = mesh.NewPrismSolid(p.ApexAngle, p.Height, p.Width)
		p.engine = optics.NewEngine(p.solid, p.IndexAt, true)
		p.engine.Log = p.Log
	}
	return p.solid, p.engine
}

// Intersect finds the nearest forward hit on the prism solid
func (p *PrismLens) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	solid, _ := p.geometry()
	hit, ok := solid.IntersectNearest(ray.Origin, ray.Direction)
	if !ok {
		return nil, false
	}
	cacheLocal(hit, ray)
	return hit, true
}

// Interact traces the ray through the prism glass, with interior TIR
// bounces allowed, and maps the outcome back to the world frame
func (p *PrismLens) Interact(ray core.Ray, hit *core.HitRecord) optics.Result {
	_, engine := p.geometry()

	local := ray
	local.Origin = p.Frame.ToLocalPoint(ray.Origin)
	local.Direction = localDirection(hit, ray, p.Frame)

	result := engine.Interact(local, hit)
	return resultToWorld(result, p.Frame)
}
