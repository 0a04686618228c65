package component

import (
	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/mesh"
	"github.com/bezlemma/microscope-builder-sub003/pkg/optics"
	"gonum.org/v1/gonum/mat"
)

// Default tessellation for lens solids
const (
	lensRadialSteps  = 24
	lensAngularSteps = 48
)

// Lens is a biconvex singlet: a watertight solid of two spherical caps and
// a cylindrical rim, traced through the interaction engine with internal
// reflection disallowed. A TIR strike inside a lens is resolved by the
// rim-strike / grazing-exit policy rather than bounced.
type Lens struct {
	Diameter    float64
	Thickness   float64
	FrontRadius float64
	BackRadius  float64
	BaseIndex   float64 // index at 589 nm
	Frame       core.Frame
	Log         core.Logger

	solid  *mesh.Mesh
	engine *optics.Engine
}

// NewLens creates a biconvex lens
func NewLens(diameter, thickness, frontRadius, backRadius, baseIndex float64, frame core.Frame) *Lens {
	return &Lens{
		Diameter:    diameter,
		Thickness:   thickness,
		FrontRadius: frontRadius,
		BackRadius:  backRadius,
		BaseIndex:   baseIndex,
		Frame:       frame,
		Log:         core.SilentLogger{},
	}
}

// Invalidate drops the memoized mesh and engine after a shape-affecting
// parameter change
func (l *Lens) Invalidate() {
	l.solid = nil
	l.engine = nil
}

// IndexAt evaluates the glass dispersion law
func (l *Lens) IndexAt(wavelength float64) float64 {
	return optics.CauchyIndex(l.BaseIndex)(wavelength)
}

// ApertureRadius returns the clear radius
func (l *Lens) ApertureRadius() float64 {
	return l.Diameter / 2
}

// ABCDMatrix returns the thick-lens ray-transfer matrix from the
// lensmaker's equation at the reference wavelength
func (l *Lens) ABCDMatrix() *mat.Dense {
	n := l.BaseIndex
	power := (n-1)*(1/l.FrontRadius+1/l.BackRadius) -
		(n-1)*(n-1)*l.Thickness/(n*l.FrontRadius*l.BackRadius)
	return mat.NewDense(2, 2, []float64{
		1, 0,
		-power, 1,
	})
}

func (l *Lens) geometry() (*mesh.Mesh, *optics.Engine) {
	if l.solid == nil {
		l.solid = mesh.NewLensSolid(l.ApertureRadius(), l.Thickness, l.FrontRadius, l.BackRadius,
			lensRadialSteps, lensAngularSteps)
		l.engine = optics.NewEngine(l.solid, l.IndexAt, false)
		l.engine.Log = l.Log
	}
	return l.solid, l.engine
}

// Intersect finds the nearest forward hit on the lens solid
func (l *Lens) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	solid, _ := l.geometry()
	hit, ok := solid.IntersectNearest(ray.Origin, ray.Direction)
	if !ok {
		return nil, false
	}
	cacheLocal(hit, ray)
	return hit, true
}

// Interact refracts the ray through the glass and maps the outcome back to
// the world frame
func (l *Lens) Interact(ray core.Ray, hit *core.HitRecord) optics.Result {
	_, engine := l.geometry()

	local := ray
	local.Origin = l.Frame.ToLocalPoint(ray.Origin)
	local.Direction = localDirection(hit, ray, l.Frame)

	result := engine.Interact(local, hit)
	return resultToWorld(result, l.Frame)
}
