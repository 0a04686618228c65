package component

import (
	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/optics"
	"github.com/bezlemma/microscope-builder-sub003/pkg/surface"
	"gonum.org/v1/gonum/mat"
)

// Mirror is an opaque flat mirror: two parallel circular faces at ± half
// the thickness along the local Z axis. Outside-approach hits reflect with
// a π polarization phase shift; inside-approach hits are absorbed by the
// body.
type Mirror struct {
	Diameter  float64
	Thickness float64
	Frame     core.Frame

	faces []*surface.PlanarFace
}

// NewMirror creates a mirror with the given clear diameter and substrate
// thickness
func NewMirror(diameter, thickness float64, frame core.Frame) *Mirror {
	return &Mirror{Diameter: diameter, Thickness: thickness, Frame: frame}
}

// Invalidate drops the cached face geometry after a parameter change
func (m *Mirror) Invalidate() {
	m.faces = nil
}

// ApertureRadius returns the clear radius
func (m *Mirror) ApertureRadius() float64 {
	return m.Diameter / 2
}

// ABCDMatrix returns the flat-mirror ray-transfer matrix
func (m *Mirror) ABCDMatrix() *mat.Dense {
	return identityABCD()
}

func (m *Mirror) geometry() []*surface.PlanarFace {
	if m.faces == nil {
		half := m.Thickness / 2
		m.faces = []*surface.PlanarFace{
			surface.NewPlanarFace(core.NewVec3(0, 0, half), core.NewVec3(0, 0, 1), m.ApertureRadius()),
			surface.NewPlanarFace(core.NewVec3(0, 0, -half), core.NewVec3(0, 0, -1), m.ApertureRadius()),
		}
	}
	return m.faces
}

// Intersect finds the nearest forward hit on either face of the substrate
func (m *Mirror) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	var nearest *core.HitRecord
	for _, face := range m.geometry() {
		if hit, ok := face.Intersect(ray); ok && (nearest == nil || hit.T < nearest.T) {
			nearest = hit
		}
	}
	if nearest == nil {
		return nil, false
	}
	cacheLocal(nearest, ray)
	return nearest, true
}

// Interact reflects outside hits and absorbs everything that reached a face
// from within the substrate
func (m *Mirror) Interact(ray core.Ray, hit *core.HitRecord) optics.Result {
	if !hit.FrontFace {
		return optics.Absorbed()
	}

	direction := localDirection(hit, ray, m.Frame)
	reflected := optics.Reflect(direction, hit.Normal).Normalize()

	child := ray
	child.Origin = m.Frame.ToWorldPoint(hit.Point)
	child.Direction = m.Frame.ToWorldDirection(reflected)
	child.PathLength = ray.PathLength + hit.T
	child.Polarization = ray.Polarization.Flip()
	return optics.Continued(child)
}
