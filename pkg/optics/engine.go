package optics

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
	"github.com/bezlemma/microscope-builder-sub003/pkg/mesh"
)

const (
	// MaxInternalBounces caps the interior tracing loop, guaranteeing
	// termination per ray.
	MaxInternalBounces = 8

	// forwardNudge offsets a ray origin along its direction before every
	// re-query, so the query cannot land back on the surface it left.
	forwardNudge = 0.01

	// rimNormalThreshold classifies a TIR hit as a non-optical rim strike
	// when the hit normal's axial component is smaller than this. Tunable,
	// not physics.
	rimNormalThreshold = 0.3

	// grazingNudge pushes a grazing-exit direction slightly outward so an
	// exactly-critical-angle ray cannot get trapped. Tunable, not physics.
	grazingNudge = 1e-3
)

// IndexFunc returns a medium's refractive index at a wavelength (µm)
type IndexFunc func(wavelength float64) float64

// ConstantIndex wraps a dispersion-free refractive index
func ConstantIndex(n float64) IndexFunc {
	return func(float64) float64 { return n }
}

// Engine turns a boundary crossing of one watertight solid into zero, one,
// or two continuing rays. All geometry is in the solid's local frame;
// callers transform rays in and results out.
type Engine struct {
	Solid    *mesh.Mesh
	Internal IndexFunc // index inside the solid
	External float64   // index of the surrounding medium

	// AllowInternalReflection keeps TIR rays bouncing inside (prisms).
	// When false, TIR at an exit face falls back to the rim-strike /
	// grazing-exit policy (singlet and compound lenses).
	AllowInternalReflection bool

	Log core.Logger
}

// NewEngine creates an engine for a solid surrounded by air
func NewEngine(solid *mesh.Mesh, internal IndexFunc, allowInternalReflection bool) *Engine {
	return &Engine{
		Solid:                   solid,
		Internal:                internal,
		External:                1.0,
		AllowInternalReflection: allowInternalReflection,
		Log:                     core.SilentLogger{},
	}
}

// Interact computes the response to a ray striking the solid at hit. Entry
// versus exit is classified purely by the sign of direction·normal; no
// surface tagging is involved, so convex, concave, and compound boundaries
// all behave uniformly.
func (e *Engine) Interact(ray core.Ray, hit *core.HitRecord) Result {
	nInternal := e.Internal(ray.Wavelength)
	direction := ray.Direction.Chomp().Normalize()

	if !hit.FrontFace {
		// Inside approach: resume interior tracing from the ray origin. The
		// origin is not on a surface, so the first query takes no forward
		// nudge; a boundary closer than the nudge must still be found.
		return e.traceInterior(ray, ray.Origin.Chomp(), direction, ray.PathLength, nInternal, 0)
	}

	point := hit.Point.Chomp()
	pathToHit := ray.PathLength + hit.T*e.External

	refracted, ok := Refract(direction, hit.Normal, e.External, nInternal)
	if !ok {
		// External TIR (only possible when the surroundings are denser):
		// mirror off the front surface and carry on outside.
		child := ray
		child.Origin = point
		child.Direction = Reflect(direction, hit.Normal.Chomp()).Normalize()
		child.PathLength = pathToHit
		return Continued(child)
	}

	return e.traceInterior(ray, point, refracted, pathToHit, nInternal, forwardNudge)
}

// traceInterior follows a ray inside the solid until it refracts out, dies,
// or exhausts the bounce budget. entry is where the ray entered; path is
// the optical path length accumulated up to that point. nudge is the
// forward offset for the first boundary query; every later query steps off
// the surface it just left by forwardNudge.
func (e *Engine) traceInterior(template core.Ray, entry, direction core.Vec3, path, nInternal, nudge float64) Result {
	position := entry
	var bounces []core.Vec3

	for bounce := 0; bounce < MaxInternalBounces; bounce++ {
		probe := position.Add(direction.Multiply(nudge))
		hit, found := e.Solid.IntersectNearest(probe, direction)
		if !found {
			// Escape through a geometric gap: vertex/edge grazing or a
			// non-watertight mesh. Terminate and report.
			e.Log.Printf("optics: interior ray escaped at %+v dir %+v after %d bounces", position, direction, bounce)
			return e.terminate(template, entry, position, direction, path, bounces)
		}

		distance := nudge + hit.T
		nudge = forwardNudge
		path += distance * nInternal
		position = hit.Point.Chomp()
		normal := hit.Normal.Chomp()

		if exitDir, ok := Refract(direction, normal, nInternal, e.External); ok {
			exit := template
			exit.Origin = position
			exit.Direction = exitDir
			exit.PathLength = path
			exit.EntryPoint = &entry
			exit.BouncePath = bounces
			return Continued(exit)
		}

		// Total internal reflection at the exit face
		if !e.AllowInternalReflection {
			outward := orientOutward(normal, direction)
			if math.Abs(normal.Z) < rimNormalThreshold {
				// Non-optical rim strike: the body absorbs it
				return e.terminate(template, entry, position, direction, path, bounces)
			}
			// Grazing-exit approximation: slide along the tangent plane,
			// nudged outward to step off the exact critical angle.
			tangent := direction.Subtract(outward.Multiply(direction.Dot(outward))).Normalize()
			exit := template
			exit.Origin = position
			exit.Direction = tangent.Add(outward.Multiply(grazingNudge)).Normalize()
			exit.PathLength = path
			exit.EntryPoint = &entry
			exit.BouncePath = bounces
			return Continued(exit)
		}

		direction = Reflect(direction, normal).Normalize()
		bounces = append(bounces, position)
	}

	e.Log.Printf("optics: interior ray trapped at %+v dir %+v, bounce budget %d exhausted", position, direction, MaxInternalBounces)
	return e.terminate(template, entry, position, direction, path, bounces)
}

// terminate builds the zero-intensity diagnostic ray for a death inside the
// solid
func (e *Engine) terminate(template core.Ray, entry, position, direction core.Vec3, path float64, bounces []core.Vec3) Result {
	dead := template
	dead.Origin = position
	dead.Direction = direction
	dead.PathLength = path
	dead.EntryPoint = &entry
	dead.BouncePath = bounces
	dead.TerminatedAt = &position
	return AbsorbedWith(dead)
}

// orientOutward flips the normal, if needed, so it points along the
// direction of travel (out of the solid for an exit hit)
func orientOutward(normal, direction core.Vec3) core.Vec3 {
	if normal.Dot(direction) < 0 {
		return normal.Negate()
	}
	return normal
}
