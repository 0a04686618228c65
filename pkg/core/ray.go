package core

// Jones is a 2-component complex polarization vector holding the amplitude
// and phase of a ray's two orthogonal field components.
type Jones struct {
	Ex, Ey complex128
}

// NewJones creates a new Jones vector
func NewJones(ex, ey complex128) Jones {
	return Jones{Ex: ex, Ey: ey}
}

// Flip negates both components (a π phase shift, as on mirror reflection)
func (j Jones) Flip() Jones {
	return Jones{Ex: -j.Ex, Ey: -j.Ey}
}

// Ray represents a light ray in flight. Rays are immutable per hop: every
// interaction produces new ray values and never mutates its input.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // unit length

	Wavelength float64 // micrometers
	Intensity  float64
	PathLength float64 // accumulated optical path length (distance × index)

	Polarization Jones
	Coherence    int // rays with the same tag may interfere

	// Diagnostic fields, populated by interactions when relevant.
	EntryPoint   *Vec3  // where the ray last entered a solid
	BouncePath   []Vec3 // internal reflection points inside the last solid
	TerminatedAt *Vec3  // where the ray died, if it did
}

// NewRay creates a new ray with unit intensity and horizontal polarization
func NewRay(origin, direction Vec3, wavelength float64) Ray {
	return Ray{
		Origin:       origin,
		Direction:    direction.Normalize(),
		Wavelength:   wavelength,
		Intensity:    1.0,
		Polarization: NewJones(1, 0),
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
