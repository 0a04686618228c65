package optics

import "github.com/bezlemma/microscope-builder-sub003/pkg/core"

// Result is the outcome of one boundary interaction: zero, one, or two
// continuing rays. An empty ray list is a legitimate terminal outcome, not
// an error. When a ray dies inside a solid (escape through a gap, rim
// strike, bounce budget), the dead ray is kept for diagnostics.
type Result struct {
	Rays       []core.Ray
	Terminated *core.Ray // zero-intensity diagnostic, when a ray died inside
}

// Absorbed is the empty result: the ray ends here
func Absorbed() Result {
	return Result{}
}

// AbsorbedWith records the dead ray alongside an empty result
func AbsorbedWith(dead core.Ray) Result {
	dead.Intensity = 0
	return Result{Terminated: &dead}
}

// Continued wraps a single continuing ray
func Continued(ray core.Ray) Result {
	return Result{Rays: []core.Ray{ray}}
}

// Split wraps the two children of a beam split
func Split(a, b core.Ray) Result {
	return Result{Rays: []core.Ray{a, b}}
}

// IsAbsorbed reports whether no ray continues
func (r Result) IsAbsorbed() bool {
	return len(r.Rays) == 0
}
