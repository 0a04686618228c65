// Package optics implements the refraction/reflection interaction engine:
// vector Snell's law, entry/exit classification, total-internal-reflection
// policy, and bounded interior bounce tracing over a watertight solid.
package optics

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// Refract applies vector Snell's law to a unit incident direction at a
// surface with the given normal, crossing from a medium with index
// nIncident into one with index nTransmitted. The normal may point either
// way; it is oriented against the incident ray before use. Returns false on
// total internal reflection, where refraction is undefined.
func Refract(direction, normal core.Vec3, nIncident, nTransmitted float64) (core.Vec3, bool) {
	direction = direction.Chomp()
	normal = normal.Chomp()
	if normal.Dot(direction) > 0 {
		normal = normal.Negate()
	}

	r := nIncident / nTransmitted
	cosI := -normal.Dot(direction)
	sin2T := r * r * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Vec3{}, false
	}

	cosT := math.Sqrt(1 - sin2T)
	refracted := direction.Multiply(r).Add(normal.Multiply(r*cosI - cosT)).Normalize()
	return refracted, true
}

// Reflect mirrors a direction about a surface normal: d' = d - 2(d·n)n
func Reflect(direction, normal core.Vec3) core.Vec3 {
	return direction.Subtract(normal.Multiply(2 * direction.Dot(normal)))
}

// Reflectance computes the Fresnel reflectance for the given incidence
// cosine and index ratio using Schlick's approximation.
func Reflectance(cosine, indexRatio float64) float64 {
	r0 := (1 - indexRatio) / (1 + indexRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
