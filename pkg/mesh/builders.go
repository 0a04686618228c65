package mesh

import (
	"math"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// NewLensSolid builds a watertight biconvex lens solid around the local Z
// axis: a front spherical cap (apex at +thickness/2), a back spherical cap
// (apex at -thickness/2) and, when the caps do not meet at the aperture
// edge, a cylindrical rim. Cap vertices carry exact sphere-gradient
// normals; rim vertices carry exact radial normals. Edge vertices are
// duplicated so the crease between cap and rim keeps both analytical
// fields instead of an averaged one.
func NewLensSolid(apertureRadius, thickness, frontRadius, backRadius float64, radialSteps, angularSteps int) *Mesh {
	if radialSteps < 1 || angularSteps < 3 {
		panic("mesh: lens tessellation too coarse")
	}

	// The caps meet at the radius where their combined sag consumes the
	// full thickness; beyond it they interpenetrate and the solid turns
	// inside out. Clamp the aperture to the crossing radius, giving the
	// lens a sharp edge instead of a rim.
	span := frontRadius + backRadius - thickness
	if span > 0 {
		axial := (span + (frontRadius*frontRadius-backRadius*backRadius)/span) / 2
		if crossSq := frontRadius*frontRadius - axial*axial; crossSq > 0 {
			if cross := math.Sqrt(crossSq); cross < apertureRadius {
				apertureRadius = cross
			}
		}
	}

	halfT := thickness / 2
	frontCenter := core.NewVec3(0, 0, halfT-frontRadius)
	backCenter := core.NewVec3(0, 0, -halfT+backRadius)

	frontZ := func(r float64) float64 {
		return frontCenter.Z + math.Sqrt(frontRadius*frontRadius-r*r)
	}
	backZ := func(r float64) float64 {
		return backCenter.Z - math.Sqrt(backRadius*backRadius-r*r)
	}

	var vertices []core.Vec3
	var normals []core.Vec3
	var faces []int

	addVertex := func(p, n core.Vec3) int {
		vertices = append(vertices, p)
		normals = append(normals, n)
		return len(vertices) - 1
	}

	// buildCap lays down an apex vertex plus radialSteps concentric rings
	buildCap := func(apexZ float64, zOf func(float64) float64, center core.Vec3, radius float64) {
		apex := addVertex(core.NewVec3(0, 0, apexZ), core.NewVec3(0, 0, apexZ-center.Z).Multiply(1/math.Abs(apexZ-center.Z)))

		prevRing := -1
		for k := 1; k <= radialSteps; k++ {
			r := apertureRadius * float64(k) / float64(radialSteps)
			z := zOf(r)
			ringStart := len(vertices)
			for j := 0; j < angularSteps; j++ {
				theta := 2 * math.Pi * float64(j) / float64(angularSteps)
				p := core.NewVec3(r*math.Cos(theta), r*math.Sin(theta), z)
				addVertex(p, p.Subtract(center).Multiply(1/radius))
			}

			if k == 1 {
				for j := 0; j < angularSteps; j++ {
					faces = append(faces, apex, ringStart+j, ringStart+(j+1)%angularSteps)
				}
			} else {
				for j := 0; j < angularSteps; j++ {
					j1 := (j + 1) % angularSteps
					faces = append(faces,
						prevRing+j, ringStart+j, ringStart+j1,
						prevRing+j, ringStart+j1, prevRing+j1,
					)
				}
			}
			prevRing = ringStart
		}
	}

	buildCap(halfT, frontZ, frontCenter, frontRadius)
	buildCap(-halfT, backZ, backCenter, backRadius)

	// Rim: duplicate the two edge rings with radial normals and stitch them
	edgeFrontZ := frontZ(apertureRadius)
	edgeBackZ := backZ(apertureRadius)
	if edgeFrontZ-edgeBackZ > 1e-9 {
		topRing := len(vertices)
		for j := 0; j < angularSteps; j++ {
			theta := 2 * math.Pi * float64(j) / float64(angularSteps)
			radial := core.NewVec3(math.Cos(theta), math.Sin(theta), 0)
			addVertex(core.NewVec3(apertureRadius*math.Cos(theta), apertureRadius*math.Sin(theta), edgeFrontZ), radial)
		}
		bottomRing := len(vertices)
		for j := 0; j < angularSteps; j++ {
			theta := 2 * math.Pi * float64(j) / float64(angularSteps)
			radial := core.NewVec3(math.Cos(theta), math.Sin(theta), 0)
			addVertex(core.NewVec3(apertureRadius*math.Cos(theta), apertureRadius*math.Sin(theta), edgeBackZ), radial)
		}
		for j := 0; j < angularSteps; j++ {
			j1 := (j + 1) % angularSteps
			faces = append(faces,
				topRing+j, bottomRing+j, bottomRing+j1,
				topRing+j, bottomRing+j1, topRing+j1,
			)
		}
	}

	return NewMesh(vertices, faces, func(p core.Vec3, i int) core.Vec3 {
		return normals[i]
	})
}

// NewPrismSolid builds a watertight triangular prism extruded along the
// local Y axis: an apex edge at +height/2 with the given apex angle between
// the two slanted faces, a flat base at -height/2, and two end caps. Every
// face is flat, so its vertices all carry the same analytical face normal;
// vertices are duplicated per face and the shared barycentric interpolation
// reproduces the uniform normal everywhere on the face.
func NewPrismSolid(apexAngle, height, width float64) *Mesh {
	halfB := height * math.Tan(apexAngle/2)
	halfH := height / 2
	halfW := width / 2

	apexF := core.NewVec3(0, halfW, halfH)
	apexB := core.NewVec3(0, -halfW, halfH)
	leftF := core.NewVec3(-halfB, halfW, -halfH)
	leftB := core.NewVec3(-halfB, -halfW, -halfH)
	rightF := core.NewVec3(halfB, halfW, -halfH)
	rightB := core.NewVec3(halfB, -halfW, -halfH)

	var vertices []core.Vec3
	var normals []core.Vec3
	var faces []int

	// addFace fan-triangulates one flat convex face, duplicating vertices
	// so they carry this face's outward normal
	addFace := func(corners ...core.Vec3) {
		n := corners[1].Subtract(corners[0]).Cross(corners[2].Subtract(corners[0])).Normalize()
		center := core.Vec3{}
		for _, c := range corners {
			center = center.Add(c)
		}
		center = center.Multiply(1 / float64(len(corners)))
		if n.Dot(center) < 0 { // the origin lies inside the solid
			n = n.Negate()
		}

		base := len(vertices)
		for _, c := range corners {
			vertices = append(vertices, c)
			normals = append(normals, n)
		}
		for i := 1; i < len(corners)-1; i++ {
			faces = append(faces, base, base+i, base+i+1)
		}
	}

	addFace(apexB, apexF, leftF, leftB)    // left slant
	addFace(apexF, apexB, rightB, rightF)  // right slant
	addFace(leftB, leftF, rightF, rightB)  // base
	addFace(apexF, rightF, leftF)          // +Y end cap
	addFace(apexB, leftB, rightB)          // -Y end cap

	return NewMesh(vertices, faces, func(p core.Vec3, i int) core.Vec3 {
		return normals[i]
	})
}
