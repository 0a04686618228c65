package mesh

import (
	"math"
	"testing"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

const (
	lensAperture  = 1.0
	lensThickness = 0.4
	lensRadius    = 2.0
)

func testLens() *Mesh {
	return NewLensSolid(lensAperture, lensThickness, lensRadius, lensRadius, 24, 48)
}

func TestLensSolid_EntryAndExit(t *testing.T) {
	lens := testLens()

	// Off-axis, off-seam parallel ray: a watertight solid must report
	// exactly one entry and one exit.
	origin := core.NewVec3(0.1, 0.07, 5)
	hits := lens.IntersectAll(origin, core.NewVec3(0, 0, -1))

	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits (entry and exit), got %d", len(hits))
	}
	if hits[0].T >= hits[1].T {
		t.Errorf("Expected hits sorted by distance: %f, %f", hits[0].T, hits[1].T)
	}
	if !hits[0].FrontFace {
		t.Error("Expected the entry hit to be an outside approach")
	}
	if hits[1].FrontFace {
		t.Error("Expected the exit hit to be an inside approach")
	}
}

func TestLensSolid_InterpolatedNormalsMatchAnalytical(t *testing.T) {
	lens := testLens()

	frontCenter := core.NewVec3(0, 0, lensThickness/2-lensRadius)
	backCenter := core.NewVec3(0, 0, -lensThickness/2+lensRadius)

	origin := core.NewVec3(0.1, 0.07, 5)
	hits := lens.IntersectAll(origin, core.NewVec3(0, 0, -1))
	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(hits))
	}

	tests := []struct {
		name   string
		hit    core.HitRecord
		center core.Vec3
	}{
		{"entry normal", hits[0], frontCenter},
		{"exit normal", hits[1], backCenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analytical := tt.hit.Point.Subtract(tt.center).Normalize()
			diff := tt.hit.Normal.Subtract(analytical).Length()
			if diff > 1e-4 {
				t.Errorf("Interpolated normal off by %g from analytical sphere normal", diff)
			}
		})
	}
}

func TestLensSolid_NormalFieldIsContinuous(t *testing.T) {
	lens := testLens()

	// Two nearby rays whose hit points land in adjacent triangles must see
	// nearly identical normals.
	a, okA := lens.IntersectNearest(core.NewVec3(0.30, 0.11, 5), core.NewVec3(0, 0, -1))
	b, okB := lens.IntersectNearest(core.NewVec3(0.31, 0.11, 5), core.NewVec3(0, 0, -1))
	if !okA || !okB {
		t.Fatal("Expected both probe rays to hit the lens")
	}

	if a.Normal.Subtract(b.Normal).Length() > 0.02 {
		t.Errorf("Normal field jumped between adjacent hits: %v vs %v", a.Normal, b.Normal)
	}
}

func TestLensSolid_NearestMatchesSortedAll(t *testing.T) {
	lens := testLens()

	probes := []core.Vec3{
		{X: 0.1, Y: 0.07, Z: 5},
		{X: -0.4, Y: 0.23, Z: 5},
		{X: 0.55, Y: -0.38, Z: 5},
	}

	for _, origin := range probes {
		all := lens.IntersectAll(origin, core.NewVec3(0, 0, -1))
		nearest, ok := lens.IntersectNearest(origin, core.NewVec3(0, 0, -1))

		if len(all) == 0 {
			if ok {
				t.Errorf("Nearest found a hit IntersectAll missed at %v", origin)
			}
			continue
		}
		if !ok {
			t.Fatalf("IntersectAll found %d hits but nearest found none at %v", len(all), origin)
		}
		if math.Abs(nearest.T-all[0].T) > 1e-12 {
			t.Errorf("Nearest t=%f disagrees with first sorted hit t=%f", nearest.T, all[0].T)
		}
	}
}

func TestLensSolid_CapCrossingClampsAperture(t *testing.T) {
	lens := testLens()

	// Caps of radius 2 and thickness 0.4 meet at r ≈ 0.872, inside the
	// requested aperture of 1. The solid must end at the crossing radius
	// rather than fold inside out there.
	hits := lens.IntersectAll(core.NewVec3(0.95, 0.01, 5), core.NewVec3(0, 0, -1))
	if len(hits) != 0 {
		t.Fatalf("Expected miss beyond the cap-crossing radius, got %d hits", len(hits))
	}

	// Just inside the crossing radius the solid is thin but still a valid
	// boundary: one entry, then one exit.
	hits = lens.IntersectAll(core.NewVec3(0.85, 0.01, 5), core.NewVec3(0, 0, -1))
	if len(hits) != 2 {
		t.Fatalf("Expected entry and exit in the outer annulus, got %d hits", len(hits))
	}
	if !hits[0].FrontFace {
		t.Error("Expected the first outer-annulus hit to be an outside approach")
	}
	if hits[1].FrontFace {
		t.Error("Expected the second outer-annulus hit to be an inside approach")
	}
}

func TestLensSolid_MissesOutsideAperture(t *testing.T) {
	lens := testLens()

	hits := lens.IntersectAll(core.NewVec3(1.5, 0.07, 5), core.NewVec3(0, 0, -1))
	if len(hits) != 0 {
		t.Errorf("Expected miss outside the aperture, got %d hits", len(hits))
	}
}

func TestLensSolid_ApexVertexNormals(t *testing.T) {
	lens := testLens()

	// The front cap is built first, apex first; the back apex follows the
	// front cap's rings.
	front := lens.VertexNormal(0)
	if front.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected front apex normal (0,0,1), got %v", front)
	}

	back := lens.VertexNormal(1 + 24*48)
	if back.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected back apex normal (0,0,-1), got %v", back)
	}
}

func TestPrismSolid_FlatFaceNormals(t *testing.T) {
	prism := NewPrismSolid(math.Pi/3, 1.0, 2.0)

	// A horizontal ray into the left slant face: the interpolated normal
	// must equal the uniform analytical face normal.
	hit, ok := prism.IntersectNearest(core.NewVec3(-5, 0.2, 0), core.NewVec3(1, 0, 0))
	if !ok {
		t.Fatal("Expected hit on the left slant face")
	}

	// Left slant face tilts by half the apex angle from vertical
	expected := core.NewVec3(-math.Cos(math.Pi/6), 0, math.Sin(math.Pi/6))
	if hit.Normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected flat face normal %v, got %v", expected, hit.Normal)
	}

	// A second point on the same face sees the identical normal
	hit2, ok := prism.IntersectNearest(core.NewVec3(-5, -0.4, 0.1), core.NewVec3(1, 0, 0))
	if !ok {
		t.Fatal("Expected second hit on the left slant face")
	}
	if hit.Normal.Subtract(hit2.Normal).Length() > 1e-12 {
		t.Errorf("Flat face normal varies across the face: %v vs %v", hit.Normal, hit2.Normal)
	}
}

func TestPrismSolid_Watertight(t *testing.T) {
	prism := NewPrismSolid(math.Pi/3, 1.0, 2.0)

	hits := prism.IntersectAll(core.NewVec3(-5, 0.2, 0.05), core.NewVec3(1, 0, 0))
	if len(hits)%2 != 0 || len(hits) == 0 {
		t.Fatalf("Expected an even, positive number of boundary crossings, got %d", len(hits))
	}
}

func TestNewMesh_RejectsMalformedFaces(t *testing.T) {
	vertices := []core.Vec3{{}, {X: 1}, {Y: 1}}
	flat := func(p core.Vec3, i int) core.Vec3 { return core.NewVec3(0, 0, 1) }

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on a dangling face index list")
		}
	}()
	NewMesh(vertices, []int{0, 1}, flat)
}

func TestBVH_StatsCoverAllTriangles(t *testing.T) {
	lens := testLens()
	stats := lens.Stats()

	if stats.Triangles != lens.TriangleCount() {
		t.Errorf("Stats report %d triangles, mesh has %d", stats.Triangles, lens.TriangleCount())
	}
	if stats.LeafNodes == 0 || stats.TotalNodes < stats.LeafNodes {
		t.Errorf("Implausible BVH shape: %+v", stats)
	}
}
