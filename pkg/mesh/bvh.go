package mesh

import (
	"sort"

	"github.com/bezlemma/microscope-builder-sub003/pkg/core"
)

// Leaf threshold: nodes with this many or fewer triangles store them
// directly and use linear search.
const leafThreshold = 8

// bvhNode is one node of the hierarchy. Nodes live in a flat arena and
// reference children by index; a leaf holds a range into the triangle
// index array instead.
type bvhNode struct {
	bounds       core.AABB
	left, right  int32 // child node indices, -1 for leaves
	start, count int32 // triangle index range for leaves
}

// BVH is a bounding-volume hierarchy over a mesh's triangles. Nodes are
// arena-allocated and addressed by index; the root is node 0. The hierarchy
// is built once per mesh geometry and rebuilt only on invalidation.
type BVH struct {
	nodes     []bvhNode
	order     []int32 // triangle indices, permuted during construction
	triangles []Triangle
}

// NewBVH constructs a hierarchy over the given triangles using median
// splits along the longest bounding-box axis.
func NewBVH(triangles []Triangle) *BVH {
	bvh := &BVH{triangles: triangles}
	if len(triangles) == 0 {
		return bvh
	}

	bvh.order = make([]int32, len(triangles))
	for i := range bvh.order {
		bvh.order[i] = int32(i)
	}

	bvh.build(0, int32(len(triangles)))
	return bvh
}

// build creates the node for order[start:start+count] and recurses,
// returning the node's arena index.
func (b *BVH) build(start, count int32) int32 {
	bounds := b.triangles[b.order[start]].BoundingBox()
	for i := start + 1; i < start+count; i++ {
		bounds = bounds.Union(b.triangles[b.order[i]].BoundingBox())
	}

	index := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{bounds: bounds, left: -1, right: -1, start: start, count: count})

	if count <= leafThreshold {
		return index
	}

	// Median split along the longest axis
	axis := bounds.LongestAxis()
	segment := b.order[start : start+count]
	sort.Slice(segment, func(i, j int) bool {
		ci := b.triangles[segment[i]].BoundingBox().Center()
		cj := b.triangles[segment[j]].BoundingBox().Center()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})

	mid := count / 2
	left := b.build(start, mid)
	right := b.build(start+mid, count-mid)
	b.nodes[index].left = left
	b.nodes[index].right = right
	b.nodes[index].count = 0
	return index
}

// HitNearest returns the closest triangle hit with t in [tMin, tMax]
func (b *BVH) HitNearest(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if len(b.nodes) == 0 {
		return nil, false
	}

	var closest core.HitRecord
	found := b.hitNode(0, ray, tMin, tMax, &closest)
	if !found {
		return nil, false
	}
	return &closest, true
}

func (b *BVH) hitNode(node int32, ray core.Ray, tMin, tMax float64, closest *core.HitRecord) bool {
	n := &b.nodes[node]
	if !n.bounds.Hit(ray, tMin, tMax) {
		return false
	}

	if n.left < 0 {
		found := false
		var record core.HitRecord
		for i := n.start; i < n.start+n.count; i++ {
			if b.triangles[b.order[i]].Hit(ray, tMin, tMax, &record) {
				found = true
				tMax = record.T
				*closest = record
			}
		}
		return found
	}

	found := b.hitNode(n.left, ray, tMin, tMax, closest)
	if found {
		tMax = closest.T
	}
	if b.hitNode(n.right, ray, tMin, tMax, closest) {
		found = true
	}
	return found
}

// HitAll appends every triangle hit with t in [tMin, tMax] to hits and
// returns the extended slice, unsorted.
func (b *BVH) HitAll(ray core.Ray, tMin, tMax float64, hits []core.HitRecord) []core.HitRecord {
	if len(b.nodes) == 0 {
		return hits
	}
	return b.hitAllNode(0, ray, tMin, tMax, hits)
}

func (b *BVH) hitAllNode(node int32, ray core.Ray, tMin, tMax float64, hits []core.HitRecord) []core.HitRecord {
	n := &b.nodes[node]
	if !n.bounds.Hit(ray, tMin, tMax) {
		return hits
	}

	if n.left < 0 {
		var record core.HitRecord
		for i := n.start; i < n.start+n.count; i++ {
			if b.triangles[b.order[i]].Hit(ray, tMin, tMax, &record) {
				hits = append(hits, record)
			}
		}
		return hits
	}

	hits = b.hitAllNode(n.left, ray, tMin, tMax, hits)
	return b.hitAllNode(n.right, ray, tMin, tMax, hits)
}

// Stats describes the shape of the hierarchy, for diagnostics
type Stats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	Triangles  int
}

// Stats walks the hierarchy and reports its shape
func (b *BVH) Stats() Stats {
	stats := Stats{Triangles: len(b.triangles)}
	if len(b.nodes) > 0 {
		b.collectStats(0, 0, &stats)
	}
	return stats
}

func (b *BVH) collectStats(node int32, depth int, stats *Stats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	n := &b.nodes[node]
	if n.left < 0 {
		stats.LeafNodes++
		return
	}
	b.collectStats(n.left, depth+1, stats)
	b.collectStats(n.right, depth+1, stats)
}
