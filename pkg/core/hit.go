package core

// HitRecord contains information about a ray-surface intersection.
// It is a transient per-query value and is never retained across calls.
type HitRecord struct {
	T         float64 // distance along the ray
	Point     Vec3    // hit point in the query frame
	Normal    Vec3    // outward surface normal at the hit
	FrontFace bool    // whether the ray struck from outside

	// Optional cached local-frame values so that interaction code does not
	// repeat local↔world transforms, each of which introduces error.
	LocalPoint     *Vec3
	LocalNormal    *Vec3
	LocalDirection *Vec3
}

// SetFaceNormal records the outward normal and whether the ray arrived
// against it (a front-face, outside-approach hit)
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	h.Normal = outwardNormal
}
