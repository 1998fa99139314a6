package core

// Scene is the ray-scene intersection collaborator. Implementations must be
// safe for concurrent read access: every render worker issues shadow-ray
// queries through it simultaneously.
type Scene interface {
	// IntersectP reports whether anything occludes the ray segment between
	// parameters tMin and tMax. An any-hit query; no intersection record
	// is produced.
	IntersectP(ray Ray, tMin, tMax float64) bool
}

// Medium represents a participating medium. Opaque at this layer; media are
// simulated by external collaborators.
type Medium interface{}

// MediumInterface bounds a light or surface with the media on its inside
// and outside. Shared by pointer across the scene, never owned exclusively;
// nil components mean vacuum.
type MediumInterface struct {
	Inside  Medium
	Outside Medium
}

// Interaction is the common state of a point on a light path: a world point
// with its floating-point error bound, the time and outgoing direction of
// the ray that produced it, the surface normal (zero off surfaces), and the
// media on either side
type Interaction struct {
	Point      Vec3
	Time       float64
	PointError Vec3
	Wo         Vec3
	Normal     Vec3
	Medium     *MediumInterface
}
