package lights

import "github.com/DarkThrone/go-pbrt/pkg/core"

// shadowEpsilon offsets shadow segments away from both endpoints so that
// self-intersection with the originating geometry is not reported as
// occlusion
const shadowEpsilon = 1e-4

// VisibilityTester is a deferred shadow query between two interaction
// points, typically a shading point and a light sample point. Immutable
// once constructed; resolution is delegated to the scene.
type VisibilityTester struct {
	p0, p1 core.Interaction
}

// NewVisibilityTester creates a tester linking the shading point p0 and
// the light sample point p1
func NewVisibilityTester(p0, p1 core.Interaction) VisibilityTester {
	return VisibilityTester{p0: p0, p1: p1}
}

// Endpoints returns the two interaction points of the query
func (v VisibilityTester) Endpoints() (core.Interaction, core.Interaction) {
	return v.p0, v.p1
}

// Unoccluded reports whether the segment between the two endpoints is free
// of scene geometry. The ray direction is left unnormalized so the segment
// end lies at parameter 1.
func (v VisibilityTester) Unoccluded(scene core.Scene) bool {
	ray := core.NewRayAt(v.p0.Point, v.p1.Point.Subtract(v.p0.Point), v.p0.Time)
	return !scene.IntersectP(ray, shadowEpsilon, 1-shadowEpsilon)
}
