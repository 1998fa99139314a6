package lights

import (
	"math"

	"github.com/DarkThrone/go-pbrt/pkg/core"
)

// PointLight represents an isotropic delta-position light: all emission
// originates from a single world-space point. Immutable after construction
// and safe to share across render workers.
type PointLight struct {
	position  core.Vec3             // World position, computed once from the light-to-world transform
	intensity core.Vec3             // Radiant intensity, constant over direction
	medium    *core.MediumInterface // Shared with the rest of the scene, not owned
}

// NewPointLight creates a point light with the given radiant intensity.
// The world position is the light-to-world transform applied to the local
// origin; it is never recomputed.
func NewPointLight(lightToWorld core.Transform, medium *core.MediumInterface, intensity core.Vec3) *PointLight {
	return &PointLight{
		position:  lightToWorld.ApplyPoint(core.NewVec3(0, 0, 0)),
		intensity: intensity,
		medium:    medium,
	}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

func (pl *PointLight) Flags() LightFlags {
	return LightDeltaPosition
}

func (pl *PointLight) SampleCount() int {
	return 1
}

// Preprocess implements the Light interface - delta lights need no global
// scene information
func (pl *PointLight) Preprocess(scene core.Scene) {}

// Sample implements the Light interface - for a delta position the sampled
// direction is fully determined, so the PDF is 1 as an identity, not an
// approximation. The 2D sample is unused.
func (pl *PointLight) Sample(ref core.Interaction, sample core.Vec2) LightSample {
	direction := pl.position.Subtract(ref.Point).Normalize()
	distanceSquared := core.DistanceSquared(pl.position, ref.Point)

	visibility := NewVisibilityTester(
		core.Interaction{
			Point:      ref.Point,
			Time:       ref.Time,
			PointError: ref.PointError,
			Wo:         ref.Wo,
			Normal:     ref.Normal,
		},
		core.Interaction{
			Point: pl.position,
			Time:  ref.Time,
		},
	)

	return LightSample{
		Point:      pl.position,
		Direction:  direction,
		Distance:   math.Sqrt(distanceSquared),
		Emission:   pl.intensity.Multiply(1.0 / distanceSquared),
		PDF:        1.0,
		Visibility: visibility,
	}
}

// PDF implements the Light interface - a ray chosen independently of this
// light can never hit a zero-measure point, so the density is always zero.
// The defining invariant of delta lights; it suppresses MIS weight
// contributions from BSDF-driven strategies.
func (pl *PointLight) PDF(ref core.Interaction, direction core.Vec3) float64 {
	return 0.0
}

// SampleEmission implements the Light interface - emits uniformly over the
// full sphere from the light position
func (pl *PointLight) SampleEmission(samplePoint, sampleDirection core.Vec2, time float64) EmissionSample {
	direction := core.SampleOnUnitSphere(samplePoint)
	return EmissionSample{
		Point:        pl.position,
		Normal:       direction,
		Direction:    direction,
		Time:         time,
		Emission:     pl.intensity,
		AreaPDF:      1.0,
		DirectionPDF: core.UniformSpherePDF(),
	}
}

// EmissionPDF implements the Light interface - an arbitrary ray has zero
// density of originating at a point source, while the direction density is
// the uniform-sphere constant
func (pl *PointLight) EmissionPDF(ray core.Ray, normal core.Vec3) (float64, float64) {
	return 0.0, core.UniformSpherePDF()
}

// Power implements the Light interface - intensity integrated over the full
// sphere of directions
func (pl *PointLight) Power() core.Vec3 {
	return pl.intensity.Multiply(4.0 * math.Pi)
}

// Emit implements the Light interface - finite lights contribute nothing to
// rays that escape the scene
func (pl *PointLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}
