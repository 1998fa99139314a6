package lights

import "github.com/DarkThrone/go-pbrt/pkg/core"

type LightType string

const (
	LightTypeArea     LightType = "area"
	LightTypePoint    LightType = "point"
	LightTypeInfinite LightType = "infinite"
)

// LightFlags classifies a light's sampling support
type LightFlags uint8

const (
	// LightDeltaPosition marks lights emitting from a single point
	LightDeltaPosition LightFlags = 1 << iota
	// LightDeltaDirection marks lights emitting along a single direction
	LightDeltaDirection
	// LightArea marks lights with emissive surface area
	LightArea
	// LightInfinite marks environment lights at infinity
	LightInfinite
)

// IsDeltaLight reports whether the flags describe a zero-measure sampling
// support. Delta lights can only be sampled by their own strategy, so MIS
// weights from BSDF-driven strategies must be suppressed for them.
func IsDeltaLight(flags LightFlags) bool {
	return flags&(LightDeltaPosition|LightDeltaDirection) != 0
}

// Light interface for objects that can be sampled for direct lighting
type Light interface {
	Type() LightType

	// Flags returns the light's sampling-support classification
	Flags() LightFlags

	// SampleCount returns the suggested number of samples for integrators
	// that stratify over this light
	SampleCount() int

	// Preprocess is invoked once before rendering for lights that need
	// global scene information
	Preprocess(scene core.Scene)

	// Sample samples incident radiance at ref toward this light
	// Returns LightSample with direction FROM shading point TO light and a
	// visibility tester the integrator resolves against the scene
	Sample(ref core.Interaction, sample core.Vec2) LightSample

	// PDF calculates the probability density that Sample would have chosen
	// the given direction from ref under this light's strategy
	PDF(ref core.Interaction, direction core.Vec3) float64

	// SampleEmission samples an emitted ray leaving the light, for
	// bidirectional and photon techniques
	SampleEmission(samplePoint, sampleDirection core.Vec2, time float64) EmissionSample

	// EmissionPDF calculates the position and direction densities of
	// SampleEmission producing the given ray
	EmissionPDF(ray core.Ray, normal core.Vec3) (areaPDF, directionPDF float64)

	// Power returns the total emitted radiant power, used for light
	// selection heuristics
	Power() core.Vec3

	// Emit evaluates radiance carried by a ray that escapes the scene
	// For finite lights, returns zero
	Emit(ray core.Ray) core.Vec3
}

// LightSample contains information about a sampled incident direction
type LightSample struct {
	Point      core.Vec3        // Point on the light source
	Normal     core.Vec3        // Normal at the light sample point (zero for delta lights)
	Direction  core.Vec3        // Unit direction from shading point to light
	Distance   float64          // Distance to light
	Emission   core.Vec3        // Incident radiance, unoccluded
	PDF        float64          // Probability density of this sample
	Visibility VisibilityTester // Deferred shadow query for this sample
}

// EmissionSample contains information about a sampled emitted ray
type EmissionSample struct {
	Point        core.Vec3 // Emission origin on the light
	Normal       core.Vec3 // Light normal at the origin
	Direction    core.Vec3 // Unit emission direction FROM the light
	Time         float64   // Time carried by the emitted ray
	Emission     core.Vec3 // Emitted radiance
	AreaPDF      float64   // PDF for position sampling (per unit area)
	DirectionPDF float64   // PDF for direction sampling (per solid angle)
}

// Ray returns the emitted ray described by the sample
func (es EmissionSample) Ray() core.Ray {
	return core.NewRayAt(es.Point, es.Direction, es.Time)
}
