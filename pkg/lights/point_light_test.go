package lights

import (
	"math"
	"testing"

	"github.com/DarkThrone/go-pbrt/pkg/core"
)

func TestPointLight_ConstructionAppliesTransform(t *testing.T) {
	tests := []struct {
		name         string
		lightToWorld core.Transform
		expected     core.Vec3
	}{
		{
			name:         "Identity places light at origin",
			lightToWorld: core.IdentityTransform(),
			expected:     core.NewVec3(0, 0, 0),
		},
		{
			name:         "Translation moves the light",
			lightToWorld: core.Translate(core.NewVec3(1, -2, 3)),
			expected:     core.NewVec3(1, -2, 3),
		},
		{
			name:         "Composed transform applied once",
			lightToWorld: core.Scale(2, 2, 2).Mul(core.Translate(core.NewVec3(1, 2, 3))),
			expected:     core.NewVec3(2, 4, 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewPointLight(tt.lightToWorld, nil, core.NewVec3(1, 1, 1))
			if light.position.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected position %v, got %v", tt.expected, light.position)
			}
		})
	}
}

func TestPointLight_Sample(t *testing.T) {
	// Intensity and distance chosen so the inverse-square radiance is exact
	// in floating point
	intensity := core.NewVec3(2, 4, 8)
	position := core.NewVec3(0, 5, 0)
	light := NewPointLight(core.Translate(position), nil, intensity)

	ref := core.Interaction{
		Point:  core.NewVec3(0, 1, 0),
		Time:   0.5,
		Wo:     core.NewVec3(1, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	sample := light.Sample(ref, core.NewVec2(0.3, 0.7))

	if math.Abs(sample.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %v", sample.Direction.Length())
	}
	if sample.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected direction toward the light, got %v", sample.Direction)
	}
	if sample.PDF != 1.0 {
		t.Errorf("Delta light PDF must be exactly 1, got %v", sample.PDF)
	}
	if sample.Distance != 4.0 {
		t.Errorf("Expected distance 4, got %v", sample.Distance)
	}

	// Radiance = I / |P-Q|² = (2,4,8)/16, exact
	expected := core.NewVec3(0.125, 0.25, 0.5)
	if sample.Emission != expected {
		t.Errorf("Expected radiance %v, got %v", expected, sample.Emission)
	}

	// The visibility tester links the shading point to a synthetic
	// interaction at the light position with zero error, wo and normal
	p0, p1 := sample.Visibility.Endpoints()
	if p0.Point != ref.Point || p0.Time != ref.Time || p0.Wo != ref.Wo || p0.Normal != ref.Normal {
		t.Errorf("Shading endpoint not carried over: %+v", p0)
	}
	if p1.Point != position {
		t.Errorf("Light endpoint at %v, expected %v", p1.Point, position)
	}
	if p1.Time != ref.Time {
		t.Errorf("Light endpoint time %v, expected %v", p1.Time, ref.Time)
	}
	if p1.Wo != (core.Vec3{}) || p1.Normal != (core.Vec3{}) || p1.PointError != (core.Vec3{}) {
		t.Errorf("Light endpoint should have zero wo/normal/error: %+v", p1)
	}
	if p1.Medium != nil {
		t.Error("Light endpoint should carry no medium override")
	}
}

func TestPointLight_Power(t *testing.T) {
	tests := []struct {
		name      string
		intensity core.Vec3
	}{
		{"Unit intensity", core.NewVec3(1, 1, 1)},
		{"Colored intensity", core.NewVec3(2.5, 0.5, 7)},
		{"Zero intensity", core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewPointLight(core.IdentityTransform(), nil, tt.intensity)
			expected := tt.intensity.Multiply(4 * math.Pi)
			if light.Power().Subtract(expected).Length() > 1e-12 {
				t.Errorf("Expected power %v, got %v", expected, light.Power())
			}
		})
	}
}

func TestPointLight_PDFAlwaysZero(t *testing.T) {
	light := NewPointLight(core.Translate(core.NewVec3(0, 3, 0)), nil, core.NewVec3(1, 1, 1))

	refs := []core.Interaction{
		{Point: core.NewVec3(0, 0, 0)},
		{Point: core.NewVec3(5, -2, 1), Normal: core.NewVec3(0, 1, 0)},
	}
	directions := []core.Vec3{
		core.NewVec3(0, 1, 0), // straight at the light
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, -1, 0),
	}

	for _, ref := range refs {
		for _, dir := range directions {
			if pdf := light.PDF(ref, dir); pdf != 0 {
				t.Errorf("PDF(%v, %v) = %v, expected 0 for a delta light", ref.Point, dir, pdf)
			}
		}
	}
}

func TestPointLight_SampleEmission(t *testing.T) {
	intensity := core.NewVec3(3, 5, 7)
	position := core.NewVec3(1, 2, 3)
	light := NewPointLight(core.Translate(position), nil, intensity)

	rng := core.NewRNGWithSequence(42)
	sampler := core.NewRandomSampler(&rng)

	for i := 0; i < 100; i++ {
		sample := light.SampleEmission(sampler.Get2D(), sampler.Get2D(), 0.25)

		if sample.Point != position {
			t.Fatalf("Emission origin %v, expected light position %v", sample.Point, position)
		}
		if math.Abs(sample.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Emission direction %v not unit length", sample.Direction)
		}
		if sample.AreaPDF != 1.0 {
			t.Fatalf("Position PDF %v, expected 1 for a point source", sample.AreaPDF)
		}
		if expected := core.UniformSpherePDF(); sample.DirectionPDF != expected {
			t.Fatalf("Direction PDF %v, expected uniform-sphere density %v", sample.DirectionPDF, expected)
		}
		if sample.Emission != intensity {
			t.Fatalf("Emission %v, expected unmodified intensity %v", sample.Emission, intensity)
		}
		if sample.Time != 0.25 {
			t.Fatalf("Time %v, expected 0.25", sample.Time)
		}

		ray := sample.Ray()
		if ray.Origin != position || ray.Time != 0.25 {
			t.Fatalf("Emitted ray %+v does not match the sample", ray)
		}
	}
}

func TestPointLight_EmissionPDF(t *testing.T) {
	light := NewPointLight(core.IdentityTransform(), nil, core.NewVec3(1, 1, 1))

	ray := core.NewRay(core.NewVec3(2, 2, 2), core.NewVec3(0, 0, 1))
	areaPDF, directionPDF := light.EmissionPDF(ray, core.NewVec3(0, 0, 1))

	if areaPDF != 0 {
		t.Errorf("Position PDF %v, expected 0 for an arbitrary ray", areaPDF)
	}
	if expected := core.UniformSpherePDF(); directionPDF != expected {
		t.Errorf("Direction PDF %v, expected %v", directionPDF, expected)
	}
}

func TestPointLight_Metadata(t *testing.T) {
	medium := &core.MediumInterface{}
	light := NewPointLight(core.IdentityTransform(), medium, core.NewVec3(1, 1, 1))

	if light.Type() != LightTypePoint {
		t.Errorf("Type: got %v", light.Type())
	}
	if light.Flags() != LightDeltaPosition {
		t.Errorf("Flags: got %v, expected delta position", light.Flags())
	}
	if !IsDeltaLight(light.Flags()) {
		t.Error("A point light must classify as a delta light")
	}
	if light.SampleCount() != 1 {
		t.Errorf("SampleCount: got %d, expected 1", light.SampleCount())
	}
	if light.medium != medium {
		t.Error("Medium interface must be shared by reference")
	}

	// No-op hooks for delta lights
	light.Preprocess(nil)
	if emit := light.Emit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))); emit != (core.Vec3{}) {
		t.Errorf("Emit: got %v, expected zero for a finite light", emit)
	}
}

func TestIsDeltaLight(t *testing.T) {
	tests := []struct {
		name     string
		flags    LightFlags
		expected bool
	}{
		{"Delta position", LightDeltaPosition, true},
		{"Delta direction", LightDeltaDirection, true},
		{"Area", LightArea, false},
		{"Infinite", LightInfinite, false},
		{"Area with delta position", LightArea | LightDeltaPosition, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDeltaLight(tt.flags); got != tt.expected {
				t.Errorf("IsDeltaLight(%v): got %v, expected %v", tt.flags, got, tt.expected)
			}
		})
	}
}
