package core

import "testing"

func TestTransform_ApplyPoint(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		point     Vec3
		expected  Vec3
	}{
		{
			name:      "Identity leaves points unchanged",
			transform: IdentityTransform(),
			point:     NewVec3(1, 2, 3),
			expected:  NewVec3(1, 2, 3),
		},
		{
			name:      "Translate moves the origin",
			transform: Translate(NewVec3(2, -3, 5)),
			point:     NewVec3(0, 0, 0),
			expected:  NewVec3(2, -3, 5),
		},
		{
			name:      "Scale multiplies components",
			transform: Scale(2, 3, 4),
			point:     NewVec3(1, 1, 1),
			expected:  NewVec3(2, 3, 4),
		},
		{
			name:      "Composition applies right transform first",
			transform: Scale(2, 2, 2).Mul(Translate(NewVec3(1, 2, 3))),
			point:     NewVec3(0, 0, 0),
			expected:  NewVec3(2, 4, 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.transform.ApplyPoint(tt.point)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
