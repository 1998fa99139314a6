package core

// Transform is a 4×4 homogeneous transformation matrix, row-major
type Transform struct {
	m [4][4]float64
}

// IdentityTransform returns the identity transform
func IdentityTransform() Transform {
	var t Transform
	for i := 0; i < 4; i++ {
		t.m[i][i] = 1
	}
	return t
}

// Translate returns a transform moving points by delta
func Translate(delta Vec3) Transform {
	t := IdentityTransform()
	t.m[0][3] = delta.X
	t.m[1][3] = delta.Y
	t.m[2][3] = delta.Z
	return t
}

// Scale returns a transform scaling points per axis
func Scale(x, y, z float64) Transform {
	t := IdentityTransform()
	t.m[0][0] = x
	t.m[1][1] = y
	t.m[2][2] = z
	return t
}

// Mul returns the composition t∘other, applying other first
func (t Transform) Mul(other Transform) Transform {
	var r Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r.m[i][j] += t.m[i][k] * other.m[k][j]
			}
		}
	}
	return r
}

// ApplyPoint transforms a point, including the homogeneous divide
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	x := t.m[0][0]*p.X + t.m[0][1]*p.Y + t.m[0][2]*p.Z + t.m[0][3]
	y := t.m[1][0]*p.X + t.m[1][1]*p.Y + t.m[1][2]*p.Z + t.m[1][3]
	z := t.m[2][0]*p.X + t.m[2][1]*p.Y + t.m[2][2]*p.Z + t.m[2][3]
	w := t.m[3][0]*p.X + t.m[3][1]*p.Y + t.m[3][2]*p.Z + t.m[3][3]
	if w == 1 {
		return Vec3{X: x, Y: y, Z: z}
	}
	return Vec3{X: x / w, Y: y / w, Z: z / w}
}
