package core

// Mat3 is a 3x3 matrix stored as three column vectors
type Mat3 struct {
	X, Y, Z Vec3
}

// Identity3 returns the identity matrix
func Identity3() Mat3 {
	return Mat3{
		X: NewVec3(1, 0, 0),
		Y: NewVec3(0, 1, 0),
		Z: NewVec3(0, 0, 1),
	}
}

// NewMat3FromCols builds a matrix from its columns
func NewMat3FromCols(x, y, z Vec3) Mat3 {
	return Mat3{X: x, Y: y, Z: z}
}

// MulVec returns m * v
func (m Mat3) MulVec(v Vec3) Vec3 {
	return m.X.Multiply(v.X).Add(m.Y.Multiply(v.Y)).Add(m.Z.Multiply(v.Z))
}

// Mul returns m * other
func (m Mat3) Mul(other Mat3) Mat3 {
	return Mat3{
		X: m.MulVec(other.X),
		Y: m.MulVec(other.Y),
		Z: m.MulVec(other.Z),
	}
}

// Transpose returns the transposed matrix. For a rotation this is the inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		X: NewVec3(m.X.X, m.Y.X, m.Z.X),
		Y: NewVec3(m.X.Y, m.Y.Y, m.Z.Y),
		Z: NewVec3(m.X.Z, m.Y.Z, m.Z.Z),
	}
}

// Transform is a rigid camera-to-world transform
type Transform struct {
	Origin Vec3
	Basis  Mat3
}

// Direction maps a camera-space direction into world space
func (t Transform) Direction(d Vec3) Vec3 {
	return t.Basis.MulVec(d)
}

// LookAt builds a camera-to-world transform for an eye looking at target.
// Camera space looks down -Z with +Y up, so the basis columns are
// (right, up, -forward).
func LookAt(eye, target, up Vec3) Transform {
	forward := target.Subtract(eye).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)
	return Transform{
		Origin: eye,
		Basis:  NewMat3FromCols(right, trueUp, forward.Negate()),
	}
}
