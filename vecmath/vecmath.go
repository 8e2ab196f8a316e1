// Package vecmath provides the VEC2/VEC3/VEC4/MAT3/MAT4 primitives the
// pipeline and shader callbacks are built on.
package vecmath

import "math"

type Vec2 struct{ X, Y float32 }
type Vec3 struct{ X, Y, Z float32 }
type Vec4 struct{ X, Y, Z, W float32 }

// Mat3 and Mat4 store columns first (Val[col][row]), so translation
// lives in Val[3] and Mat4MultiplyByVec4's Val[j][i]*v[j] sum is a plain
// matrix-times-column-vector product.
type Mat3 struct{ Val [3][3]float32 }
type Mat4 struct{ Val [4][4]float32 }

func Vec2Sub(a, b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

func Vec3Add(a, b Vec3) Vec3  { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func Vec3Adds(a Vec3, s float32) Vec3 { return Vec3{a.X + s, a.Y + s, a.Z + s} }
func Vec3Sub(a, b Vec3) Vec3  { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func Vec3Subs(a Vec3, s float32) Vec3 { return Vec3{a.X - s, a.Y - s, a.Z - s} }
func Vec3Div(a Vec3, s float32) Vec3  { return Vec3{a.X / s, a.Y / s, a.Z / s} }
func Vec3Scale(a Vec3, s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func Vec3Length(a Vec3) float32 {
	return float32(math.Sqrt(float64(a.X*a.X + a.Y*a.Y + a.Z*a.Z)))
}

func Vec3Normalize(a Vec3) Vec3 {
	l := Vec3Length(a)
	if l == 0 {
		return Vec3{}
	}
	return Vec3Div(a, l)
}

func Vec3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func Vec3Dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Vec3Lerp follows the legacy argument order lerp(t, b, a) = b*t + a*(1-t):
// the factor scales the first vector, so t=0 yields a and t=1 yields b.
func Vec3Lerp(t float32, b, a Vec3) Vec3 {
	return Vec3{
		b.X*t + a.X*(1-t),
		b.Y*t + a.Y*(1-t),
		b.Z*t + a.Z*(1-t),
	}
}

func Vec4Add(a, b Vec4) Vec4  { return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W} }
func Vec4Sub(a, b Vec4) Vec4  { return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W} }
func Vec4Mult(a, b Vec4) Vec4 { return Vec4{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W} }
func Vec4Dot(a, b Vec4) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Vec4Lerp follows the same legacy argument order as Vec3Lerp.
func Vec4Lerp(t float32, b, a Vec4) Vec4 {
	return Vec4{
		b.X*t + a.X*(1-t),
		b.Y*t + a.Y*(1-t),
		b.Z*t + a.Z*(1-t),
		b.W*t + a.W*(1-t),
	}
}

// Lerp is the scalar form of the same legacy-ordered lerp used
// throughout the pipeline for varying interpolation.
func Lerp(t, b, a float32) float32 { return b*t + a*(1-t) }

func Mat4Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.Val[i][i] = 1
	}
	return m
}

func Mat4Scale(m Mat4, s float32) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.Val[i][j] = m.Val[i][j] * s
		}
	}
	return r
}

func Mat4Transpose(m Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.Val[j][i] = m.Val[i][j]
		}
	}
	return r
}

// Mat4Multiply computes r1 * r2: each output column is r1 applied to the
// corresponding column of r2.
func Mat4Multiply(r1, r2 Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += r2.Val[i][k] * r1.Val[k][j]
			}
			out.Val[i][j] = sum
		}
	}
	return out
}

// Mat4MultiplyByVec4 applies r1 to the column vector r2, summing
// Val[j][i] * v[j].
func Mat4MultiplyByVec4(r1 Mat4, r2 Vec4) Vec4 {
	r2v := [4]float32{r2.X, r2.Y, r2.Z, r2.W}
	var out [4]float32
	for i := 0; i < 4; i++ {
		var sum float32
		for j := 0; j < 4; j++ {
			sum += r1.Val[j][i] * r2v[j]
		}
		out[i] = sum
	}
	return Vec4{out[0], out[1], out[2], out[3]}
}

// Mat4Inverse computes the general 4x4 inverse via cofactor expansion.
func Mat4Inverse(m Mat4) Mat4 {
	v := m.Val
	var inv [4][4]float32
	a2323 := v[2][2]*v[3][3] - v[2][3]*v[3][2]
	a1323 := v[2][1]*v[3][3] - v[2][3]*v[3][1]
	a1223 := v[2][1]*v[3][2] - v[2][2]*v[3][1]
	a0323 := v[2][0]*v[3][3] - v[2][3]*v[3][0]
	a0223 := v[2][0]*v[3][2] - v[2][2]*v[3][0]
	a0123 := v[2][0]*v[3][1] - v[2][1]*v[3][0]
	a2313 := v[1][2]*v[3][3] - v[1][3]*v[3][2]
	a1313 := v[1][1]*v[3][3] - v[1][3]*v[3][1]
	a1213 := v[1][1]*v[3][2] - v[1][2]*v[3][1]
	a2312 := v[1][2]*v[2][3] - v[1][3]*v[2][2]
	a1312 := v[1][1]*v[2][3] - v[1][3]*v[2][1]
	a1212 := v[1][1]*v[2][2] - v[1][2]*v[2][1]
	a0313 := v[1][0]*v[3][3] - v[1][3]*v[3][0]
	a0213 := v[1][0]*v[3][2] - v[1][2]*v[3][0]
	a0312 := v[1][0]*v[2][3] - v[1][3]*v[2][0]
	a0212 := v[1][0]*v[2][2] - v[1][2]*v[2][0]
	a0113 := v[1][0]*v[3][1] - v[1][1]*v[3][0]
	a0112 := v[1][0]*v[2][1] - v[1][1]*v[2][0]

	det := v[0][0]*(v[1][1]*a2323-v[1][2]*a1323+v[1][3]*a1223) -
		v[0][1]*(v[1][0]*a2323-v[1][2]*a0323+v[1][3]*a0223) +
		v[0][2]*(v[1][0]*a1323-v[1][1]*a0323+v[1][3]*a0123) -
		v[0][3]*(v[1][0]*a1223-v[1][1]*a0223+v[1][2]*a0123)
	if det == 0 {
		panic("vecmath: matrix is not invertible")
	}
	invDet := 1 / det

	inv[0][0] = invDet * (v[1][1]*a2323 - v[1][2]*a1323 + v[1][3]*a1223)
	inv[0][1] = invDet * -(v[0][1]*a2323 - v[0][2]*a1323 + v[0][3]*a1223)
	inv[0][2] = invDet * (v[0][1]*a2313 - v[0][2]*a1313 + v[0][3]*a1213)
	inv[0][3] = invDet * -(v[0][1]*a2312 - v[0][2]*a1312 + v[0][3]*a1212)
	inv[1][0] = invDet * -(v[1][0]*a2323 - v[1][2]*a0323 + v[1][3]*a0223)
	inv[1][1] = invDet * (v[0][0]*a2323 - v[0][2]*a0323 + v[0][3]*a0223)
	inv[1][2] = invDet * -(v[0][0]*a2313 - v[0][2]*a0313 + v[0][3]*a0213)
	inv[1][3] = invDet * (v[0][0]*a2312 - v[0][2]*a0312 + v[0][3]*a0212)
	inv[2][0] = invDet * (v[1][0]*a1323 - v[1][1]*a0323 + v[1][3]*a0123)
	inv[2][1] = invDet * -(v[0][0]*a1323 - v[0][1]*a0323 + v[0][3]*a0123)
	inv[2][2] = invDet * (v[0][0]*a1313 - v[0][1]*a0313 + v[0][3]*a0113)
	inv[2][3] = invDet * -(v[0][0]*a1312 - v[0][1]*a0312 + v[0][3]*a0112)
	inv[3][0] = invDet * -(v[1][0]*a1223 - v[1][1]*a0223 + v[1][2]*a0123)
	inv[3][1] = invDet * (v[0][0]*a1223 - v[0][1]*a0223 + v[0][2]*a0123)
	inv[3][2] = invDet * -(v[0][0]*a1213 - v[0][1]*a0213 + v[0][2]*a0113)
	inv[3][3] = invDet * (v[0][0]*a1212 - v[0][1]*a0212 + v[0][2]*a0112)

	return Mat4{inv}
}

// Perspective builds a right-handed perspective projection with depth in
// [-1,1], fov in radians.
func Perspective(fov, aspect, zNear, zFar float32) Mat4 {
	tanHalfFov := float32(math.Tan(float64(fov) / 2))
	var m Mat4
	m.Val[0][0] = 1 / (aspect * tanHalfFov)
	m.Val[1][1] = 1 / tanHalfFov
	m.Val[2][2] = -(zFar + zNear) / (zFar - zNear)
	m.Val[2][3] = -1
	m.Val[3][2] = -(2 * zFar * zNear) / (zFar - zNear)
	return m
}

// Ortho builds a right-handed orthographic projection, depth in [-1,1].
func Ortho(left, right, bottom, top, zNear, zFar float32) Mat4 {
	var m Mat4
	m.Val[0][0] = 2 / (right - left)
	m.Val[1][1] = 2 / (top - bottom)
	m.Val[2][2] = -2 / (zFar - zNear)
	m.Val[3][0] = -(right + left) / (right - left)
	m.Val[3][1] = -(top + bottom) / (top - bottom)
	m.Val[3][2] = -(zFar + zNear) / (zFar - zNear)
	m.Val[3][3] = 1
	return m
}

// LookAt builds a right-handed view matrix for a y-up world.
func LookAt(eye, center, up Vec3) Mat4 {
	f := Vec3Normalize(Vec3Sub(center, eye))
	s := Vec3Normalize(Vec3Cross(f, up))
	u := Vec3Cross(s, f)
	var m Mat4
	m.Val[0][0], m.Val[1][0], m.Val[2][0] = s.X, s.Y, s.Z
	m.Val[0][1], m.Val[1][1], m.Val[2][1] = u.X, u.Y, u.Z
	m.Val[0][2], m.Val[1][2], m.Val[2][2] = -f.X, -f.Y, -f.Z
	m.Val[3][0] = -Vec3Dot(s, eye)
	m.Val[3][1] = -Vec3Dot(u, eye)
	m.Val[3][2] = Vec3Dot(f, eye)
	m.Val[3][3] = 1
	return m
}
