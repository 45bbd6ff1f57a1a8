package common

import (
	"math"
)

// Vec2 is a 2D vector. Used for texture coordinates and pixel positions.
type Vec2 [2]float32

// Vec3 is a 3D vector stored as (x, y, z).
type Vec3 [3]float32

// Vec4 is a homogeneous 4D vector stored as (x, y, z, w).
type Vec4 [4]float32

// Mat3 is a 3x3 matrix stored in column-major order.
type Mat3 [9]float32

// Mat4 is a 4x4 matrix stored in column-major order (OpenGL convention).
// Element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec3) X() float32 { return v[0] }
func (v Vec3) Y() float32 { return v[1] }
func (v Vec3) Z() float32 { return v[2] }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v multiplied by the scalar s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v scaled to unit length. A zero-length vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Homogeneous extends v to a 4D point with the given w component.
func (v Vec3) Homogeneous(w float32) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mul4 multiplies two 4x4 matrices.
// All matrices are stored in column-major order. Result: a * b
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Mat4: the product a * b
func Mul4(a, b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// MulVec4 transforms the homogeneous vector v by m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := 0; r < 4; r++ {
		out[r] = m[r]*v[0] + m[4+r]*v[1] + m[8+r]*v[2] + m[12+r]*v[3]
	}
	return out
}

// Upper3 extracts the upper-left 3x3 rotation/scale block of m.
func (m Mat4) Upper3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// MulVec3 transforms v by m.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	var out Vec3
	for r := 0; r < 3; r++ {
		out[r] = m[r]*v[0] + m[3+r]*v[1] + m[6+r]*v[2]
	}
	return out
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Invert3 computes the inverse of a 3x3 column-major matrix using cofactor expansion.
// If the matrix is singular (determinant is zero or not finite) the identity matrix is
// returned along with false.
//
// Parameters:
//   - m: source matrix
//
// Returns:
//   - Mat3: the inverse, or identity when singular
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert3(m Mat3) (Mat3, bool) {
	// a b c / d e f / g h i in row-major terms
	a, b, c := m[0], m[3], m[6]
	d, e, f := m[1], m[4], m[7]
	g, h, i := m[2], m[5], m[8]

	c00 := e*i - f*h
	c01 := -(d*i - f*g)
	c02 := d*h - e*g

	det := a*c00 + b*c01 + c*c02
	if det == 0 || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		return Identity3(), false
	}
	inv := 1 / det

	c10 := -(b*i - c*h)
	c11 := a*i - c*g
	c12 := -(a*h - b*g)
	c20 := b*f - c*e
	c21 := -(a*f - c*d)
	c22 := a*e - b*d

	// inverse = adjugate / det, adjugate is the transposed cofactor matrix
	return Mat3{
		c00 * inv, c01 * inv, c02 * inv,
		c10 * inv, c11 * inv, c12 * inv,
		c20 * inv, c21 * inv, c22 * inv,
	}, true
}

// NormalMatrix returns the inverse-transpose of the model matrix's 3x3 block, used to
// carry normals into world space under non-uniform scale. When the block is singular
// the identity is returned and ok is false.
func NormalMatrix(model Mat4) (Mat3, bool) {
	inv, ok := Invert3(model.Upper3())
	if !ok {
		return inv, false
	}
	return inv.Transpose(), true
}

// Perspective creates a right-handed perspective projection matrix that maps view-space
// depth into the OpenGL clip range, so that after the perspective divide z lies in [-1, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	var out Mat4

	out[0] = f / aspect
	out[5] = f
	out[10] = -(far + near) / (far - near)
	out[11] = -1.0
	out[14] = -(2 * far * near) / (far - near)
	return out
}

// Viewport maps normalized device coordinates to pixel coordinates. X spans [0, width],
// Y is flipped so that +Y in NDC points to the top row, and z passes through unchanged
// to be used as the depth value.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - Mat4: the viewport matrix
func Viewport(width, height float32) Mat4 {
	return Mat4{
		width / 2, 0, 0, 0,
		0, -height / 2, 0, 0,
		0, 0, 1, 0,
		width / 2, height / 2, 0, 1,
	}
}

// ModelMatrix constructs a 4x4 model matrix from a translation, a uniform scale and Euler
// rotation angles. The rotation order is Z * Y * X and the result is T * S * R.
//
// Parameters:
//   - translation: translation in world space
//   - scale: uniform scale factor
//   - rotation: rotation angles in radians around the X, Y and Z axes
//
// Returns:
//   - Mat4: the model matrix
func ModelMatrix(translation Vec3, scale float32, rotation Vec3) Mat4 {
	cx := float32(math.Cos(float64(rotation[0])))
	sx := float32(math.Sin(float64(rotation[0])))
	cy := float32(math.Cos(float64(rotation[1])))
	sy := float32(math.Sin(float64(rotation[1])))
	cz := float32(math.Cos(float64(rotation[2])))
	sz := float32(math.Sin(float64(rotation[2])))

	var out Mat4
	// column 0
	out[0] = (cz * cy) * scale
	out[1] = (sz * cy) * scale
	out[2] = (-sy) * scale

	// column 1
	out[4] = (cz*sy*sx - sz*cx) * scale
	out[5] = (sz*sy*sx + cz*cx) * scale
	out[6] = (cy * sx) * scale

	// column 2
	out[8] = (cz*sy*cx + sz*sx) * scale
	out[9] = (sz*sy*cx - cz*sx) * scale
	out[10] = (cy * cx) * scale

	out[12] = translation[0]
	out[13] = translation[1]
	out[14] = translation[2]
	out[15] = 1
	return out
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - Mat4: the view matrix
func LookAt(eye, center, up Vec3) Mat4 {
	z0 := eye[0] - center[0]
	z1 := eye[1] - center[1]
	z2 := eye[2] - center[2]
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := up[1]*z2 - up[2]*z1
	x1 := up[2]*z0 - up[0]*z2
	x2 := up[0]*z1 - up[1]*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	var out Mat4
	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eye[0] + x1*eye[1] + x2*eye[2])
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eye[0] + y1*eye[1] + y2*eye[2])
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eye[0] + z1*eye[1] + z2*eye[2])
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
	return out
}

// Clamp restricts v to the range [lo, hi].
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
