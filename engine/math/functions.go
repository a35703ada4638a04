package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief A huge number that should be larger than any valid number used. */
	K_INFINITY float32 = 1e30
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func kabs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

func NewVec2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}
	if kabs(v.Y-other.Y) > tolerance {
		return false
	}
	if kabs(v.Z-other.Z) > tolerance {
		return false
	}
	return true
}

// Min returns the component-wise minimum of v and other.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of v and other.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

/**
 * @brief Transform v by m. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0f is there.
 */
func (v Vec3) Transform(m Mat4) Vec3 {
	out := Vec3{}
	out.X = v.X*m.Data[0+0] + v.Y*m.Data[4+0] + v.Z*m.Data[8+0] + 1.0*m.Data[12+0]
	out.Y = v.X*m.Data[0+1] + v.Y*m.Data[4+1] + v.Z*m.Data[8+1] + 1.0*m.Data[12+1]
	out.Z = v.X*m.Data[0+2] + v.Y*m.Data[4+2] + v.Z*m.Data[8+2] + 1.0*m.Data[12+2]
	return out
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// ------------------------------------------
// Extents
// ------------------------------------------

// NewExtentsFromPoints returns the axis aligned box enclosing points. An
// empty slice yields zero extents.
func NewExtentsFromPoints(points []Vec3) Extents3D {
	if len(points) == 0 {
		return Extents3D{}
	}
	e := Extents3D{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		e.Min = e.Min.Min(p)
		e.Max = e.Max.Max(p)
	}
	return e
}

func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

func (e Extents3D) Size() Vec3 {
	return e.Max.Sub(e.Min)
}

// ------------------------------------------
// Matrix 4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Builds a matrix from the row-major a1..d4 layout used by the native
 * library, where the translation sits in the fourth column.
 */
func NewMat4FromRowMajor(rows [16]float32) Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out_matrix.Data[col*4+row] = rows[row*4+col]
		}
	}
	return out_matrix
}

// RowMajor is the inverse of NewMat4FromRowMajor.
func (mt Mat4) RowMajor() [16]float32 {
	return NewMat4Transposed(mt).Data
}

/**
 * @brief Returns the result of multiplying mt and other. Points are row
 * vectors, so mt is applied first.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func NewMat4Transposed(matrix Mat4) Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out_matrix.Data[col*4+row] = matrix.Data[row*4+col]
		}
	}
	return out_matrix
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = position.X
	out_matrix.Data[13] = position.Y
	out_matrix.Data[14] = position.Z
	return out_matrix
}

/**
 * @brief Returns a scale matrix using the provided scale.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

func (mt Mat4) Translation() Vec3 {
	return Vec3{mt.Data[12], mt.Data[13], mt.Data[14]}
}

func (mt Mat4) IsIdentity(tolerance float32) bool {
	id := NewMat4Identity()
	for i := range mt.Data {
		if kabs(mt.Data[i]-id.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

// ------------------------------------------
// Quaternion
// ------------------------------------------

/**
 * @brief Creates an identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

func (q Quaternion) Normal() float32 {
	return ksqrt(
		q.X*q.X +
			q.Y*q.Y +
			q.Z*q.Z +
			q.W*q.W)
}

func (q Quaternion) Normalize() Quaternion {
	normal := q.Normal()
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}
}

/**
 * @brief Creates a rotation matrix from the given quaternion, laid out for
 * row vectors like every other Mat4.
 */
func (q Quaternion) ToMat4() Mat4 {
	out_matrix := NewMat4Identity()

	n := q.Normalize()

	out_matrix.Data[0] = 1.0 - 2.0*n.Y*n.Y - 2.0*n.Z*n.Z
	out_matrix.Data[1] = 2.0*n.X*n.Y + 2.0*n.Z*n.W
	out_matrix.Data[2] = 2.0*n.X*n.Z - 2.0*n.Y*n.W

	out_matrix.Data[4] = 2.0*n.X*n.Y - 2.0*n.Z*n.W
	out_matrix.Data[5] = 1.0 - 2.0*n.X*n.X - 2.0*n.Z*n.Z
	out_matrix.Data[6] = 2.0*n.Y*n.Z + 2.0*n.X*n.W

	out_matrix.Data[8] = 2.0*n.X*n.Z + 2.0*n.Y*n.W
	out_matrix.Data[9] = 2.0*n.Y*n.Z - 2.0*n.X*n.W
	out_matrix.Data[10] = 1.0 - 2.0*n.X*n.X - 2.0*n.Y*n.Y

	return out_matrix
}

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
