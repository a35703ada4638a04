package math

import (
	m "math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertMat4InDelta(t *testing.T, expected, actual Mat4, delta float64) {
	t.Helper()
	for i := range expected.Data {
		assert.InDelta(t, expected.Data[i], actual.Data[i], delta, "element %d", i)
	}
}

func TestMat4RowMajorRoundTrip(t *testing.T) {
	rows := [16]float32{
		1, 0, 0, 5,
		0, 1, 0, 6,
		0, 0, 1, 7,
		0, 0, 0, 1,
	}
	mt := NewMat4FromRowMajor(rows)

	assert.Equal(t, Vec3{5, 6, 7}, mt.Translation())
	assert.Equal(t, rows, mt.RowMajor())
	assert.Equal(t, Vec3{6, 6, 7}, Vec3{1, 0, 0}.Transform(mt))
}

func TestMat4MulAppliesLeftFirst(t *testing.T) {
	scale := NewMat4Scale(Vec3{2, 2, 2})
	move := NewMat4Translation(Vec3{1, 0, 0})

	// scale, then move
	p := Vec3{1, 1, 1}.Transform(scale.Mul(move))
	assert.Equal(t, Vec3{3, 2, 2}, p)

	// move, then scale
	p = Vec3{1, 1, 1}.Transform(move.Mul(scale))
	assert.Equal(t, Vec3{4, 2, 2}, p)

	assert.True(t, NewMat4Identity().Mul(NewMat4Identity()).IsIdentity(K_FLOAT_EPSILON))
	assert.False(t, move.IsIdentity(K_FLOAT_EPSILON))
}

func TestQuaternionToMat4(t *testing.T) {
	half := float32(m.Sqrt(0.5))
	rz := Quaternion{0, 0, half, half}.ToMat4()

	assert.True(t, Vec3{1, 0, 0}.Transform(rz).Compare(Vec3{0, 1, 0}, 1e-6))
	assert.True(t, NewQuatIdentity().ToMat4().IsIdentity(K_FLOAT_EPSILON))
	assert.InDelta(t, 1, Quaternion{0, 0, 2, 2}.Normalize().Normal(), 1e-6)
}

func TestTransformRoundTrip(t *testing.T) {
	half := float32(m.Sqrt(0.5))
	original := TransformFromPositionRotationScale(
		Vec3{1, -2, 3},
		Quaternion{0, 0, half, half},
		Vec3{2, 3, 4},
	)

	decomposed := TransformFromMat4(original.GetLocal())

	assert.True(t, decomposed.Position.Compare(original.Position, 1e-5))
	assert.True(t, decomposed.Scale.Compare(original.Scale, 1e-5))
	assertMat4InDelta(t, original.GetLocal(), decomposed.GetLocal(), 1e-5)

	identity := TransformFromMat4(NewMat4Identity())
	assert.Equal(t, NewVec3One(), identity.Scale)
	assert.InDelta(t, 1, identity.Rotation.W, 1e-6)
	assert.True(t, TransformCreate().GetLocal().IsIdentity(K_FLOAT_EPSILON))
}

func TestExtents(t *testing.T) {
	e := NewExtentsFromPoints([]Vec3{{1, -1, 0}, {-3, 2, 5}, {0, 0, -1}})
	assert.Equal(t, Vec3{-3, -1, -1}, e.Min)
	assert.Equal(t, Vec3{1, 2, 5}, e.Max)
	assert.Equal(t, Vec3{-1, 0.5, 2}, e.Center())
	assert.Equal(t, Vec3{4, 3, 6}, e.Size())
	assert.Equal(t, Extents3D{}, NewExtentsFromPoints(nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, "b", Clamp("b", "a", "c"))
	assert.InDelta(t, 180, RadToDeg(DegToRad(180)), 1e-4)
}
