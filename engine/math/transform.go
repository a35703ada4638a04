package math

import "github.com/go-gl/mathgl/mgl32"

func TransformCreate() Transform {
	return TransformFromPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3One())
}

func TransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
	}
}

// TransformFromMat4 splits an affine matrix into translation, rotation and
// scale. Shear is not representable and is dropped.
func TransformFromMat4(mt Mat4) Transform {
	gm := mgl32.Mat4(mt.Data)
	sx, sy, sz := mgl32.Extract3DScale(gm)

	rot := gm
	for row, s := range [3]float32{sx, sy, sz} {
		if s == 0 {
			continue
		}
		for col := 0; col < 3; col++ {
			rot[row*4+col] /= s
		}
	}
	rot[12], rot[13], rot[14] = 0, 0, 0

	q := mgl32.Mat4ToQuat(rot).Normalize()
	return Transform{
		Position: mt.Translation(),
		Rotation: Quaternion{q.V[0], q.V[1], q.V[2], q.W},
		Scale:    Vec3{sx, sy, sz},
	}
}

// GetLocal rebuilds the matrix as scale, then rotation, then translation.
func (t Transform) GetLocal() Mat4 {
	s := NewMat4Scale(t.Scale)
	r := t.Rotation.ToMat4()
	tr := NewMat4Translation(t.Position)
	return s.Mul(r).Mul(tr)
}
