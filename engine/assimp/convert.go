package assimp

/*
#include <assimp/scene.h>
*/
import "C"

import (
	"unsafe"

	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/scene"
)

// Native aiMetadataType values.
const (
	metadataBool     = 0
	metadataInt32    = 1
	metadataUint64   = 2
	metadataFloat    = 3
	metadataDouble   = 4
	metadataString   = 5
	metadataVector3D = 6
	metadataMetadata = 7
	metadataInt64    = 8
	metadataUint32   = 9
)

func vec3(v C.struct_aiVector3D) math.Vec3 {
	return math.Vec3{X: float32(v.x), Y: float32(v.y), Z: float32(v.z)}
}

func vec3s(ptr *C.struct_aiVector3D, n C.uint) []math.Vec3 {
	src := cSlice(ptr, n)
	if src == nil {
		return nil
	}
	out := make([]math.Vec3, len(src))
	for i, v := range src {
		out[i] = vec3(v)
	}
	return out
}

func color3(c C.struct_aiColor3D) math.Vec3 {
	return math.Vec3{X: float32(c.r), Y: float32(c.g), Z: float32(c.b)}
}

func quat(q C.struct_aiQuaternion) math.Quaternion {
	return math.Quaternion{X: float32(q.x), Y: float32(q.y), Z: float32(q.z), W: float32(q.w)}
}

func mat4(m *C.struct_aiMatrix4x4) math.Mat4 {
	return math.NewMat4FromRowMajor([16]float32{
		float32(m.a1), float32(m.a2), float32(m.a3), float32(m.a4),
		float32(m.b1), float32(m.b2), float32(m.b3), float32(m.b4),
		float32(m.c1), float32(m.c2), float32(m.c3), float32(m.c4),
		float32(m.d1), float32(m.d2), float32(m.d3), float32(m.d4),
	})
}

// convertScene deep-copies cs. Nothing in the result points into native
// memory, so cs may be released as soon as this returns.
func convertScene(cs *C.struct_aiScene, source string) *scene.Scene {
	sc := scene.New(source)
	sc.Name = goString(&cs.mName)
	sc.Flags = scene.SceneFlags(cs.mFlags)

	for _, cm := range cSlice(cs.mMeshes, cs.mNumMeshes) {
		sc.Meshes = append(sc.Meshes, convertMesh(cm))
	}
	for _, cm := range cSlice(cs.mMaterials, cs.mNumMaterials) {
		sc.Materials = append(sc.Materials, convertMaterial(cm))
	}
	for _, ca := range cSlice(cs.mAnimations, cs.mNumAnimations) {
		sc.Animations = append(sc.Animations, convertAnimation(ca))
	}
	for _, ct := range cSlice(cs.mTextures, cs.mNumTextures) {
		sc.Textures = append(sc.Textures, convertTexture(ct))
	}
	for _, cl := range cSlice(cs.mLights, cs.mNumLights) {
		sc.Lights = append(sc.Lights, convertLight(cl))
	}
	for _, cc := range cSlice(cs.mCameras, cs.mNumCameras) {
		sc.Cameras = append(sc.Cameras, convertCamera(cc))
	}
	sc.Metadata = convertMetadata(cs.mMetaData)
	if cs.mRootNode != nil {
		sc.Root = convertNode(cs.mRootNode, nil)
	}
	return sc
}

func convertNode(cn *C.struct_aiNode, parent *scene.Node) *scene.Node {
	n := &scene.Node{
		Name:      goString(&cn.mName),
		Transform: mat4(&cn.mTransformation),
		Parent:    parent,
		Metadata:  convertMetadata(cn.mMetaData),
	}
	for _, idx := range cSlice(cn.mMeshes, cn.mNumMeshes) {
		n.MeshIndices = append(n.MeshIndices, uint32(idx))
	}
	for _, child := range cSlice(cn.mChildren, cn.mNumChildren) {
		n.Children = append(n.Children, convertNode(child, n))
	}
	return n
}

func convertMesh(cm *C.struct_aiMesh) *scene.Mesh {
	m := &scene.Mesh{
		Name:           goString(&cm.mName),
		PrimitiveTypes: scene.PrimitiveType(cm.mPrimitiveTypes),
		MaterialIndex:  uint32(cm.mMaterialIndex),
	}

	n := cm.mNumVertices
	m.Vertices = vec3s(cm.mVertices, n)
	m.Normals = vec3s(cm.mNormals, n)
	m.Tangents = vec3s(cm.mTangents, n)
	m.Bitangents = vec3s(cm.mBitangents, n)

	for i := 0; i < scene.MaxColorSets; i++ {
		colors := cSlice(cm.mColors[i], n)
		if colors == nil {
			continue
		}
		m.Colors[i] = make([]math.Vec4, len(colors))
		for j, c := range colors {
			m.Colors[i][j] = math.Vec4{X: float32(c.r), Y: float32(c.g), Z: float32(c.b), W: float32(c.a)}
		}
	}
	for i := 0; i < scene.MaxTexCoords; i++ {
		if cm.mTextureCoords[i] == nil {
			continue
		}
		m.TexCoords[i] = vec3s(cm.mTextureCoords[i], n)
		m.UVComponents[i] = uint32(cm.mNumUVComponents[i])
	}

	faces := cSlice(cm.mFaces, cm.mNumFaces)
	m.Faces = make([]scene.Face, len(faces))
	for i, f := range faces {
		indices := cSlice(f.mIndices, f.mNumIndices)
		m.Faces[i].Indices = make([]uint32, len(indices))
		for j, idx := range indices {
			m.Faces[i].Indices[j] = uint32(idx)
		}
	}

	for _, cb := range cSlice(cm.mBones, cm.mNumBones) {
		b := &scene.Bone{
			Name:   goString(&cb.mName),
			Offset: mat4(&cb.mOffsetMatrix),
		}
		weights := cSlice(cb.mWeights, cb.mNumWeights)
		b.Weights = make([]scene.VertexWeight, len(weights))
		for i, w := range weights {
			b.Weights[i] = scene.VertexWeight{VertexID: uint32(w.mVertexId), Weight: float32(w.mWeight)}
		}
		m.Bones = append(m.Bones, b)
	}
	return m
}

func convertMaterial(cm *C.struct_aiMaterial) *scene.Material {
	props := cSlice(cm.mProperties, cm.mNumProperties)
	m := &scene.Material{Properties: make([]*scene.MaterialProperty, 0, len(props))}
	for _, cp := range props {
		m.Properties = append(m.Properties, &scene.MaterialProperty{
			Key:      goString(&cp.mKey),
			Semantic: scene.TextureType(cp.mSemantic),
			Index:    uint32(cp.mIndex),
			Type:     scene.PropertyTypeInfo(cp.mType),
			Data:     C.GoBytes(unsafe.Pointer(cp.mData), C.int(cp.mDataLength)),
		})
	}
	return m
}

func convertTexture(ct *C.struct_aiTexture) *scene.Texture {
	t := &scene.Texture{
		Filename:   goString(&ct.mFilename),
		Width:      uint32(ct.mWidth),
		Height:     uint32(ct.mHeight),
		FormatHint: C.GoString(&ct.achFormatHint[0]),
	}
	size := int(ct.mWidth)
	if ct.mHeight != 0 {
		size = int(ct.mWidth) * int(ct.mHeight) * 4
	}
	if ct.pcData != nil && size > 0 {
		t.Data = C.GoBytes(unsafe.Pointer(ct.pcData), C.int(size))
	}
	return t
}

func convertAnimation(ca *C.struct_aiAnimation) *scene.Animation {
	a := &scene.Animation{
		Name:           goString(&ca.mName),
		Duration:       float64(ca.mDuration),
		TicksPerSecond: float64(ca.mTicksPerSecond),
	}
	for _, cc := range cSlice(ca.mChannels, ca.mNumChannels) {
		na := &scene.NodeAnim{
			NodeName:  goString(&cc.mNodeName),
			PreState:  scene.AnimBehaviour(cc.mPreState),
			PostState: scene.AnimBehaviour(cc.mPostState),
		}
		for _, k := range cSlice(cc.mPositionKeys, cc.mNumPositionKeys) {
			na.PositionKeys = append(na.PositionKeys, scene.VectorKey{Time: float64(k.mTime), Value: vec3(k.mValue)})
		}
		for _, k := range cSlice(cc.mRotationKeys, cc.mNumRotationKeys) {
			na.RotationKeys = append(na.RotationKeys, scene.QuatKey{Time: float64(k.mTime), Value: quat(k.mValue)})
		}
		for _, k := range cSlice(cc.mScalingKeys, cc.mNumScalingKeys) {
			na.ScalingKeys = append(na.ScalingKeys, scene.VectorKey{Time: float64(k.mTime), Value: vec3(k.mValue)})
		}
		a.Channels = append(a.Channels, na)
	}
	for _, cc := range cSlice(ca.mMeshChannels, ca.mNumMeshChannels) {
		ma := &scene.MeshAnim{Name: goString(&cc.mName)}
		for _, k := range cSlice(cc.mKeys, cc.mNumKeys) {
			ma.Keys = append(ma.Keys, scene.MeshKey{Time: float64(k.mTime), Value: uint32(k.mValue)})
		}
		a.MeshChannels = append(a.MeshChannels, ma)
	}
	return a
}

func convertLight(cl *C.struct_aiLight) *scene.Light {
	return &scene.Light{
		Name:                 goString(&cl.mName),
		Type:                 scene.LightSourceType(cl.mType),
		Position:             vec3(cl.mPosition),
		Direction:            vec3(cl.mDirection),
		Up:                   vec3(cl.mUp),
		AttenuationConstant:  float32(cl.mAttenuationConstant),
		AttenuationLinear:    float32(cl.mAttenuationLinear),
		AttenuationQuadratic: float32(cl.mAttenuationQuadratic),
		ColorDiffuse:         color3(cl.mColorDiffuse),
		ColorSpecular:        color3(cl.mColorSpecular),
		ColorAmbient:         color3(cl.mColorAmbient),
		AngleInnerCone:       float32(cl.mAngleInnerCone),
		AngleOuterCone:       float32(cl.mAngleOuterCone),
		Size:                 math.Vec2{X: float32(cl.mSize.x), Y: float32(cl.mSize.y)},
	}
}

func convertCamera(cc *C.struct_aiCamera) *scene.Camera {
	return &scene.Camera{
		Name:          goString(&cc.mName),
		Position:      vec3(cc.mPosition),
		Up:            vec3(cc.mUp),
		LookAt:        vec3(cc.mLookAt),
		HorizontalFOV: float32(cc.mHorizontalFOV),
		ClipPlaneNear: float32(cc.mClipPlaneNear),
		ClipPlaneFar:  float32(cc.mClipPlaneFar),
		Aspect:        float32(cc.mAspect),
	}
}

func convertMetadata(md *C.struct_aiMetadata) scene.Metadata {
	if md == nil {
		return nil
	}
	keys := cSlice(md.mKeys, md.mNumProperties)
	values := cSlice(md.mValues, md.mNumProperties)
	out := make(scene.Metadata, 0, len(keys))
	for i := range keys {
		v, ok := metadataValue(&values[i])
		if !ok {
			continue
		}
		out = append(out, scene.MetadataEntry{Key: goString(&keys[i]), Value: v})
	}
	return out
}

func metadataValue(e *C.struct_aiMetadataEntry) (interface{}, bool) {
	p := e.mData
	if p == nil {
		return nil, false
	}
	switch uint32(e.mType) {
	case metadataBool:
		return *(*uint8)(p) != 0, true
	case metadataInt32:
		return *(*int32)(p), true
	case metadataUint64:
		return *(*uint64)(p), true
	case metadataFloat:
		return *(*float32)(p), true
	case metadataDouble:
		return *(*float64)(p), true
	case metadataString:
		return goString((*C.struct_aiString)(p)), true
	case metadataVector3D:
		return vec3(*(*C.struct_aiVector3D)(p)), true
	case metadataMetadata:
		return convertMetadata((*C.struct_aiMetadata)(p)), true
	case metadataInt64:
		return *(*int64)(p), true
	case metadataUint32:
		return *(*uint32)(p), true
	}
	return nil, false
}
