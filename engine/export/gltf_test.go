package export

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima/engine/assimp"
	amath "github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/scene"
)

func colorProp(key string, values ...float32) *scene.MaterialProperty {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.NativeEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return &scene.MaterialProperty{Key: key, Type: scene.PropertyTypeFloat, Data: data}
}

func quadScene() *scene.Scene {
	sc := scene.New("quad")
	quad := &scene.Mesh{
		Name: "quad",
		Vertices: []amath.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		},
		Normals: []amath.Vec3{
			{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1},
		},
		Faces: []scene.Face{
			{Indices: []uint32{0, 1, 2}},
			{Indices: []uint32{0, 2, 3}},
		},
	}
	quad.TexCoords[0] = []amath.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	lines := &scene.Mesh{
		Name:     "wire",
		Vertices: []amath.Vec3{{}, {X: 1}},
		Faces:    []scene.Face{{Indices: []uint32{0, 1}}},
	}
	sc.Meshes = []*scene.Mesh{quad, lines, quad}
	sc.Materials = []*scene.Material{{Properties: []*scene.MaterialProperty{
		colorProp(scene.KeyColorDiffuse, 1, 0, 0),
		colorProp(scene.KeyOpacity, 0.5),
	}}}

	root := &scene.Node{Name: "root", Transform: amath.NewMat4Identity()}
	child := &scene.Node{
		Name:        "child",
		Transform:   amath.NewMat4Translation(amath.Vec3{X: 2, Y: 3, Z: 4}),
		Parent:      root,
		MeshIndices: []uint32{0, 1, 2},
	}
	root.Children = []*scene.Node{child}
	sc.Root = root
	return sc
}

func TestDocument(t *testing.T) {
	doc, err := Document(quadScene())
	require.NoError(t, err)

	// The line-only mesh has no primitive.
	require.Len(t, doc.Meshes, 2)
	prim := doc.Meshes[0].Primitives[0]
	assert.Contains(t, prim.Attributes, gltf.POSITION)
	assert.Contains(t, prim.Attributes, gltf.NORMAL)
	assert.Contains(t, prim.Attributes, gltf.TEXCOORD_0)
	require.NotNil(t, prim.Indices)
	assert.Equal(t, 6, doc.Accessors[*prim.Indices].Count)
	require.NotNil(t, prim.Material)
	assert.Equal(t, 0, *prim.Material)

	require.Len(t, doc.Materials, 1)
	mat := doc.Materials[0]
	assert.Equal(t, [4]float64{1, 0, 0, 0.5}, *mat.PBRMetallicRoughness.BaseColorFactor)
	assert.Equal(t, gltf.AlphaBlend, mat.AlphaMode)

	// root, child and one extra node for the second mesh of child.
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, []int{0}, doc.Scenes[0].Nodes)
	child := doc.Nodes[1]
	assert.Equal(t, "child", child.Name)
	assert.Equal(t, []int{2}, child.Children)
	assert.Equal(t, 2.0, child.Matrix[12])
	assert.Equal(t, 3.0, child.Matrix[13])
	assert.Equal(t, 4.0, child.Matrix[14])
	assert.Equal(t, "child#1", doc.Nodes[2].Name)
}

func TestDocumentEmpty(t *testing.T) {
	_, err := Document(nil)
	assert.ErrorIs(t, err, ErrEmptyScene)

	_, err = Document(scene.New("empty"))
	assert.ErrorIs(t, err, ErrEmptyScene)
}

func TestWriteGLTF(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"quad.gltf", "quad.glb"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteGLTF(quadScene(), path))

		doc, err := gltf.Open(path)
		require.NoError(t, err, name)
		assert.Len(t, doc.Meshes, 2, name)
		assert.Len(t, doc.Nodes, 3, name)
	}
}

func TestWriteImportedModel(t *testing.T) {
	imp, err := assimp.NewImporter()
	require.NoError(t, err)
	defer imp.Close()

	sc, err := imp.Import("../assimp/testdata/cube.obj", assimp.ProcessTriangulate|assimp.ProcessJoinIdenticalVertices)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cube.glb")
	require.NoError(t, WriteGLTF(sc, path))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[0].Primitives[0]
	assert.Equal(t, 36, doc.Accessors[*prim.Indices].Count)
	assert.Equal(t, 8, doc.Accessors[prim.Attributes[gltf.POSITION]].Count)
}
