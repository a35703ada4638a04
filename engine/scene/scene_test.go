package scene

import (
	"testing"

	"github.com/spaghettifunk/anima/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle(name string, material uint32) *Mesh {
	return &Mesh{
		Name:           name,
		PrimitiveTypes: PrimitiveTriangle,
		Vertices:       []math.Vec3{{X: -1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 2, Z: -1}},
		Normals:        []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
		Faces:          []Face{{Indices: []uint32{0, 1, 2}}},
		MaterialIndex:  material,
	}
}

func testScene() *Scene {
	s := New("test.obj")
	s.Meshes = []*Mesh{triangle("a", 0), triangle("b", 1)}
	s.Materials = []*Material{{}, testMaterial()}
	s.Textures = []*Texture{{Filename: "emb.png", FormatHint: "png", Data: []byte{1, 2, 3}, Width: 3}}

	root := &Node{Name: "root", Transform: math.NewMat4Translation(math.Vec3{X: 1})}
	child := &Node{Name: "child", Parent: root, MeshIndices: []uint32{0, 1}, Transform: math.NewMat4Translation(math.Vec3{Y: 2})}
	leaf := &Node{Name: "leaf", Parent: child, Transform: math.NewMat4Identity()}
	other := &Node{Name: "other", Parent: root, MeshIndices: []uint32{5}, Transform: math.NewMat4Identity()}
	child.Children = []*Node{leaf}
	root.Children = []*Node{child, other}
	s.Root = root
	return s
}

func TestSceneCounts(t *testing.T) {
	s := testScene()

	assert.Equal(t, 2, s.NumMeshes())
	assert.Equal(t, 6, s.NumVertices())
	assert.Equal(t, 2, s.NumFaces())
	assert.Nil(t, s.Mesh(2))
	assert.Nil(t, s.Mesh(-1))
	assert.Equal(t, "brick", s.MaterialOf(s.Mesh(1)).Name())
	assert.NotEqual(t, New("test.obj").ID, s.ID)
	assert.False(t, s.Incomplete())
	assert.Contains(t, s.String(), "2 meshes")
}

func TestSceneHierarchy(t *testing.T) {
	s := testScene()

	var order []string
	s.Walk(func(n *Node) bool {
		order = append(order, n.Name)
		return true
	})
	assert.Equal(t, []string{"root", "child", "leaf", "other"}, order)

	order = order[:0]
	s.Walk(func(n *Node) bool {
		order = append(order, n.Name)
		return n.Name != "child"
	})
	assert.Equal(t, []string{"root", "child", "other"}, order)

	leaf := s.FindNode("leaf")
	require.NotNil(t, leaf)
	assert.Equal(t, 2, leaf.Depth())
	assert.Nil(t, s.FindNode("missing"))

	world := leaf.WorldTransform()
	assert.True(t, world.Translation().Compare(math.Vec3{X: 1, Y: 2}, 1e-6))

	assert.Len(t, s.MeshesOf(s.FindNode("child")), 2)
	assert.Empty(t, s.MeshesOf(s.FindNode("other")), "dangling indices are skipped")
}

func TestSceneTextureLookup(t *testing.T) {
	s := testScene()

	assert.Same(t, s.Textures[0], s.Texture("*0"))
	assert.Same(t, s.Textures[0], s.Texture("emb.png"))
	assert.Same(t, s.Textures[0], s.Texture("textures/emb.png"))
	assert.Nil(t, s.Texture("*3"))
	assert.Nil(t, s.Texture("*x"))
	assert.Nil(t, s.Texture("disk.png"))
	assert.True(t, s.Textures[0].IsCompressed())
	assert.True(t, s.Textures[0].CheckFormat(".PNG"))
}

func TestMeshAccessors(t *testing.T) {
	m := triangle("t", 0)
	m.TexCoords[0] = []math.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1, Z: 9}}
	m.UVComponents[0] = 2

	assert.True(t, m.HasPositions())
	assert.True(t, m.HasNormals())
	assert.False(t, m.HasTangents())
	assert.True(t, m.HasTexCoords(0))
	assert.False(t, m.HasTexCoords(1))
	assert.False(t, m.HasTexCoords(MaxTexCoords))
	assert.False(t, m.HasColors(0))
	assert.Equal(t, 1, m.NumUVChannels())
	assert.Equal(t, 0, m.NumColorChannels())
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices())
	assert.True(t, m.IsTriangulated())
	assert.Equal(t, math.Vec2{X: 0.5, Y: 1}, m.TexCoords2D(0)[2])
	assert.Nil(t, m.TexCoords2D(3))

	e := m.Extents()
	assert.Equal(t, math.Vec3{X: -1, Y: 0, Z: -1}, e.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 0}, e.Max)
	assert.Equal(t, "Triangle", m.PrimitiveTypes.String())

	m.Faces = append(m.Faces, Face{Indices: []uint32{0, 1}})
	assert.False(t, m.IsTriangulated())
}

func TestAnimationLookup(t *testing.T) {
	a := &Animation{
		Name:     "walk",
		Duration: 50,
		Channels: []*NodeAnim{
			{NodeName: "hip", PositionKeys: []VectorKey{{Time: 0}, {Time: 50}}},
			{NodeName: "knee"},
		},
		MeshChannels: []*MeshAnim{{Name: "body", Keys: []MeshKey{{Time: 1, Value: 2}}}},
	}

	require.NotNil(t, a.FindNodeAnim("knee"))
	assert.Nil(t, a.FindNodeAnim("elbow"))
	assert.Equal(t, uint32(2), a.FindMeshAnim("body").Keys[0].Value)
	assert.Equal(t, 2.0, a.DurationSeconds())

	a.TicksPerSecond = 100
	assert.Equal(t, 0.5, a.DurationSeconds())
	assert.Equal(t, "Repeat", AnimBehaviourRepeat.String())
}

func TestMetadata(t *testing.T) {
	md := Metadata{
		{Key: "UnitScaleFactor", Value: float64(2.54)},
		{Key: "UpAxis", Value: int32(1)},
		{Key: "Author", Value: "someone"},
		{Key: "Visible", Value: true},
		{Key: "Offset", Value: math.Vec3{X: 1}},
	}

	f, ok := md.GetFloat("UnitScaleFactor")
	require.True(t, ok)
	assert.Equal(t, 2.54, f)

	i, ok := md.GetInt("UpAxis")
	require.True(t, ok)
	assert.Equal(t, int64(1), i)

	s, ok := md.GetString("Author")
	require.True(t, ok)
	assert.Equal(t, "someone", s)

	b, ok := md.GetBool("Visible")
	require.True(t, ok)
	assert.True(t, b)

	v, ok := md.GetVec3("Offset")
	require.True(t, ok)
	assert.Equal(t, float32(1), v.X)

	_, ok = md.GetInt("Author")
	assert.False(t, ok)
	_, ok = md.Get("missing")
	assert.False(t, ok)
}

func TestSceneFlagsString(t *testing.T) {
	assert.Equal(t, "None", SceneFlags(0).String())
	assert.Equal(t, "Incomplete|Validated", (SceneFlagsIncomplete | SceneFlagsValidated).String())
	assert.Equal(t, "Terrain|0x100", (SceneFlagsTerrain | 0x100).String())
}
