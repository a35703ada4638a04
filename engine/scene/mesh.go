package scene

import (
	"strings"

	"github.com/spaghettifunk/anima/engine/math"
)

const (
	// MaxColorSets is AI_MAX_NUMBER_OF_COLOR_SETS.
	MaxColorSets = 8
	// MaxTexCoords is AI_MAX_NUMBER_OF_TEXTURECOORDS.
	MaxTexCoords = 8
)

// PrimitiveType is a bit set of the primitive kinds found in a mesh.
type PrimitiveType uint32

const (
	PrimitivePoint    PrimitiveType = 0x1
	PrimitiveLine     PrimitiveType = 0x2
	PrimitiveTriangle PrimitiveType = 0x4
	PrimitivePolygon  PrimitiveType = 0x8
	// PrimitiveNGONEncoding marks meshes whose polygons were triangulated
	// with the ngon encoding.
	PrimitiveNGONEncoding PrimitiveType = 0x10
)

func (p PrimitiveType) String() string {
	var parts []string
	for _, n := range []struct {
		t    PrimitiveType
		name string
	}{
		{PrimitivePoint, "Point"},
		{PrimitiveLine, "Line"},
		{PrimitiveTriangle, "Triangle"},
		{PrimitivePolygon, "Polygon"},
		{PrimitiveNGONEncoding, "NGONEncoding"},
	} {
		if p&n.t != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// Face is a single primitive. Triangles have three indices after the
// Triangulate step; points and lines have one and two.
type Face struct {
	Indices []uint32
}

type VertexWeight struct {
	VertexID uint32
	Weight   float32
}

// Bone binds a node of the hierarchy to the vertices it influences.
type Bone struct {
	Name    string
	Weights []VertexWeight
	// Offset transforms from mesh space to bone space in bind pose.
	Offset math.Mat4
}

// Mesh is a copy of a native mesh. Every per-vertex slice that is present has
// exactly NumVertices entries; absent channels are nil.
type Mesh struct {
	Name           string
	PrimitiveTypes PrimitiveType
	Vertices       []math.Vec3
	Normals        []math.Vec3
	Tangents       []math.Vec3
	Bitangents     []math.Vec3
	Colors         [MaxColorSets][]math.Vec4
	TexCoords      [MaxTexCoords][]math.Vec3
	// UVComponents holds 2 for UV, 3 for UVW and 1 for U-only channels.
	UVComponents  [MaxTexCoords]uint32
	Faces         []Face
	Bones         []*Bone
	MaterialIndex uint32
}

func (m *Mesh) NumVertices() int {
	return len(m.Vertices)
}

func (m *Mesh) NumFaces() int {
	return len(m.Faces)
}

func (m *Mesh) HasPositions() bool {
	return len(m.Vertices) > 0
}

func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

func (m *Mesh) HasTangents() bool {
	return len(m.Tangents) > 0 && len(m.Bitangents) > 0
}

func (m *Mesh) HasBones() bool {
	return len(m.Bones) > 0
}

func (m *Mesh) HasTexCoords(channel int) bool {
	if channel < 0 || channel >= MaxTexCoords {
		return false
	}
	return len(m.TexCoords[channel]) > 0
}

func (m *Mesh) HasColors(channel int) bool {
	if channel < 0 || channel >= MaxColorSets {
		return false
	}
	return len(m.Colors[channel]) > 0
}

// NumUVChannels counts the leading texture coordinate channels that are set.
func (m *Mesh) NumUVChannels() int {
	n := 0
	for n < MaxTexCoords && m.HasTexCoords(n) {
		n++
	}
	return n
}

// NumColorChannels counts the leading vertex colour channels that are set.
func (m *Mesh) NumColorChannels() int {
	n := 0
	for n < MaxColorSets && m.HasColors(n) {
		n++
	}
	return n
}

// TexCoords2D drops the W component of a texture coordinate channel.
func (m *Mesh) TexCoords2D(channel int) []math.Vec2 {
	if !m.HasTexCoords(channel) {
		return nil
	}
	out := make([]math.Vec2, len(m.TexCoords[channel]))
	for i, uv := range m.TexCoords[channel] {
		out[i] = math.Vec2{X: uv.X, Y: uv.Y}
	}
	return out
}

// Indices flattens the faces into a single index list, in face order.
func (m *Mesh) Indices() []uint32 {
	n := 0
	for _, f := range m.Faces {
		n += len(f.Indices)
	}
	out := make([]uint32, 0, n)
	for _, f := range m.Faces {
		out = append(out, f.Indices...)
	}
	return out
}

// IsTriangulated reports whether every face has exactly three indices.
func (m *Mesh) IsTriangulated() bool {
	for _, f := range m.Faces {
		if len(f.Indices) != 3 {
			return false
		}
	}
	return len(m.Faces) > 0
}

// Extents returns the axis aligned bounding box of the vertex positions.
func (m *Mesh) Extents() math.Extents3D {
	return math.NewExtentsFromPoints(m.Vertices)
}

// FindBone returns the bone called name.
func (m *Mesh) FindBone(name string) *Bone {
	for _, b := range m.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}
