// Package scene holds the owned, garbage collected copy of an imported asset.
// Values in this package are filled in once by the native binding and are
// meant to be read, not modified.
package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SceneFlags mirror the AI_SCENE_FLAGS_* bits reported by the native library.
type SceneFlags uint32

const (
	// SceneFlagsIncomplete is set when the scene is missing parts (typically
	// meshes) because the importer was asked to skip them.
	SceneFlagsIncomplete SceneFlags = 0x1
	// SceneFlagsValidated is set by the ValidateDataStructure step on success.
	SceneFlagsValidated SceneFlags = 0x2
	// SceneFlagsValidationWarning is set when validation passed with warnings.
	SceneFlagsValidationWarning SceneFlags = 0x4
	// SceneFlagsNonVerboseFormat means vertices are shared between faces.
	SceneFlagsNonVerboseFormat SceneFlags = 0x8
	// SceneFlagsTerrain marks height-map terrain data.
	SceneFlagsTerrain SceneFlags = 0x10
	// SceneFlagsAllowShared means data may be shared between structures.
	SceneFlagsAllowShared SceneFlags = 0x20
)

var sceneFlagNames = []struct {
	flag SceneFlags
	name string
}{
	{SceneFlagsIncomplete, "Incomplete"},
	{SceneFlagsValidated, "Validated"},
	{SceneFlagsValidationWarning, "ValidationWarning"},
	{SceneFlagsNonVerboseFormat, "NonVerboseFormat"},
	{SceneFlagsTerrain, "Terrain"},
	{SceneFlagsAllowShared, "AllowShared"},
}

func (f SceneFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	rest := f
	for _, n := range sceneFlagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

// Scene is the root of an import. Meshes, materials, textures, lights,
// cameras and animations are stored in the order the native library produced
// them; nodes and meshes refer to each other by index into these slices.
type Scene struct {
	// ID is unique per import, even for repeated imports of the same file.
	ID uuid.UUID
	// Name of the scene as stored in the file, often empty.
	Name string
	// Source is the path or format hint the scene was imported from.
	Source string
	Flags  SceneFlags

	Root       *Node
	Meshes     []*Mesh
	Materials  []*Material
	Animations []*Animation
	Textures   []*Texture
	Lights     []*Light
	Cameras    []*Camera
	Metadata   Metadata
}

// New returns an empty scene with a fresh ID.
func New(source string) *Scene {
	return &Scene{
		ID:     uuid.New(),
		Source: source,
	}
}

func (s *Scene) NumMeshes() int {
	return len(s.Meshes)
}

func (s *Scene) NumMaterials() int {
	return len(s.Materials)
}

func (s *Scene) NumAnimations() int {
	return len(s.Animations)
}

// Mesh returns the mesh at index i, or nil when out of range.
func (s *Scene) Mesh(i int) *Mesh {
	if i < 0 || i >= len(s.Meshes) {
		return nil
	}
	return s.Meshes[i]
}

// Material returns the material at index i, or nil when out of range.
func (s *Scene) Material(i int) *Material {
	if i < 0 || i >= len(s.Materials) {
		return nil
	}
	return s.Materials[i]
}

// MaterialOf returns the material assigned to m.
func (s *Scene) MaterialOf(m *Mesh) *Material {
	if m == nil {
		return nil
	}
	return s.Material(int(m.MaterialIndex))
}

// NumVertices is the sum of the vertex counts of all meshes.
func (s *Scene) NumVertices() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.NumVertices()
	}
	return n
}

// NumFaces is the sum of the face counts of all meshes.
func (s *Scene) NumFaces() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.NumFaces()
	}
	return n
}

// Incomplete reports whether the native library flagged the scene as
// incomplete.
func (s *Scene) Incomplete() bool {
	return s.Flags&SceneFlagsIncomplete != 0
}

// FindNode searches the hierarchy depth first for a node called name.
func (s *Scene) FindNode(name string) *Node {
	if s.Root == nil {
		return nil
	}
	return s.Root.Find(name)
}

// Walk visits every node depth first, parents before children. Returning
// false from fn skips the children of that node.
func (s *Scene) Walk(fn func(n *Node) bool) {
	if s.Root != nil {
		s.Root.Walk(fn)
	}
}

// MeshesOf resolves the mesh indices of n.
func (s *Scene) MeshesOf(n *Node) []*Mesh {
	if n == nil {
		return nil
	}
	out := make([]*Mesh, 0, len(n.MeshIndices))
	for _, idx := range n.MeshIndices {
		if m := s.Mesh(int(idx)); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// Texture resolves a texture path as stored in a material. Embedded textures
// are referenced as "*N"; some formats reference them by file name instead.
// Returns nil for textures that live outside the scene.
func (s *Scene) Texture(path string) *Texture {
	if strings.HasPrefix(path, "*") {
		idx, err := strconv.Atoi(path[1:])
		if err != nil || idx < 0 || idx >= len(s.Textures) {
			return nil
		}
		return s.Textures[idx]
	}
	for _, t := range s.Textures {
		if t.Filename != "" && (t.Filename == path || strings.HasSuffix(path, "/"+t.Filename)) {
			return t
		}
	}
	return nil
}

// Light returns the light attached to the node called name, if any.
func (s *Scene) Light(name string) *Light {
	for _, l := range s.Lights {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Camera returns the camera attached to the node called name, if any.
func (s *Scene) Camera(name string) *Camera {
	for _, c := range s.Cameras {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *Scene) String() string {
	return fmt.Sprintf("scene %q (%d meshes, %d vertices, %d faces, %d materials, %d animations)",
		s.Source, s.NumMeshes(), s.NumVertices(), s.NumFaces(), s.NumMaterials(), s.NumAnimations())
}
