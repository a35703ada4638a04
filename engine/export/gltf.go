// Package export writes imported scenes back out as glTF 2.0.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/scene"
)

var ErrEmptyScene = errors.New("scene has no root node")

// WriteGLTF saves sc at path. A .glb extension selects the binary
// container; anything else writes JSON with the buffers embedded.
func WriteGLTF(sc *scene.Scene, path string) error {
	doc, err := Document(sc)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	core.LogInfo("wrote %s (%d meshes, %d nodes)", path, len(doc.Meshes), len(doc.Nodes))
	return nil
}

// Document converts sc to a glTF document. Only triangles are kept: points
// and lines are dropped and meshes left without faces get no primitive.
// Texture coordinates of the first channel are flipped to glTF's top-left
// origin.
func Document(sc *scene.Scene) (*gltf.Document, error) {
	if sc == nil || sc.Root == nil {
		return nil, ErrEmptyScene
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "anima-import"

	for _, mat := range sc.Materials {
		doc.Materials = append(doc.Materials, convertMaterial(mat))
	}

	meshes := make([]*int, len(sc.Meshes))
	for i, m := range sc.Meshes {
		prim, ok := writePrimitive(doc, m)
		if !ok {
			core.LogDebug("mesh %d (%s) has no triangles, skipped", i, m.Name)
			continue
		}
		if int(m.MaterialIndex) < len(doc.Materials) {
			prim.Material = gltf.Index(int(m.MaterialIndex))
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       m.Name,
			Primitives: []*gltf.Primitive{prim},
		})
		meshes[i] = gltf.Index(len(doc.Meshes) - 1)
	}

	root := writeNode(doc, sc.Root, meshes)
	doc.Scenes[0].Name = sc.Name
	doc.Scenes[0].Nodes = []int{root}
	return doc, nil
}

func writePrimitive(doc *gltf.Document, m *scene.Mesh) (*gltf.Primitive, bool) {
	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		if len(f.Indices) == 3 {
			indices = append(indices, f.Indices...)
		}
	}
	if len(indices) == 0 || !m.HasPositions() {
		return nil, false
	}

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{v.X, v.Y, v.Z}
	}
	attributes := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, positions),
	}

	if m.HasNormals() {
		normals := make([][3]float32, len(m.Normals))
		for i, n := range m.Normals {
			normals[i] = [3]float32{n.X, n.Y, n.Z}
		}
		attributes[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}

	if m.HasTexCoords(0) {
		uvs := make([][2]float32, len(m.TexCoords[0]))
		for i, uv := range m.TexCoords[0] {
			uvs[i] = [2]float32{uv.X, 1 - uv.Y}
		}
		attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvs)
	}

	return &gltf.Primitive{
		Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
		Attributes: attributes,
	}, true
}

// writeNode appends n and its subtree and returns the index of n. glTF
// nodes carry a single mesh, so nodes with more than one get a child node
// per extra mesh.
func writeNode(doc *gltf.Document, n *scene.Node, meshes []*int) int {
	node := &gltf.Node{
		Name:   n.Name,
		Matrix: toMatrix(n.Transform),
	}
	idx := len(doc.Nodes)
	doc.Nodes = append(doc.Nodes, node)

	var extra []*int
	for _, mi := range n.MeshIndices {
		if int(mi) >= len(meshes) || meshes[mi] == nil {
			continue
		}
		if node.Mesh == nil {
			node.Mesh = meshes[mi]
		} else {
			extra = append(extra, meshes[mi])
		}
	}
	for i, m := range extra {
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   fmt.Sprintf("%s#%d", n.Name, i+1),
			Matrix: gltf.DefaultMatrix,
			Mesh:   m,
		})
		node.Children = append(node.Children, len(doc.Nodes)-1)
	}

	for _, c := range n.Children {
		node.Children = append(node.Children, writeNode(doc, c, meshes))
	}
	return idx
}

// toMatrix relies on math.Mat4 sharing glTF's column-major element order.
func toMatrix(m math.Mat4) [16]float64 {
	var out [16]float64
	for i, v := range m.Data {
		out[i] = float64(v)
	}
	return out
}

func convertMaterial(mat *scene.Material) *gltf.Material {
	base := [4]float64{1, 1, 1, 1}
	if c, ok := mat.Color4(scene.KeyBaseColor); ok {
		base = [4]float64{float64(c.X), float64(c.Y), float64(c.Z), float64(c.W)}
	} else if c, ok := mat.Color3(scene.KeyColorDiffuse); ok {
		base = [4]float64{float64(c.X), float64(c.Y), float64(c.Z), 1}
	}
	base[3] = math.Clamp(base[3]*float64(mat.Opacity()), 0, 1)

	out := &gltf.Material{
		Name:        mat.Name(),
		DoubleSided: mat.TwoSided(),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &base,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}
	if base[3] < 1 {
		out.AlphaMode = gltf.AlphaBlend
	}
	return out
}
