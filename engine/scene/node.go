package scene

import (
	"github.com/spaghettifunk/anima/engine/math"
)

// Node is an element of the transform hierarchy. Each node references zero
// or more meshes of the owning scene by index.
type Node struct {
	Name string
	// Transform is relative to the parent node.
	Transform   math.Mat4
	Parent      *Node
	Children    []*Node
	MeshIndices []uint32
	Metadata    Metadata
}

// Find returns the first node called name in the subtree rooted at n.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(n *Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Depth is 0 for the root.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// WorldTransform concatenates the transforms from the root down to n.
func (n *Node) WorldTransform() math.Mat4 {
	if n == nil {
		return math.NewMat4Identity()
	}
	l := n.Transform
	if n.Parent != nil {
		return l.Mul(n.Parent.WorldTransform())
	}
	return l
}

// Decompose splits the local transform into position, rotation and scale.
func (n *Node) Decompose() math.Transform {
	return math.TransformFromMat4(n.Transform)
}
