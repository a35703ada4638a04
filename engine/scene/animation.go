package scene

import "github.com/spaghettifunk/anima/engine/math"

// AnimBehaviour defines how a channel behaves outside its key range.
type AnimBehaviour uint32

const (
	// AnimBehaviourDefault takes the value from the node's default transform.
	AnimBehaviourDefault AnimBehaviour = 0x0
	// AnimBehaviourConstant holds the nearest key value.
	AnimBehaviourConstant AnimBehaviour = 0x1
	// AnimBehaviourLinear extrapolates from the nearest two keys.
	AnimBehaviourLinear AnimBehaviour = 0x2
	// AnimBehaviourRepeat loops the animation.
	AnimBehaviourRepeat AnimBehaviour = 0x3
)

func (b AnimBehaviour) String() string {
	switch b {
	case AnimBehaviourDefault:
		return "Default"
	case AnimBehaviourConstant:
		return "Constant"
	case AnimBehaviourLinear:
		return "Linear"
	case AnimBehaviourRepeat:
		return "Repeat"
	}
	return "Unknown"
}

// VectorKey is a time-value pair for position and scaling keys. Time is in
// ticks.
type VectorKey struct {
	Time  float64
	Value math.Vec3
}

type QuatKey struct {
	Time  float64
	Value math.Quaternion
}

// MeshKey selects one of the anim meshes of the targeted mesh.
type MeshKey struct {
	Time  float64
	Value uint32
}

// NodeAnim animates the transform of the node called NodeName.
type NodeAnim struct {
	NodeName     string
	PositionKeys []VectorKey
	RotationKeys []QuatKey
	ScalingKeys  []VectorKey
	PreState     AnimBehaviour
	PostState    AnimBehaviour
}

// MeshAnim animates the vertices of the mesh called Name.
type MeshAnim struct {
	Name string
	Keys []MeshKey
}

type Animation struct {
	Name string
	// Duration in ticks.
	Duration float64
	// TicksPerSecond is 0 when the file does not specify it.
	TicksPerSecond float64
	Channels       []*NodeAnim
	MeshChannels   []*MeshAnim
}

// FindNodeAnim returns the channel targeting the node called name.
func (a *Animation) FindNodeAnim(name string) *NodeAnim {
	for _, c := range a.Channels {
		if c.NodeName == name {
			return c
		}
	}
	return nil
}

// FindMeshAnim returns the channel targeting the mesh called name.
func (a *Animation) FindMeshAnim(name string) *MeshAnim {
	for _, c := range a.MeshChannels {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// DurationSeconds converts Duration using TicksPerSecond, assuming 25 ticks
// per second when the file leaves it unset.
func (a *Animation) DurationSeconds() float64 {
	tps := a.TicksPerSecond
	if tps == 0 {
		tps = 25
	}
	return a.Duration / tps
}
