package scene

import "github.com/spaghettifunk/anima/engine/math"

type LightSourceType uint32

const (
	LightSourceUndefined   LightSourceType = 0x0
	LightSourceDirectional LightSourceType = 0x1
	LightSourcePoint       LightSourceType = 0x2
	LightSourceSpot        LightSourceType = 0x3
	LightSourceAmbient     LightSourceType = 0x4
	LightSourceArea        LightSourceType = 0x5
)

func (t LightSourceType) String() string {
	switch t {
	case LightSourceDirectional:
		return "Directional"
	case LightSourcePoint:
		return "Point"
	case LightSourceSpot:
		return "Spot"
	case LightSourceAmbient:
		return "Ambient"
	case LightSourceArea:
		return "Area"
	}
	return "Undefined"
}

// Light is positioned by the node that carries the same name.
type Light struct {
	Name                 string
	Type                 LightSourceType
	Position             math.Vec3
	Direction            math.Vec3
	Up                   math.Vec3
	AttenuationConstant  float32
	AttenuationLinear    float32
	AttenuationQuadratic float32
	ColorDiffuse         math.Vec3
	ColorSpecular        math.Vec3
	ColorAmbient         math.Vec3
	AngleInnerCone       float32
	AngleOuterCone       float32
	Size                 math.Vec2
}

// Camera is positioned by the node that carries the same name.
type Camera struct {
	Name     string
	Position math.Vec3
	Up       math.Vec3
	LookAt   math.Vec3
	// HorizontalFOV is the half angle in radians.
	HorizontalFOV float32
	ClipPlaneNear float32
	ClipPlaneFar  float32
	// Aspect is 0 when the file does not specify it.
	Aspect float32
}
