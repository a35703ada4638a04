package scene

import (
	"encoding/binary"
	"math"

	amath "github.com/spaghettifunk/anima/engine/math"
)

// Standard material keys. Texture keys are combined with a TextureType
// semantic and a texture index.
const (
	KeyName               = "?mat.name"
	KeyTwoSided           = "$mat.twosided"
	KeyShadingModel       = "$mat.shadingm"
	KeyEnableWireframe    = "$mat.wireframe"
	KeyBlendFunc          = "$mat.blend"
	KeyOpacity            = "$mat.opacity"
	KeyTransparency       = "$mat.transparencyfactor"
	KeyBumpScaling        = "$mat.bumpscaling"
	KeyShininess          = "$mat.shininess"
	KeyReflectivity       = "$mat.reflectivity"
	KeyShininessStrength  = "$mat.shinpercent"
	KeyRefractI           = "$mat.refracti"
	KeyColorDiffuse       = "$clr.diffuse"
	KeyColorAmbient       = "$clr.ambient"
	KeyColorSpecular      = "$clr.specular"
	KeyColorEmissive      = "$clr.emissive"
	KeyColorTransparent   = "$clr.transparent"
	KeyColorReflective    = "$clr.reflective"
	KeyGlobalBackground   = "?bg.global"
	KeyBaseColor          = "$clr.base"
	KeyMetallicFactor     = "$mat.metallicFactor"
	KeyRoughnessFactor    = "$mat.roughnessFactor"
	KeyEmissiveIntensity  = "$mat.emissiveIntensity"
	KeyTextureFile        = "$tex.file"
	KeyTextureUVWSource   = "$tex.uvwsrc"
	KeyTextureOp          = "$tex.op"
	KeyTextureMapping     = "$tex.mapping"
	KeyTextureBlend       = "$tex.blend"
	KeyTextureMapModeU    = "$tex.mapmodeu"
	KeyTextureMapModeV    = "$tex.mapmodev"
	KeyTextureMapAxis     = "$tex.mapaxis"
	KeyTextureUVTransform = "$tex.uvtrafo"
	KeyTextureFlags       = "$tex.flags"
)

// TextureOp defines how the Nth texture of a given type is combined with the
// result of all previous layers.
type TextureOp uint32

const (
	// T = T1 * T2
	TextureOpMultiply TextureOp = 0x0
	// T = T1 + T2
	TextureOpAdd TextureOp = 0x1
	// T = T1 - T2
	TextureOpSubtract TextureOp = 0x2
	// T = T1 / T2
	TextureOpDivide TextureOp = 0x3
	// T = (T1 + T2) - (T1 * T2)
	TextureOpSmoothAdd TextureOp = 0x4
	// T = T1 + (T2-0.5)
	TextureOpSignedAdd TextureOp = 0x5
)

func (op TextureOp) String() string {
	switch op {
	case TextureOpMultiply:
		return "Multiply"
	case TextureOpAdd:
		return "Add"
	case TextureOpSubtract:
		return "Subtract"
	case TextureOpDivide:
		return "Divide"
	case TextureOpSmoothAdd:
		return "SmoothAdd"
	case TextureOpSignedAdd:
		return "SignedAdd"
	}
	return "Unknown"
}

// TextureMapMode defines how UV coordinates outside [0, 1] are handled.
type TextureMapMode uint32

const (
	TextureMapModeWrap   TextureMapMode = 0x0
	TextureMapModeClamp  TextureMapMode = 0x1
	TextureMapModeMirror TextureMapMode = 0x2
	// Texels outside [0, 1] are not applied.
	TextureMapModeDecal TextureMapMode = 0x3
)

func (mm TextureMapMode) String() string {
	switch mm {
	case TextureMapModeWrap:
		return "Wrap"
	case TextureMapModeClamp:
		return "Clamp"
	case TextureMapModeMirror:
		return "Mirror"
	case TextureMapModeDecal:
		return "Decal"
	}
	return "Unknown"
}

// TextureMapping defines how texture coordinates are generated.
type TextureMapping uint32

const (
	TextureMappingUV       TextureMapping = 0x0
	TextureMappingSphere   TextureMapping = 0x1
	TextureMappingCylinder TextureMapping = 0x2
	TextureMappingBox      TextureMapping = 0x3
	TextureMappingPlane    TextureMapping = 0x4
	TextureMappingOther    TextureMapping = 0x5
)

func (tm TextureMapping) String() string {
	switch tm {
	case TextureMappingUV:
		return "UV"
	case TextureMappingSphere:
		return "Sphere"
	case TextureMappingCylinder:
		return "Cylinder"
	case TextureMappingBox:
		return "Box"
	case TextureMappingPlane:
		return "Plane"
	case TextureMappingOther:
		return "Other"
	}
	return "Unknown"
}

// TextureType is the semantic of a texture, also used as the semantic of
// texture-related material properties.
type TextureType uint32

const (
	// Not a texture; the semantic of every non-texture property.
	TextureTypeNone             TextureType = 0
	TextureTypeDiffuse          TextureType = 1
	TextureTypeSpecular         TextureType = 2
	TextureTypeAmbient          TextureType = 3
	TextureTypeEmissive         TextureType = 4
	TextureTypeHeight           TextureType = 5
	TextureTypeNormals          TextureType = 6
	TextureTypeShininess        TextureType = 7
	TextureTypeOpacity          TextureType = 8
	TextureTypeDisplacement     TextureType = 9
	TextureTypeLightmap         TextureType = 10
	TextureTypeReflection       TextureType = 11
	TextureTypeBaseColor        TextureType = 12
	TextureTypeNormalCamera     TextureType = 13
	TextureTypeEmissionColor    TextureType = 14
	TextureTypeMetalness        TextureType = 15
	TextureTypeDiffuseRoughness TextureType = 16
	TextureTypeAmbientOcclusion TextureType = 17
	// A texture reference the importer could not classify.
	TextureTypeUnknown      TextureType = 18
	TextureTypeSheen        TextureType = 19
	TextureTypeClearcoat    TextureType = 20
	TextureTypeTransmission TextureType = 21
)

var textureTypeNames = map[TextureType]string{
	TextureTypeNone:             "None",
	TextureTypeDiffuse:          "Diffuse",
	TextureTypeSpecular:         "Specular",
	TextureTypeAmbient:          "Ambient",
	TextureTypeEmissive:         "Emissive",
	TextureTypeHeight:           "Height",
	TextureTypeNormals:          "Normals",
	TextureTypeShininess:        "Shininess",
	TextureTypeOpacity:          "Opacity",
	TextureTypeDisplacement:     "Displacement",
	TextureTypeLightmap:         "Lightmap",
	TextureTypeReflection:       "Reflection",
	TextureTypeBaseColor:        "BaseColor",
	TextureTypeNormalCamera:     "NormalCamera",
	TextureTypeEmissionColor:    "EmissionColor",
	TextureTypeMetalness:        "Metalness",
	TextureTypeDiffuseRoughness: "DiffuseRoughness",
	TextureTypeAmbientOcclusion: "AmbientOcclusion",
	TextureTypeUnknown:          "Unknown",
	TextureTypeSheen:            "Sheen",
	TextureTypeClearcoat:        "Clearcoat",
	TextureTypeTransmission:     "Transmission",
}

func (tt TextureType) String() string {
	if n, ok := textureTypeNames[tt]; ok {
		return n
	}
	return "Unknown"
}

// TextureTypes lists every texture semantic except None, in enum order.
func TextureTypes() []TextureType {
	out := make([]TextureType, 0, int(TextureTypeTransmission))
	for t := TextureTypeDiffuse; t <= TextureTypeTransmission; t++ {
		out = append(out, t)
	}
	return out
}

// ShadingMode is the shading model requested by the file. Applications are
// free to ignore it.
type ShadingMode uint32

const (
	ShadingModeFlat         ShadingMode = 0x1
	ShadingModeGouraud      ShadingMode = 0x2
	ShadingModePhong        ShadingMode = 0x3
	ShadingModeBlinn        ShadingMode = 0x4
	ShadingModeToon         ShadingMode = 0x5
	ShadingModeOrenNayar    ShadingMode = 0x6
	ShadingModeMinnaert     ShadingMode = 0x7
	ShadingModeCookTorrance ShadingMode = 0x8
	// No lighting, texture and diffuse colour only.
	ShadingModeNoShading ShadingMode = 0x9
	ShadingModeFresnel   ShadingMode = 0xa
	ShadingModePBRBRDF   ShadingMode = 0xb
)

func (sm ShadingMode) String() string {
	switch sm {
	case ShadingModeFlat:
		return "Flat"
	case ShadingModeGouraud:
		return "Gouraud"
	case ShadingModePhong:
		return "Phong"
	case ShadingModeBlinn:
		return "Blinn"
	case ShadingModeToon:
		return "Toon"
	case ShadingModeOrenNayar:
		return "OrenNayar"
	case ShadingModeMinnaert:
		return "Minnaert"
	case ShadingModeCookTorrance:
		return "CookTorrance"
	case ShadingModeNoShading:
		return "NoShading"
	case ShadingModeFresnel:
		return "Fresnel"
	case ShadingModePBRBRDF:
		return "PBR_BRDF"
	}
	return "Unknown"
}

type TextureFlags uint32

const (
	// The texture's colour values have to be inverted (1-n).
	TextureFlagsInvert TextureFlags = 0x1
	// Use the alpha channel of the texture even if the material says otherwise.
	TextureFlagsUseAlpha TextureFlags = 0x2
	// Ignore the alpha channel of the texture.
	TextureFlagsIgnoreAlpha TextureFlags = 0x4
)

type BlendMode uint32

const (
	// SourceColor*SourceAlpha + DestColor*(1-SourceAlpha)
	BlendModeDefault BlendMode = 0x0
	// SourceColor*1 + DestColor*1
	BlendModeAdditive BlendMode = 0x1
)

func (bm BlendMode) String() string {
	switch bm {
	case BlendModeDefault:
		return "Default"
	case BlendModeAdditive:
		return "Additive"
	}
	return "Unknown"
}

// PropertyTypeInfo describes the layout of a material property buffer.
type PropertyTypeInfo uint32

const (
	PropertyTypeFloat   PropertyTypeInfo = 0x1
	PropertyTypeDouble  PropertyTypeInfo = 0x2
	PropertyTypeString  PropertyTypeInfo = 0x3
	PropertyTypeInteger PropertyTypeInfo = 0x4
	PropertyTypeBuffer  PropertyTypeInfo = 0x5
)

func (pt PropertyTypeInfo) String() string {
	switch pt {
	case PropertyTypeFloat:
		return "Float"
	case PropertyTypeDouble:
		return "Double"
	case PropertyTypeString:
		return "String"
	case PropertyTypeInteger:
		return "Integer"
	case PropertyTypeBuffer:
		return "Buffer"
	}
	return "Unknown"
}

// UVTransform is the value of KeyTextureUVTransform.
type UVTransform struct {
	Translation amath.Vec2
	Scaling     amath.Vec2
	// Rotation in radians, counter-clockwise around (0.5, 0.5).
	Rotation float32
}

// MaterialProperty is a single key-value pair of a material. Data holds the
// raw value exactly as the native library stored it.
type MaterialProperty struct {
	Key      string
	Semantic TextureType
	Index    uint32
	Type     PropertyTypeInfo
	Data     []byte
}

// Floats decodes float, double and integer buffers as float32.
func (p *MaterialProperty) Floats() ([]float32, bool) {
	switch p.Type {
	case PropertyTypeFloat:
		out := make([]float32, len(p.Data)/4)
		for i := range out {
			out[i] = math.Float32frombits(binary.NativeEndian.Uint32(p.Data[i*4:]))
		}
		return out, true
	case PropertyTypeDouble:
		out := make([]float32, len(p.Data)/8)
		for i := range out {
			out[i] = float32(math.Float64frombits(binary.NativeEndian.Uint64(p.Data[i*8:])))
		}
		return out, true
	case PropertyTypeInteger:
		ints, _ := p.Ints()
		out := make([]float32, len(ints))
		for i, v := range ints {
			out[i] = float32(v)
		}
		return out, true
	}
	return nil, false
}

// Ints decodes integer and raw buffers as int32, and truncates floats.
func (p *MaterialProperty) Ints() ([]int32, bool) {
	switch p.Type {
	case PropertyTypeInteger, PropertyTypeBuffer:
		out := make([]int32, len(p.Data)/4)
		for i := range out {
			out[i] = int32(binary.NativeEndian.Uint32(p.Data[i*4:]))
		}
		return out, true
	case PropertyTypeFloat, PropertyTypeDouble:
		floats, _ := p.Floats()
		out := make([]int32, len(floats))
		for i, v := range floats {
			out[i] = int32(v)
		}
		return out, true
	}
	return nil, false
}

// StringValue decodes a string property: a 32-bit length followed by the bytes
// and a terminating zero.
func (p *MaterialProperty) StringValue() (string, bool) {
	if p.Type != PropertyTypeString || len(p.Data) < 4 {
		return "", false
	}
	n := int(binary.NativeEndian.Uint32(p.Data))
	if n > len(p.Data)-4 {
		return "", false
	}
	return string(p.Data[4 : 4+n]), true
}

// Material is an ordered list of properties. The typed getters look up the
// property with semantic TextureTypeNone and index 0 unless noted otherwise.
type Material struct {
	Properties []*MaterialProperty
}

// Property returns the property matching key, semantic and index exactly.
func (m *Material) Property(key string, semantic TextureType, index uint32) *MaterialProperty {
	for _, p := range m.Properties {
		if p.Key == key && p.Semantic == semantic && p.Index == index {
			return p
		}
	}
	return nil
}

func (m *Material) Floats(key string) ([]float32, bool) {
	p := m.Property(key, TextureTypeNone, 0)
	if p == nil {
		return nil, false
	}
	return p.Floats()
}

func (m *Material) Float(key string) (float32, bool) {
	f, ok := m.Floats(key)
	if !ok || len(f) == 0 {
		return 0, false
	}
	return f[0], true
}

func (m *Material) Ints(key string) ([]int32, bool) {
	p := m.Property(key, TextureTypeNone, 0)
	if p == nil {
		return nil, false
	}
	return p.Ints()
}

func (m *Material) Int(key string) (int32, bool) {
	i, ok := m.Ints(key)
	if !ok || len(i) == 0 {
		return 0, false
	}
	return i[0], true
}

func (m *Material) StringValue(key string) (string, bool) {
	p := m.Property(key, TextureTypeNone, 0)
	if p == nil {
		return "", false
	}
	return p.StringValue()
}

// Color4 reads an RGBA colour. RGB values get an alpha of 1.
func (m *Material) Color4(key string) (amath.Vec4, bool) {
	f, ok := m.Floats(key)
	if !ok || len(f) < 3 {
		return amath.Vec4{}, false
	}
	c := amath.Vec4{X: f[0], Y: f[1], Z: f[2], W: 1}
	if len(f) >= 4 {
		c.W = f[3]
	}
	return c, true
}

func (m *Material) Color3(key string) (amath.Vec3, bool) {
	c, ok := m.Color4(key)
	if !ok {
		return amath.Vec3{}, false
	}
	return c.ToVec3(), true
}

// Name returns the material name, empty when unnamed.
func (m *Material) Name() string {
	n, _ := m.StringValue(KeyName)
	return n
}

func (m *Material) ShadingMode() (ShadingMode, bool) {
	v, ok := m.Int(KeyShadingModel)
	return ShadingMode(v), ok
}

func (m *Material) BlendMode() BlendMode {
	v, _ := m.Int(KeyBlendFunc)
	return BlendMode(v)
}

func (m *Material) TwoSided() bool {
	v, _ := m.Int(KeyTwoSided)
	return v != 0
}

// Opacity defaults to 1 when the file does not specify it.
func (m *Material) Opacity() float32 {
	if v, ok := m.Float(KeyOpacity); ok {
		return v
	}
	return 1
}

// TextureCount returns the number of textures of the given semantic.
func (m *Material) TextureCount(tt TextureType) int {
	n := 0
	for _, p := range m.Properties {
		if p.Key == KeyTextureFile && p.Semantic == tt && int(p.Index)+1 > n {
			n = int(p.Index) + 1
		}
	}
	return n
}

// TextureInfo collects every property describing one texture slot.
type TextureInfo struct {
	Type  TextureType
	Index uint32
	// Path is a file path relative to the model, or "*N" for the Nth
	// embedded texture.
	Path      string
	Mapping   TextureMapping
	UVIndex   uint32
	Blend     float32
	Op        TextureOp
	MapModeU  TextureMapMode
	MapModeV  TextureMapMode
	MapAxis   amath.Vec3
	Transform *UVTransform
	Flags     TextureFlags
}

// Texture reads the texture slot (tt, index). Missing optional properties
// keep the native defaults: UV mapping, channel 0, blend 1, wrap mode.
func (m *Material) Texture(tt TextureType, index uint32) (TextureInfo, bool) {
	p := m.Property(KeyTextureFile, tt, index)
	if p == nil {
		return TextureInfo{}, false
	}
	path, ok := p.StringValue()
	if !ok {
		return TextureInfo{}, false
	}
	info := TextureInfo{
		Type:  tt,
		Index: index,
		Path:  path,
		Blend: 1,
	}
	intProp := func(key string) (int32, bool) {
		if q := m.Property(key, tt, index); q != nil {
			if v, ok := q.Ints(); ok && len(v) > 0 {
				return v[0], true
			}
		}
		return 0, false
	}
	if v, ok := intProp(KeyTextureMapping); ok {
		info.Mapping = TextureMapping(v)
	}
	if v, ok := intProp(KeyTextureUVWSource); ok {
		info.UVIndex = uint32(v)
	}
	if v, ok := intProp(KeyTextureOp); ok {
		info.Op = TextureOp(v)
	}
	if v, ok := intProp(KeyTextureMapModeU); ok {
		info.MapModeU = TextureMapMode(v)
	}
	if v, ok := intProp(KeyTextureMapModeV); ok {
		info.MapModeV = TextureMapMode(v)
	}
	if v, ok := intProp(KeyTextureFlags); ok {
		info.Flags = TextureFlags(v)
	}
	if q := m.Property(KeyTextureBlend, tt, index); q != nil {
		if f, ok := q.Floats(); ok && len(f) > 0 {
			info.Blend = f[0]
		}
	}
	if q := m.Property(KeyTextureMapAxis, tt, index); q != nil {
		if f, ok := q.Floats(); ok && len(f) >= 3 {
			info.MapAxis = amath.Vec3{X: f[0], Y: f[1], Z: f[2]}
		}
	}
	if q := m.Property(KeyTextureUVTransform, tt, index); q != nil {
		if f, ok := q.Floats(); ok && len(f) >= 5 {
			info.Transform = &UVTransform{
				Translation: amath.Vec2{X: f[0], Y: f[1]},
				Scaling:     amath.Vec2{X: f[2], Y: f[3]},
				Rotation:    f[4],
			}
		}
	}
	return info, true
}

// Textures returns every texture slot of the material grouped by type in
// enum order.
func (m *Material) Textures() []TextureInfo {
	var out []TextureInfo
	for _, tt := range TextureTypes() {
		for i := 0; i < m.TextureCount(tt); i++ {
			if info, ok := m.Texture(tt, uint32(i)); ok {
				out = append(out, info)
			}
		}
	}
	return out
}
