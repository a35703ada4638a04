package assimp

import (
	"strings"

	"github.com/spaghettifunk/anima/engine/scene"
)

// Property is the name of an import setting understood by the native
// importer and its post-processing steps.
type Property string

const (
	// PropertyMeasureTime logs the time spent in each import stage.
	PropertyMeasureTime Property = "GLOB_MEASURE_TIME"
	// PropertyGlobalScaleFactor is applied by ProcessGlobalScale.
	PropertyGlobalScaleFactor Property = "GLOBAL_SCALE_FACTOR"
	PropertyFavourSpeed       Property = "FAVOUR_SPEED"

	PropertyCTMaxSmoothingAngle   Property = "PP_CT_MAX_SMOOTHING_ANGLE"
	PropertyCTTextureChannelIndex Property = "PP_CT_TEXTURE_CHANNEL_INDEX"
	PropertyGSNMaxSmoothingAngle  Property = "PP_GSN_MAX_SMOOTHING_ANGLE"

	// PropertyRRMExcludeList is a space separated list of material names
	// ProcessRemoveRedundantMaterials keeps. Names with spaces are quoted.
	PropertyRRMExcludeList Property = "PP_RRM_EXCLUDE_LIST"

	PropertyPTVKeepHierarchy        Property = "PP_PTV_KEEP_HIERARCHY"
	PropertyPTVNormalize            Property = "PP_PTV_NORMALIZE"
	PropertyPTVAddRootTransform     Property = "PP_PTV_ADD_ROOT_TRANSFORMATION"
	PropertyPTVRootTransformation   Property = "PP_PTV_ROOT_TRANSFORMATION"
	PropertyFDRemove                Property = "PP_FD_REMOVE"
	PropertyFDCheckArea             Property = "PP_FD_CHECKAREA"
	PropertyOGExcludeList           Property = "PP_OG_EXCLUDE_LIST"
	PropertySLMTriangleLimit        Property = "PP_SLM_TRIANGLE_LIMIT"
	PropertySLMVertexLimit          Property = "PP_SLM_VERTEX_LIMIT"
	PropertyLBWMaxWeights           Property = "PP_LBW_MAX_WEIGHTS"
	PropertyDBThreshold             Property = "PP_DB_THRESHOLD"
	PropertyDBAllOrNone             Property = "PP_DB_ALL_OR_NONE"
	PropertyICLPTCacheSize          Property = "PP_ICL_PTCACHE_SIZE"
	PropertyRVCFlags                Property = "PP_RVC_FLAGS"
	PropertySBPRemove               Property = "PP_SBP_REMOVE"
	PropertyFIDAnimAccuracy         Property = "PP_FID_ANIM_ACCURACY"
	PropertyFIDIgnoreTextureCoords  Property = "PP_FID_IGNORE_TEXTURECOORDS"
	PropertyTUVEvaluate             Property = "PP_TUV_EVALUATE"
	PropertySBBCMaxBones            Property = "PP_SBBC_MAX_BONES"
	PropertyImportGlobalKeyframe    Property = "IMPORT_GLOBAL_KEYFRAME"
	PropertyImportNoSkeletonMeshes  Property = "IMPORT_NO_SKELETON_MESHES"
	PropertyImportRemoveEmptyBones  Property = "AI_CONFIG_IMPORT_REMOVE_EMPTY_BONES"
	PropertyImportFBXReadMaterials  Property = "IMPORT_FBX_READ_MATERIALS"
	PropertyImportFBXReadAnimations Property = "IMPORT_FBX_READ_ANIMATIONS"
)

// Defaults of the native library for the limits above.
const (
	DefaultSLMMaxTriangles = 1000000
	DefaultSLMMaxVertices  = 1000000
	DefaultLBWMaxWeights   = 4
	DefaultICLPTCacheSize  = 12
	DefaultSBBCMaxBones    = 60
	DefaultSmoothingAngle  = 175.0
	DefaultFIDAnimAccuracy = 0.0
	DefaultDBThreshold     = 1.0
)

// Component selects the data ProcessRemoveComponent strips.
type Component uint32

const (
	ComponentNormals               Component = 0x2
	ComponentTangentsAndBitangents Component = 0x4
	// ComponentColors removes every vertex colour set.
	ComponentColors Component = 0x8
	// ComponentTexCoords removes every texture coordinate set.
	ComponentTexCoords   Component = 0x10
	ComponentBoneWeights Component = 0x20
	ComponentAnimations  Component = 0x40
	ComponentTextures    Component = 0x80
	ComponentLights      Component = 0x100
	ComponentCameras     Component = 0x200
	ComponentMeshes      Component = 0x400
	ComponentMaterials   Component = 0x800
)

// ComponentColorsN removes the vertex colour set n only.
func ComponentColorsN(n uint) Component {
	return Component(1 << (n + 20))
}

// ComponentTexCoordsN removes the texture coordinate set n only.
func ComponentTexCoordsN(n uint) Component {
	return Component(1 << (n + 25))
}

var componentNames = []struct {
	c    Component
	name string
}{
	{ComponentNormals, "normals"},
	{ComponentTangentsAndBitangents, "tangents_and_bitangents"},
	{ComponentColors, "colors"},
	{ComponentTexCoords, "texcoords"},
	{ComponentBoneWeights, "boneweights"},
	{ComponentAnimations, "animations"},
	{ComponentTextures, "textures"},
	{ComponentLights, "lights"},
	{ComponentCameras, "cameras"},
	{ComponentMeshes, "meshes"},
	{ComponentMaterials, "materials"},
}

func (c Component) String() string {
	var parts []string
	for _, n := range componentNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// UVTransformFlags selects which parts of a texture's UV transform
// ProcessTransformUVCoords evaluates.
type UVTransformFlags uint32

const (
	UVTransformScaling     UVTransformFlags = 0x1
	UVTransformRotation    UVTransformFlags = 0x2
	UVTransformTranslation UVTransformFlags = 0x4
	UVTransformAll                         = UVTransformScaling | UVTransformRotation | UVTransformTranslation
)

// MeasureTime enables timing logs for every import stage.
func (imp *Importer) MeasureTime(enable bool) error {
	return imp.SetPropertyBool(PropertyMeasureTime, enable)
}

// SplitLargeMeshes sets the limits used by ProcessSplitLargeMeshes.
func (imp *Importer) SplitLargeMeshes(vertexLimit, triangleLimit int) error {
	if err := imp.SetPropertyInt(PropertySLMVertexLimit, vertexLimit); err != nil {
		return err
	}
	return imp.SetPropertyInt(PropertySLMTriangleLimit, triangleLimit)
}

// RemoveComponents sets the components stripped by ProcessRemoveComponent.
func (imp *Importer) RemoveComponents(c Component) error {
	return imp.SetPropertyInt(PropertyRVCFlags, int(c))
}

// SortByPrimitiveType removes meshes made of the given primitive kinds when
// ProcessSortByPType runs.
func (imp *Importer) SortByPrimitiveType(remove scene.PrimitiveType) error {
	return imp.SetPropertyInt(PropertySBPRemove, int(remove))
}

// SmoothingAngle limits normal smoothing of ProcessGenSmoothNormals, in
// degrees.
func (imp *Importer) SmoothingAngle(degrees float32) error {
	return imp.SetPropertyFloat(PropertyGSNMaxSmoothingAngle, degrees)
}

func (imp *Importer) LimitBoneWeights(max int) error {
	return imp.SetPropertyInt(PropertyLBWMaxWeights, max)
}

// PreTransformVertices configures ProcessPreTransformVertices.
func (imp *Importer) PreTransformVertices(keepHierarchy, normalize bool) error {
	if err := imp.SetPropertyBool(PropertyPTVKeepHierarchy, keepHierarchy); err != nil {
		return err
	}
	return imp.SetPropertyBool(PropertyPTVNormalize, normalize)
}

func (imp *Importer) TransformUVCoords(flags UVTransformFlags) error {
	return imp.SetPropertyInt(PropertyTUVEvaluate, int(flags))
}

// CacheLocality sets the vertex cache size ProcessImproveCacheLocality
// optimises for.
func (imp *Importer) CacheLocality(size int) error {
	return imp.SetPropertyInt(PropertyICLPTCacheSize, size)
}
