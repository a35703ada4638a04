package assimp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/spaghettifunk/anima/engine/core"
)

// Process is a bit set of aiProcess_* post-processing steps. The value is
// handed to the native importer unchanged.
type Process uint32

const (
	// ProcessCalcTangentSpace computes tangents and bitangents for meshes
	// with normals.
	ProcessCalcTangentSpace         Process = 0x1
	// ProcessJoinIdenticalVertices makes vertices unique so they can be
	// shared between faces.
	ProcessJoinIdenticalVertices    Process = 0x2
	ProcessMakeLeftHanded           Process = 0x4
	// ProcessTriangulate splits polygons into triangles. Points and lines
	// are kept.
	ProcessTriangulate              Process = 0x8
	// ProcessRemoveComponent strips the parts named by PropertyRVCFlags.
	ProcessRemoveComponent          Process = 0x10
	ProcessGenNormals               Process = 0x20
	// ProcessGenSmoothNormals may not be combined with ProcessGenNormals.
	ProcessGenSmoothNormals         Process = 0x40
	// ProcessSplitLargeMeshes honours PropertySLMVertexLimit and
	// PropertySLMTriangleLimit.
	ProcessSplitLargeMeshes         Process = 0x80
	// ProcessPreTransformVertices flattens the node graph and drops
	// animations.
	ProcessPreTransformVertices     Process = 0x100
	ProcessLimitBoneWeights         Process = 0x200
	ProcessValidateDataStructure    Process = 0x400
	ProcessImproveCacheLocality     Process = 0x800
	ProcessRemoveRedundantMaterials Process = 0x1000
	ProcessFixInfacingNormals       Process = 0x2000
	ProcessPopulateArmatureData     Process = 0x4000
	// ProcessSortByPType splits meshes with mixed primitive types.
	ProcessSortByPType              Process = 0x8000
	ProcessFindDegenerates          Process = 0x10000
	ProcessFindInvalidData          Process = 0x20000
	ProcessGenUVCoords              Process = 0x40000
	ProcessTransformUVCoords        Process = 0x80000
	ProcessFindInstances            Process = 0x100000
	ProcessOptimizeMeshes           Process = 0x200000
	ProcessOptimizeGraph            Process = 0x400000
	ProcessFlipUVs                  Process = 0x800000
	ProcessFlipWindingOrder         Process = 0x1000000
	ProcessSplitByBoneCount         Process = 0x2000000
	ProcessDebone                   Process = 0x4000000
	ProcessGlobalScale              Process = 0x8000000
	ProcessEmbedTextures            Process = 0x10000000
	ProcessForceGenNormals          Process = 0x20000000
	ProcessDropNormals              Process = 0x40000000
	ProcessGenBoundingBoxes         Process = 0x80000000
)

const (
	// ProcessConvertToLeftHanded bundles the conversions Direct3D
	// applications need.
	ProcessConvertToLeftHanded = ProcessMakeLeftHanded | ProcessFlipUVs | ProcessFlipWindingOrder

	ProcessPresetTargetRealtimeFast = ProcessCalcTangentSpace |
		ProcessGenNormals |
		ProcessJoinIdenticalVertices |
		ProcessTriangulate |
		ProcessGenUVCoords |
		ProcessSortByPType

	ProcessPresetTargetRealtimeQuality = ProcessCalcTangentSpace |
		ProcessGenSmoothNormals |
		ProcessJoinIdenticalVertices |
		ProcessImproveCacheLocality |
		ProcessLimitBoneWeights |
		ProcessRemoveRedundantMaterials |
		ProcessSplitLargeMeshes |
		ProcessTriangulate |
		ProcessGenUVCoords |
		ProcessSortByPType |
		ProcessFindDegenerates |
		ProcessFindInvalidData

	ProcessPresetTargetRealtimeMaxQuality = ProcessPresetTargetRealtimeQuality |
		ProcessFindInstances |
		ProcessValidateDataStructure |
		ProcessOptimizeMeshes
)

var processNames = []struct {
	flag Process
	name string
}{
	{ProcessCalcTangentSpace, "CalcTangentSpace"},
	{ProcessJoinIdenticalVertices, "JoinIdenticalVertices"},
	{ProcessMakeLeftHanded, "MakeLeftHanded"},
	{ProcessTriangulate, "Triangulate"},
	{ProcessRemoveComponent, "RemoveComponent"},
	{ProcessGenNormals, "GenNormals"},
	{ProcessGenSmoothNormals, "GenSmoothNormals"},
	{ProcessSplitLargeMeshes, "SplitLargeMeshes"},
	{ProcessPreTransformVertices, "PreTransformVertices"},
	{ProcessLimitBoneWeights, "LimitBoneWeights"},
	{ProcessValidateDataStructure, "ValidateDataStructure"},
	{ProcessImproveCacheLocality, "ImproveCacheLocality"},
	{ProcessRemoveRedundantMaterials, "RemoveRedundantMaterials"},
	{ProcessFixInfacingNormals, "FixInfacingNormals"},
	{ProcessPopulateArmatureData, "PopulateArmatureData"},
	{ProcessSortByPType, "SortByPType"},
	{ProcessFindDegenerates, "FindDegenerates"},
	{ProcessFindInvalidData, "FindInvalidData"},
	{ProcessGenUVCoords, "GenUVCoords"},
	{ProcessTransformUVCoords, "TransformUVCoords"},
	{ProcessFindInstances, "FindInstances"},
	{ProcessOptimizeMeshes, "OptimizeMeshes"},
	{ProcessOptimizeGraph, "OptimizeGraph"},
	{ProcessFlipUVs, "FlipUVs"},
	{ProcessFlipWindingOrder, "FlipWindingOrder"},
	{ProcessSplitByBoneCount, "SplitByBoneCount"},
	{ProcessDebone, "Debone"},
	{ProcessGlobalScale, "GlobalScale"},
	{ProcessEmbedTextures, "EmbedTextures"},
	{ProcessForceGenNormals, "ForceGenNormals"},
	{ProcessDropNormals, "DropNormals"},
	{ProcessGenBoundingBoxes, "GenBoundingBoxes"},
}

// Combinations that ParseProcess accepts by name but String never prints.
var processAliases = map[string]Process{
	"converttolefthanded":            ProcessConvertToLeftHanded,
	"presettargetrealtimefast":       ProcessPresetTargetRealtimeFast,
	"presettargetrealtimequality":    ProcessPresetTargetRealtimeQuality,
	"presettargetrealtimemaxquality": ProcessPresetTargetRealtimeMaxQuality,
	"realtimefast":                   ProcessPresetTargetRealtimeFast,
	"realtimequality":                ProcessPresetTargetRealtimeQuality,
	"realtimemaxquality":             ProcessPresetTargetRealtimeMaxQuality,
}

// String lists the set steps joined by "|", in bit order.
func (p Process) String() string {
	if p == 0 {
		return "None"
	}
	var parts []string
	for _, n := range processNames {
		if p&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether every bit of flag is set in p.
func (p Process) Has(flag Process) bool {
	return p&flag == flag
}

// normalizeName lower-cases name and drops separators, so "gen_smooth_normals",
// "GenSmoothNormals" and "aiProcess_GenSmoothNormals" compare equal.
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "aiProcess_")
	name = strings.TrimPrefix(name, "aiProcessPreset_")
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// ParseProcess resolves a single step or preset by name. Hexadecimal and
// decimal literals are accepted as raw bit sets.
func ParseProcess(name string) (Process, error) {
	key := normalizeName(name)
	if key == "" || key == "none" {
		return 0, nil
	}
	for _, n := range processNames {
		if strings.ToLower(n.name) == key {
			return n.flag, nil
		}
	}
	if p, ok := processAliases[key]; ok {
		return p, nil
	}
	if v, err := strconv.ParseUint(strings.TrimSpace(name), 0, 32); err == nil {
		return Process(v), nil
	}
	return 0, fmt.Errorf("%q: %w", name, core.ErrUnknownFlag)
}

// ParseProcessList ORs the steps named in names. Each entry may itself be a
// "|" or "," separated list.
func ParseProcessList(names []string) (Process, error) {
	var out Process
	for _, entry := range names {
		for _, name := range strings.FieldsFunc(entry, func(r rune) bool { return r == '|' || r == ',' }) {
			p, err := ParseProcess(name)
			if err != nil {
				return 0, err
			}
			out |= p
		}
	}
	return out, nil
}
