package assimp

import (
	"testing"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPresets(t *testing.T) {
	assert.Equal(t, Process(0x1800004), ProcessConvertToLeftHanded)
	assert.Equal(t, Process(0x4802b), ProcessPresetTargetRealtimeFast)
	assert.Equal(t, Process(0x79acb), ProcessPresetTargetRealtimeQuality)
	assert.Equal(t, Process(0x379ecb), ProcessPresetTargetRealtimeMaxQuality)
	assert.True(t, ProcessPresetTargetRealtimeMaxQuality.Has(ProcessPresetTargetRealtimeQuality))
	assert.False(t, ProcessPresetTargetRealtimeFast.Has(ProcessGenSmoothNormals))
}

func TestProcessString(t *testing.T) {
	assert.Equal(t, "None", Process(0).String())
	assert.Equal(t, "Triangulate|GenSmoothNormals", (ProcessGenSmoothNormals | ProcessTriangulate).String())
	assert.Equal(t, "MakeLeftHanded|FlipUVs|FlipWindingOrder", ProcessConvertToLeftHanded.String())
}

func TestParseProcess(t *testing.T) {
	tests := []struct {
		in   string
		want Process
	}{
		{"triangulate", ProcessTriangulate},
		{"Triangulate", ProcessTriangulate},
		{"gen_smooth_normals", ProcessGenSmoothNormals},
		{"aiProcess_FlipUVs", ProcessFlipUVs},
		{"sort-by-ptype", ProcessSortByPType},
		{"convert_to_left_handed", ProcessConvertToLeftHanded},
		{"realtime_quality", ProcessPresetTargetRealtimeQuality},
		{"0x8", ProcessTriangulate},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProcess(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseProcess("make_it_pretty")
	assert.ErrorIs(t, err, core.ErrUnknownFlag)
}

func TestParseProcessList(t *testing.T) {
	got, err := ParseProcessList([]string{"triangulate", "flip_uvs|flip_winding_order", "gen_normals, join_identical_vertices"})
	require.NoError(t, err)
	assert.Equal(t, ProcessTriangulate|ProcessFlipUVs|ProcessFlipWindingOrder|ProcessGenNormals|ProcessJoinIdenticalVertices, got)

	for _, p := range []Process{ProcessTriangulate, ProcessDebone, ProcessGenBoundingBoxes} {
		back, err := ParseProcessList([]string{p.String()})
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}

	_, err = ParseProcessList([]string{"triangulate", "bogus"})
	assert.ErrorIs(t, err, core.ErrUnknownFlag)
}

func TestComponent(t *testing.T) {
	assert.Equal(t, Component(1<<20), ComponentColorsN(0))
	assert.Equal(t, Component(1<<27), ComponentTexCoordsN(2))
	assert.Equal(t, "normals|textures", (ComponentNormals | ComponentTextures).String())
	assert.Equal(t, UVTransformFlags(0x7), UVTransformAll)
}
