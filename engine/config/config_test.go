package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spaghettifunk/anima/engine/assimp"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[import]
flags = ["triangulate", "flip_uvs|gen_smooth_normals"]

[import.properties]
PP_SLM_VERTEX_LIMIT = 10000
PP_GSN_MAX_SMOOTHING_ANGLE = 80.0
PP_PTV_NORMALIZE = true
PP_RRM_EXCLUDE_LIST = "keep"

[log]
level = "debug"
verbose = true
streams = ["stderr", "file:~/assimp.log"]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	flags, err := cfg.Flags()
	require.NoError(t, err)
	assert.Equal(t, assimp.ProcessTriangulate|assimp.ProcessFlipUVs|assimp.ProcessGenSmoothNormals, flags)

	opts, err := cfg.ImporterOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Verbose)

	streams, err := cfg.LogStreams()
	require.NoError(t, err)
	require.Len(t, streams, 2)
	assert.Equal(t, "stderr", streams[0].String())

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, "file:"+filepath.Join(home, "assimp.log"), streams[1].String())
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[log]\nlevel = \"warn\"\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Import.Flags, cfg.Import.Flags)
	assert.Equal(t, "warn", cfg.Log.Level)

	imp, err := cfg.NewImporter()
	require.NoError(t, err)
	defer imp.Close()
	assert.True(t, imp.Flags().Has(assimp.ProcessTriangulate))
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":        "[import\n",
		"unknown key":   "[import]\nflagz = []\n",
		"unknown flag":  "[import]\nflags = [\"sparkle\"]\n",
		"bad level":     "[log]\nlevel = \"loud\"\n",
		"bad stream":    "[log]\nstreams = [\"pigeon\"]\n",
		"bad property":  "[import.properties]\nPP_X = [1, 2]\n",
		"empty logfile": "[log]\nstreams = [\"file:\"]\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("[import]\nflags = [\"sparkle\"]\n"))
	assert.ErrorIs(t, err, core.ErrUnknownFlag)
	_, err = Parse([]byte("[log]\nstreams = [\"pigeon\"]\n"))
	assert.ErrorIs(t, err, core.ErrUnknownLogStream)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Import.Properties, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLogStream(t *testing.T) {
	s, err := ParseLogStream(" STDOUT ")
	require.NoError(t, err)
	assert.Equal(t, "stdout", s.String())

	s, err = ParseLogStream("logger")
	require.NoError(t, err)
	assert.Contains(t, s.String(), "writer#")

	s, err = ParseLogStream("file:/var/log/assimp.log")
	require.NoError(t, err)
	assert.Equal(t, "file:/var/log/assimp.log", s.String())
}
