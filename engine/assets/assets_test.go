package assets

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima/engine/assimp"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/resources"
)

const testdata = "../assimp/testdata"

func newTestManager(t *testing.T, opts ...AssetManagerOption) *AssetManager {
	t.Helper()
	imp, err := assimp.NewImporter()
	require.NoError(t, err)
	t.Cleanup(func() { imp.Close() })

	opts = append([]AssetManagerOption{WithImportFlags(assimp.ProcessTriangulate | assimp.ProcessJoinIdenticalVertices)}, opts...)
	am, err := NewAssetManager(imp, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { am.Close() })
	return am
}

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want resources.ResourceType
	}{
		{"models/cube.obj", resources.ResourceTypeModel},
		{"models/CUBE.STL", resources.ResourceTypeModel},
		{"textures/wood.png", resources.ResourceTypeImage},
		{"textures/wood.JPEG", resources.ResourceTypeImage},
		{"textures/wood.webp", resources.ResourceTypeImage},
		{"models/cube.mtl", resources.ResourceTypeMaterial},
		{"README", resources.ResourceTypeNone},
		{"notes.definitely-not-a-model", resources.ResourceTypeNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetermineAssetType(tt.path), tt.path)
	}
}

func TestSourceLocal(t *testing.T) {
	src, err := NewSource(filepath.Join(testdata, "cube.obj"), nil)
	require.NoError(t, err)
	defer src.Close()

	assert.False(t, src.IsRemote())
	assert.Equal(t, "obj", src.Ext())
	assert.Equal(t, src.Path(), src.RemotePath())

	rel, err := NewSource("cube.mtl", src)
	require.NoError(t, err)
	defer rel.Close()

	data, err := io.ReadAll(rel)
	require.NoError(t, err)
	assert.Contains(t, string(data), "newmtl red")
}

func TestSourceRemote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/triangle.stl" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(testdata, "triangle.stl"))
	}))
	defer ts.Close()

	src, err := NewSource(ts.URL+"/models/triangle.stl", nil)
	require.NoError(t, err)
	defer src.Close()

	assert.True(t, src.IsRemote())
	assert.Equal(t, "triangle.stl", src.RemotePath())
	assert.Equal(t, "stl", src.Ext())

	_, err = NewSource(ts.URL+"/missing.stl", nil)
	assert.Error(t, err)
}

func TestSourceUnsupportedScheme(t *testing.T) {
	_, err := NewSource("ftp://example.com/cube.obj", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme 'ftp'")
}

func TestSourceFromStream(t *testing.T) {
	src := NewSourceFromStream("inline.ply", strings.NewReader("ply"))
	assert.False(t, src.IsRemote())
	assert.Equal(t, "ply", src.Ext())
	assert.NoError(t, src.Close())
}

func TestLoadModelLocal(t *testing.T) {
	am := newTestManager(t)

	sc, err := am.LoadModel(filepath.Join(testdata, "cube.obj"))
	require.NoError(t, err)
	assert.Equal(t, 1, sc.NumMeshes())
	assert.Equal(t, 12, sc.NumFaces())
	assert.Equal(t, filepath.Join(testdata, "cube.obj"), sc.Source)
}

func TestLoadModelRemote(t *testing.T) {
	ts := httptest.NewServer(http.FileServer(http.Dir(testdata)))
	defer ts.Close()

	am := newTestManager(t)
	sc, err := am.LoadModel(ts.URL + "/triangle.ply")
	require.NoError(t, err)
	assert.Equal(t, 1, sc.NumMeshes())
	assert.Equal(t, 3, sc.NumVertices())
	assert.Equal(t, ts.URL+"/triangle.ply", sc.Source)
}

func TestLoadModelFailure(t *testing.T) {
	am := newTestManager(t)

	_, err := am.LoadModel(filepath.Join(testdata, "broken.bin"))
	assert.Error(t, err)

	_, err = am.LoadModel(filepath.Join(testdata, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAssetUnknownType(t *testing.T) {
	am := newTestManager(t)
	_, err := am.LoadAsset("cube.mtl", resources.ResourceTypeMaterial, nil)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestInitializeIndexesAssets(t *testing.T) {
	dir := t.TempDir()
	copyFile(t, filepath.Join(testdata, "cube.obj"), filepath.Join(dir, "cube.obj"))
	copyFile(t, filepath.Join(testdata, "cube.mtl"), filepath.Join(dir, "cube.mtl"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	copyFile(t, filepath.Join(testdata, "triangle.stl"), filepath.Join(dir, "nested", "triangle.stl"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644))

	am := newTestManager(t)
	require.NoError(t, am.Initialize(dir))

	assets := am.Assets()
	require.Len(t, assets, 3)
	assert.Equal(t, filepath.Join(dir, "cube.mtl"), assets[0].Path)
	assert.Equal(t, resources.ResourceTypeMaterial, assets[0].Type)
	assert.Equal(t, resources.ResourceTypeModel, assets[1].Type)
	assert.Equal(t, filepath.Join(dir, "nested", "triangle.stl"), assets[2].Path)

	require.NoError(t, am.Unwatch(dir))
	assert.Len(t, am.Assets(), 3)
}

func TestReimportOnWrite(t *testing.T) {
	dir := t.TempDir()
	am := newTestManager(t, WithReimport(true))
	require.NoError(t, am.Initialize(dir))

	target := filepath.Join(dir, "triangle.stl")
	copyFile(t, filepath.Join(testdata, "triangle.stl"), target)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-am.Events():
			if ev.Path != target || ev.Scene == nil {
				continue
			}
			require.NoError(t, ev.Err)
			assert.Equal(t, resources.ResourceTypeModel, ev.Type)
			assert.Equal(t, 1, ev.Scene.NumFaces())
			history := am.History()
			require.NotEmpty(t, history)
			assert.Equal(t, target, history[len(history)-1].Path)
			return
		case <-deadline:
			t.Fatal("no reimport event received")
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	am := newTestManager(t)
	require.NoError(t, am.Initialize(t.TempDir()))
	assert.NoError(t, am.Close())
	assert.NoError(t, am.Close())

	_, ok := <-am.Events()
	assert.False(t, ok)
	assert.ErrorIs(t, am.addRecursive(t.TempDir()), ErrManagerClosed)
}

func copyFile(t *testing.T, from, to string) {
	t.Helper()
	data, err := os.ReadFile(from)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(to, data, 0o644))
}
