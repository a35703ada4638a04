package assimp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibraryInfo(t *testing.T) {
	v := Version()
	assert.GreaterOrEqual(t, v.Major, uint32(3))
	assert.Regexp(t, `^\d+\.\d+\.\d+$`, v.String())
	assert.NotEmpty(t, LegalString())
	assert.NotEmpty(t, CompileFlags().String())
}

func TestExtensions(t *testing.T) {
	for _, ext := range []string{"obj", ".ply", "*.STL"} {
		assert.True(t, IsExtensionSupported(ext), ext)
	}
	assert.False(t, IsExtensionSupported("not-a-format"))
	assert.False(t, IsExtensionSupported(""))

	exts := SupportedExtensions()
	assert.Contains(t, exts, "obj")
	assert.Contains(t, exts, "ply")
	assert.IsNonDecreasing(t, exts)
}
