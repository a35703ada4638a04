package loaders

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/anima/engine/assimp"
	"github.com/spaghettifunk/anima/engine/resources"
	"github.com/spaghettifunk/anima/engine/scene"
)

// ModelLoader imports model files through the native importer.
type ModelLoader struct {
	importer *assimp.Importer
}

func NewModelLoader(importer *assimp.Importer) *ModelLoader {
	return &ModelLoader{importer: importer}
}

func (ml *ModelLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	if assetType != resources.ResourceTypeModel {
		return nil, fmt.Errorf("model loader cannot load %s resources", assetType)
	}

	p := resources.ModelResourceParams{}
	if typed, ok := params.(*resources.ModelResourceParams); ok && typed != nil {
		p = *typed
	}

	var (
		sc   *scene.Scene
		size uint64
		err  error
	)
	if p.Reader != nil {
		hint := p.Hint
		if hint == "" {
			hint = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		}
		data, readErr := io.ReadAll(p.Reader)
		if readErr != nil {
			return nil, fmt.Errorf("could not read %s: %w", path, readErr)
		}
		size = uint64(len(data))
		sc, err = ml.importer.ImportMemory(data, hint, assimp.Process(p.Flags))
	} else {
		if info, statErr := os.Stat(path); statErr == nil {
			size = uint64(info.Size())
		}
		sc, err = ml.importer.Import(path, assimp.Process(p.Flags))
	}
	if err != nil {
		return nil, err
	}
	sc.Source = path

	return &resources.Resource{
		Type:     resources.ResourceTypeModel,
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: size,
		Data:     sc,
	}, nil
}

func (ml *ModelLoader) Unload(res *resources.Resource) error {
	if res != nil {
		res.Data = nil
	}
	return nil
}
