package resources

import (
	"io"

	"github.com/spaghettifunk/anima/engine/scene"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Files the asset manager does not track. */
	ResourceTypeNone ResourceType = iota
	/** @brief Model file readable by the native importer. */
	ResourceTypeModel
	/** @brief Image resource type, typically a texture referenced by a model. */
	ResourceTypeImage
	/** @brief Material library side file such as an OBJ .mtl. */
	ResourceTypeMaterial
	/** @brief Custom resource type. Used by loaders outside the core engine. */
	ResourceTypeCustom
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeModel:
		return "model"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeMaterial:
		return "material"
	case ResourceTypeCustom:
		return "custom"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The type of the loader which handled this resource. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path or URL of the resource. */
	FullPath string
	/** @brief The size of the source data in bytes. */
	DataSize uint64
	/** @brief The resource data: *scene.Scene for models, *ImageResourceData for images. */
	Data interface{}
}

/** @brief Parameters used when loading a model. */
type ModelResourceParams struct {
	/** @brief Post-processing steps, as an assimp.Process bit set. */
	Flags uint32
	/** @brief When set the model is read from here instead of FullPath. */
	Reader io.Reader
	/** @brief Format hint for Reader, the file extension without the dot. */
	Hint string
}

/**
 * @brief A structure to hold image resource data. Pixels are always
 * 8-bit RGBA, non premultiplied.
 */
type ImageResourceData struct {
	/** @brief The number of channels. */
	ChannelCount uint8
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel data of the image. */
	Pixels []uint8
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
	/** @brief Decode this embedded texture instead of reading a file. */
	Embedded *scene.Texture
}
