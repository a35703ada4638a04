package loaders

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/anima/engine/resources"
	"github.com/spaghettifunk/anima/engine/scene"
)

// TextureLoader decodes texture files and textures embedded in models into
// 8-bit RGBA pixels.
type TextureLoader struct{}

func (tl *TextureLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	p := resources.ImageResourceParams{}
	if typed, ok := params.(*resources.ImageResourceParams); ok && typed != nil {
		p = *typed
	}

	var (
		img  image.Image
		size uint64
		err  error
	)
	if p.Embedded != nil {
		img, err = DecodeEmbedded(p.Embedded)
		size = uint64(len(p.Embedded.Data))
	} else {
		img, size, err = decodeFile(path)
	}
	if err != nil {
		return nil, err
	}

	return &resources.Resource{
		Type:     resources.ResourceTypeImage,
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: size,
		Data:     ToImageData(img, p.FlipY),
	}, nil
}

func (tl *TextureLoader) Unload(res *resources.Resource) error {
	if res != nil {
		res.Data = nil
	}
	return nil
}

func decodeFile(path string) (image.Image, uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, err
	}

	img, _, err := image.Decode(file) // Decodes png, jpeg, bmp, tiff and webp
	if err != nil {
		return nil, 0, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return img, uint64(info.Size()), nil
}

// DecodeEmbedded decodes a texture stored inside a model. Compressed
// textures go through the registered image decoders; raw textures are
// BGRA texels.
func DecodeEmbedded(t *scene.Texture) (image.Image, error) {
	if t.IsCompressed() {
		img, _, err := image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, fmt.Errorf("could not decode embedded %q texture: %w", t.FormatHint, err)
		}
		return img, nil
	}

	w, h := int(t.Width), int(t.Height)
	if len(t.Data) < w*h*4 {
		return nil, fmt.Errorf("embedded texture has %d bytes, want %d", len(t.Data), w*h*4)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.Pix[i*4+0] = t.Data[i*4+2]
		img.Pix[i*4+1] = t.Data[i*4+1]
		img.Pix[i*4+2] = t.Data[i*4+0]
		img.Pix[i*4+3] = t.Data[i*4+3]
	}
	return img, nil
}

// ToImageData converts img to tightly packed RGBA rows, top row first
// unless flipY is set.
func ToImageData(img image.Image, flipY bool) *resources.ImageResourceData {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	pixels := nrgba.Pix
	if flipY {
		stride := nrgba.Stride
		flipped := make([]uint8, len(pixels))
		for y := 0; y < b.Dy(); y++ {
			copy(flipped[y*stride:(y+1)*stride], pixels[(b.Dy()-1-y)*stride:(b.Dy()-y)*stride])
		}
		pixels = flipped
	}

	return &resources.ImageResourceData{
		ChannelCount: 4,
		Width:        uint32(b.Dx()),
		Height:       uint32(b.Dy()),
		Pixels:       pixels,
	}
}
