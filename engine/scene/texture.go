package scene

import "strings"

// Texture is a texture embedded in the model file.
//
// When Height is 0 the texture is stored compressed: Data holds Width bytes
// of a regular image file and FormatHint names its extension ("png", "jpg").
// Otherwise Data holds Width*Height texels of 4 bytes each in B, G, R, A
// order and FormatHint describes the channel layout (e.g. "rgba8888").
type Texture struct {
	Filename   string
	Width      uint32
	Height     uint32
	FormatHint string
	Data       []byte
}

func (t *Texture) IsCompressed() bool {
	return t.Height == 0
}

// CheckFormat compares the format hint, ignoring case and a leading dot.
func (t *Texture) CheckFormat(ext string) bool {
	return strings.EqualFold(t.FormatHint, strings.TrimPrefix(ext, "."))
}
