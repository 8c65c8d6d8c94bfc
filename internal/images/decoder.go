package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Info describes an image without decoding its pixels
type Info struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}

// Decoder turns raw image bytes into something renderable.
// Hosts without image support simply do not provide one.
type Decoder interface {
	DecodeConfig(data []byte) (Info, error)
	Decode(data []byte) (image.Image, error)
}

// StdDecoder decodes png, jpeg, gif, bmp and webp images
type StdDecoder struct{}

// DecodeConfig reads the image header
func (StdDecoder) DecodeConfig(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height, Size: len(data)}, nil
}

// Decode decodes the full image
func (StdDecoder) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
