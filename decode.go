package treads

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decoder turns encoded image bytes into pixels.
type Decoder interface {
	Decode(buf []byte) (image.Image, string, error)
}

// StdDecoder decodes PNG, JPEG, GIF and WebP in pure Go.
type StdDecoder struct{}

func (StdDecoder) Decode(buf []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, format, &DecodeError{Format: format, Err: err}
	}
	return img, format, nil
}
