// Package vipsimage decodes and renders images with libvips.
// vips.Startup must be called before use.
package vipsimage

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	"github.com/brandquad/treads"
	"github.com/davidbyttow/govips/v2/vips"
	"github.com/lucasb-eyer/go-colorful"
)

// Decoder loads anything libvips understands and hands back sRGB pixels.
type Decoder struct{}

func (Decoder) Decode(buf []byte) (image.Image, string, error) {
	ref, err := vips.NewImageFromBuffer(buf)
	if err != nil {
		return nil, "", &treads.DecodeError{Err: err}
	}
	defer ref.Close()

	format := vips.ImageTypes[ref.OriginalFormat()]

	if err = ref.ToColorSpace(vips.InterpretationSRGB); err != nil {
		return nil, format, &treads.DecodeError{Format: format, Err: err}
	}
	buffer, _, err := ref.ExportPng(vips.NewPngExportParams())
	if err != nil {
		return nil, format, &treads.DecodeError{Format: format, Err: err}
	}
	img, err := png.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, format, &treads.DecodeError{Format: format, Err: err}
	}
	return img, format, nil
}

// Renderer draws swatch strips.
type Renderer struct{}

func (Renderer) RenderStrip(swatches []treads.ColorSwatch, width, height int) ([]byte, error) {
	return RenderStrip(swatches, width, height)
}

// RenderStrip returns a width×height PNG of vertical bands, one per swatch,
// each as wide as its share of the total population.
func RenderStrip(swatches []treads.ColorSwatch, width, height int) ([]byte, error) {
	if len(swatches) == 0 {
		return nil, errors.New("no swatches to render")
	}

	var total int
	for _, s := range swatches {
		total += s.Population
	}
	if total == 0 {
		return nil, errors.New("swatches have no population")
	}

	targetRef, err := createImage(width, height, colorful.Color{R: 0, G: 0, B: 0})
	if err != nil {
		return nil, err
	}
	defer targetRef.Close()

	var x int
	for idx, s := range swatches {
		w := width * s.Population / total
		if idx == len(swatches)-1 {
			w = width - x
		}
		if w <= 0 {
			continue
		}

		c, err := colorful.Hex(s.Hex)
		if err != nil {
			return nil, err
		}
		bandRef, err := createImage(w, height, c)
		if err != nil {
			return nil, err
		}
		err = targetRef.Insert(bandRef, x, 0, false, nil)
		bandRef.Close()
		if err != nil {
			return nil, err
		}
		x += w
	}

	buffer, _, err := targetRef.ExportPng(vips.NewPngExportParams())
	return buffer, err
}

// createImage return vips image with a certain width, height and background color
func createImage(w, h int, c colorful.Color) (*vips.ImageRef, error) {

	var cR, cG, cB uint8 = c.RGB255()
	color := []float64{float64(cR), float64(cG), float64(cB)}

	imageRef, err := vips.Black(w, h)
	if err != nil {
		return nil, err
	}
	if err = imageRef.ToColorSpace(vips.InterpretationSRGB); err != nil {
		imageRef.Close()
		return nil, err
	}
	if err = imageRef.Linear([]float64{0, 0, 0}, color); err != nil {
		imageRef.Close()
		return nil, err
	}
	return imageRef, nil
}
