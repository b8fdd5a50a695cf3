package treads

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitInside(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"wide", 128, 32, 64, 16},
		{"tall", 32, 128, 16, 64},
		{"square", 500, 500, 64, 64},
		{"already fits", 10, 20, 10, 20},
		{"exact box", 64, 64, 64, 64},
		{"one side too long", 65, 10, 64, 10},
		{"thin line", 1000, 1, 64, 1},
		{"empty", 0, 0, 0, 0},
		{"zero width tall", 0, 100, 0, 0},
		{"zero height wide", 100, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitInside(tt.w, tt.h, 64)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestSampleDownscales(t *testing.T) {
	m := sample(uniform(128, 32, red), 64)
	assert.Equal(t, image.Rect(0, 0, 64, 16), m.Bounds())
}

func TestSampleKeepsRGBOfTransparentPixels(t *testing.T) {
	img := uniform(2, 1, color.NRGBA{R: 10, G: 200, B: 30, A: 0})
	m := sample(img, 64)
	require.Equal(t, image.Rect(0, 0, 2, 1), m.Bounds())
	assert.Equal(t, color.RGBA{R: 10, G: 200, B: 30, A: 255}, m.RGBAAt(1, 0))
}

func TestSampleSubImage(t *testing.T) {
	img := newImage(4, 4, func(x, y int) color.NRGBA {
		if x >= 2 {
			return blue
		}
		return red
	})
	sub := img.SubImage(image.Rect(2, 0, 4, 4))
	m := sample(sub, 64)
	require.Equal(t, image.Rect(0, 0, 2, 4), m.Bounds())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, m.RGBAAt(0, 0))
}
