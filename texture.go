package treads

import (
	"image"
	"image/color"
	"math"
)

// TextureFeatures summarise the grayscale texture of a garment photo.
type TextureFeatures struct {
	Variance   float64 `json:"variance"`
	Smoothness float64 `json:"smoothness"`
	Contrast   float64 `json:"contrast"`
}

// AnalyzeTexture measures the luma variance of img. Alpha is ignored.
func AnalyzeTexture(img image.Image) TextureFeatures {
	src := img
	if o, ok := img.(interface{ Opaque() bool }); !ok || !o.Opaque() {
		src = opaque(img)
	}

	b := src.Bounds()
	n := float64(b.Dx() * b.Dy())
	if n == 0 {
		return TextureFeatures{Smoothness: 1}
	}

	var sum, sumSq float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y)
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / n
	variance := math.Max(0, sumSq/n-mean*mean)

	return TextureFeatures{
		Variance:   variance,
		Smoothness: 1 / (1 + variance),
		Contrast:   math.Sqrt(variance) / 255,
	}
}

// Material guesses a fabric from texture alone. Flat images read as silk,
// coarse high-contrast ones as denim.
func (t TextureFeatures) Material() string {
	switch {
	case t.Smoothness > 0.8 && t.Variance < 100:
		return "silk"
	case t.Variance > 500 && t.Contrast > 0.6:
		return "denim"
	case t.Smoothness > 0.6 && t.Variance < 200:
		return "cotton"
	case t.Variance > 300:
		return "wool"
	default:
		return "cotton"
	}
}

// GuessTypeByShape guesses a garment type from the photo's aspect ratio.
func GuessTypeByShape(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	ratio := float64(w) / float64(h)
	switch {
	case ratio > 1.2:
		return "pants"
	case ratio < 0.8:
		return "dress"
	case ratio >= 0.9 && ratio <= 1.1:
		return "t-shirt"
	default:
		return "shirt"
	}
}
