package treads

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FitInside returns the size of a w×h box scaled down to fit a size×size box.
// Boxes that already fit are returned unchanged, empty boxes stay 0×0.
func FitInside(w, h, size int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= size && h <= size {
		return w, h
	}
	if w >= h {
		nh := (h*size + w/2) / w
		if nh < 1 {
			nh = 1
		}
		return size, nh
	}
	nw := (w*size + h/2) / h
	if nw < 1 {
		nw = 1
	}
	return nw, size
}

// opaque copies img into an 8-bit NRGBA buffer with every alpha set to 255.
// RGB of transparent pixels is kept as stored.
func opaque(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], src.Pix[i:i+b.Dx()*4])
		}
	case *image.NRGBA64:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := src.NRGBA64At(b.Min.X+x, b.Min.Y+y)
				dst.SetNRGBA(x, y, color.NRGBA{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8)})
			}
		}
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				dst.SetNRGBA(x, y, c)
			}
		}
	}

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// sample returns the pixel buffer the histogram is built from: img made
// opaque and, if needed, bilinearly downscaled to fit a size×size box.
func sample(img image.Image, size int) *image.RGBA {
	src := img
	if o, ok := img.(interface{ Opaque() bool }); !ok || !o.Opaque() {
		src = opaque(img)
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	nw, nh := FitInside(w, h, size)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	if nw == w && nh == h {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
