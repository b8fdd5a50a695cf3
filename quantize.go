package treads

import "github.com/brandquad/treads/colorutils"

// BucketSize is the width of a quantization bucket for each channel.
const BucketSize = 16

// Quantize maps a channel value to the nearest multiple of BucketSize.
// Values rounding up to 256 are clamped to 255.
func Quantize(v uint8) uint8 {
	q := (int(v) + BucketSize/2) / BucketSize * BucketSize
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// QuantizeHex returns the #rrggbb key of the bucket the color falls in.
func QuantizeHex(r, g, b uint8) string {
	return colorutils.Rgb2hex([]int{int(Quantize(r)), int(Quantize(g)), int(Quantize(b))})
}
