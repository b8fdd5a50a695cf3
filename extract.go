package treads

import (
	"fmt"
	"image"
	"io"
	"os"
	"sort"
)

const (
	DefaultMaxColors  = 6
	DefaultSampleSize = 64
)

// Extractor builds a ranked list of dominant colors from an image.
// The zero value uses DefaultMaxColors, DefaultSampleSize and StdDecoder.
type Extractor struct {
	MaxColors  int
	SampleSize int
	Decoder    Decoder
}

var defaultExtractor = &Extractor{}

// ExtractDominantColors returns up to six quantized colors of img ordered by
// population.
func ExtractDominantColors(img image.Image) []ColorSwatch {
	return defaultExtractor.Extract(img)
}

// ExtractFile reads and decodes path, then extracts its dominant colors.
func ExtractFile(path string) ([]ColorSwatch, error) {
	return defaultExtractor.ExtractFile(path)
}

// ExtractBytes decodes buf and extracts its dominant colors.
func ExtractBytes(buf []byte) ([]ColorSwatch, error) {
	return defaultExtractor.ExtractBytes(buf)
}

func (e *Extractor) maxColors() int {
	if e.MaxColors > 0 {
		return e.MaxColors
	}
	return DefaultMaxColors
}

func (e *Extractor) sampleSize() int {
	if e.SampleSize > 0 {
		return e.SampleSize
	}
	return DefaultSampleSize
}

func (e *Extractor) decoder() Decoder {
	if e.Decoder != nil {
		return e.Decoder
	}
	return StdDecoder{}
}

type bucket struct {
	hex   string
	count int
	first int
}

// Extract ranks the quantized colors of img. An image without pixels yields
// an empty list.
func (e *Extractor) Extract(img image.Image) []ColorSwatch {
	if img.Bounds().Empty() {
		return []ColorSwatch{}
	}
	buckets := histogram(sample(img, e.sampleSize()))

	// Equal counts keep scan order.
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].first < buckets[j].first
	})

	n := min(len(buckets), e.maxColors())
	swatches := make([]ColorSwatch, n)
	for i := 0; i < n; i++ {
		swatches[i] = ColorSwatch{
			Name:       fmt.Sprintf("c%d", i+1),
			Hex:        buckets[i].hex,
			Population: buckets[i].count,
		}
	}
	return swatches
}

func histogram(m *image.RGBA) []*bucket {
	index := make(map[string]*bucket)
	buckets := make([]*bucket, 0)

	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			key := QuantizeHex(row[x], row[x+1], row[x+2])
			b, ok := index[key]
			if !ok {
				b = &bucket{hex: key, first: len(buckets)}
				index[key] = b
				buckets = append(buckets, b)
			}
			b.count++
		}
	}
	return buckets
}

// ExtractBytes decodes buf with the extractor's decoder.
func (e *Extractor) ExtractBytes(buf []byte) ([]ColorSwatch, error) {
	img, _, err := e.decoder().Decode(buf)
	if err != nil {
		return nil, err
	}
	return e.Extract(img), nil
}

// ExtractReader reads r to the end before decoding, so read failures surface
// as *IOError and parse failures as *DecodeError.
func (e *Extractor) ExtractReader(r io.Reader) ([]ColorSwatch, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return e.ExtractBytes(buf)
}

func (e *Extractor) ExtractFile(path string) ([]ColorSwatch, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return e.ExtractBytes(buf)
}
