package treads

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestExtractDominantColorsScenario(t *testing.T) {
	pixels := []color.NRGBA{red, red, green, blue}
	img := newImage(2, 2, func(x, y int) color.NRGBA { return pixels[y*2+x] })

	got := ExtractDominantColors(img)
	assert.Equal(t, []ColorSwatch{
		{Name: "c1", Hex: "#ff0000", Population: 2},
		{Name: "c2", Hex: "#00ff00", Population: 1},
		{Name: "c3", Hex: "#0000ff", Population: 1},
	}, got)
}

func TestExtractTiesFollowScanOrder(t *testing.T) {
	pixels := []color.NRGBA{blue, green, red, red}
	img := newImage(4, 1, func(x, y int) color.NRGBA { return pixels[x] })

	got := ExtractDominantColors(img)
	require.Len(t, got, 3)
	assert.Equal(t, "#ff0000", got[0].Hex)
	assert.Equal(t, "#0000ff", got[1].Hex)
	assert.Equal(t, "#00ff00", got[2].Hex)
}

func TestExtractUniformLargeImage(t *testing.T) {
	got := ExtractDominantColors(uniform(200, 100, color.NRGBA{R: 100, G: 150, B: 200, A: 255}))
	require.Len(t, got, 1)
	assert.Equal(t, "#6090d0", got[0].Hex)
	assert.Equal(t, 64*32, got[0].Population)
}

func TestExtractIgnoresAlpha(t *testing.T) {
	img := newImage(3, 1, func(x, y int) color.NRGBA {
		return color.NRGBA{R: uint8(x * 100), G: 40, B: 250, A: 0}
	})
	got := ExtractDominantColors(img)
	require.Len(t, got, 3)
	assert.Equal(t, "#0030ff", got[0].Hex)
	assert.Equal(t, "#6030ff", got[1].Hex)
	assert.Equal(t, "#d030ff", got[2].Hex)
}

func TestExtractEmptyImage(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 0, 0),
		image.Rect(0, 0, 0, 100),
		image.Rect(0, 0, 100, 0),
	} {
		got := ExtractDominantColors(image.NewNRGBA(r))
		assert.NotNil(t, got, r.String())
		assert.Empty(t, got, r.String())
	}
}

func TestExtractCapsAtSix(t *testing.T) {
	img := newImage(10, 1, func(x, y int) color.NRGBA {
		return color.NRGBA{R: uint8(x * 25), A: 255}
	})
	got := ExtractDominantColors(img)
	require.Len(t, got, 6)
	assert.Equal(t, "c6", got[5].Name)
}

func TestExtractorMaxColors(t *testing.T) {
	img := newImage(10, 1, func(x, y int) color.NRGBA {
		return color.NRGBA{G: uint8(x * 25), A: 255}
	})
	e := &Extractor{MaxColors: 2}
	assert.Len(t, e.Extract(img), 2)
}

func TestExtractGrayImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	got := ExtractDominantColors(img)
	require.Len(t, got, 1)
	assert.Equal(t, "#808080", got[0].Hex)
	assert.Equal(t, 9, got[0].Population)
}

func TestExtractBytes(t *testing.T) {
	buf := encodePNG(t, uniform(4, 4, green))
	got, err := ExtractBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, []ColorSwatch{{Name: "c1", Hex: "#00ff00", Population: 16}}, got)
}

func TestExtractBytesDecodeError(t *testing.T) {
	_, err := ExtractBytes([]byte("definitely not an image"))
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr), "got %v", err)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestExtractFile(t *testing.T) {
	p := writePNG(t, t.TempDir(), "blue.png", uniform(3, 2, blue))
	got, err := ExtractFile(p)
	require.NoError(t, err)
	assert.Equal(t, []ColorSwatch{{Name: "c1", Hex: "#0000ff", Population: 6}}, got)
}

func TestExtractFileIOError(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.png"))
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Contains(t, err.Error(), "missing.png")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestExtractReader(t *testing.T) {
	e := &Extractor{}

	_, err := e.ExtractReader(failingReader{})
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr), "got %v", err)

	_, err = e.ExtractReader(strings.NewReader("garbage"))
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr), "got %v", err)
}

var palette = []color.NRGBA{
	red, green, blue,
	{R: 255, G: 255, A: 255},
	{A: 255},
	{R: 255, G: 255, B: 255, A: 255},
	{R: 128, B: 128, A: 255},
	{R: 64, G: 64, B: 64, A: 255},
}

func TestExtractProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 16).Draw(t, "w")
		h := rapid.IntRange(1, 16).Draw(t, "h")
		picks := rapid.SliceOfN(rapid.IntRange(0, len(palette)-1), w*h, w*h).Draw(t, "pixels")
		img := newImage(w, h, func(x, y int) color.NRGBA { return palette[picks[y*w+x]] })

		distinct := make(map[int]bool)
		for _, p := range picks {
			distinct[p] = true
		}

		got := ExtractDominantColors(img)
		assert.LessOrEqual(t, len(got), DefaultMaxColors)
		assert.LessOrEqual(t, len(got), len(distinct))
		if len(distinct) <= DefaultMaxColors {
			assert.Len(t, got, len(distinct))
		}

		total := 0
		for i, s := range got {
			total += s.Population
			assert.Equal(t, "c"+strconv.Itoa(i+1), s.Name)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Population, s.Population)
			}
		}
		assert.LessOrEqual(t, total, w*h)
	})
}

func TestExtractUniformProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 64).Draw(t, "w")
		h := rapid.IntRange(1, 64).Draw(t, "h")
		c := color.NRGBA{
			R: rapid.Uint8().Draw(t, "r"),
			G: rapid.Uint8().Draw(t, "g"),
			B: rapid.Uint8().Draw(t, "b"),
			A: rapid.Uint8().Draw(t, "a"),
		}

		got := ExtractDominantColors(uniform(w, h, c))
		if assert.Len(t, got, 1) {
			assert.Equal(t, QuantizeHex(c.R, c.G, c.B), got[0].Hex)
			assert.Equal(t, w*h, got[0].Population)
		}
	})
}
