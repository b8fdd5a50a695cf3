package colorutils

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NamedColor is a human readable label for an sRGB color.
type NamedColor struct {
	Name string
	Hex  string
}

// Rgb2hex formats RGB components as a lowercase #rrggbb string
func Rgb2hex(rgb []int) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// Hex2rgb parses a #rrggbb string into RGB components
func Hex2rgb(hex string) ([]int, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, err
	}
	r, g, b := c.RGB255()
	return []int{int(r), int(g), int(b)}, nil
}

// NearestName returns the palette entry matching hex exactly, or else the one
// closest to it in CIE L*a*b*. Palette order breaks distance ties.
func NearestName(hex string, palette []NamedColor) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", err
	}

	best, bestDistance := "", math.Inf(1)
	for _, p := range palette {
		if strings.EqualFold(p.Hex, hex) {
			return p.Name, nil
		}
		pc, err := colorful.Hex(p.Hex)
		if err != nil {
			return "", fmt.Errorf("palette color %s: %w", p.Name, err)
		}
		if d := c.DistanceLab(pc); d < bestDistance {
			best, bestDistance = p.Name, d
		}
	}
	return best, nil
}
