package assets

import (
	_ "embed"
	"encoding/json"
	"log"

	"github.com/brandquad/treads/colorutils"
)

type namedColor struct {
	Name       string `json:"name"`
	Components []int  `json:"components"`
}
type namedColorData struct {
	Colors []namedColor `json:"colors"`
}

//go:embed colors.json
var colorsData []byte

// NamedColors are the garment color names swatches are labelled with.
var NamedColors []colorutils.NamedColor

func init() {
	var j namedColorData
	if err := json.Unmarshal(colorsData, &j); err != nil {
		log.Fatal(err)
	}
	NamedColors = make([]colorutils.NamedColor, 0, len(j.Colors))
	for _, color := range j.Colors {
		NamedColors = append(NamedColors, colorutils.NamedColor{
			Name: color.Name,
			Hex:  colorutils.Rgb2hex(color.Components),
		})
	}
}
