package treads

import (
	"database/sql/driver"
	"encoding/json"
)

type Manifest struct {
	Version           string          `json:"version"`
	ID                string          `json:"id"`
	TimestampStart    string          `json:"timestamp_start"`
	TimestampEnd      string          `json:"timestamp_end"`
	Source            string          `json:"source"`
	Filename          string          `json:"filename"`
	Basename          string          `json:"basename"`
	DisplayName       string          `json:"display_name"`
	Format            string          `json:"format"`
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	SampleWidth       int             `json:"sample_width"`
	SampleHeight      int             `json:"sample_height"`
	BackgroundRemoved bool            `json:"background_removed"`
	BackgroundError   string          `json:"background_error,omitempty"`
	Attributes        Attributes      `json:"attributes"`
	Texture           TextureFeatures `json:"texture"`
	Swatches          []ColorSwatch   `json:"swatches"`
}

// Dominant returns the most frequent swatch, or false for an empty image.
func (b *Manifest) Dominant() (ColorSwatch, bool) {
	if len(b.Swatches) == 0 {
		return ColorSwatch{}, false
	}
	return b.Swatches[0], true
}

// TotalPopulation is the number of sampled pixels covered by the swatches.
func (b *Manifest) TotalPopulation() int {
	var total int
	for _, s := range b.Swatches {
		total += s.Population
	}
	return total
}

func (b *Manifest) GetSwatchByName(name string) *ColorSwatch {
	for i := range b.Swatches {
		if b.Swatches[i].Name == name {
			return &b.Swatches[i]
		}
	}
	return nil
}

func (b *Manifest) Scan(src interface{}) error {
	return JsonScan(src, b)
}
func (b Manifest) Value() (driver.Value, error) {
	return json.Marshal(b)
}
