package treads

import (
	"net/url"
	"path"
	"strings"
)

// ColorSwatch is one ranked dominant color.
type ColorSwatch struct {
	Name       string `json:"name"`
	Hex        string `json:"hex"`
	Population int    `json:"population"`
	Label      string `json:"label,omitempty"`
}

// Attributes are garment properties guessed from a file name.
type Attributes struct {
	Type     string   `json:"type,omitempty"`
	Material string   `json:"material,omitempty"`
	Colors   []string `json:"colors,omitempty"`
}

type sourceInfo struct {
	Source            string
	Filepath          string
	Format            string
	Width             int
	Height            int
	SampleWidth       int
	SampleHeight      int
	BackgroundRemoved bool
	BackgroundError   string
	Attributes        Attributes
	Texture           TextureFeatures
	Swatches          []ColorSwatch
}

func (s sourceInfo) Filename() string {
	if isURL(s.Source) {
		if u, err := url.Parse(s.Source); err == nil {
			return path.Base(u.Path)
		}
	}
	return path.Base(s.Source)
}

func (s sourceInfo) DisplayName() string {
	return DisplayName(s.Filename())
}

func (s sourceInfo) Basename() string {
	filename := s.Filename()
	return strings.TrimSuffix(filename, path.Ext(filename))
}
