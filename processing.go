package treads

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/brandquad/treads/assets"
	"github.com/brandquad/treads/colorutils"
	"go.uber.org/zap"
)

const DefaultFolderPerm = 0777

// StripRenderer draws swatches as an image, proportionally to population.
type StripRenderer interface {
	RenderStrip(swatches []ColorSwatch, width, height int) ([]byte, error)
}

type Config struct {
	MaxColors       int
	SampleSize      int
	Decoder         Decoder
	StripRenderer   StripRenderer
	StripWidth      int
	StripHeight     int
	OutputDir       string
	RemoveBgURL     string
	RemoveBgToken   string
	DownloadTimeout time.Duration
	MaxCpuCount     int
	DebugMode       bool
	S3Host          string
	S3Key           string
	S3Secret        string
	S3Bucket        string
	HTTPClient      *http.Client
	Logger          *zap.Logger
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.DownloadTimeout}
}

func (c *Config) extractor() *Extractor {
	return &Extractor{MaxColors: c.MaxColors, SampleSize: c.SampleSize, Decoder: c.Decoder}
}

func (c *Config) removeBackgroundEnabled() bool {
	return c.RemoveBgURL != "" && c.RemoveBgToken != ""
}

// Processing fetches source, optionally strips its background, extracts its
// dominant colors and returns the resulting manifest.
func Processing(ctx context.Context, source string, c *Config) (*Manifest, error) {
	startTime := time.Now()
	log := c.logger().With(zap.String("source", source))
	log.Info("[>] Processing")
	defer func() {
		log.Info("[<] Processing", zap.Duration("at", time.Since(startTime)))
	}()

	buf, err := fetchSource(ctx, source, c)
	if err != nil {
		return nil, err
	}

	info := &sourceInfo{Source: source}
	info.Attributes = GuessAttributes(info.Filename())

	if c.removeBackgroundEnabled() {
		out, err := removeBackground(ctx, buf, info.Filename(), c)
		if err != nil {
			log.Warn("Background removal failed, analysing original", zap.Error(err))
			info.BackgroundError = err.Error()
		} else {
			buf = out
			info.BackgroundRemoved = true
		}
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	e := c.extractor()
	img, format, err := e.decoder().Decode(buf)
	if err != nil {
		return nil, err
	}
	info.Format = format
	info.Width, info.Height = img.Bounds().Dx(), img.Bounds().Dy()
	info.SampleWidth, info.SampleHeight = FitInside(info.Width, info.Height, e.sampleSize())
	info.Swatches = e.Extract(img)
	info.Texture = AnalyzeTexture(img)

	if info.Attributes.Type == "" {
		info.Attributes.Type = GuessTypeByShape(info.Width, info.Height)
	}
	if info.Attributes.Material == "" {
		info.Attributes.Material = info.Texture.Material()
	}

	for i := range info.Swatches {
		label, err := colorutils.NearestName(info.Swatches[i].Hex, assets.NamedColors)
		if err != nil {
			return nil, err
		}
		info.Swatches[i].Label = label
	}

	manifest := makeManifest(info, c, startTime)

	if c.OutputDir != "" {
		if err = writeOutputs(manifest, c); err != nil {
			return nil, err
		}
	}
	return manifest, nil
}

// writeOutputs stores manifest.json and the swatch strip under
// OutputDir/<id> and mirrors the folder to S3 when configured.
func writeOutputs(manifest *Manifest, c *Config) error {
	dir := path.Join(c.OutputDir, manifest.ID)
	if err := os.MkdirAll(dir, DefaultFolderPerm); err != nil {
		return err
	}

	buff, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path.Join(dir, "manifest.json"), buff, 0644); err != nil {
		return err
	}

	if c.StripRenderer != nil && len(manifest.Swatches) > 0 {
		w, h := c.StripWidth, c.StripHeight
		if w <= 0 {
			w = 600
		}
		if h <= 0 {
			h = 100
		}
		strip, err := c.StripRenderer.RenderStrip(manifest.Swatches, w, h)
		if err != nil {
			return err
		}
		if err = os.WriteFile(path.Join(dir, "swatches.png"), strip, 0644); err != nil {
			return err
		}
	}

	if c.S3Host != "" {
		return syncToS3(manifest.ID, dir, c)
	}
	return nil
}
