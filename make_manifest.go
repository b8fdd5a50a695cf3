package treads

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ManifestVersion = "1"

const timestampLayout = "2006-01-02 15:04:05"

func makeManifest(info *sourceInfo, c *Config, startTime time.Time) *Manifest {
	st := time.Now()
	log := c.logger()
	log.Debug("[>] Make manifest.json")
	defer func() {
		log.Debug("[<] Make manifest.json", zap.Duration("at", time.Since(st)))
	}()

	swatches := info.Swatches
	if swatches == nil {
		swatches = make([]ColorSwatch, 0)
	}

	return &Manifest{
		Version:           ManifestVersion,
		ID:                uuid.New().String(),
		TimestampStart:    startTime.Format(timestampLayout),
		TimestampEnd:      time.Now().Format(timestampLayout),
		Source:            info.Source,
		Filename:          info.Filename(),
		Basename:          info.Basename(),
		DisplayName:       info.DisplayName(),
		Format:            info.Format,
		Width:             info.Width,
		Height:            info.Height,
		SampleWidth:       info.SampleWidth,
		SampleHeight:      info.SampleHeight,
		BackgroundRemoved: info.BackgroundRemoved,
		BackgroundError:   info.BackgroundError,
		Attributes:        info.Attributes,
		Texture:           info.Texture,
		Swatches:          swatches,
	}
}
