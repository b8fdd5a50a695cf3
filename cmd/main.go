package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandquad/treads"
	"github.com/brandquad/treads/vipsimage"
	"github.com/davidbyttow/govips/v2/vips"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type Config struct {
	MaxColors       int           `envconfig:"TREADS_MAX_COLORS" default:"6"`
	SampleSize      int           `envconfig:"TREADS_SAMPLE_SIZE" default:"64"`
	OutputDir       string        `envconfig:"TREADS_OUTPUT_DIR"`
	StripWidth      int           `envconfig:"TREADS_STRIP_WIDTH" default:"600"`
	StripHeight     int           `envconfig:"TREADS_STRIP_HEIGHT" default:"100"`
	RemoveBgURL     string        `envconfig:"TREADS_REMOVE_BG_URL" default:"https://api.remove.bg/v1.0/removebg"`
	RemoveBgToken   string        `envconfig:"TREADS_REMOVE_BG_TOKEN"`
	DownloadTimeout time.Duration `envconfig:"TREADS_DOWNLOAD_TIMEOUT" default:"30s"`
	MaxCpuCount     int           `envconfig:"MAX_CPU_COUNT" default:"4"`
	DebugMode       bool          `envconfig:"TREADS_DEBUG" default:"false"`
	UseVips         bool          `envconfig:"TREADS_USE_VIPS" default:"false"`
	S3Host          string        `envconfig:"TREADS_S3_HOST"`
	S3Key           string        `envconfig:"TREADS_S3_KEY"`
	S3Secret        string        `envconfig:"TREADS_S3_SECRET"`
	S3Bucket        string        `envconfig:"TREADS_BUCKET" default:"treads"`
}

func (c Config) MakeConfig(logger *zap.Logger) *treads.Config {
	config := &treads.Config{
		MaxColors:       c.MaxColors,
		SampleSize:      c.SampleSize,
		OutputDir:       c.OutputDir,
		StripWidth:      c.StripWidth,
		StripHeight:     c.StripHeight,
		RemoveBgURL:     c.RemoveBgURL,
		RemoveBgToken:   c.RemoveBgToken,
		DownloadTimeout: c.DownloadTimeout,
		MaxCpuCount:     c.MaxCpuCount,
		DebugMode:       c.DebugMode,
		S3Host:          c.S3Host,
		S3Key:           c.S3Key,
		S3Secret:        c.S3Secret,
		S3Bucket:        c.S3Bucket,
		Logger:          logger,
	}
	if c.UseVips {
		config.Decoder = vipsimage.Decoder{}
		config.StripRenderer = vipsimage.Renderer{}
	}
	return config
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	swatchesOnly := flag.Bool("swatches-only", false, "print only the swatch list of each source")
	flag.Parse()

	logger := newLogger(false)

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		logger.Fatal("read config", zap.Error(err))
	}
	if c.DebugMode {
		logger = newLogger(true)
	}
	defer logger.Sync()

	if flag.NArg() < 1 {
		logger.Fatal("at least one file or URL is required")
	}

	if c.UseVips {
		vips.LoggingSettings(func(messageDomain string, verbosity vips.LogLevel, message string) {}, vips.LogLevelInfo)
		vips.Startup(&vips.Config{
			ConcurrencyLevel: c.MaxCpuCount,
		})
		defer vips.Shutdown()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifests, err := treads.ProcessingBatch(ctx, flag.Args(), c.MakeConfig(logger))
	if err != nil {
		logger.Fatal("processing failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, manifest := range manifests {
		var out interface{} = manifest
		if *swatchesOnly {
			out = manifest.Swatches
		}
		if err := enc.Encode(out); err != nil {
			logger.Fatal("encode output", zap.Error(err))
		}
	}
}
