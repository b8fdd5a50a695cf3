package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandquad/treads"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type workerConfig struct {
	MetricsAddr     string        `envconfig:"TREADS_METRICS_ADDR" default:":9102"`
	OutputDir       string        `envconfig:"TREADS_OUTPUT_DIR"`
	RemoveBgURL     string        `envconfig:"TREADS_REMOVE_BG_URL" default:"https://api.remove.bg/v1.0/removebg"`
	RemoveBgToken   string        `envconfig:"TREADS_REMOVE_BG_TOKEN"`
	DownloadTimeout time.Duration `envconfig:"TREADS_DOWNLOAD_TIMEOUT" default:"30s"`
	DebugMode       bool          `envconfig:"TREADS_DEBUG" default:"false"`
}

// jobConfig returns the processing config for one job. Background removal
// only runs when the job asks for it.
func (c workerConfig) jobConfig(job treads.Job, logger *zap.Logger) *treads.Config {
	config := &treads.Config{
		OutputDir:       c.OutputDir,
		RemoveBgURL:     c.RemoveBgURL,
		DownloadTimeout: c.DownloadTimeout,
		DebugMode:       c.DebugMode,
		Logger:          logger.With(zap.String("job_id", job.ID)),
	}
	if job.RemoveBackground {
		config.RemoveBgToken = c.RemoveBgToken
	}
	return config
}

func newHandler(c workerConfig, m *metrics, logger *zap.Logger) treads.JobHandler {
	return func(ctx context.Context, job treads.Job) (*treads.Manifest, error) {
		st := time.Now()
		manifest, err := treads.Processing(ctx, job.URL, c.jobConfig(job, logger))
		m.observe(err, time.Since(st))
		return manifest, err
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	var c workerConfig
	if err = envconfig.Process("", &c); err != nil {
		logger.Fatal("read config", zap.Error(err))
	}
	rabbit, err := treads.LoadRabbitSettings()
	if err != nil {
		logger.Fatal("read rabbitmq settings", zap.Error(err))
	}

	m := newMetrics()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(c.MetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := treads.Dial(rabbit, logger)
	if err != nil {
		logger.Fatal("dial rabbitmq", zap.Error(err))
	}
	defer listener.Close()

	if err = listener.Listen(ctx, newHandler(c, m, logger)); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("listener stopped", zap.Error(err))
	}
}
