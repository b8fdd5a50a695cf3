package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry    *prometheus.Registry
	jobsTotal   *prometheus.CounterVec
	jobDuration prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treads",
			Name:      "jobs_total",
			Help:      "Processed color extraction jobs.",
		}, []string{"status"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "treads",
			Name:      "job_duration_seconds",
			Help:      "Color extraction job duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.jobsTotal, m.jobDuration)
	return m
}

func (m *metrics) observe(err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.jobsTotal.WithLabelValues(status).Inc()
	m.jobDuration.Observe(d.Seconds())
}
