package dev

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "slab",
		Name:      "builds_total",
		Help:      "Number of template builds by outcome.",
	}, []string{"status"})

	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "slab",
		Name:      "build_duration_seconds",
		Help:      "Duration of template builds.",
		Buckets:   prometheus.DefBuckets,
	})

	templatesCompiled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "slab",
		Name:      "templates_compiled_total",
		Help:      "Number of templates compiled across all builds.",
	})

	reloadClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "slab",
		Name:      "reload_clients",
		Help:      "Connected hot reload WebSocket clients.",
	})
)
