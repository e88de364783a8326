// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fraud_detector_scans_total",
		Help: "Scanned emails by predicted label.",
	}, []string{"result"})

	ClassifyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fraud_detector_classify_duration_seconds",
		Help:    "Time spent normalizing and classifying one email.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})

	GameAnswersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fraud_detector_game_answers_total",
		Help: "Graded game answers by outcome.",
	}, []string{"outcome"})

	GameResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraud_detector_game_resets_total",
		Help: "Game sessions reset by the player.",
	})
)
