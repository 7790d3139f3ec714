package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tariffsync"

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of synchronization runs by result",
		},
		[]string{"result"},
	)

	RunDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of synchronization runs",
			Buckets:   prometheus.DefBuckets,
		},
	)

	StageDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	StageFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Total number of failed stages by stage and error kind",
		},
		[]string{"stage", "kind"},
	)

	TariffsFetched = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tariffs_fetched",
			Help:      "Number of tariff records produced by the last fetch",
		},
	)

	TariffsPersisted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tariffs_persisted",
			Help:      "Number of tariff records written by the last persist stage",
		},
	)

	LastSuccessTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp",
			Help:      "Unix timestamp of the last successful run",
		},
	)

	SkippedTriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_triggers_total",
			Help:      "Triggers ignored because a run was already in progress",
		},
		[]string{"source"},
	)
)

func ObserveStage(stage string, startedAt time.Time, kind string) {
	StageDurationSeconds.WithLabelValues(stage).Observe(time.Since(startedAt).Seconds())
	if kind != "" {
		StageFailuresTotal.WithLabelValues(stage, kind).Inc()
	}
}

func ObserveRun(startedAt time.Time, err error) {
	RunDurationSeconds.Observe(time.Since(startedAt).Seconds())
	if err != nil {
		RunsTotal.WithLabelValues("failure").Inc()
		return
	}
	RunsTotal.WithLabelValues("success").Inc()
	LastSuccessTimestamp.Set(float64(time.Now().Unix()))
}
