package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Upsert outcomes used as label values of PlacesUpserted.
const (
	OutcomeCreated   = "created"
	OutcomeMerged    = "merged"
	OutcomeUnchanged = "unchanged"
)

type Metrics struct {
	LocationsProcessed prometheus.Counter
	PlacesUpserted     *prometheus.CounterVec
	RequestSeconds     *prometheus.HistogramVec
	APIErrors          prometheus.Counter
	Alerts             *prometheus.CounterVec
	Checkpoint         prometheus.Gauge
	RunSeconds         prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		LocationsProcessed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "prospector_locations_processed_total",
			Help: "Total number of fully processed locations.",
		}),
		PlacesUpserted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "prospector_places_upserted_total",
			Help: "Total number of place upserts partitioned by outcome.",
		}, []string{"outcome"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prospector_directory_request_duration_seconds",
			Help:    "Duration of requests to the places directory.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "prospector_directory_errors_total",
			Help: "Total number of errors received from the places directory.",
		}),
		Alerts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "prospector_alerts_total",
			Help: "Total number of alerts partitioned by kind and delivery status.",
		}, []string{"kind", "status"}),
		Checkpoint: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "prospector_checkpoint",
			Help: "Identifier of the last fully processed location.",
		}),
		RunSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "prospector_run_duration_seconds",
			Help:    "Wall time of one ingestion run.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}),
	}
}

// Push sends every metric of the gatherer to a Prometheus Pushgateway under the given job.
func Push(ctx context.Context, url, job string, gatherer prometheus.Gatherer) error {
	if err := push.New(url, job).Gatherer(gatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}

	return nil
}
