package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports upload pipeline metrics.
type PrometheusObserver struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	files         *prometheus.CounterVec
	uploadedBytes prometheus.Counter
}

// compile-time check: *PrometheusObserver must satisfy port.Observer
var _ port.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver registers the catalog_media_upload_* metrics. A nil
// registerer means the default one.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	const ns, sub = "catalog_media", "upload"

	var err error
	o := &PrometheusObserver{}
	if o.stageDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "stage_duration_seconds",
		Help:      "Latency of each pipeline stage per file.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})); err != nil {
		return nil, err
	}
	if o.stageErrors, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "stage_errors_total",
		Help:      "Count of failed pipeline stages.",
	}, []string{"stage"})); err != nil {
		return nil, err
	}
	if o.files, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "files_total",
		Help:      "Files that reached a terminal status.",
	}, []string{"status"})); err != nil {
		return nil, err
	}
	if o.uploadedBytes, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "bytes_total",
		Help:      "Payload bytes successfully transferred to the storage provider.",
	})); err != nil {
		return nil, err
	}
	return o, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register upload metric: %w", err)
	}
	return c, nil
}

func (o *PrometheusObserver) RecordStage(stage string, d time.Duration, err error) {
	if o == nil {
		return
	}
	o.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		o.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (o *PrometheusObserver) RecordFile(status string, sizeBytes int64) {
	if o == nil {
		return
	}
	o.files.WithLabelValues(status).Inc()
	if status == "done" {
		o.uploadedBytes.Add(float64(sizeBytes))
	}
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordStage(string, time.Duration, error) {}
func (Noop) RecordFile(string, int64)                 {}
