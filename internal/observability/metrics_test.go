package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusObserver_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPrometheusObserver(reg)
	if err != nil {
		t.Fatalf("NewPrometheusObserver: %v", err)
	}

	o.RecordStage("transport", 120*time.Millisecond, nil)
	o.RecordStage("transport", 80*time.Millisecond, errors.New("boom"))
	o.RecordStage("authorize", 10*time.Millisecond, nil)
	o.RecordFile("done", 2048)
	o.RecordFile("done", 1024)
	o.RecordFile("error", 4096)

	if got := testutil.ToFloat64(o.stageErrors.WithLabelValues("transport")); got != 1 {
		t.Errorf("transport errors = %v; want 1", got)
	}
	if got := testutil.ToFloat64(o.stageErrors.WithLabelValues("authorize")); got != 0 {
		t.Errorf("authorize errors = %v; want 0", got)
	}
	if got := testutil.ToFloat64(o.files.WithLabelValues("done")); got != 2 {
		t.Errorf("done files = %v; want 2", got)
	}
	if got := testutil.ToFloat64(o.files.WithLabelValues("error")); got != 1 {
		t.Errorf("error files = %v; want 1", got)
	}
	if got := testutil.ToFloat64(o.uploadedBytes); got != 3072 {
		t.Errorf("uploaded bytes = %v; want 3072", got)
	}
	if got := testutil.CollectAndCount(o.stageDuration); got != 2 {
		t.Errorf("duration series = %d; want 2", got)
	}
}

func TestPrometheusObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusObserver(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPrometheusObserver(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	second.RecordFile("done", 10)
	if got := testutil.ToFloat64(first.uploadedBytes); got != 10 {
		t.Errorf("uploaded bytes via first = %v; want 10", got)
	}
}

func TestNilObserverIsSafe(t *testing.T) {
	var o *PrometheusObserver
	o.RecordStage("transcode", time.Second, nil)
	o.RecordFile("done", 1)
	Noop{}.RecordFile("done", 1)
}
