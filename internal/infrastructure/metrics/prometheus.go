// Package metrics exposes snapshot sync and command counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/logging"
)

const namespace = "lruconsole"

// Refresh results.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
	ResultStale  = "stale"
)

// Recorder implements port.SyncMetrics on a private registry.
type Recorder struct {
	registry        *prometheus.Registry
	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	entries         prometheus.Gauge
	contentChanges  prometheus.Counter
	violations      *prometheus.CounterVec
	commands        *prometheus.CounterVec
}

var _ port.SyncMetrics = (*Recorder)(nil)

// NewRecorder registers all collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refreshes_total",
			Help:      "Snapshot fetches by result.",
		}, []string{"result"}),
		refreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_refresh_duration_seconds",
			Help:      "Latency of accepted snapshot fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		entries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_entries",
			Help:      "Entries in the last accepted snapshot.",
		}),
		contentChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_content_changes_total",
			Help:      "Accepted snapshots whose content differs from the previous one.",
		}),
		violations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_violations_total",
			Help:      "Responses breaking the cache service contract.",
		}, []string{"kind"}),
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Operator commands by outcome.",
		}, []string{"command", "outcome"}),
	}
}

// RefreshSucceeded records an accepted fetch of entries taking took.
func (r *Recorder) RefreshSucceeded(entries int, took time.Duration) {
	r.refreshes.WithLabelValues(ResultOK).Inc()
	r.refreshDuration.Observe(took.Seconds())
	r.entries.Set(float64(entries))
}

// RefreshFailed records a fetch that returned an error.
func (r *Recorder) RefreshFailed() {
	r.refreshes.WithLabelValues(ResultFailed).Inc()
}

// StaleResponseDiscarded records a response overtaken by a newer one.
func (r *Recorder) StaleResponseDiscarded() {
	r.refreshes.WithLabelValues(ResultStale).Inc()
}

// SnapshotContentChanged records an accepted snapshot with new content.
func (r *Recorder) SnapshotContentChanged() {
	r.contentChanges.Inc()
}

// ContractViolation records a service response breaking the contract.
func (r *Recorder) ContractViolation(kind string) {
	r.violations.WithLabelValues(kind).Inc()
}

// CommandCompleted records the outcome of an operator command.
func (r *Recorder) CommandCompleted(command, outcome string) {
	r.commands.WithLabelValues(command, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
