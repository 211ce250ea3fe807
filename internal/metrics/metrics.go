// Package metrics records per-stage counters and writes them as a
// node_exporter textfile after each batch run.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Record and file outcomes.
const (
	OutcomeRead      = "read"
	OutcomeWritten   = "written"
	OutcomeDiscarded = "discarded"
	OutcomeNotGame   = "not_game"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Registry holds the collectors of one stage run.
type Registry struct {
	reg         *prometheus.Registry
	Records     *prometheus.CounterVec
	Files       *prometheus.CounterVec
	Duration    *prometheus.GaugeVec
	LastSuccess *prometheus.GaugeVec
}

// NewRegistry creates a registry with the pipeline collectors registered.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "etl_records_total",
		Help: "Records handled by a stage, by outcome.",
	}, []string{"stage", "outcome"})
	files := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "etl_files_total",
		Help: "Layer files handled by a stage, by outcome.",
	}, []string{"stage", "outcome"})
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "etl_stage_duration_seconds",
		Help: "Wall time of the last stage run.",
	}, []string{"stage"})
	lastSuccess := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "etl_last_success_timestamp_seconds",
		Help: "Unix time of the last stage run that wrote its output.",
	}, []string{"stage"})

	r.MustRegister(records, files, duration, lastSuccess)

	return &Registry{
		reg:         r,
		Records:     records,
		Files:       files,
		Duration:    duration,
		LastSuccess: lastSuccess,
	}
}

// AddRecords adds n records with outcome for stage. Zero counts still create
// the series so dashboards see explicit zeros.
func (r *Registry) AddRecords(stage, outcome string, n int) {
	r.Records.WithLabelValues(stage, outcome).Add(float64(n))
}

// AddFiles adds n files with outcome for stage.
func (r *Registry) AddFiles(stage, outcome string, n int) {
	r.Files.WithLabelValues(stage, outcome).Add(float64(n))
}

// ObserveRun records the duration of a stage run and, when it succeeded, its
// completion time.
func (r *Registry) ObserveRun(stage string, started, finished time.Time, success bool) {
	r.Duration.WithLabelValues(stage).Set(finished.Sub(started).Seconds())

	if success {
		r.LastSuccess.WithLabelValues(stage).Set(float64(finished.UnixNano()) / 1e9)
	}
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes the registry to dir/<stage>.prom and returns the path.
func (r *Registry) WriteTextfile(dir, stage string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create metrics directory: %w", err)
	}

	path := filepath.Join(dir, stage+".prom")
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return "", fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return path, nil
}
