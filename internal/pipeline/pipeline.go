// Package pipeline runs the capture, silver and gold stages over the layer
// files of one data directory.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"steamfeatured/internal/config"
	"steamfeatured/internal/crawler"
	"steamfeatured/internal/logger"
	"steamfeatured/internal/metrics"
	"steamfeatured/internal/store"

	"github.com/google/uuid"
)

// Stage names, used in logs, metrics and textfile names.
const (
	StageCapture = "capture"
	StageSilver  = "silver"
	StageGold    = "gold"
)

// Stage outcomes that leave no output file behind.
var (
	ErrNoInput   = errors.New("no input files")
	ErrNoRecords = errors.New("no records to write")
)

// Fetcher supplies the captured storefront document.
type Fetcher interface {
	FetchFeatured(ctx context.Context) (map[string]any, error)
}

// Report summarizes one stage run.
type Report struct {
	Stage        string
	RunID        string
	FilesRead    int
	FilesSkipped int
	RecordsIn    int
	NotGames     int
	Discarded    int
	RecordsOut   int
	Output       string
	Summary      string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Runner executes the stages with one configuration.
type Runner struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *store.Store
	fetcher Fetcher
	now     func() time.Time
	newID   func() string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock replaces time.Now for file names and document timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithFetcher replaces the storefront HTTP client.
func WithFetcher(f Fetcher) Option {
	return func(r *Runner) {
		r.fetcher = f
	}
}

// NewRunner creates a runner rooted at cfg.Paths.DataDir.
func NewRunner(cfg *config.Config, log *logger.Logger, opts ...Option) (*Runner, error) {
	r := &Runner{
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(r)
	}

	st, err := store.New(cfg.Paths.DataDir, r.now)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	r.store = st

	if r.fetcher == nil {
		r.fetcher = crawler.NewClient(cfg.Source, log)
	}

	return r, nil
}

// RunStages runs stages once, in order. Each stage runs even when an earlier
// one failed, as it would under independent scheduling.
func (r *Runner) RunStages(ctx context.Context, stages ...StageFunc) ([]*Report, error) {
	var (
		reports []*Report
		errs    []error
	)

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)

			break
		}

		report, err := stage(r, ctx)
		reports = append(reports, report)

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", report.Stage, err))
		}
	}

	return reports, errors.Join(errs...)
}

// run carries the per-invocation state of one stage.
type run struct {
	log     *logger.Logger
	metrics *metrics.Registry
	report  *Report
}

func (r *Runner) begin(stage string) *run {
	id := r.newID()

	return &run{
		log:     r.log.With("stage", stage, "run_id", id),
		metrics: metrics.NewRegistry(),
		report: &Report{
			Stage:     stage,
			RunID:     id,
			StartedAt: r.now(),
		},
	}
}

// finish records metrics and the outcome log line, then returns the report
// with err unchanged.
func (r *Runner) finish(rn *run, err error) (*Report, error) {
	rep := rn.report
	rep.FinishedAt = r.now()

	m := rn.metrics
	m.AddFiles(rep.Stage, metrics.OutcomeRead, rep.FilesRead)
	m.AddFiles(rep.Stage, metrics.OutcomeSkipped, rep.FilesSkipped)
	m.AddRecords(rep.Stage, metrics.OutcomeRead, rep.RecordsIn)
	m.AddRecords(rep.Stage, metrics.OutcomeNotGame, rep.NotGames)
	m.AddRecords(rep.Stage, metrics.OutcomeDiscarded, rep.Discarded)
	m.AddRecords(rep.Stage, metrics.OutcomeWritten, rep.RecordsOut)

	if rep.Output != "" {
		m.AddFiles(rep.Stage, metrics.OutcomeWritten, 1)
	} else if err != nil && !errors.Is(err, ErrNoInput) && !errors.Is(err, ErrNoRecords) {
		m.AddFiles(rep.Stage, metrics.OutcomeFailed, 1)
	}

	m.ObserveRun(rep.Stage, rep.StartedAt, rep.FinishedAt, err == nil)

	if dir := r.cfg.Metrics.TextfileDir; dir != "" {
		if _, werr := m.WriteTextfile(dir, rep.Stage); werr != nil {
			rn.log.Warn("metrics not written", "error", werr)
		}
	}

	attrs := []any{
		"files_read", rep.FilesRead,
		"files_skipped", rep.FilesSkipped,
		"records_in", rep.RecordsIn,
		"not_games", rep.NotGames,
		"discarded", rep.Discarded,
		"records_out", rep.RecordsOut,
		"output", rep.Output,
		"duration", rep.Duration(),
	}

	switch {
	case err == nil:
		rn.log.Info("stage finished", attrs...)
	case errors.Is(err, ErrNoInput), errors.Is(err, ErrNoRecords):
		rn.log.Warn("stage finished without output", append(attrs, "reason", err)...)
	default:
		rn.log.Error("stage failed", append(attrs, "error", err)...)
	}

	return rep, err
}
