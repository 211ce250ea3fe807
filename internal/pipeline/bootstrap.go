package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"steamfeatured/internal/config"
	"steamfeatured/internal/logger"
)

// StageFunc is one of the Runner stage methods.
type StageFunc func(r *Runner, ctx context.Context) (*Report, error)

// Stage method values for Main.
var (
	CaptureStage StageFunc = (*Runner).Capture
	SilverStage  StageFunc = (*Runner).Silver
	GoldStage    StageFunc = (*Runner).Gold
)

// FromEnvironment loads the configuration and builds a runner logging to
// stderr in the configured level and format.
func FromEnvironment() (*Runner, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	runner, err := NewRunner(cfg, log)
	if err != nil {
		return nil, log, fmt.Errorf("failed to create runner: %w", err)
	}

	log.Debug("configuration loaded", "config", cfg.String())

	return runner, log, nil
}

// Main is the body of a stage command. Failures are logged and never turned
// into a non-zero exit status; the scheduler's next trigger is the retry.
func Main(stages ...StageFunc) {
	runner, log, err := FromEnvironment()
	if err != nil {
		if log == nil {
			log = logger.NewLogger("info")
		}

		log.Error("❌ Pipeline setup failed", "error", err)

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// outcome and counts are logged by each stage
	_, _ = runner.RunStages(ctx, stages...)
}
