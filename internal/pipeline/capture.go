package pipeline

import (
	"context"
	"fmt"

	"steamfeatured/internal/models"
	"steamfeatured/internal/store"
)

// Capture fetches the featured categories once and writes the response to a
// new bronze file. Nothing is written when the fetch fails.
func (r *Runner) Capture(ctx context.Context) (*Report, error) {
	rn := r.begin(StageCapture)

	data, err := r.fetcher.FetchFeatured(ctx)
	if err != nil {
		return r.finish(rn, fmt.Errorf("failed to capture featured categories: %w", err))
	}

	rn.report.RecordsIn = 1

	var doc any = data
	if r.cfg.Capture.Envelope {
		doc = models.NewEnvelope(data, rn.report.StartedAt)
	}

	path, err := r.store.WriteJSON(store.Bronze, store.BronzePrefix, doc)
	if err != nil {
		return r.finish(rn, err)
	}

	rn.report.RecordsOut = 1
	rn.report.Output = path

	return r.finish(rn, nil)
}
