package pipeline

import (
	"context"
	"errors"

	"steamfeatured/internal/aggregator"
	"steamfeatured/internal/formatter"
	"steamfeatured/internal/models"
	"steamfeatured/internal/store"
)

// Gold aggregates the newest silver file into fact rows and writes them to a
// new gold file. Older silver files are ignored.
func (r *Runner) Gold(_ context.Context) (*Report, error) {
	rn := r.begin(StageGold)

	path, err := r.store.LatestSilver()
	if errors.Is(err, store.ErrNoFiles) {
		return r.finish(rn, ErrNoInput)
	}

	if err != nil {
		return r.finish(rn, err)
	}

	doc, err := store.ReadDocument(path)
	if err != nil {
		rn.report.FilesSkipped++

		return r.finish(rn, err)
	}

	rn.report.FilesRead++
	rn.report.RecordsIn = countItems(doc)

	processedAt := models.FormatDocumentTime(rn.report.StartedAt)

	rows, errs := aggregator.Aggregate(doc, processedAt)
	for _, aggErr := range errs {
		rn.log.Warn("silver item skipped", "file", path, "error", aggErr)
	}

	rn.report.Discarded = len(errs)

	if len(rows) == 0 {
		return r.finish(rn, ErrNoRecords)
	}

	out, err := r.store.WriteJSON(store.Gold, store.GoldPrefix, rows)
	if err != nil {
		return r.finish(rn, err)
	}

	rn.report.RecordsOut = len(rows)
	rn.report.Output = out

	if r.cfg.Output.MarkdownSummary {
		summary := formatter.FactsSummary(rows, processedAt)

		md, err := r.store.WriteFile(store.Gold, r.store.FileName(store.GoldPrefix, ".md"), []byte(summary))
		if err != nil {
			rn.log.Warn("markdown summary not written", "error", err)
		} else {
			rn.report.Summary = md
		}
	}

	return r.finish(rn, nil)
}

func countItems(doc any) int {
	body, ok := doc.(map[string]any)
	if !ok {
		return 0
	}

	items, _ := body["items"].([]any)

	return len(items)
}
