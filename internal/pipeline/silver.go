package pipeline

import (
	"context"
	"time"

	"steamfeatured/internal/models"
	"steamfeatured/internal/normalizer"
	"steamfeatured/internal/store"
)

// Silver reprocesses every bronze file in capture order, then deduplicates
// the clean records by game_id (the latest capture wins) and writes them to a
// new silver file. Unreadable or non-object files are skipped with a warning.
func (r *Runner) Silver(ctx context.Context) (*Report, error) {
	rn := r.begin(StageSilver)

	files, err := r.store.AllBronze()
	if err != nil {
		return r.finish(rn, err)
	}

	if len(files) == 0 {
		return r.finish(rn, ErrNoInput)
	}

	validator := normalizer.NewValidator(models.FeaturedGameSchema, r.cfg.Validation.Strict)
	processor := normalizer.NewProcessor(validator)
	normalizedAt := models.FormatDocumentTime(rn.report.StartedAt)

	var (
		records []models.GameRecord
		total   normalizer.Stats
	)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return r.finish(rn, err)
		}

		doc, err := store.ReadDocument(path)
		if err != nil {
			rn.log.Warn("skipping unreadable bronze file", "file", path, "error", err)
			rn.report.FilesSkipped++

			continue
		}

		meta := normalizer.Metadata{
			Source:       models.SourceSteam,
			Endpoint:     models.EndpointFeatured,
			CapturedAt:   captureStamp(path, rn.report.StartedAt),
			NormalizedAt: normalizedAt,
		}

		recs, stats, err := processor.Process(doc, meta)
		if err != nil {
			rn.log.Warn("skipping bronze file", "file", path, "error", err)
			rn.report.FilesSkipped++

			continue
		}

		rn.log.Debug("bronze file processed",
			"file", path,
			"categories", stats.Categories,
			"items", stats.Items,
			"valid", stats.Valid,
		)

		rn.report.FilesRead++
		total.Add(stats)

		records = append(records, recs...)
	}

	unique := normalizer.Deduplicate(records)

	rn.report.RecordsIn = total.Items
	rn.report.NotGames = total.NotGames
	rn.report.Discarded = total.Discarded
	rn.report.RecordsOut = len(unique)

	if len(unique) == 0 {
		return r.finish(rn, ErrNoRecords)
	}

	path, err := r.store.WriteJSON(store.Silver, store.SilverPrefix, models.SilverDocument{Items: unique})
	if err != nil {
		rn.report.RecordsOut = 0

		return r.finish(rn, err)
	}

	rn.report.Output = path

	return r.finish(rn, nil)
}

// captureStamp returns the capture time encoded in a bronze file name, or
// fallback when the name carries none.
func captureStamp(path string, fallback time.Time) string {
	t, err := store.CaptureTime(path, time.Local)
	if err != nil {
		return models.FormatDocumentTime(fallback)
	}

	return models.FormatDocumentTime(t)
}
