package normalizer

import "steamfeatured/internal/models"

// Deduplicate keeps one record per game_id. A later record replaces an
// earlier one but takes over its position, so the result is ordered by the
// first appearance of each id.
//
// Within one document categories arrive in name order (see
// ExtractCategories), so a game listed in several categories of the same
// capture keeps the category whose name sorts last.
func Deduplicate(records []models.GameRecord) []models.GameRecord {
	index := make(map[int64]int, len(records))
	out := make([]models.GameRecord, 0, len(records))

	for _, rec := range records {
		id, ok := rec.GameID()
		if !ok {
			continue
		}

		if i, seen := index[id]; seen {
			out[i] = rec

			continue
		}

		index[id] = len(out)
		out = append(out, rec)
	}

	return out
}
