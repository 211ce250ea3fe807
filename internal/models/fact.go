package models

// FactRow is one gold-layer fact: a game listed in a category of a captured document.
type FactRow struct {
	GameID            any      `json:"game_id"`
	GameName          any      `json:"game_name"`
	GameType          any      `json:"game_type"`
	IsDiscounted      any      `json:"is_discounted"`
	DiscountPercent   any      `json:"discount_percent"`
	OriginalPrice     *float64 `json:"original_price"`
	FinalPrice        *float64 `json:"final_price"`
	Category          any      `json:"category"`
	Source            any      `json:"source"`
	CaptureDateUTC    any      `json:"capture_date_utc"`
	ProcessingDateUTC string   `json:"processing_date_utc"`
}
