package models

// GameRecord is a validated featured-game record. It holds exactly the keys of
// the schema it was cleaned against; game_id is always a non-nil int64.
type GameRecord map[string]any

// GameID returns the record's identifier.
func (r GameRecord) GameID() (int64, bool) {
	id, ok := r[FieldGameID].(int64)

	return id, ok
}

// SilverDocument is the silver layer file body.
type SilverDocument struct {
	Items []GameRecord `json:"items"`
}
