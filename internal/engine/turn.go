package engine

// TurnResult describes one call to Game.ApplyMove.
// It holds copies of coordinates only and never aliases game state.
type TurnResult struct {
	Validity   Validity `json:"validity"`
	Cleared    []Cell   `json:"cleared"`     // Move clear, or spawn clear appended
	Spawned    []Cell   `json:"spawned"`     // Cells filled by the wave, in placement order
	Path       []Cell   `json:"path"`        // Start..end inclusive, empty when rejected
	PathLength int      `json:"path_length"` // len(Path)
	Points     int      `json:"points"`      // Score gained this turn
}

// rejected builds the result for a move that did not pass validation.
func rejected(v Validity) TurnResult {
	return TurnResult{
		Validity: v,
		Cleared:  []Cell{},
		Spawned:  []Cell{},
		Path:     []Cell{},
	}
}

// ClearedByMove reports whether the player's own move completed a line.
func (r TurnResult) ClearedByMove() bool {
	return r.Validity == ValidityCleared
}

// ClearedBySpawn returns how many cells the wave's own lines cleared.
func (r TurnResult) ClearedBySpawn() int {
	if r.Validity != ValidityOK {
		return 0
	}
	return len(r.Cleared)
}
