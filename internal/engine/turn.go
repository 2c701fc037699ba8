package engine

// NextPlayer advances the acting-player cursor to the next seat that can
// act, scanning cyclically from the seat after the current one. Folded and
// all-in seats are skipped. If no other seat can act the hand has no
// further turns: every IsTurn flag is cleared and the cursor is set to -1.
func (s GameState) NextPlayer() GameState {
	next := s.Clone()
	next.setTurn(next.nextActingIndex(next.CurrentPlayerIndex))
	return next
}

// nextActingIndex returns the first seat after from (exclusive, wrapping)
// that can act, or -1 when none exists.
func (s GameState) nextActingIndex(from int) int {
	count := len(s.Players)
	if count == 0 {
		return -1
	}
	if from < 0 {
		from = count - 1
	}
	for i := 1; i <= count; i++ {
		idx := (from + i) % count
		if idx == from {
			break
		}
		if s.Players[idx].CanAct() {
			return idx
		}
	}
	return -1
}
