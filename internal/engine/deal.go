package engine

// DealHoleCards deals two face-down cards to every active player, one card
// per player per pass, in table order. If the deck runs out mid-deal the
// cards dealt so far are kept and ErrDeckExhausted is returned alongside
// the partial state.
func (s GameState) DealHoleCards() (GameState, error) {
	next := s.Clone()
	for round := 0; round < 2; round++ {
		for i := range next.Players {
			p := &next.Players[i]
			if !p.IsActive {
				continue
			}
			card, rest, ok := next.Deck.Pop()
			if !ok {
				return next, ErrDeckExhausted
			}
			card.FaceUp = false
			p.Cards = append(p.Cards, card)
			next.Deck = rest
		}
	}
	return next, nil
}

// DealCommunityCards reveals the community cards for the current stage:
// three on the flop, one each on the turn and river. Any other stage
// returns the state unchanged with ErrInvalidStageForDeal.
//
// Callers must invoke this exactly once per stage transition; dealing twice
// for the same stage over-deals the board.
func (s GameState) DealCommunityCards() (GameState, error) {
	count := communityCardCount(s.Stage)
	if count == 0 {
		return s, ErrInvalidStageForDeal
	}

	next := s.Clone()
	for i := 0; i < count; i++ {
		card, rest, ok := next.Deck.Pop()
		if !ok {
			return next, ErrDeckExhausted
		}
		card.FaceUp = true
		next.CommunityCards = append(next.CommunityCards, card)
		next.Deck = rest
	}
	return next, nil
}
