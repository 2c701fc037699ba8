package engine

import "github.com/jgresham/based-poker/internal/deck"

// Player represents a seat in a hand. Role flags (dealer, blinds, turn) are
// recomputed at the start of every hand; Bet is the amount committed in the
// current betting round only.
type Player struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Chips        int         `json:"chips"`
	Cards        []deck.Card `json:"cards"`
	IsActive     bool        `json:"isActive"`
	IsDealer     bool        `json:"isDealer"`
	IsSmallBlind bool        `json:"isSmallBlind"`
	IsBigBlind   bool        `json:"isBigBlind"`
	IsTurn       bool        `json:"isTurn"`
	IsAllIn      bool        `json:"isAllIn"`
	Bet          int         `json:"bet"`
	SeatPosition *int        `json:"seatPosition,omitempty"`
}

// CanAct returns true if the player may be given the turn: still contesting
// the pot and not already all-in.
func (p *Player) CanAct() bool {
	return p.IsActive && !p.IsAllIn
}

// clone returns an independent copy of the player
func (p Player) clone() Player {
	out := p
	if p.Cards != nil {
		out.Cards = make([]deck.Card, len(p.Cards))
		copy(out.Cards, p.Cards)
	}
	if p.SeatPosition != nil {
		seat := *p.SeatPosition
		out.SeatPosition = &seat
	}
	return out
}
