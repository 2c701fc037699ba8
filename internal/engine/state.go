// Package engine implements the state-transition core of a single
// Texas Hold'em table: deck lifecycle, dealing, blind posting, turn
// rotation, betting actions and stage progression.
//
// Every operation is a pure function from one immutable GameState snapshot
// to the next. Nothing here blocks, spawns goroutines or touches shared
// state; callers that share a table across participants are responsible for
// serializing action application (see internal/server).
package engine

import "github.com/jgresham/based-poker/internal/deck"

// GameState is a full snapshot of a table. Turn order is the order of
// Players and is fixed for the duration of a hand.
type GameState struct {
	Players            []Player    `json:"players"`
	CommunityCards     []deck.Card `json:"communityCards"`
	Deck               deck.Deck   `json:"deck"`
	Pot                int         `json:"pot"`
	CurrentBet         int         `json:"currentBet"`
	Stage              Stage       `json:"stage"`
	CurrentPlayerIndex int         `json:"currentPlayerIndex"`
	DealerIndex        int         `json:"dealerIndex"`
	SmallBlind         int         `json:"smallBlindAmount"`
	BigBlind           int         `json:"bigBlindAmount"`
}

// Clone returns a deep copy of the snapshot. All transition operations
// clone first so the input state is never mutated.
func (s GameState) Clone() GameState {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.clone()
	}
	if s.CommunityCards != nil {
		out.CommunityCards = make([]deck.Card, len(s.CommunityCards))
		copy(out.CommunityCards, s.CommunityCards)
	}
	out.Deck = s.Deck.Clone()
	return out
}

// PlayerIndex returns the seat index of the player with the given id, or -1
func (s GameState) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// ActivePlayers returns the number of players still contesting the pot
func (s GameState) ActivePlayers() int {
	n := 0
	for i := range s.Players {
		if s.Players[i].IsActive {
			n++
		}
	}
	return n
}

// TotalChips returns the chips in play: stacks plus the pot. The pot
// includes live bets as soon as they are made, so this total is invariant
// across any sequence of betting actions.
func (s GameState) TotalChips() int {
	total := s.Pot
	for i := range s.Players {
		total += s.Players[i].Chips
	}
	return total
}

// CardsInPlay returns deck plus hole plus community card counts. Equals 52
// at all times during a hand.
func (s GameState) CardsInPlay() int {
	n := s.Deck.Len() + len(s.CommunityCards)
	for i := range s.Players {
		n += len(s.Players[i].Cards)
	}
	return n
}

// setTurn marks exactly the given seat as the acting player. A negative
// index clears the turn everywhere (hand over, nobody to act).
func (s *GameState) setTurn(idx int) {
	for i := range s.Players {
		s.Players[i].IsTurn = i == idx
	}
	s.CurrentPlayerIndex = idx
}
