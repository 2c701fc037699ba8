package engine

import (
	"math/rand/v2"

	"github.com/jgresham/based-poker/internal/deck"
)

// AdvanceRound closes the current betting round and opens the next stage:
// per-round bets are zeroed, the current bet resets, the turn returns to
// the dealer (or the first acting seat after it), and entry into flop,
// turn or river reveals that stage's community cards exactly once.
//
// Advancing from river lands on showdown; winner determination is the
// caller's concern.
func (s GameState) AdvanceRound() (GameState, error) {
	if s.Stage == StageEnded {
		return s, ErrHandOver
	}

	next := s.Clone()
	for i := range next.Players {
		next.Players[i].Bet = 0
	}
	next.CurrentBet = 0
	next.Stage = next.Stage.Next()

	if next.Stage == StageShowdown || next.Stage == StageEnded {
		next.setTurn(-1)
		return next, nil
	}

	// Action restarts on the dealer, falling through to the next seat that
	// can act when the dealer is out of the hand.
	if next.Players[next.DealerIndex].CanAct() {
		next.setTurn(next.DealerIndex)
	} else {
		next.setTurn(next.nextActingIndex(next.DealerIndex))
	}

	return next.DealCommunityCards()
}

// NextHand supersedes an ended (or abandoned) hand with a fresh one: all
// hands, bets and per-hand flags reset, the dealer button and blind roles
// rotate one seat, a new shuffled deck is drawn from rng, blinds are
// posted and two hole cards go to every player.
func (s GameState) NextHand(rng *rand.Rand) (GameState, error) {
	next := s.Clone()

	for i := range next.Players {
		p := &next.Players[i]
		p.Cards = nil
		p.Bet = 0
		p.IsActive = true
		p.IsAllIn = false
		p.IsTurn = false
	}
	next.CommunityCards = nil
	next.Deck = deck.New(rng)

	next.startHand((next.DealerIndex + 1) % len(next.Players))
	return next.DealHoleCards()
}

// EndHand terminates the hand and awards the pot to the sole remaining
// active player. It is the transition for the everyone-else-folded case;
// with two or more contenders still in, the hand must instead run to
// showdown.
func (s GameState) EndHand() (GameState, error) {
	if s.Stage == StageEnded {
		return s, ErrHandOver
	}

	winner := -1
	for i := range s.Players {
		if s.Players[i].IsActive {
			if winner != -1 {
				return s, &RuleError{Code: "hand_contested", Reason: "more than one player still contesting the pot"}
			}
			winner = i
		}
	}

	next := s.Clone()
	if winner != -1 {
		next.Players[winner].Chips += next.Pot
	}
	next.Pot = 0
	for i := range next.Players {
		next.Players[i].Bet = 0
	}
	next.CurrentBet = 0
	next.Stage = StageEnded
	next.setTurn(-1)
	return next, nil
}
