package engine

import (
	"errors"
	"testing"

	"github.com/jgresham/based-poker/internal/randutil"
)

func TestStageNext(t *testing.T) {
	t.Parallel()
	tests := []struct {
		from, to Stage
	}{
		{StagePreflop, StageFlop},
		{StageFlop, StageTurn},
		{StageTurn, StageRiver},
		{StageRiver, StageShowdown},
		{StageShowdown, StageEnded},
		{StageEnded, StageEnded},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.to {
			t.Errorf("%s.Next() = %s, want %s", tt.from, got, tt.to)
		}
	}
}

// callAround has everyone match the big blind to close the preflop round
func callAround(t *testing.T, s GameState) GameState {
	t.Helper()
	var err error
	for _, id := range []string{"player-4", "player-1", "player-2"} {
		if s, err = s.Call(id); err != nil {
			t.Fatalf("call by %s: %v", id, err)
		}
	}
	if s, err = s.Check("player-3"); err != nil {
		t.Fatalf("big blind check: %v", err)
	}
	return s
}

func TestAdvanceRoundToFlop(t *testing.T) {
	t.Parallel()
	s := callAround(t, newTestGame(t, 4))
	pot := s.Pot

	next, err := s.AdvanceRound()
	if err != nil {
		t.Fatalf("advance error: %v", err)
	}
	if next.Stage != StageFlop {
		t.Errorf("stage should be flop, got %s", next.Stage)
	}
	if len(next.CommunityCards) != 3 {
		t.Errorf("flop should reveal 3 cards, got %d", len(next.CommunityCards))
	}
	for i := range next.Players {
		if next.Players[i].Bet != 0 {
			t.Errorf("seat %d bet should reset, got %d", i, next.Players[i].Bet)
		}
	}
	if next.CurrentBet != 0 {
		t.Errorf("current bet should reset, got %d", next.CurrentBet)
	}
	if next.Pot != pot {
		t.Errorf("pot should carry over, got %d want %d", next.Pot, pot)
	}
	if next.CurrentPlayerIndex != next.DealerIndex || !next.Players[next.DealerIndex].IsTurn {
		t.Error("action should restart on the dealer")
	}
	if next.CardsInPlay() != 52 {
		t.Errorf("card conservation broken: %d", next.CardsInPlay())
	}
}

func TestAdvanceRoundDealerFolded(t *testing.T) {
	t.Parallel()
	s := callAround(t, newTestGame(t, 4))
	s.Players[s.DealerIndex].IsActive = false

	next, err := s.AdvanceRound()
	if err != nil {
		t.Fatalf("advance error: %v", err)
	}
	if next.CurrentPlayerIndex == next.DealerIndex {
		t.Error("a folded dealer cannot act")
	}
	if !next.Players[next.CurrentPlayerIndex].CanAct() {
		t.Error("turn landed on a seat that cannot act")
	}
}

func TestAdvanceRoundToShowdown(t *testing.T) {
	t.Parallel()
	s := newTestGame(t, 4)
	s.Stage = StageRiver

	next, err := s.AdvanceRound()
	if err != nil {
		t.Fatalf("advance error: %v", err)
	}
	if next.Stage != StageShowdown {
		t.Errorf("stage should be showdown, got %s", next.Stage)
	}
	if next.CurrentPlayerIndex != -1 {
		t.Error("no further turns at showdown")
	}
	if len(next.CommunityCards) != 0 {
		t.Error("showdown reveals no cards")
	}
}

func TestAdvanceRoundEnded(t *testing.T) {
	t.Parallel()
	s := newTestGame(t, 4)
	s.Stage = StageEnded
	if _, err := s.AdvanceRound(); !errors.Is(err, ErrHandOver) {
		t.Errorf("expected ErrHandOver, got %v", err)
	}
}

func TestNextHand(t *testing.T) {
	t.Parallel()
	s := callAround(t, newTestGame(t, 4))
	total := s.TotalChips()

	next, err := s.NextHand(randutil.New(7))
	if err != nil {
		t.Fatalf("next hand error: %v", err)
	}
	if next.DealerIndex != 1 || !next.Players[1].IsDealer {
		t.Errorf("dealer should rotate to seat 1, got %d", next.DealerIndex)
	}
	if !next.Players[2].IsSmallBlind || !next.Players[3].IsBigBlind {
		t.Error("blind roles should rotate with the dealer")
	}
	if next.Pot != next.SmallBlind+next.BigBlind {
		t.Errorf("pot should hold the fresh blinds, got %d", next.Pot)
	}
	if next.CurrentBet != next.BigBlind {
		t.Errorf("current bet should be the big blind, got %d", next.CurrentBet)
	}
	if next.Stage != StagePreflop {
		t.Errorf("stage should be preflop, got %s", next.Stage)
	}
	if len(next.CommunityCards) != 0 {
		t.Error("community cards should reset")
	}
	for i, p := range next.Players {
		if len(p.Cards) != 2 {
			t.Errorf("seat %d should hold 2 fresh cards, got %d", i, len(p.Cards))
		}
		if !p.IsActive || p.IsAllIn {
			t.Errorf("seat %d flags should reset", i)
		}
	}
	// First actor for a 4-handed table is three seats past the dealer
	if want := (next.DealerIndex + 3) % 4; next.CurrentPlayerIndex != want {
		t.Errorf("first actor should be seat %d, got %d", want, next.CurrentPlayerIndex)
	}
	if next.CardsInPlay() != 52 {
		t.Errorf("card conservation broken: %d", next.CardsInPlay())
	}
	if next.TotalChips() != total {
		t.Errorf("chips in play changed across hands: %d != %d", next.TotalChips(), total)
	}
}

func TestNextHandHeadsUpFirstActor(t *testing.T) {
	t.Parallel()
	s := newTestGame(t, 2)
	next, err := s.NextHand(randutil.New(11))
	if err != nil {
		t.Fatalf("next hand error: %v", err)
	}
	// Heads-up the dealer acts first; the button moved to seat 1
	if next.DealerIndex != 1 || next.CurrentPlayerIndex != 1 {
		t.Errorf("dealer=%d cursor=%d, want both 1", next.DealerIndex, next.CurrentPlayerIndex)
	}
}

func TestEndHandAwardsPot(t *testing.T) {
	t.Parallel()
	s := newTestGame(t, 3)

	var err error
	for _, id := range []string{"player-1", "player-2"} {
		if s, err = s.Fold(id); err != nil {
			t.Fatalf("fold by %s: %v", id, err)
		}
	}
	if s.ActivePlayers() != 1 {
		t.Fatalf("one player should remain, got %d", s.ActivePlayers())
	}

	next, err := s.EndHand()
	if err != nil {
		t.Fatalf("end hand error: %v", err)
	}
	// Seat 2 posted the big blind (990) and wins the 15 in the pot
	if next.Players[2].Chips != 1005 {
		t.Errorf("winner should hold 1005 chips, got %d", next.Players[2].Chips)
	}
	if next.Pot != 0 || next.Stage != StageEnded {
		t.Errorf("pot=%d stage=%s after ending", next.Pot, next.Stage)
	}
	for i, p := range next.Players {
		if p.IsTurn {
			t.Errorf("seat %d still holds a turn after the hand ended", i)
		}
	}
}

func TestEndHandContested(t *testing.T) {
	t.Parallel()
	s := newTestGame(t, 3)
	if _, err := s.EndHand(); err == nil {
		t.Error("ending a contested hand should be rejected")
	}
}
