package engine

import (
	"testing"

	"github.com/jgresham/based-poker/internal/randutil"
)

func TestNewGameSixPlayers(t *testing.T) {
	t.Parallel()
	s := NewGame(6, WithRNG(randutil.New(42)))

	if len(s.Players) != 6 {
		t.Fatalf("expected 6 players, got %d", len(s.Players))
	}
	if s.DealerIndex != 0 || !s.Players[0].IsDealer {
		t.Error("player 0 should be the dealer")
	}
	if !s.Players[1].IsSmallBlind || s.Players[1].Bet != 5 || s.Players[1].Chips != 995 {
		t.Errorf("small blind not posted by player 1: bet=%d chips=%d", s.Players[1].Bet, s.Players[1].Chips)
	}
	if !s.Players[2].IsBigBlind || s.Players[2].Bet != 10 || s.Players[2].Chips != 990 {
		t.Errorf("big blind not posted by player 2: bet=%d chips=%d", s.Players[2].Bet, s.Players[2].Chips)
	}
	if s.CurrentPlayerIndex != 3 || !s.Players[3].IsTurn {
		t.Errorf("first actor should be player 3, cursor at %d", s.CurrentPlayerIndex)
	}
	if s.Pot != 15 {
		t.Errorf("pot should be 15, got %d", s.Pot)
	}
	if s.CurrentBet != 10 {
		t.Errorf("current bet should be 10, got %d", s.CurrentBet)
	}
	if s.Stage != StagePreflop {
		t.Errorf("stage should be preflop, got %s", s.Stage)
	}
	if s.Deck.Len() != 52 {
		t.Errorf("deck should be untouched at 52 cards, got %d", s.Deck.Len())
	}
	if s.TotalChips() != 6*DefaultChips {
		t.Errorf("chips in play should be %d, got %d", 6*DefaultChips, s.TotalChips())
	}
}

func TestNewGameHeadsUp(t *testing.T) {
	t.Parallel()
	s := NewGame(2, WithRNG(randutil.New(42)))

	if len(s.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(s.Players))
	}
	if !s.Players[0].IsDealer {
		t.Error("player 0 should be the dealer")
	}
	if s.CurrentPlayerIndex != 0 || !s.Players[0].IsTurn {
		t.Error("heads-up: the dealer acts first preflop")
	}
	// The non-dealer seat carries both blind labels; the dealer pays the
	// small blind.
	if !s.Players[1].IsSmallBlind || !s.Players[1].IsBigBlind {
		t.Error("heads-up: player 1 should carry both blind roles")
	}
	if s.Players[0].Chips != 995 || s.Players[0].Bet != 5 {
		t.Errorf("dealer should post the small blind: chips=%d bet=%d", s.Players[0].Chips, s.Players[0].Bet)
	}
	if s.Players[1].Chips != 990 || s.Players[1].Bet != 10 {
		t.Errorf("player 1 should post the big blind: chips=%d bet=%d", s.Players[1].Chips, s.Players[1].Bet)
	}
	if s.Pot != 15 || s.CurrentBet != 10 {
		t.Errorf("pot=%d currentBet=%d, want 15/10", s.Pot, s.CurrentBet)
	}
}

func TestNewGameThreeHanded(t *testing.T) {
	t.Parallel()
	s := NewGame(3, WithRNG(randutil.New(42)))
	if s.CurrentPlayerIndex != 0 {
		t.Errorf("three-handed: dealer acts first preflop, cursor at %d", s.CurrentPlayerIndex)
	}
}

func TestNewGameClampsPlayerCount(t *testing.T) {
	t.Parallel()
	if n := len(NewGame(1, WithRNG(randutil.New(1))).Players); n != MinPlayers {
		t.Errorf("1 player clamps to %d, got %d", MinPlayers, n)
	}
	if n := len(NewGame(25, WithRNG(randutil.New(1))).Players); n != MaxPlayers {
		t.Errorf("25 players clamps to %d, got %d", MaxPlayers, n)
	}
}

func TestShortStackBlindsGoAllIn(t *testing.T) {
	t.Parallel()
	s := NewGame(3, WithRNG(randutil.New(1)), WithChips(4))

	for i, p := range s.Players {
		if p.Chips < 0 {
			t.Errorf("player %d has negative chips: %d", i, p.Chips)
		}
	}
	if s.Players[1].Bet != 4 || !s.Players[1].IsAllIn {
		t.Errorf("short small blind should be all-in for 4, bet=%d allIn=%v", s.Players[1].Bet, s.Players[1].IsAllIn)
	}
	if s.Players[2].Bet != 4 || !s.Players[2].IsAllIn {
		t.Errorf("short big blind should be all-in for 4, bet=%d allIn=%v", s.Players[2].Bet, s.Players[2].IsAllIn)
	}
	if s.Pot != 8 {
		t.Errorf("pot should hold the clamped blinds, got %d", s.Pot)
	}
}

func TestNewGameOptions(t *testing.T) {
	t.Parallel()
	s := NewGame(2,
		WithRNG(randutil.New(9)),
		WithChips(500),
		WithBlinds(1, 2),
		WithNames("Alice", "Bob"),
	)
	if s.Players[0].Name != "Alice" || s.Players[1].Name != "Bob" {
		t.Errorf("names not applied: %q, %q", s.Players[0].Name, s.Players[1].Name)
	}
	if s.SmallBlind != 1 || s.BigBlind != 2 {
		t.Errorf("blinds not applied: %d/%d", s.SmallBlind, s.BigBlind)
	}
	if s.TotalChips() != 1000 {
		t.Errorf("chips in play should be 1000, got %d", s.TotalChips())
	}
}
