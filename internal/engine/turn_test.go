package engine

import (
	"testing"

	"github.com/jgresham/based-poker/internal/randutil"
)

func TestNextPlayerSkipsFolded(t *testing.T) {
	t.Parallel()
	s := NewGame(4, WithRNG(randutil.New(42)))
	// Cursor at 3; seat 0 is out of the hand
	s.Players[0].IsActive = false

	next := s.NextPlayer()
	if next.CurrentPlayerIndex != 1 {
		t.Errorf("cursor should skip seat 0 and land on 1, got %d", next.CurrentPlayerIndex)
	}
	for i, p := range next.Players {
		if p.IsTurn != (i == 1) {
			t.Errorf("seat %d IsTurn=%v", i, p.IsTurn)
		}
	}
}

func TestNextPlayerSkipsAllIn(t *testing.T) {
	t.Parallel()
	s := NewGame(4, WithRNG(randutil.New(42)))
	s.Players[0].IsAllIn = true

	next := s.NextPlayer()
	if next.CurrentPlayerIndex != 1 {
		t.Errorf("cursor should skip the all-in seat, got %d", next.CurrentPlayerIndex)
	}
}

func TestNextPlayerNobodyLeft(t *testing.T) {
	t.Parallel()
	s := NewGame(4, WithRNG(randutil.New(42)))
	for i := range s.Players {
		if i != s.CurrentPlayerIndex {
			s.Players[i].IsActive = false
		}
	}

	next := s.NextPlayer()
	if next.CurrentPlayerIndex != -1 {
		t.Errorf("cursor should report no further turns, got %d", next.CurrentPlayerIndex)
	}
	for i, p := range next.Players {
		if p.IsTurn {
			t.Errorf("seat %d still holds the turn after the hand ended", i)
		}
	}
}

func TestNextPlayerNeverPicksInactive(t *testing.T) {
	t.Parallel()
	s := NewGame(6, WithRNG(randutil.New(7)))
	s.Players[4].IsActive = false
	s.Players[5].IsActive = false

	cur := s
	for i := 0; i < 20; i++ {
		cur = cur.NextPlayer()
		idx := cur.CurrentPlayerIndex
		if idx == -1 {
			t.Fatal("active players remain but cursor reported none")
		}
		if !cur.Players[idx].IsActive {
			t.Fatalf("cursor landed on folded seat %d", idx)
		}
	}
}
