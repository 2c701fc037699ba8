package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jgresham/based-poker/internal/deck"
	"github.com/jgresham/based-poker/internal/randutil"
)

const (
	// MinPlayers and MaxPlayers bound the table size; NewGame clamps into
	// this range.
	MinPlayers = 2
	MaxPlayers = 10

	// DefaultChips is the starting stack when no option overrides it
	DefaultChips = 1000
	// DefaultSmallBlind and DefaultBigBlind are the default stakes
	DefaultSmallBlind = 5
	DefaultBigBlind   = 10
)

// GameOption configures a table during creation
type GameOption func(*gameConfig)

type gameConfig struct {
	chips      int
	smallBlind int
	bigBlind   int
	names      []string
	rng        *rand.Rand
	deck       deck.Deck
}

// WithChips sets the uniform starting stack for all players
func WithChips(chips int) GameOption {
	return func(c *gameConfig) { c.chips = chips }
}

// WithBlinds sets the small and big blind amounts
func WithBlinds(small, big int) GameOption {
	return func(c *gameConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithNames sets player display names. Missing names fall back to the
// sequential default.
func WithNames(names ...string) GameOption {
	return func(c *gameConfig) { c.names = names }
}

// WithRNG sets the random source used to shuffle. Tests pass a
// deterministically seeded RNG.
func WithRNG(rng *rand.Rand) GameOption {
	return func(c *gameConfig) { c.rng = rng }
}

// WithDeck sets a pre-arranged deck, overriding the RNG shuffle
func WithDeck(d deck.Deck) GameOption {
	return func(c *gameConfig) { c.deck = d }
}

// NewGame builds a fresh table of playerCount players, assigns dealer and
// blind roles, posts the blinds and computes the first actor. Hole cards
// are not dealt; compose with DealHoleCards.
//
// Heads-up, the non-dealer seat carries both blind labels, the dealer
// posts the small blind and acts first. Blinds short of a stack are
// clamped and put the seat all-in.
func NewGame(playerCount int, opts ...GameOption) GameState {
	cfg := &gameConfig{
		chips:      DefaultChips,
		smallBlind: DefaultSmallBlind,
		bigBlind:   DefaultBigBlind,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(time.Now().UnixNano())
	}
	if cfg.deck == nil {
		cfg.deck = deck.New(cfg.rng)
	}

	count := playerCount
	if count < MinPlayers {
		count = MinPlayers
	}
	if count > MaxPlayers {
		count = MaxPlayers
	}

	players := make([]Player, count)
	for i := range players {
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(cfg.names) && cfg.names[i] != "" {
			name = cfg.names[i]
		}
		seat := i
		players[i] = Player{
			ID:           fmt.Sprintf("player-%d", i+1),
			Name:         name,
			Chips:        cfg.chips,
			IsActive:     true,
			SeatPosition: &seat,
		}
	}

	s := GameState{
		Players:    players,
		Deck:       cfg.deck,
		Stage:      StagePreflop,
		SmallBlind: cfg.smallBlind,
		BigBlind:   cfg.bigBlind,
	}
	s.startHand(0)
	return s
}

// startHand assigns roles for the given dealer seat, posts blinds and sets
// the first actor. Callers have already reset per-hand player state.
func (s *GameState) startHand(dealerIdx int) {
	count := len(s.Players)
	s.DealerIndex = dealerIdx
	s.Stage = StagePreflop
	s.Pot = 0
	s.CurrentBet = s.BigBlind

	sbIdx := (dealerIdx + 1) % count
	bbIdx := (dealerIdx + 2) % count
	sbPayIdx := sbIdx
	if count == 2 {
		// Heads-up: the non-dealer seat carries both blind labels while the
		// dealer posts the small blind
		bbIdx = sbIdx
		sbPayIdx = dealerIdx
	}

	for i := range s.Players {
		p := &s.Players[i]
		p.IsDealer = i == dealerIdx
		p.IsSmallBlind = i == sbIdx
		p.IsBigBlind = i == bbIdx
	}

	s.postBlind(sbPayIdx, s.SmallBlind)
	s.postBlind(bbIdx, s.BigBlind)

	s.setTurn(firstToAct(dealerIdx, count))
}

// postBlind moves a forced bet into the pot, clamped to the player's stack.
// A short stack goes all-in rather than negative.
func (s *GameState) postBlind(idx, amount int) {
	p := &s.Players[idx]
	posted := min(amount, p.Chips)
	p.Chips -= posted
	p.Bet += posted
	s.Pot += posted
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}

// firstToAct returns the preflop first actor for a hand with the given
// dealer seat. Two- and three-handed tables start on the dealer because
// the blinds have already acted; otherwise the seat three after the dealer
// opens.
func firstToAct(dealerIdx, count int) int {
	if count <= 3 {
		return dealerIdx
	}
	return (dealerIdx + 3) % count
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
