package server

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/jgresham/based-poker/internal/engine"
)

// Sentinel errors for table-level request validation. Engine rule errors
// pass through unchanged so clients see the engine's reason codes.
var (
	ErrTableFull     = errors.New("table is full")
	ErrNotSeated     = errors.New("player is not seated at this table")
	ErrAlreadySeated = errors.New("player is already seated at this table")
	ErrGameRunning   = errors.New("a hand is already in progress")
	ErrGameNotBegun  = errors.New("the game has not started yet")
	ErrStaleVersion  = errors.New("snapshot version is stale")
	ErrHandNotOver   = errors.New("the current hand is not over")
)

// Table is the single authoritative holder of one table's GameState. The
// engine itself is a pure library of transition functions; this wrapper
// serializes action application behind a mutex and stamps every accepted
// transition with a monotonically increasing version so concurrent clients
// that both believe it is their turn are arbitrated deterministically.
type Table struct {
	ID     string
	Name   string
	cfg    TableConfig
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand

	mu      sync.Mutex
	seats   []*seat
	started bool
	state   engine.GameState
	version uint64
	acted   []bool // per seat, since the last raise or street change
	timer   *quartz.Timer

	// onSnapshot is invoked (outside the lock) for transitions the table
	// initiates itself, such as a turn-timeout auto-fold.
	onSnapshot func(SnapshotData)
}

type seat struct {
	clientID string
	name     string
	playerID string // engine player id, assigned when the game starts
	position int
}

// NewTable creates an empty table from configuration
func NewTable(cfg TableConfig, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Table {
	return &Table{
		ID:     uuid.New().String(),
		Name:   cfg.Name,
		cfg:    cfg,
		logger: logger.WithPrefix("table").With("table", cfg.Name),
		clock:  clock,
		rng:    rng,
	}
}

// SetSnapshotHandler registers the callback for table-initiated transitions
func (t *Table) SetSnapshotHandler(fn func(SnapshotData)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSnapshot = fn
}

// Join seats a client at the first available position
func (t *Table) Join(clientID, name string) (JoinedData, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return JoinedData{}, ErrGameRunning
	}
	if len(t.seats) >= t.cfg.MaxPlayers {
		return JoinedData{}, ErrTableFull
	}
	for _, s := range t.seats {
		if s.clientID == clientID {
			return JoinedData{}, ErrAlreadySeated
		}
	}

	position := engine.FirstAvailableSeatPosition(t.room())
	t.seats = append(t.seats, &seat{clientID: clientID, name: name, position: position})
	t.logger.Info("Player seated", "name", name, "seat", position)
	return JoinedData{TableID: t.ID, PlayerID: clientID, SeatPosition: position}, nil
}

// Leave removes a client's seat. During a hand the player is folded first
// so the hand can finish without them.
func (t *Table) Leave(clientID string) (*SnapshotData, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, s := range t.seats {
		if s.clientID == clientID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotSeated
	}

	var snap *SnapshotData
	if t.started {
		if next, err := t.state.Fold(t.seats[idx].playerID); err == nil {
			t.state = next
		} else if pi := t.state.PlayerIndex(t.seats[idx].playerID); pi != -1 {
			// Folding out of turn: deactivate the seat directly
			next := t.state.Clone()
			next.Players[pi].IsActive = false
			next.Players[pi].IsTurn = false
			t.state = next
		}
		t.settleLocked()
		t.bumpLocked()
		s := t.snapshotLocked()
		snap = &s
	}
	t.seats = append(t.seats[:idx], t.seats[idx+1:]...)
	t.logger.Info("Player left", "client", clientID)
	return snap, nil
}

// Start deals the first hand to everyone currently seated
func (t *Table) Start() (SnapshotData, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return SnapshotData{}, ErrGameRunning
	}
	if len(t.seats) < engine.MinPlayers {
		return SnapshotData{}, fmt.Errorf("need at least %d players to start", engine.MinPlayers)
	}

	names := make([]string, len(t.seats))
	for i, s := range t.seats {
		names[i] = s.name
	}

	state := engine.NewGame(len(t.seats),
		engine.WithNames(names...),
		engine.WithChips(t.cfg.StartingChips),
		engine.WithBlinds(t.cfg.SmallBlind, t.cfg.BigBlind),
		engine.WithRNG(t.rng),
	)
	state, err := state.DealHoleCards()
	if err != nil {
		return SnapshotData{}, err
	}

	// Seat order is turn order; remember each seat's engine identity
	for i, s := range t.seats {
		s.playerID = state.Players[i].ID
		state.Players[i].SeatPosition = &t.seats[i].position
	}

	t.state = state
	t.started = true
	t.acted = make([]bool, len(state.Players))
	t.bumpLocked()
	t.logger.Info("Game started", "players", len(t.seats), "stakes", fmt.Sprintf("%d/%d", t.cfg.SmallBlind, t.cfg.BigBlind))
	return t.snapshotLocked(), nil
}

// Act validates and applies a betting action from a client. A non-zero
// version that does not match the current snapshot is rejected without
// touching the state.
func (t *Table) Act(clientID string, action engine.ActionType, amount int, version uint64) (SnapshotData, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return SnapshotData{}, ErrGameNotBegun
	}
	if version != 0 && version != t.version {
		return SnapshotData{}, ErrStaleVersion
	}
	s := t.seatFor(clientID)
	if s == nil {
		return SnapshotData{}, ErrNotSeated
	}

	prevBet := t.state.CurrentBet
	next, err := t.state.Apply(s.playerID, action, amount)
	if err != nil {
		return SnapshotData{}, err
	}
	idx := next.PlayerIndex(s.playerID)
	t.state = next

	// A raise reopens the action; everyone else must respond again
	if next.CurrentBet > prevBet {
		t.acted = make([]bool, len(next.Players))
	}
	if idx != -1 {
		t.acted[idx] = true
	}

	t.settleLocked()
	t.bumpLocked()
	t.logger.Debug("Action applied", "player", s.name, "action", string(action), "amount", amount, "stage", string(t.state.Stage))
	return t.snapshotLocked(), nil
}

// NextHand rotates the button and deals a fresh hand after the previous
// one reached showdown or ended
func (t *Table) NextHand() (SnapshotData, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return SnapshotData{}, ErrGameNotBegun
	}
	if t.state.Stage != engine.StageShowdown && t.state.Stage != engine.StageEnded {
		return SnapshotData{}, ErrHandNotOver
	}

	t.pruneDepartedLocked()
	if len(t.state.Players) < engine.MinPlayers {
		return SnapshotData{}, fmt.Errorf("need at least %d players to continue", engine.MinPlayers)
	}

	next, err := t.state.NextHand(t.rng)
	if err != nil {
		return SnapshotData{}, err
	}
	t.state = next
	t.acted = make([]bool, len(next.Players))
	t.bumpLocked()
	return t.snapshotLocked(), nil
}

// pruneDepartedLocked drops players whose seat has been vacated so the next
// hand deals only to connected seats. The dealer index is remapped to the
// last remaining seat at or before the old button, keeping the rotation on
// the seat that would have received it next.
func (t *Table) pruneDepartedLocked() {
	seated := make(map[string]bool, len(t.seats))
	for _, s := range t.seats {
		seated[s.playerID] = true
	}

	kept := make([]engine.Player, 0, len(t.state.Players))
	dealer := -1
	for i, p := range t.state.Players {
		if !seated[p.ID] {
			continue
		}
		if i <= t.state.DealerIndex {
			dealer = len(kept)
		}
		kept = append(kept, p)
	}
	if len(kept) == len(t.state.Players) {
		return
	}
	if dealer == -1 {
		// The button and every seat before it departed; wrap so the first
		// remaining seat receives the button next
		dealer = len(kept) - 1
	}
	t.state.Players = kept
	t.state.DealerIndex = dealer
}

// Snapshot returns the current authoritative state
func (t *Table) Snapshot() SnapshotData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// HasClient reports whether the client holds a seat
func (t *Table) HasClient(clientID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seatFor(clientID) != nil
}

func (t *Table) seatFor(clientID string) *seat {
	for _, s := range t.seats {
		if s.clientID == clientID {
			return s
		}
	}
	return nil
}

func (t *Table) room() engine.Room {
	players := make([]engine.Player, len(t.seats))
	for i, s := range t.seats {
		pos := s.position
		players[i] = engine.Player{ID: s.clientID, Name: s.name, SeatPosition: &pos}
	}
	return engine.Room{Players: players}
}

// settleLocked runs the stage controller after an accepted action: ends
// the hand when one contender remains, otherwise advances the betting
// round once every seat that can act has acted and matched the bet.
func (t *Table) settleLocked() {
	for {
		if t.state.Stage == engine.StageShowdown || t.state.Stage == engine.StageEnded {
			return
		}
		if t.state.ActivePlayers() <= 1 {
			if next, err := t.state.EndHand(); err == nil {
				t.state = next
			}
			return
		}
		roundDone := t.state.CurrentPlayerIndex == -1 ||
			(t.state.AllPlayersActed() && t.allSeatsActedLocked())
		if !roundDone {
			return
		}
		next, err := t.state.AdvanceRound()
		if err != nil {
			return
		}
		t.state = next
		t.acted = make([]bool, len(next.Players))
	}
}

// allSeatsActedLocked reports whether every seat still able to act has
// acted since the last raise or street change. Matched bets alone are not
// enough to close a round: a big blind whose forced bet already matches,
// or a player yet to act behind a check and a fold, still holds the option.
func (t *Table) allSeatsActedLocked() bool {
	for i := range t.state.Players {
		if t.state.Players[i].CanAct() && !t.acted[i] {
			return false
		}
	}
	return true
}

// bumpLocked stamps a new version and re-arms the turn timer
func (t *Table) bumpLocked() {
	t.version++
	t.armTimerLocked()
}

func (t *Table) snapshotLocked() SnapshotData {
	return SnapshotData{TableID: t.ID, Version: t.version, State: t.state.Clone()}
}

// armTimerLocked schedules an auto-fold for the acting player. The armed
// version pins the timer to this exact turn: any accepted transition bumps
// the version and the stale timer becomes a no-op.
func (t *Table) armTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if !t.started || t.cfg.TurnTimeoutSeconds <= 0 {
		return
	}
	if t.state.Stage == engine.StageShowdown || t.state.Stage == engine.StageEnded {
		return
	}
	if t.state.CurrentPlayerIndex < 0 {
		return
	}

	armed := t.version
	timeout := time.Duration(t.cfg.TurnTimeoutSeconds) * time.Second
	t.timer = t.clock.AfterFunc(timeout, func() {
		t.autoFold(armed)
	})
}

// autoFold folds the acting player if their turn is still pending
func (t *Table) autoFold(armed uint64) {
	t.mu.Lock()
	if t.version != armed || !t.started {
		t.mu.Unlock()
		return
	}
	idx := t.state.CurrentPlayerIndex
	if idx < 0 || idx >= len(t.state.Players) {
		t.mu.Unlock()
		return
	}
	playerID := t.state.Players[idx].ID
	next, err := t.state.Fold(playerID)
	if err != nil {
		t.mu.Unlock()
		return
	}
	t.state = next
	t.settleLocked()
	t.bumpLocked()
	t.logger.Info("Player timed out, auto-folded", "player", playerID)
	snap := t.snapshotLocked()
	handler := t.onSnapshot
	t.mu.Unlock()

	if handler != nil {
		handler(snap)
	}
}
