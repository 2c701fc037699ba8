package engine

// ActionType identifies a betting action
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
)

// Apply validates and applies a betting action for the given player,
// dispatching on the action type. Amount is only meaningful for raises,
// where it is the new absolute bet level.
func (s GameState) Apply(playerID string, action ActionType, amount int) (GameState, error) {
	switch action {
	case ActionFold:
		return s.Fold(playerID)
	case ActionCheck:
		return s.Check(playerID)
	case ActionCall:
		return s.Call(playerID)
	case ActionRaise:
		return s.Raise(playerID, amount)
	default:
		return s, &RuleError{Code: "unknown_action", Reason: "unknown action " + string(action)}
	}
}

// actingIndex validates that playerID exists and holds the turn, returning
// the seat index.
func (s GameState) actingIndex(playerID string) (int, error) {
	if s.Stage == StageShowdown || s.Stage == StageEnded {
		return -1, ErrHandOver
	}
	idx := s.PlayerIndex(playerID)
	if idx == -1 {
		return -1, ErrUnknownPlayer
	}
	if idx != s.CurrentPlayerIndex || !s.Players[idx].IsTurn {
		return -1, ErrNotYourTurn
	}
	return idx, nil
}

// Fold removes the acting player from contention and advances the turn
func (s GameState) Fold(playerID string) (GameState, error) {
	idx, err := s.actingIndex(playerID)
	if err != nil {
		return s, err
	}
	next := s.Clone()
	next.Players[idx].IsActive = false
	next.Players[idx].IsTurn = false
	return next.NextPlayer(), nil
}

// Check passes the action without chip movement. Legal only when there is
// no bet to match or the player has already matched it.
func (s GameState) Check(playerID string) (GameState, error) {
	idx, err := s.actingIndex(playerID)
	if err != nil {
		return s, err
	}
	p := s.Players[idx]
	if s.CurrentBet != 0 && p.Bet != s.CurrentBet {
		return s, ErrCheckNotAllowed
	}
	return s.NextPlayer(), nil
}

// Call matches the current bet. A player whose stack cannot cover the call
// goes all-in for their full remaining chips instead.
func (s GameState) Call(playerID string) (GameState, error) {
	idx, err := s.actingIndex(playerID)
	if err != nil {
		return s, err
	}
	next := s.Clone()
	p := &next.Players[idx]

	amountToCall := next.CurrentBet - p.Bet
	if p.Chips <= amountToCall {
		amountToCall = p.Chips
		p.IsAllIn = true
	}
	p.Chips -= amountToCall
	p.Bet += amountToCall
	next.Pot += amountToCall
	return next.NextPlayer(), nil
}

// Raise sets a new absolute bet level. The target must be at least double
// the current bet (the table's simplified minimum-raise rule) and the
// delta must fit within the player's stack; reaching exactly zero chips
// puts the player all-in.
func (s GameState) Raise(playerID string, betAmount int) (GameState, error) {
	idx, err := s.actingIndex(playerID)
	if err != nil {
		return s, err
	}
	p := s.Players[idx]

	if betAmount <= s.CurrentBet || betAmount < s.CurrentBet*2 || betAmount <= p.Bet {
		return s, ErrBelowMinimumRaise
	}
	delta := betAmount - p.Bet
	if delta > p.Chips {
		return s, ErrInsufficientChips
	}

	next := s.Clone()
	np := &next.Players[idx]
	np.Chips -= delta
	np.Bet = betAmount
	if np.Chips == 0 {
		np.IsAllIn = true
	}
	next.CurrentBet = betAmount
	next.Pot += delta
	return next.NextPlayer(), nil
}

// AllPlayersActed reports whether every active player who is not all-in
// has matched the current bet. The stage controller uses it to gate round
// advancement; it says nothing about whether a full orbit of action has
// actually occurred.
func (s GameState) AllPlayersActed() bool {
	for i := range s.Players {
		p := &s.Players[i]
		if p.IsActive && !p.IsAllIn && p.Bet != s.CurrentBet {
			return false
		}
	}
	return true
}
