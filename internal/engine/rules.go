package engine

// RuleError describes why an action or deal was rejected. Every rejection
// carries a stable machine-readable code so callers can assert on the cause
// instead of on the absence of change.
type RuleError struct {
	Code   string
	Reason string
}

func (e *RuleError) Error() string {
	return e.Reason
}

var (
	// ErrUnknownPlayer is returned when the acting player id is not seated
	ErrUnknownPlayer = &RuleError{Code: "unknown_player", Reason: "player is not seated at this table"}

	// ErrNotYourTurn is returned when a player acts out of turn
	ErrNotYourTurn = &RuleError{Code: "not_your_turn", Reason: "it is not this player's turn to act"}

	// ErrHandOver is returned when an action arrives after the hand reached
	// showdown or ended
	ErrHandOver = &RuleError{Code: "hand_over", Reason: "the hand is over, no further actions"}

	// ErrCheckNotAllowed is returned for a check while facing an unmatched bet
	ErrCheckNotAllowed = &RuleError{Code: "check_not_allowed", Reason: "cannot check while facing a bet"}

	// ErrBelowMinimumRaise is returned when a raise target does not reach
	// double the current bet
	ErrBelowMinimumRaise = &RuleError{Code: "below_minimum_raise", Reason: "raise must be at least double the current bet"}

	// ErrInsufficientChips is returned when a raise requires more chips than
	// the player holds
	ErrInsufficientChips = &RuleError{Code: "insufficient_chips", Reason: "not enough chips for this raise"}

	// ErrInvalidStageForDeal is returned when community cards are requested
	// outside of flop, turn or river
	ErrInvalidStageForDeal = &RuleError{Code: "invalid_stage_for_deal", Reason: "current stage does not reveal community cards"}

	// ErrDeckExhausted is returned when a deal ran out of cards. The returned
	// state contains the cards that were dealt before the deck emptied.
	ErrDeckExhausted = &RuleError{Code: "deck_exhausted", Reason: "deck ran out of cards during the deal"}
)
