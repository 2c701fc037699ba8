package engine

// Stage represents the phase of a poker hand
type Stage string

const (
	StagePreflop  Stage = "preflop"
	StageFlop     Stage = "flop"
	StageTurn     Stage = "turn"
	StageRiver    Stage = "river"
	StageShowdown Stage = "showdown"
	StageEnded    Stage = "ended"
)

// Next returns the stage that follows. The mapping is total; ended is
// terminal and maps to itself.
func (s Stage) Next() Stage {
	switch s {
	case StagePreflop:
		return StageFlop
	case StageFlop:
		return StageTurn
	case StageTurn:
		return StageRiver
	case StageRiver:
		return StageShowdown
	case StageShowdown:
		return StageEnded
	default:
		return StageEnded
	}
}

// communityCardCount returns how many community cards are revealed on entry
// into a stage. Zero for stages that reveal nothing.
func communityCardCount(s Stage) int {
	switch s {
	case StageFlop:
		return 3
	case StageTurn, StageRiver:
		return 1
	default:
		return 0
	}
}
