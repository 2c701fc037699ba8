package deck

import "math/rand/v2"

// Deck is an ordered sequence of cards treated as a stack; cards are
// removed from the end (the top).
type Deck []Card

// Canonical returns the 52 canonical cards in fixed order, all face down.
func Canonical() Deck {
	cards := make(Deck, 0, 52)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// New creates a standard 52-card deck shuffled with the given RNG.
func New(rng *rand.Rand) Deck {
	return Canonical().Shuffled(rng)
}

// Shuffled returns a uniformly random permutation of the deck using a
// Fisher-Yates shuffle. The receiver is not mutated.
func (d Deck) Shuffled(rng *rand.Rand) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Pop removes and returns the top card. The second return is false if the
// deck is empty.
func (d Deck) Pop() (Card, Deck, bool) {
	if len(d) == 0 {
		return Card{}, d, false
	}
	return d[len(d)-1], d[:len(d)-1], true
}

// Len returns the number of cards remaining
func (d Deck) Len() int {
	return len(d)
}

// Clone returns an independent copy of the deck
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	copy(out, d)
	return out
}
