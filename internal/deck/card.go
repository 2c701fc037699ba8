package deck

import "strconv"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "?"
	}
}

// Letter returns the single-letter suit code used in image identifiers
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, Two through Ace (aces high)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return strconv.Itoa(int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// BackImageID is the image identifier every face-down card renders as
const BackImageID = "back"

// Card represents a playing card. FaceUp is presentation metadata only;
// identity is the (Suit, Rank) pair.
type Card struct {
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	FaceUp bool `json:"faceUp"`
}

// NewCard creates a new face-down card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "As", "10h")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Letter()
}

// ImageID returns the identifier of the image this card renders as: the
// fixed back image while face down, otherwise the rank literal concatenated
// with the suit's first letter (ten of spades -> "10s").
func (c Card) ImageID() string {
	if !c.FaceUp {
		return BackImageID
	}
	return c.Rank.String() + c.Suit.Letter()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the numeric value of the card for comparison, aces high
func (c Card) Value() int {
	return int(c.Rank)
}
