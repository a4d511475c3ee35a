// Package cards holds the deck and player data types consumed by the
// runtime.
package cards

// Suit is one of the four French suits, in canonical deck order.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

func (s Suit) String() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Clubs:
		return "clubs"
	default:
		return "diamonds"
	}
}

// Rank runs ace..king, in canonical deck order.
type Rank uint8

const (
	Ace Rank = iota
	Two
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
)

var rankNames = [...]string{
	"ace", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "jack", "queen", "king",
}

func (r Rank) String() string {
	return rankNames[r]
}

// Card is a single playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + " " + c.Suit.String()
}

// StandardDeck returns the 52-card deck in canonical order: suit-major
// (spades, hearts, clubs, diamonds), ace..king within each suit.
func StandardDeck() []Card {
	deck := make([]Card, 0, 52)
	for suit := Spades; suit <= Diamonds; suit++ {
		for rank := Ace; rank <= King; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}
