package cards

import "strconv"

// Player owns an ordered hand. Identifiers are 1-based.
type Player struct {
	id   int
	hand []Card
}

// NewPlayer returns a player with the given identifier and an empty hand.
func NewPlayer(id int) *Player {
	return &Player{id: id}
}

func (p *Player) ID() int {
	return p.id
}

// Hand returns a copy of the player's hand.
func (p *Player) Hand() []Card {
	hand := make([]Card, len(p.hand))
	copy(hand, p.hand)
	return hand
}

func (p *Player) SetHand(hand []Card) {
	p.hand = hand
}

func (p *Player) String() string {
	return "player " + strconv.Itoa(p.id) + " (cards: " + strconv.Itoa(len(p.hand)) + ")"
}
