package cards_test

import (
	"testing"

	"github.com/cardtable/cardlang/pkg/cards"
)

func TestStandardDeckCanonicalOrder(t *testing.T) {
	deck := cards.StandardDeck()

	if len(deck) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(deck))
	}
	if deck[0].String() != "ace spades" {
		t.Errorf("expected ace spades first, got %q", deck[0].String())
	}
	if deck[12].String() != "king spades" {
		t.Errorf("expected king spades thirteenth, got %q", deck[12].String())
	}
	if deck[13].String() != "ace hearts" {
		t.Errorf("expected ace hearts fourteenth, got %q", deck[13].String())
	}
	if deck[51].String() != "king diamonds" {
		t.Errorf("expected king diamonds last, got %q", deck[51].String())
	}
}

func TestStandardDeckHasNoDuplicates(t *testing.T) {
	seen := map[cards.Card]bool{}
	for _, card := range cards.StandardDeck() {
		if seen[card] {
			t.Errorf("duplicate card %v", card)
		}
		seen[card] = true
	}
}

func TestPlayerRendering(t *testing.T) {
	player := cards.NewPlayer(2)
	if player.String() != "player 2 (cards: 0)" {
		t.Errorf("unexpected rendering %q", player.String())
	}

	player.SetHand(cards.StandardDeck()[:3])
	if player.String() != "player 2 (cards: 3)" {
		t.Errorf("unexpected rendering %q", player.String())
	}
}

func TestHandReturnsACopy(t *testing.T) {
	player := cards.NewPlayer(1)
	player.SetHand([]cards.Card{{Rank: cards.Ace, Suit: cards.Spades}})

	hand := player.Hand()
	hand[0] = cards.Card{Rank: cards.King, Suit: cards.Diamonds}

	if player.Hand()[0].String() != "ace spades" {
		t.Error("expected the player's hand to be unaffected by mutation of the copy")
	}
}
