// Package game is the façade over a parsed program: it splits the
// statement tree into global declarations and callback bodies, drives the
// runtime, and renders state to text.
package game

import (
	"strconv"
	"strings"

	"github.com/cardtable/cardlang/pkg/cards"
	"github.com/cardtable/cardlang/pkg/compiler/ast"
	"github.com/cardtable/cardlang/pkg/runtime"
)

// Game wraps one runtime session.
type Game struct {
	name string
	rt   *runtime.Runtime
}

// New extracts globals and definitions from the statement tree and
// constructs a pending runtime.
func New(statements []ast.Statement) *Game {
	initial := runtime.InitialValues{CurrentPlayer: 1}
	callbacks := runtime.Callbacks{Helpers: map[string]*ast.Definition{}}
	name := ""

	for _, statement := range statements {
		switch s := statement.(type) {
		case *ast.Declaration:
			switch s.Key {
			case ast.KeyName:
				if symbol, ok := s.Value.(*ast.Symbol); ok {
					name = symbol.Name
				}
			case ast.KeyPlayers:
				if number, ok := s.Value.(*ast.Number); ok {
					initial.Players = int(number.Value)
				}
			case ast.KeyCurrentPlayer:
				if number, ok := s.Value.(*ast.Number); ok {
					initial.CurrentPlayer = int(number.Value)
				}
			case ast.KeyStack:
				if symbol, ok := s.Value.(*ast.Symbol); ok {
					initial.CardStacks = append(initial.CardStacks, symbol.Name)
				}
			case ast.KeyDeck:
				// Only the standard deck exists; the declared source is
				// accepted and ignored.
			}

		case *ast.Definition:
			switch s.Name {
			case "setup":
				callbacks.Setup = s
			case "player_move":
				callbacks.PlayerMove = s
			default:
				callbacks.Helpers[s.Name] = s
			}
		}
	}

	return &Game{name: name, rt: runtime.New(initial, callbacks)}
}

// Start (re-)initializes the session and runs the setup body.
func (g *Game) Start() {
	g.rt.Setup()
}

// PlayerMove runs the player_move body for 1-based player n.
func (g *Game) PlayerMove(n int) {
	g.rt.PlayerMove(n)
}

// Show renders one piece of game state. Unknown keys report "not found"
// rather than erroring.
func (g *Game) Show(key string) string {
	switch key {
	case "deck":
		return joinCards(g.rt.Deck())
	case "name":
		return g.name
	case "players":
		var lines []string
		for _, player := range g.rt.Players() {
			lines = append(lines, player.String())
		}
		return strings.Join(lines, "\n")
	case "game":
		out := g.rt.Status().String()
		if winners := g.rt.Winners(); len(winners) > 0 {
			rendered := make([]string, len(winners))
			for i, w := range winners {
				rendered[i] = strconv.FormatFloat(w, 'f', -1, 64)
			}
			out += "\nwinners: " + strings.Join(rendered, ", ")
		}
		return out
	case "current_player":
		return strconv.Itoa(g.rt.CurrentPlayer())
	}

	if fields := strings.Fields(key); len(fields) >= 2 && fields[0] == "player" {
		n, err := strconv.Atoi(fields[1])
		if err == nil {
			if player := g.rt.Player(n); player != nil {
				return joinCards(player.Hand())
			}
		}
		return key + " not found"
	}

	if stack, ok := g.rt.CustomStack(key); ok {
		return joinCards(stack)
	}
	return key + " not found"
}

func joinCards(stack []cards.Card) string {
	rendered := make([]string, len(stack))
	for i, card := range stack {
		rendered[i] = card.String()
	}
	return strings.Join(rendered, ", ")
}
