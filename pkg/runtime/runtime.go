// Package runtime is the interpreter engine: it holds the mutable game
// state for one session and evaluates statement bodies against it.
package runtime

import (
	"math/rand"
	"strings"

	"github.com/cardtable/cardlang/pkg/cards"
	"github.com/cardtable/cardlang/pkg/compiler/ast"
)

// GameState tracks the session lifecycle. Transitions are monotonic:
// pending to active on setup, active to game over via the end() built-in.
type GameState uint8

const (
	Pending GameState = iota
	Active
	GameOver
)

func (s GameState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	default:
		return "game over"
	}
}

// PlayerRef redirects mutations on a bound player object back to the
// canonical players collection.
type PlayerRef struct {
	Index int
}

// Binding is an argument bound into a call-stack frame: an attribute bag
// (player or card) plus an optional back-reference into canonical storage.
// The back-reference is never visible to symbol resolution.
type Binding struct {
	Attrs map[string]Value
	Ref   *PlayerRef
}

// Frame is one scoped name-to-binding map, pushed for the duration of a
// player move or predicate invocation.
type Frame map[string]Binding

// InitialValues carries the global declarations extracted from a program.
type InitialValues struct {
	Players       int
	CardStacks    []string
	CurrentPlayer int
}

// Callbacks carries the named definitions the runtime executes. Helpers
// are user definitions other than setup and player_move, reachable as
// filter predicates.
type Callbacks struct {
	Setup      *ast.Definition
	PlayerMove *ast.Definition
	Helpers    map[string]*ast.Definition
}

// Runtime is the single mutable aggregate for one game session.
type Runtime struct {
	initial   InitialValues
	callbacks Callbacks

	status        GameState
	deck          []cards.Card
	players       []*cards.Player
	cardStacks    map[string][]cards.Card
	winners       []float64
	currentPlayer int
	callStack     []Frame
}

// New constructs a pending runtime with a canonical deck, empty hands, and
// empty custom stacks.
func New(initial InitialValues, callbacks Callbacks) *Runtime {
	r := &Runtime{
		initial:   initial,
		callbacks: callbacks,
		status:    Pending,
	}
	r.reset()
	return r
}

// reset rebuilds every piece of derived state deterministically.
func (r *Runtime) reset() {
	r.deck = cards.StandardDeck()
	r.players = make([]*cards.Player, r.initial.Players)
	for i := range r.players {
		r.players[i] = cards.NewPlayer(i + 1)
	}
	r.cardStacks = make(map[string][]cards.Card, len(r.initial.CardStacks))
	for _, name := range r.initial.CardStacks {
		r.cardStacks[name] = nil
	}
	r.winners = nil
	r.currentPlayer = r.initial.CurrentPlayer
	r.callStack = nil
}

// Setup re-initializes the session and runs the setup body. Calling it
// again rebuilds the same deterministic starting state before the body
// executes.
func (r *Runtime) Setup() {
	r.reset()
	r.status = Active
	if r.callbacks.Setup != nil {
		r.handleStatements(r.callbacks.Setup.Body)
	}
}

// PlayerMove runs the player_move body for 1-based player n, binding the
// declared argument (if any) to a view of that player. Moves are silently
// ignored unless the game is active.
func (r *Runtime) PlayerMove(n int) {
	if r.status != Active || r.callbacks.PlayerMove == nil {
		return
	}
	if n < 1 || n > len(r.players) {
		return
	}

	frame := Frame{}
	if len(r.callbacks.PlayerMove.Arguments) > 0 {
		frame[r.callbacks.PlayerMove.Arguments[0]] = r.playerBinding(n)
	}
	r.callStack = append(r.callStack, frame)
	r.handleStatements(r.callbacks.PlayerMove.Body)
	r.callStack = r.callStack[:len(r.callStack)-1]
}

func (r *Runtime) Status() GameState {
	return r.status
}

func (r *Runtime) CurrentPlayer() int {
	return r.currentPlayer
}

// Deck returns a copy of the deck.
func (r *Runtime) Deck() []cards.Card {
	deck := make([]cards.Card, len(r.deck))
	copy(deck, r.deck)
	return deck
}

func (r *Runtime) Players() []*cards.Player {
	return r.players
}

// Player returns 1-based player n, or nil when out of range.
func (r *Runtime) Player(n int) *cards.Player {
	if n < 1 || n > len(r.players) {
		return nil
	}
	return r.players[n-1]
}

func (r *Runtime) Winners() []float64 {
	return r.winners
}

// CustomStack looks up a user-declared named pile.
func (r *Runtime) CustomStack(key string) ([]cards.Card, bool) {
	stack, ok := r.cardStacks[key]
	return stack, ok
}

// handleStatements walks a body in order. It returns the body's result and
// whether an explicit return produced it. A failed check aborts the
// remaining statements of this body only; a return propagates out of
// nested if bodies to the function level.
func (r *Runtime) handleStatements(statements []ast.Statement) (Value, bool) {
	for _, statement := range statements {
		switch s := statement.(type) {
		case *ast.Transfer:
			r.handleTransfer(s)
		case *ast.FunctionCall:
			r.callFunction(s.Name, s.Arguments)
		case *ast.If:
			if r.resolveToBool(s.Expression) {
				if result, returned := r.handleStatements(s.Body); returned {
					return result, true
				}
			}
		case *ast.Check:
			if !r.resolveToBool(s.Expression) {
				return BoolValue(false), false
			}
		case *ast.Return:
			return r.resolveExpression(s.Expression), true
		}
	}
	return BoolValue(false), false
}

// callFunction dispatches a built-in by name. Unknown names are silent
// no-ops; the nil result resolves to false in expression position.
func (r *Runtime) callFunction(name string, arguments []ast.Expression) *Value {
	switch name {
	case "end":
		r.status = GameOver
		return nil

	case "shuffle":
		rand.Shuffle(len(r.deck), func(i, j int) {
			r.deck[i], r.deck[j] = r.deck[j], r.deck[i]
		})
		return nil

	case "winner":
		id := 0.0
		if len(arguments) > 0 {
			if v := r.resolveExpression(arguments[0]); v.Type == TypeNumber {
				id = v.Number
			}
		}
		r.winners = append(r.winners, id)
		return nil

	case "count":
		n := 0
		if len(arguments) > 0 {
			if v := r.resolveExpression(arguments[0]); v.Type == TypeStack {
				n = len(v.Stack)
			}
		}
		result := NumberValue(float64(n))
		return &result

	case "next_player":
		if r.currentPlayer < len(r.players) {
			r.currentPlayer++
		} else {
			r.currentPlayer = 1
		}
		return nil

	case "filter":
		if len(arguments) < 2 {
			return nil
		}
		stack := r.resolveStackArgument(arguments[0])
		symbol, ok := arguments[1].(*ast.Symbol)
		if !ok {
			return nil
		}
		predicate := r.callbacks.Helpers[symbol.Name]
		if predicate == nil {
			return nil
		}
		result := StackValue(r.Filter(stack, predicate))
		return &result

	default:
		return nil
	}
}

// Filter applies a predicate definition to every card of a stack in
// original order, keeping the cards for which the body yields true. Each
// card is bound into a fresh frame under the predicate's first declared
// argument name, defaulting to "card".
func (r *Runtime) Filter(stack []cards.Card, predicate *ast.Definition) []cards.Card {
	argument := "card"
	if len(predicate.Arguments) > 0 {
		argument = predicate.Arguments[0]
	}

	var kept []cards.Card
	for _, card := range stack {
		frame := Frame{argument: cardBinding(card)}
		r.callStack = append(r.callStack, frame)
		result, _ := r.handleStatements(predicate.Body)
		r.callStack = r.callStack[:len(r.callStack)-1]
		if result.Type == TypeBool && result.Bool {
			kept = append(kept, card)
		}
	}
	return kept
}

func (r *Runtime) playerBinding(n int) Binding {
	player := r.players[n-1]
	return Binding{
		Attrs: map[string]Value{
			"id":   NumberValue(float64(n)),
			"hand": StackValue(player.Hand()),
		},
		Ref: &PlayerRef{Index: n - 1},
	}
}

func cardBinding(card cards.Card) Binding {
	return Binding{
		Attrs: map[string]Value{
			"rank": StringValue(card.Rank.String()),
			"suit": StringValue(card.Suit.String()),
		},
	}
}

// resolveExpression evaluates an expression to a primitive value,
// degrading to false wherever nothing resolves.
func (r *Runtime) resolveExpression(expression ast.Expression) Value {
	switch e := expression.(type) {
	case *ast.Symbol:
		return r.resolveSymbol(e.Name)
	case *ast.Call:
		if result := r.callFunction(e.Name, e.Arguments); result != nil {
			return *result
		}
		return BoolValue(false)
	case *ast.Number:
		return NumberValue(e.Value)
	case *ast.Bool, *ast.Comparison, *ast.And:
		return BoolValue(r.resolveToBool(expression))
	default:
		return BoolValue(false)
	}
}

// resolveSymbol looks a name up in the call stack, splitting a single
// embedded ':' into root and attribute. Names bound to nothing resolve to
// opaque strings, which is how stack names and literal words like a suit
// participate in comparisons.
func (r *Runtime) resolveSymbol(name string) Value {
	if name == "current_player" {
		return NumberValue(float64(r.currentPlayer))
	}

	root, attribute, hasAttribute := strings.Cut(name, ":")
	binding, found := r.findInCallStack(root)
	if !found {
		return StringValue(name)
	}
	if hasAttribute {
		if v, ok := binding.Attrs[attribute]; ok {
			return v
		}
	}
	return BoolValue(false)
}

func (r *Runtime) resolveToBool(expression ast.Expression) bool {
	switch e := expression.(type) {
	case *ast.Bool:
		return e.Value
	case *ast.Comparison:
		return Equal(r.resolveExpression(e.Left), r.resolveExpression(e.Right))
	case *ast.And:
		return r.resolveToBool(e.Left) && r.resolveToBool(e.Right)
	default:
		return false
	}
}

// resolveStackArgument resolves a filter source: either an expression that
// already yields a stack, or a symbol naming one.
func (r *Runtime) resolveStackArgument(expression ast.Expression) []cards.Card {
	v := r.resolveExpression(expression)
	switch v.Type {
	case TypeStack:
		return v.Stack
	case TypeString:
		if target := r.getStack(v.Str); target != nil && !target.multi {
			return target.stack
		}
	}
	return nil
}

func (r *Runtime) handleTransfer(t *ast.Transfer) {
	from := r.getStack(t.From)
	to := r.getStack(t.To)
	if !Transfer(from, to, t.Count) {
		return
	}
	r.setStack(t.From, from)
	r.setStack(t.To, to)
}

// getStack translates a symbolic reference into a transfer target holding
// copies of the referenced cards; setStack writes the mutated copies back.
func (r *Runtime) getStack(key string) *TransferTarget {
	switch root := stackRoot(key); root {
	case "deck":
		return SingleTarget(r.Deck())
	case "players":
		hands := make([][]cards.Card, len(r.players))
		for i, player := range r.players {
			hands[i] = player.Hand()
		}
		return ListTarget(hands)
	default:
		if stack, ok := r.cardStacks[root]; ok {
			copied := make([]cards.Card, len(stack))
			copy(copied, stack)
			return SingleTarget(copied)
		}
		if binding, ok := r.findInCallStack(root); ok && binding.Ref != nil {
			return SingleTarget(r.players[binding.Ref.Index].Hand())
		}
		return nil
	}
}

func (r *Runtime) setStack(key string, target *TransferTarget) {
	switch root := stackRoot(key); root {
	case "deck":
		r.deck = target.StackAt(0)
	case "players":
		for i, player := range r.players {
			player.SetHand(target.StackAt(i))
		}
	default:
		if _, ok := r.cardStacks[root]; ok {
			r.cardStacks[root] = target.StackAt(0)
			return
		}
		if binding, ok := r.findInCallStack(root); ok && binding.Ref != nil {
			r.players[binding.Ref.Index].SetHand(target.StackAt(0))
		}
	}
}

// stackRoot strips the attribute path from a stack reference, so that
// player:hand resolves through the binding named player.
func stackRoot(key string) string {
	root, _, _ := strings.Cut(key, ":")
	root, _, _ = strings.Cut(root, " ")
	return root
}

func (r *Runtime) findInCallStack(key string) (Binding, bool) {
	for i := len(r.callStack) - 1; i >= 0; i-- {
		if binding, ok := r.callStack[i][key]; ok {
			return binding, true
		}
	}
	return Binding{}, false
}
