package runtime

import (
	"github.com/cardtable/cardlang/pkg/cards"
	"github.com/cardtable/cardlang/pkg/compiler/ast"
)

// TransferTarget is the operand type of a transfer: either a single stack
// or one stack per player for broadcast deals.
type TransferTarget struct {
	stack []cards.Card
	list  [][]cards.Card
	multi bool
}

// SingleTarget wraps one stack.
func SingleTarget(stack []cards.Card) *TransferTarget {
	return &TransferTarget{stack: stack}
}

// ListTarget wraps one stack per player, positionally ordered.
func ListTarget(list [][]cards.Card) *TransferTarget {
	return &TransferTarget{list: list, multi: true}
}

// Size is the stack length for a single target and the number of stacks
// for a list target.
func (t *TransferTarget) Size() int {
	if t.multi {
		return len(t.list)
	}
	return len(t.stack)
}

// StackAt returns stack n of a list target, or the sole stack otherwise.
func (t *TransferTarget) StackAt(n int) []cards.Card {
	if t.multi {
		return t.list[n]
	}
	return t.stack
}

func (t *TransferTarget) pop() (cards.Card, bool) {
	if t.multi || len(t.stack) == 0 {
		return cards.Card{}, false
	}
	card := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return card, true
}

func (t *TransferTarget) push(index int, card cards.Card) {
	if t.multi {
		t.list[index] = append(t.list[index], card)
		return
	}
	t.stack = append(t.stack, card)
}

// Transfer moves cards from one target into another, mutating both.
//
// The base unit count is 1, or the source's current size for an `end`
// drain. A list destination multiplies the total by its stack count, so an
// `end` deal distributes the whole source round-robin across every hand.
// Cards pop from the source's top (the slice end) and land on a rotating
// destination index. Exhausting the source early stops without error,
// which is the slack that lets uneven deals finish cleanly. An unresolved
// operand aborts the whole transfer.
func Transfer(from, to *TransferTarget, count ast.TransferCount) bool {
	if from == nil || to == nil {
		return false
	}

	total := 1
	if count == ast.CountEnd {
		total = from.Size()
	}
	if to.multi {
		total *= len(to.list)
	}

	index := 0
	for ; total > 0; total-- {
		card, ok := from.pop()
		if !ok {
			break
		}
		to.push(index, card)
		if to.multi {
			index++
			if index >= len(to.list) {
				index = 0
			}
		}
	}
	return true
}
