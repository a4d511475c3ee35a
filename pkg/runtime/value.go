package runtime

import (
	"strconv"

	"github.com/cardtable/cardlang/pkg/cards"
)

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeBool Type = iota
	TypeNumber
	TypeStack
	TypeString
)

// Value is the result type of expression resolution.
type Value struct {
	Type   Type
	Bool   bool
	Number float64
	Stack  []cards.Card
	Str    string
}

func BoolValue(b bool) Value {
	return Value{Type: TypeBool, Bool: b}
}

func NumberValue(n float64) Value {
	return Value{Type: TypeNumber, Number: n}
}

func StackValue(stack []cards.Card) Value {
	return Value{Type: TypeStack, Stack: stack}
}

func StringValue(s string) Value {
	return Value{Type: TypeString, Str: s}
}

// Equal reports structural equality: the type and the payload must both
// match. Comparing values of different types is false, never an error.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeBool:
		return a.Bool == b.Bool
	case TypeNumber:
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	default:
		if len(a.Stack) != len(b.Stack) {
			return false
		}
		for i := range a.Stack {
			if a.Stack[i] != b.Stack[i] {
				return false
			}
		}
		return true
	}
}

// Format renders the value for display surfaces. Whole numbers render
// without a decimal point.
func (v Value) Format() string {
	switch v.Type {
	case TypeBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case TypeString:
		return v.Str
	default:
		out := ""
		for i, card := range v.Stack {
			if i > 0 {
				out += ", "
			}
			out += card.String()
		}
		return out
	}
}
