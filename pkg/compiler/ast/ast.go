// Package ast defines the statement and expression tree produced by the
// parser and walked by the runtime.
package ast

// Statement is a standalone unit of execution.
type Statement interface {
	stmtNode()
}

// Expression yields a value when resolved by the runtime.
type Expression interface {
	exprNode()
}

// GlobalKey identifies which global a Declaration sets.
type GlobalKey uint8

const (
	KeyName GlobalKey = iota
	KeyPlayers
	KeyStack
	KeyDeck
	KeyCurrentPlayer
)

// Declaration sets a global: game name, player count, deck source, the
// starting player, or a named custom stack.
type Declaration struct {
	Key   GlobalKey
	Value Expression
}

func (*Declaration) stmtNode() {}

// Definition is a named, optionally-parameterized statement block. The
// names "setup" and "player_move" are meaningful to the runtime; anything
// else is a helper invoked by name (for example a filter predicate).
type Definition struct {
	Name      string
	Arguments []string
	Body      []Statement
}

func (*Definition) stmtNode() {}

// TransferCount selects how many cards a Transfer moves.
type TransferCount uint8

const (
	// CountOne moves a single card.
	CountOne TransferCount = iota
	// CountEnd drains the source stack.
	CountEnd
)

// Transfer moves cards between two symbolic stack references.
type Transfer struct {
	From  string
	To    string
	Count TransferCount
}

func (*Transfer) stmtNode() {}

// FunctionCall invokes a built-in by name at statement level.
type FunctionCall struct {
	Name      string
	Arguments []Expression
}

func (*FunctionCall) stmtNode() {}

// If executes its body when the expression resolves true.
type If struct {
	Expression Expression
	Body       []Statement
}

func (*If) stmtNode() {}

// Check is a guard: a false expression aborts the remainder of the
// enclosing body.
type Check struct {
	Expression Expression
}

func (*Check) stmtNode() {}

// Return terminates the enclosing body, yielding the expression's value.
type Return struct {
	Expression Expression
}

func (*Return) stmtNode() {}

// Symbol names a stack, binding, or attribute path such as "player:hand".
type Symbol struct {
	Name string
}

func (*Symbol) exprNode() {}

// Number is a numeric literal.
type Number struct {
	Value float64
}

func (*Number) exprNode() {}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

func (*Bool) exprNode() {}

// Comparison is structural equality between two resolved values.
type Comparison struct {
	Left  Expression
	Right Expression
}

func (*Comparison) exprNode() {}

// And is short-circuit logical conjunction.
type And struct {
	Left  Expression
	Right Expression
}

func (*And) exprNode() {}

// Call invokes a built-in by name inside an expression.
type Call struct {
	Name      string
	Arguments []Expression
}

func (*Call) exprNode() {}
