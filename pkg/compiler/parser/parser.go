// Package parser builds the statement tree from the scanner's token
// stream. It is a recursive-descent parser over a single forward cursor;
// each construct commits after its lead token, with no backtracking.
package parser

import (
	"fmt"

	"github.com/cardtable/cardlang/pkg/compiler/ast"
	"github.com/cardtable/cardlang/pkg/compiler/lexer"
)

// ErrorKind classifies parser failures.
type ErrorKind uint8

const (
	ExpectedSymbol ErrorKind = iota
	UnexpectedEndOfStream
	UnexpectedToken
)

// Error is a parser failure annotated with the 1-based line of the token
// at the point of failure. Line is 0 when no token context is available.
type Error struct {
	Kind ErrorKind
	Line int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ExpectedSymbol:
		return fmt.Sprintf("parse: expected symbol at line %d", e.Line)
	case UnexpectedEndOfStream:
		return fmt.Sprintf("parse: unexpected end of stream at line %d", e.Line)
	default:
		return fmt.Sprintf("parse: unexpected token at line %d", e.Line)
	}
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse consumes the token sequence and returns the statement list.
func Parse(tokens []lexer.Token) ([]ast.Statement, error) {
	p := &parser{tokens: tokens}
	return p.parseStatements()
}

func (p *parser) next() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

// lastLine is the line of the most recently consumed token, for diagnostics
// raised at end of stream.
func (p *parser) lastLine() int {
	if p.pos == 0 || len(p.tokens) == 0 {
		return 0
	}
	i := p.pos - 1
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i].Line
}

func (p *parser) parseStatements() ([]ast.Statement, error) {
	var statements []ast.Statement

	for {
		tok, ok := p.next()
		if !ok {
			return statements, nil
		}

		switch tok.Kind {
		case lexer.KindName, lexer.KindPlayers, lexer.KindCurrentPlayer, lexer.KindStack:
			decl, err := p.parseDeclaration(globalKey(tok.Kind))
			if err != nil {
				return nil, err
			}
			statements = append(statements, decl)

		case lexer.KindDeck:
			next, ok := p.next()
			if !ok {
				return nil, &Error{Kind: UnexpectedEndOfStream, Line: tok.Line}
			}
			switch next.Kind {
			case lexer.KindSymbol:
				statements = append(statements, &ast.Declaration{
					Key:   ast.KeyDeck,
					Value: &ast.Symbol{Name: next.Text},
				})
			case lexer.KindTransfer:
				transfer, err := p.parseTransfer("deck")
				if err != nil {
					return nil, err
				}
				statements = append(statements, transfer)
			default:
				return nil, &Error{Kind: UnexpectedToken, Line: next.Line}
			}

		case lexer.KindDefine:
			definition, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			statements = append(statements, definition)

		case lexer.KindSymbol:
			next, ok := p.next()
			if !ok {
				return nil, &Error{Kind: UnexpectedEndOfStream, Line: tok.Line}
			}
			switch next.Kind {
			case lexer.KindOpenParens:
				statements = append(statements, p.parseCallStatement(tok.Text))
			case lexer.KindTransfer:
				transfer, err := p.parseTransfer(tok.Text)
				if err != nil {
					return nil, err
				}
				statements = append(statements, transfer)
			default:
				return nil, &Error{Kind: UnexpectedToken, Line: next.Line}
			}

		case lexer.KindIf:
			stmt, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)

		case lexer.KindCheck:
			expr, err := p.parseGuardExpression()
			if err != nil {
				return nil, err
			}
			statements = append(statements, &ast.Check{Expression: expr})

		case lexer.KindReturn:
			expr, err := p.parseGuardExpression()
			if err != nil {
				return nil, err
			}
			statements = append(statements, &ast.Return{Expression: expr})

		default:
			// Newlines and stray punctuation are harmless between
			// statements.
		}
	}
}

func globalKey(kind lexer.Kind) ast.GlobalKey {
	switch kind {
	case lexer.KindName:
		return ast.KeyName
	case lexer.KindPlayers:
		return ast.KeyPlayers
	case lexer.KindCurrentPlayer:
		return ast.KeyCurrentPlayer
	default:
		return ast.KeyStack
	}
}

// parseDeclaration reads the single value token following a global keyword.
func (p *parser) parseDeclaration(key ast.GlobalKey) (*ast.Declaration, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
	}
	switch tok.Kind {
	case lexer.KindSymbol:
		return &ast.Declaration{Key: key, Value: &ast.Symbol{Name: tok.Text}}, nil
	case lexer.KindNumber:
		return &ast.Declaration{Key: key, Value: &ast.Number{Value: tok.Number}}, nil
	default:
		return nil, &Error{Kind: UnexpectedToken, Line: tok.Line}
	}
}

// parseTransfer reads the target of a `from > to [end]` instruction. The
// left operand has already been consumed by the caller.
func (p *parser) parseTransfer(from string) (*ast.Transfer, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
	}

	var to string
	switch tok.Kind {
	case lexer.KindDeck:
		to = "deck"
	case lexer.KindPlayers:
		to = "players"
	case lexer.KindSymbol:
		to = tok.Text
	default:
		return nil, &Error{Kind: UnexpectedToken, Line: tok.Line}
	}

	count := ast.CountOne
	if next, ok := p.peek(); ok && next.Kind == lexer.KindSymbol && next.Text == "end" {
		p.next()
		count = ast.CountEnd
	}

	return &ast.Transfer{From: from, To: to, Count: count}, nil
}

// parseCallStatement reads a statement-level call after `name(`. The
// grammar allows at most one argument (a stack reference, a number, or
// current_player); everything through the closing parenthesis is consumed.
func (p *parser) parseCallStatement(name string) *ast.FunctionCall {
	var arguments []ast.Expression

	if tok, ok := p.peek(); ok {
		switch tok.Kind {
		case lexer.KindDeck:
			p.next()
			arguments = append(arguments, &ast.Symbol{Name: "deck"})
		case lexer.KindSymbol:
			p.next()
			arguments = append(arguments, &ast.Symbol{Name: tok.Text})
		case lexer.KindNumber:
			p.next()
			arguments = append(arguments, &ast.Number{Value: tok.Number})
		case lexer.KindCurrentPlayer:
			p.next()
			arguments = append(arguments, &ast.Symbol{Name: "current_player"})
		}
	}

	for {
		tok, ok := p.next()
		if !ok || tok.Kind == lexer.KindCloseParens {
			break
		}
	}

	return &ast.FunctionCall{Name: name, Arguments: arguments}
}

func (p *parser) parseDefinition() (*ast.Definition, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
	}
	if tok.Kind != lexer.KindSymbol {
		return nil, &Error{Kind: ExpectedSymbol, Line: tok.Line}
	}
	name := tok.Text

	open, ok := p.next()
	if !ok {
		return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
	}
	if open.Kind != lexer.KindOpenParens {
		return nil, &Error{Kind: UnexpectedToken, Line: open.Line}
	}

	var arguments []string
	for {
		tok, ok := p.next()
		if !ok {
			return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
		}
		if tok.Kind == lexer.KindCloseParens {
			break
		}
		if tok.Kind != lexer.KindSymbol {
			return nil, &Error{Kind: ExpectedSymbol, Line: tok.Line}
		}
		arguments = append(arguments, tok.Text)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Definition{Name: name, Arguments: arguments, Body: body}, nil
}

// parseBlock extracts a brace-delimited token run, tracking nested brace
// depth so inner blocks do not terminate the outer one early, and parses
// the run as a nested statement list.
func (p *parser) parseBlock() ([]ast.Statement, error) {
	for {
		tok, ok := p.next()
		if !ok {
			return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
		}
		if tok.Kind == lexer.KindOpenBracket {
			break
		}
		if tok.Kind != lexer.KindNewline {
			return nil, &Error{Kind: UnexpectedToken, Line: tok.Line}
		}
	}

	var body []lexer.Token
	depth := 1
	for {
		tok, ok := p.next()
		if !ok {
			return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
		}
		switch tok.Kind {
		case lexer.KindOpenBracket:
			depth++
		case lexer.KindCloseBracket:
			depth--
			if depth == 0 {
				return Parse(body)
			}
		}
		body = append(body, tok)
	}
}

func (p *parser) parseIf() (*ast.If, error) {
	// The open parenthesis after `if` is assumed.
	p.next()

	expr, err := p.buildExpression()
	if err != nil {
		return nil, err
	}
	p.consumeCloseParens()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.If{Expression: expr, Body: body}, nil
}

// parseGuardExpression handles the shared `check (expr)` / `return (expr)`
// shape: an explicit open parenthesis, an expression, and its closer.
func (p *parser) parseGuardExpression() (ast.Expression, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
	}
	if tok.Kind != lexer.KindOpenParens {
		return nil, &Error{Kind: UnexpectedToken, Line: tok.Line}
	}

	expr, err := p.buildExpression()
	if err != nil {
		return nil, err
	}
	p.consumeCloseParens()
	return expr, nil
}

func (p *parser) consumeCloseParens() {
	if tok, ok := p.peek(); ok && tok.Kind == lexer.KindCloseParens {
		p.next()
	}
}

// buildExpression parses a primitive leaf and hands it to
// combineExpression for left-associative extension.
func (p *parser) buildExpression() (ast.Expression, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &Error{Kind: UnexpectedEndOfStream, Line: 0}
	}

	var left ast.Expression
	switch tok.Kind {
	case lexer.KindTrue:
		left = &ast.Bool{Value: true}
	case lexer.KindFalse:
		left = &ast.Bool{Value: false}
	case lexer.KindSymbol:
		left = &ast.Symbol{Name: tok.Text}
	case lexer.KindNumber:
		left = &ast.Number{Value: tok.Number}
	case lexer.KindCurrentPlayer:
		left = &ast.Symbol{Name: "current_player"}
	default:
		return nil, &Error{Kind: UnexpectedToken, Line: tok.Line}
	}

	return p.combineExpression(left)
}

// combineExpression extends an expression by peeking the next token:
// `is` wraps a comparison, `&` a conjunction, and an open parenthesis
// after a bare symbol reinterprets it as a call. A closing parenthesis,
// comma, or end of stream terminates combination; the terminator is left
// for the caller.
func (p *parser) combineExpression(left ast.Expression) (ast.Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return left, nil
	}

	switch tok.Kind {
	case lexer.KindIs:
		p.next()
		right, err := p.buildExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Left: left, Right: right}, nil

	case lexer.KindAmpersand:
		p.next()
		right, err := p.buildExpression()
		if err != nil {
			return nil, err
		}
		return &ast.And{Left: left, Right: right}, nil

	case lexer.KindOpenParens:
		symbol, isSymbol := left.(*ast.Symbol)
		if !isSymbol {
			return nil, &Error{Kind: UnexpectedToken, Line: tok.Line}
		}
		p.next()
		arguments, err := p.parseCallArguments()
		if err != nil {
			return nil, err
		}
		return p.combineExpression(&ast.Call{Name: symbol.Name, Arguments: arguments})

	case lexer.KindCloseParens, lexer.KindComma:
		return left, nil

	default:
		return nil, &Error{Kind: UnexpectedToken, Line: tok.Line}
	}
}

// parseCallArguments reads a comma-separated argument list after the open
// parenthesis of an expression-level call, consuming the closer.
func (p *parser) parseCallArguments() ([]ast.Expression, error) {
	var arguments []ast.Expression

	for {
		tok, ok := p.peek()
		if !ok {
			return nil, &Error{Kind: UnexpectedEndOfStream, Line: p.lastLine()}
		}
		if tok.Kind == lexer.KindCloseParens {
			p.next()
			return arguments, nil
		}
		if tok.Kind == lexer.KindComma {
			p.next()
			continue
		}

		argument, err := p.buildExpression()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
	}
}
