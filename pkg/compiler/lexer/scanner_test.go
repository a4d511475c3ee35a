package lexer_test

import (
	"errors"
	"testing"

	"github.com/cardtable/cardlang/pkg/compiler/lexer"
)

func kinds(tokens []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestEmptySourceIsNotAValidProgram(t *testing.T) {
	_, err := lexer.Lex("")

	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if lexErr.Kind != lexer.EmptySpecification {
		t.Errorf("expected EmptySpecification, got %v", lexErr.Kind)
	}
	if lexErr.Line != 1 {
		t.Errorf("expected line 1, got %d", lexErr.Line)
	}
}

func TestKeywords(t *testing.T) {
	tokens, err := lexer.Lex("name stack deck players current_player define check is if true false return")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []lexer.Kind{
		lexer.KindName, lexer.KindStack, lexer.KindDeck, lexer.KindPlayers,
		lexer.KindCurrentPlayer, lexer.KindDefine, lexer.KindCheck,
		lexer.KindIs, lexer.KindIf, lexer.KindTrue, lexer.KindFalse,
		lexer.KindReturn,
	}
	got := kinds(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(got))
	}
	for i, kind := range expected {
		if got[i] != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, got[i])
		}
	}
}

func TestKeywordPrefixIsASymbol(t *testing.T) {
	tokens, err := lexer.Lex("names")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != lexer.KindSymbol || tokens[0].Text != "names" {
		t.Errorf("expected Symbol(names), got %+v", tokens)
	}
}

func TestSymbolWithAttributePath(t *testing.T) {
	tokens, err := lexer.Lex("player:hand")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != lexer.KindSymbol || tokens[0].Text != "player:hand" {
		t.Errorf("expected Symbol(player:hand), got %+v", tokens)
	}
}

func TestNumbersAndPunctuation(t *testing.T) {
	tokens, err := lexer.Lex("players 3\ndeck > players end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []lexer.Kind{
		lexer.KindPlayers, lexer.KindNumber, lexer.KindNewline,
		lexer.KindDeck, lexer.KindTransfer, lexer.KindPlayers, lexer.KindSymbol,
	}
	got := kinds(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i, kind := range expected {
		if got[i] != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, got[i])
		}
	}
	if tokens[1].Number != 3 {
		t.Errorf("expected number 3, got %v", tokens[1].Number)
	}
	if tokens[6].Text != "end" {
		t.Errorf("expected symbol end, got %q", tokens[6].Text)
	}
}

func TestLineNumbersAdvanceOnNewlines(t *testing.T) {
	tokens, err := lexer.Lex("name turns\nplayers 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tokens[0].Line != 1 || tokens[1].Line != 1 {
		t.Errorf("expected first line tokens on line 1, got %d and %d", tokens[0].Line, tokens[1].Line)
	}
	if tokens[3].Line != 2 || tokens[4].Line != 2 {
		t.Errorf("expected second line tokens on line 2, got %d and %d", tokens[3].Line, tokens[4].Line)
	}
}

func TestCommentElision(t *testing.T) {
	tokens, err := lexer.Lex("name .( anything ( nested ) here ) token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != lexer.KindName {
		t.Errorf("expected name keyword, got %v", tokens[0].Kind)
	}
	if tokens[1].Kind != lexer.KindSymbol || tokens[1].Text != "token" {
		t.Errorf("expected Symbol(token), got %+v", tokens[1])
	}
}

func TestMultiLineCommentTracksLines(t *testing.T) {
	tokens, err := lexer.Lex("name .( spans\ntwo ( nested )\nlines ) turns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[1].Text != "turns" {
		t.Errorf("expected Symbol(turns), got %+v", tokens[1])
	}
	if tokens[1].Line != 3 {
		t.Errorf("expected symbol on line 3, got %d", tokens[1].Line)
	}
}

func TestUnterminatedCommentIsAnError(t *testing.T) {
	_, err := lexer.Lex("name .( never closed")

	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Kind != lexer.ParseError {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestMalformedNumberCarriesLine(t *testing.T) {
	_, err := lexer.Lex("name turns\n3x3")

	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if lexErr.Kind != lexer.ParseError {
		t.Errorf("expected ParseError, got %v", lexErr.Kind)
	}
	if lexErr.Line != 2 {
		t.Errorf("expected line 2, got %d", lexErr.Line)
	}
}

func TestDefineBlockTokens(t *testing.T) {
	tokens, err := lexer.Lex("define setup () {\n\tshuffle(deck)\n}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []lexer.Kind{
		lexer.KindDefine, lexer.KindSymbol, lexer.KindOpenParens,
		lexer.KindCloseParens, lexer.KindOpenBracket, lexer.KindNewline,
		lexer.KindSymbol, lexer.KindOpenParens, lexer.KindDeck,
		lexer.KindCloseParens, lexer.KindNewline, lexer.KindCloseBracket,
	}
	got := kinds(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i, kind := range expected {
		if got[i] != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, got[i])
		}
	}
}
