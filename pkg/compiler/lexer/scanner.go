package lexer

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies scanner failures.
type ErrorKind uint8

const (
	// EmptySpecification means the source produced no tokens at all.
	EmptySpecification ErrorKind = iota
	// ParseError means a word could not be resolved to a token.
	ParseError
)

// Error is a scanner failure annotated with its 1-based source line.
type Error struct {
	Kind ErrorKind
	Line int
}

func (e *Error) Error() string {
	switch e.Kind {
	case EmptySpecification:
		return fmt.Sprintf("lex: empty specification at line %d", e.Line)
	default:
		return fmt.Sprintf("lex: unrecognised token at line %d", e.Line)
	}
}

// Lex converts source text into a sequence of line-annotated tokens.
//
// The scanner walks the source one byte at a time with a single byte of
// lookahead, accumulating a partial word. Punctuation is emitted
// immediately when no word is pending; a pending word resolves as soon as
// the lookahead byte can no longer extend it (word bytes are letters,
// digits, '_' and ':'). Comments are written `.( ... )`, may nest
// parentheses and span lines, and emit nothing.
func Lex(source string) ([]Token, error) {
	var tokens []Token
	var partial []byte
	line := 1

	for i := 0; i < len(source); i++ {
		ch := source[i]

		if len(partial) == 0 {
			switch ch {
			case ' ', '\t', '\r':
				continue
			case '\n':
				tokens = append(tokens, Token{Kind: KindNewline, Line: line})
				line++
				continue
			case '(':
				tokens = append(tokens, Token{Kind: KindOpenParens, Line: line})
				continue
			case ')':
				tokens = append(tokens, Token{Kind: KindCloseParens, Line: line})
				continue
			case ',':
				tokens = append(tokens, Token{Kind: KindComma, Line: line})
				continue
			case '{':
				tokens = append(tokens, Token{Kind: KindOpenBracket, Line: line})
				continue
			case '}':
				tokens = append(tokens, Token{Kind: KindCloseBracket, Line: line})
				continue
			case '>':
				tokens = append(tokens, Token{Kind: KindTransfer, Line: line})
				continue
			case '&':
				tokens = append(tokens, Token{Kind: KindAmpersand, Line: line})
				continue
			}
		}

		partial = append(partial, ch)

		var next byte
		if i+1 < len(source) {
			next = source[i+1]
		}
		if isWordByte(next) {
			continue
		}

		// The word cannot be extended; resolve it.
		word := string(partial)
		partial = partial[:0]

		if kind, ok := keywords[word]; ok {
			tokens = append(tokens, Token{Kind: kind, Line: line})
			continue
		}

		switch {
		case isLetter(word[0]):
			tokens = append(tokens, Token{Kind: KindSymbol, Text: word, Line: line})
		case word[0] == '.':
			if len(word) > 1 || next != '(' {
				return nil, &Error{Kind: ParseError, Line: line}
			}
			skipped, newLine, ok := skipComment(source, i+1, line)
			if !ok {
				return nil, &Error{Kind: ParseError, Line: line}
			}
			i = skipped
			line = newLine
		default:
			n, err := strconv.ParseFloat(word, 64)
			if err != nil {
				return nil, &Error{Kind: ParseError, Line: line}
			}
			tokens = append(tokens, Token{Kind: KindNumber, Number: n, Line: line})
		}
	}

	if len(tokens) == 0 {
		return nil, &Error{Kind: EmptySpecification, Line: line}
	}
	return tokens, nil
}

// skipComment consumes a `( ... )` comment body starting at the opening
// parenthesis, tracking nested parenthesis depth. It returns the index of
// the closing parenthesis, the updated line counter, and whether the
// comment was terminated before end of input.
func skipComment(source string, open int, line int) (int, int, bool) {
	depth := 0
	for i := open; i < len(source); i++ {
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, line, true
			}
		case '\n':
			line++
		}
	}
	return len(source), line, false
}

func isWordByte(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == ':'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
