package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindSymbol Kind = iota
	KindNumber
	KindName
	KindStack
	KindDeck
	KindPlayers
	KindCurrentPlayer
	KindDefine
	KindCheck
	KindIs
	KindIf
	KindTrue
	KindFalse
	KindReturn
	KindOpenParens    // (
	KindCloseParens   // )
	KindComma         // ,
	KindOpenBracket   // {
	KindCloseBracket  // }
	KindTransfer      // >
	KindAmpersand     // &
	KindNewline
)

// Token is a lexical unit annotated with its 1-based source line.
// Text is set for KindSymbol, Number for KindNumber.
type Token struct {
	Kind   Kind
	Text   string
	Number float64
	Line   int
}

var keywords = map[string]Kind{
	"name":           KindName,
	"stack":          KindStack,
	"deck":           KindDeck,
	"players":        KindPlayers,
	"current_player": KindCurrentPlayer,
	"define":         KindDefine,
	"check":          KindCheck,
	"is":             KindIs,
	"if":             KindIf,
	"true":           KindTrue,
	"false":          KindFalse,
	"return":         KindReturn,
}

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindNumber:
		return "number"
	case KindName:
		return "name"
	case KindStack:
		return "stack"
	case KindDeck:
		return "deck"
	case KindPlayers:
		return "players"
	case KindCurrentPlayer:
		return "current_player"
	case KindDefine:
		return "define"
	case KindCheck:
		return "check"
	case KindIs:
		return "is"
	case KindIf:
		return "if"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindReturn:
		return "return"
	case KindOpenParens:
		return "("
	case KindCloseParens:
		return ")"
	case KindComma:
		return ","
	case KindOpenBracket:
		return "{"
	case KindCloseBracket:
		return "}"
	case KindTransfer:
		return ">"
	case KindAmpersand:
		return "&"
	case KindNewline:
		return "newline"
	}
	return "unknown"
}
