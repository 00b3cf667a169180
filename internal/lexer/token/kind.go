package token

import "fmt"

type Kind int

const (
	// Keywords
	MODULE Kind = iota
	IMPORT
	FUNC
	LET
	VAR
	IF
	ELSE
	FOR
	WHILE
	SPAWN
	AWAIT
	RETURN

	// Identifier and literals
	IDENTIFIER
	NUMBER
	STRING
	BOOLEAN

	// + - * / = == < <= > >=
	OPERATOR

	// (
	LPAREN
	// )
	RPAREN
	// {
	LBRACE
	// }
	RBRACE
	// ;
	SEMICOLON
	// .
	DOT
	// ,
	COMMA
	// :
	COLON
	// ->
	ARROW

	// Never surfaced by the lexer, comments are skipped together with
	// whitespace.
	COMMENT

	END_OF_FILE
)

var KEYWORDS map[string]Kind = map[string]Kind{
	"module": MODULE,
	"import": IMPORT,
	"func":   FUNC,
	"let":    LET,
	"var":    VAR,
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"while":  WHILE,
	"spawn":  SPAWN,
	"await":  AWAIT,
	"return": RETURN,

	"true":  BOOLEAN,
	"false": BOOLEAN,
}

// Recognised by the lexer but without any grammar behind them.
var RESERVED map[Kind]bool = map[Kind]bool{
	FOR:   true,
	WHILE: true,
	SPAWN: true,
	AWAIT: true,
}

func (kind Kind) IsReserved() bool {
	return RESERVED[kind]
}

func (kind Kind) String() string {
	switch kind {
	case MODULE:
		return "MODULE"
	case IMPORT:
		return "IMPORT"
	case FUNC:
		return "FUNC"
	case LET:
		return "LET"
	case VAR:
		return "VAR"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case FOR:
		return "FOR"
	case WHILE:
		return "WHILE"
	case SPAWN:
		return "SPAWN"
	case AWAIT:
		return "AWAIT"
	case RETURN:
		return "RETURN"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case BOOLEAN:
		return "BOOLEAN"
	case OPERATOR:
		return "OPERATOR"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case ARROW:
		return "ARROW"
	case COMMENT:
		return "COMMENT"
	case END_OF_FILE:
		return "END_OF_FILE"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}
