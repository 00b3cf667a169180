package lexer

import (
	"fmt"
	"os"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/lexer/token"
)

const eof = '\000'

type Lexer struct {
	Loc       *ast.Loc
	Collector *diagnostics.Collector

	src    []byte
	offset int
	pos    token.Pos

	// Set after the first lexical error, from then on only END_OF_FILE is
	// produced.
	failed bool

	// Tokens scanned ahead by Peek and Peek1, not consumed yet.
	ahead []*token.Token
}

func New(loc *ast.Loc, src []byte, collector *diagnostics.Collector) *Lexer {
	lexer := new(Lexer)

	lexer.Loc = loc
	lexer.Collector = collector
	lexer.pos = token.NewPosition(loc.Name, 1, 1)
	lexer.src = src
	lexer.offset = 0

	collector.AddSource(loc.Name, src)
	return lexer
}

func NewFromFilePath(loc *ast.Loc, collector *diagnostics.Collector) (*Lexer, error) {
	src, err := os.ReadFile(loc.Path)
	if err != nil {
		return nil, err
	}
	l := New(loc, src, collector)
	return l, nil
}

func (lex *Lexer) Filename() string { return lex.pos.Filename }

func (lex *Lexer) Failed() bool { return lex.failed }

func (lex *Lexer) Peek() *token.Token {
	return lex.peekN(0)
}

func (lex *Lexer) Peek1() *token.Token {
	return lex.peekN(1)
}

func (lex *Lexer) peekN(n int) *token.Token {
	for len(lex.ahead) <= n {
		lex.ahead = append(lex.ahead, lex.scan())
	}
	return lex.ahead[n]
}

// Skip consumes the next token and returns it.
func (lex *Lexer) Skip() *token.Token {
	return lex.Next()
}

func (lex *Lexer) NextIs(expectedKind token.Kind) bool {
	return lex.Peek().Kind == expectedKind
}

func (lex *Lexer) Next() *token.Token {
	if len(lex.ahead) > 0 {
		tok := lex.ahead[0]
		lex.ahead = lex.ahead[1:]
		return tok
	}
	return lex.scan()
}

func (lex *Lexer) scan() *token.Token {
	if lex.failed {
		return lex.endOfFile()
	}

	lex.skipWhitespace()

	character := lex.peekChar()
	if character == eof {
		return lex.endOfFile()
	}

	tok := &token.Token{Pos: lex.pos}
	lex.getToken(tok, character)
	tok.End = lex.pos
	return tok
}

// Useful for testing
func (lex *Lexer) Tokenize() ([]*token.Token, error) {
	var tokens []*token.Token
	for {
		tok := lex.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.END_OF_FILE {
			break
		}
	}
	if lex.failed {
		return tokens, diagnostics.ErrCompilerErrorFound
	}
	return tokens, nil
}

func (lex *Lexer) getToken(tok *token.Token, ch byte) {
	switch ch {
	case '(':
		lex.consumeSingle(tok, token.LPAREN)
	case ')':
		lex.consumeSingle(tok, token.RPAREN)
	case '{':
		lex.consumeSingle(tok, token.LBRACE)
	case '}':
		lex.consumeSingle(tok, token.RBRACE)
	case ';':
		lex.consumeSingle(tok, token.SEMICOLON)
	case '.':
		lex.consumeSingle(tok, token.DOT)
	case ',':
		lex.consumeSingle(tok, token.COMMA)
	case ':':
		lex.consumeSingle(tok, token.COLON)
	case '+', '*', '/':
		lex.consumeSingle(tok, token.OPERATOR)
	case '-':
		lex.nextChar() // -
		tok.Kind = token.OPERATOR
		tok.Lexeme = []byte("-")
		if lex.peekChar() == '>' {
			lex.nextChar() // >
			tok.Kind = token.ARROW
			tok.Lexeme = []byte("->")
		}
	case '=', '<', '>':
		lex.nextChar()
		tok.Kind = token.OPERATOR
		tok.Lexeme = []byte{ch}
		if lex.peekChar() == '=' {
			lex.nextChar() // =
			tok.Lexeme = []byte{ch, '='}
		}
	case '"':
		lex.getStringLit(tok)
	default:
		if isLetter(ch) || ch == '_' {
			lex.getIdOrKeyword(tok)
		} else if isDigit(ch) {
			lex.getNumberLit(tok)
		} else {
			lex.fail(tok, fmt.Sprintf("unexpected character '%c'", ch))
		}
	}
}

func (lex *Lexer) getStringLit(tok *token.Token) {
	lex.nextChar() // "

	str := lex.readWhile(func(ch byte) bool { return ch != '"' && ch != '\n' })

	if lex.peekChar() != '"' {
		lex.fail(tok, "unterminated string literal")
		return
	}
	lex.nextChar() // "

	tok.Kind = token.STRING
	tok.Lexeme = str
}

func (lex *Lexer) getNumberLit(tok *token.Token) {
	tok.Kind = token.NUMBER
	tok.Lexeme = lex.readWhile(isDigit)
}

func (lex *Lexer) getIdOrKeyword(tok *token.Token) {
	identifier := lex.readWhile(
		func(chr byte) bool { return isLetter(chr) || isDigit(chr) || chr == '_' },
	)
	tok.Kind = token.IDENTIFIER
	tok.Lexeme = identifier
	keyword, ok := token.KEYWORDS[string(identifier)]
	if ok {
		tok.Kind = keyword
	}
}

func (lex *Lexer) consumeSingle(tok *token.Token, kind token.Kind) {
	tok.Kind = kind
	tok.Lexeme = []byte{lex.nextChar()}
}

func (lex *Lexer) fail(tok *token.Token, message string) {
	lex.Collector.ReportAndSave(diagnostics.Diag{
		Kind:    diagnostics.LEXICAL,
		Pos:     tok.Pos,
		Message: "lexical error: " + message,
	})
	lex.failed = true
	tok.Kind = token.END_OF_FILE
	tok.Lexeme = nil
}

func (lex *Lexer) endOfFile() *token.Token {
	return &token.Token{Kind: token.END_OF_FILE, Pos: lex.pos, End: lex.pos}
}

// skipWhitespace also swallows comments, so they never reach the parser.
func (lex *Lexer) skipWhitespace() {
	for {
		lex.readWhile(func(ch byte) bool {
			return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
		})

		if lex.peekChar() != '/' {
			return
		}
		switch lex.peekCharAt(1) {
		case '/':
			lex.readWhile(func(ch byte) bool { return ch != '\n' })
		case '*':
			lex.nextChar() // /
			lex.nextChar() // *
			for {
				ch := lex.peekChar()
				if ch == eof {
					return
				}
				if ch == '*' && lex.peekCharAt(1) == '/' {
					lex.nextChar() // *
					lex.nextChar() // /
					break
				}
				lex.nextChar()
			}
		default:
			return
		}
	}
}

func (lex *Lexer) readWhile(isValid func(byte) bool) []byte {
	start := lex.offset

	for {
		character := lex.peekChar()
		if character == eof || !isValid(character) {
			break
		}
		lex.nextChar()
	}

	return lex.src[start:lex.offset]
}

func (lex *Lexer) nextChar() byte {
	if lex.offset >= len(lex.src) {
		return eof
	}
	character := lex.src[lex.offset]
	lex.pos.Move(character)
	lex.offset++
	return character
}

func (lex *Lexer) peekChar() byte {
	return lex.peekCharAt(0)
}

func (lex *Lexer) peekCharAt(n int) byte {
	if lex.offset+n >= len(lex.src) {
		return eof
	}
	return lex.src[lex.offset+n]
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
