package token

import "fmt"

type Token struct {
	Lexeme []byte
	Kind   Kind
	Pos    Pos
	// Position right after the last character of the token
	End Pos
}

// Name returns the textual value of the token. For string literals that is
// the text between the quotes.
func (token *Token) Name() string {
	return string(token.Lexeme)
}

// Describe is used by diagnostics: the lexeme when the token has one,
// otherwise the kind.
func (token *Token) Describe() string {
	switch token.Kind {
	case END_OF_FILE:
		return "end of file"
	case STRING:
		return fmt.Sprintf("\"%s\"", token.Lexeme)
	}
	if len(token.Lexeme) == 0 {
		return token.Kind.String()
	}
	return string(token.Lexeme)
}

func (token *Token) Is(kind Kind, lexeme string) bool {
	return token.Kind == kind && string(token.Lexeme) == lexeme
}

func (token *Token) String() string {
	return fmt.Sprintf("%s | %s | %s", string(token.Lexeme), token.Kind, token.Pos)
}
