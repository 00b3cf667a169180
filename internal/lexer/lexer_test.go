package lexer

import (
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/lexer/token"
)

const testFilename = "test.nx"

func newTestLexer(input string) *Lexer {
	collector := diagnostics.NewWithWriter(io.Discard)
	loc := new(ast.Loc)
	loc.Name = testFilename
	return New(loc, []byte(input), collector)
}

type tokenKindTest struct {
	lexeme string
	kind   token.Kind
}

func TestTokenKinds(t *testing.T) {
	tests := []*tokenKindTest{
		{"module", token.MODULE},
		{"import", token.IMPORT},
		{"func", token.FUNC},
		{"let", token.LET},
		{"var", token.VAR},
		{"if", token.IF},
		{"else", token.ELSE},
		{"for", token.FOR},
		{"while", token.WHILE},
		{"spawn", token.SPAWN},
		{"await", token.AWAIT},
		{"return", token.RETURN},
		{"true", token.BOOLEAN},
		{"false", token.BOOLEAN},
		{"main", token.IDENTIFIER},
		{"_tmp1", token.IDENTIFIER},
		{"modules", token.IDENTIFIER},
		{"42", token.NUMBER},
		{"\"hi\"", token.STRING},
		{"(", token.LPAREN},
		{")", token.RPAREN},
		{"{", token.LBRACE},
		{"}", token.RBRACE},
		{";", token.SEMICOLON},
		{".", token.DOT},
		{",", token.COMMA},
		{":", token.COLON},
		{"->", token.ARROW},
		{"+", token.OPERATOR},
		{"-", token.OPERATOR},
		{"*", token.OPERATOR},
		{"/", token.OPERATOR},
		{"=", token.OPERATOR},
		{"==", token.OPERATOR},
		{"<", token.OPERATOR},
		{"<=", token.OPERATOR},
		{">", token.OPERATOR},
		{">=", token.OPERATOR},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTokenKind('%q')", test.lexeme), func(t *testing.T) {
			lex := newTestLexer(test.lexeme)

			tokenResult, err := lex.Tokenize()
			if err != nil {
				t.Errorf("unexpected error '%v'", err)
			}

			if len(tokenResult) != 2 {
				t.Fatalf("expected len(tokenResult) == 2, but got %d", len(tokenResult))
			}
			if tokenResult[1].Kind != token.END_OF_FILE {
				t.Errorf("expected last token to be END_OF_FILE, but got %s", tokenResult[1].Kind)
			}
			if tokenResult[0].Kind != test.kind {
				t.Errorf("expected token to be %s, but got %s", test.kind, tokenResult[0].Kind)
			}
		})
	}
}

type tokenLexemeTest struct {
	input   string
	lexemes []string
}

func TestTokenLexemes(t *testing.T) {
	tests := []*tokenLexemeTest{
		{"\"hello world\"", []string{"hello world"}},
		{"\"\"", []string{""}},
		{"a+=1", []string{"a", "+", "=", "1"}},
		{"x->int", []string{"x", "->", "int"}},
		{"a - > b", []string{"a", "-", ">", "b"}},
		{"a<=b>=c==d", []string{"a", "<=", "b", ">=", "c", "==", "d"}},
		{"===", []string{"==", "="}},
		{"007", []string{"007"}},
		{"12abc", []string{"12", "abc"}},
		{"io.println(\"x\");", []string{"io", ".", "println", "(", "x", ")", ";"}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTokenLexemes(%q)", test.input), func(t *testing.T) {
			lex := newTestLexer(test.input)

			tokenResult, err := lex.Tokenize()
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}

			var lexemes []string
			for _, tok := range tokenResult[:len(tokenResult)-1] {
				lexemes = append(lexemes, tok.Name())
			}
			if !reflect.DeepEqual(test.lexemes, lexemes) {
				t.Errorf("expected %q, but got %q", test.lexemes, lexemes)
			}
		})
	}
}

type tokenPosTest struct {
	input     string
	positions []token.Pos
}

func TestTokenPos(t *testing.T) {
	tests := []*tokenPosTest{
		{";", []token.Pos{
			{Filename: testFilename, Line: 1, Column: 1},  // ;
			{Filename: testFilename, Line: 1, Column: 2}}, // eof
		},
		{";\n;", []token.Pos{
			{Filename: testFilename, Line: 1, Column: 1},  // ;
			{Filename: testFilename, Line: 2, Column: 1},  // ;
			{Filename: testFilename, Line: 2, Column: 2}}, // eof
		},
		{"func\nhello world\n;", []token.Pos{
			{Filename: testFilename, Line: 1, Column: 1},  // func
			{Filename: testFilename, Line: 2, Column: 1},  // hello
			{Filename: testFilename, Line: 2, Column: 7},  // world
			{Filename: testFilename, Line: 3, Column: 1},  // ;
			{Filename: testFilename, Line: 3, Column: 2}}, // eof
		},
		{"  let x = \"ab\";", []token.Pos{
			{Filename: testFilename, Line: 1, Column: 3},   // let
			{Filename: testFilename, Line: 1, Column: 7},   // x
			{Filename: testFilename, Line: 1, Column: 9},   // =
			{Filename: testFilename, Line: 1, Column: 11},  // "ab"
			{Filename: testFilename, Line: 1, Column: 15},  // ;
			{Filename: testFilename, Line: 1, Column: 16}}, // eof
		},
		{"a // note\n/* block\n */ b", []token.Pos{
			{Filename: testFilename, Line: 1, Column: 1},  // a
			{Filename: testFilename, Line: 3, Column: 5},  // b
			{Filename: testFilename, Line: 3, Column: 6}}, // eof
		},
		{"\tx->y", []token.Pos{
			{Filename: testFilename, Line: 1, Column: 2}, // x
			{Filename: testFilename, Line: 1, Column: 3}, // ->
			{Filename: testFilename, Line: 1, Column: 5}, // y
			{Filename: testFilename, Line: 1, Column: 6}}, // eof
		},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTokenPos(%q)", test.input), func(t *testing.T) {
			lex := newTestLexer(test.input)

			tokenResult, err := lex.Tokenize()
			if err != nil {
				t.Errorf("unexpected error '%v'", err)
			}

			if len(tokenResult) != len(test.positions) {
				t.Fatalf(
					"expected len(tokenResult) == len(test.positions), expected %d, but got %d",
					len(test.positions),
					len(tokenResult),
				)
			}

			for i, expectedPos := range test.positions {
				actualPos := tokenResult[i].Pos
				if expectedPos != actualPos {
					t.Errorf(
						"expected position of '%s' to be the same, expected %s, but got %s",
						tokenResult[i].Kind,
						expectedPos,
						actualPos,
					)
				}
			}
		})
	}
}

func TestTokenEnd(t *testing.T) {
	lex := newTestLexer("return foo")
	ret := lex.Next()
	foo := lex.Next()

	if ret.End != token.NewPosition(testFilename, 1, 7) {
		t.Errorf("unexpected end of 'return': %s", ret.End)
	}
	if foo.End != token.NewPosition(testFilename, 1, 11) {
		t.Errorf("unexpected end of 'foo': %s", foo.End)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	tests := []string{
		"// only a comment",
		"/* block */",
		"/* unterminated block",
		"  // one\n  // two\n",
	}

	for _, input := range tests {
		t.Run(fmt.Sprintf("TestCommentsAreSkipped(%q)", input), func(t *testing.T) {
			lex := newTestLexer(input)
			tokenResult, err := lex.Tokenize()
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if len(tokenResult) != 1 || tokenResult[0].Kind != token.END_OF_FILE {
				t.Errorf("expected only END_OF_FILE, got %v", tokenResult)
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lex := newTestLexer("module Main {")

	if !lex.NextIs(token.MODULE) {
		t.Fatalf("expected MODULE, got %s", lex.Peek().Kind)
	}
	if lex.Peek1().Kind != token.IDENTIFIER {
		t.Fatalf("expected IDENTIFIER, got %s", lex.Peek1().Kind)
	}

	kinds := []token.Kind{token.MODULE, token.IDENTIFIER, token.LBRACE, token.END_OF_FILE, token.END_OF_FILE}
	for _, kind := range kinds {
		tok := lex.Skip()
		if tok.Kind != kind {
			t.Errorf("expected %s, got %s", kind, tok.Kind)
		}
	}
}

type lexicalErrorTest struct {
	input string
	diags []diagnostics.Diag
}

func TestLexicalErrors(t *testing.T) {
	tests := []lexicalErrorTest{
		{
			input: "?",
			diags: []diagnostics.Diag{
				{
					Kind:    diagnostics.LEXICAL,
					Pos:     token.NewPosition(testFilename, 1, 1),
					Message: "lexical error: unexpected character '?'",
				},
			},
		},
		{
			input: "let x = 1; #",
			diags: []diagnostics.Diag{
				{
					Kind:    diagnostics.LEXICAL,
					Pos:     token.NewPosition(testFilename, 1, 12),
					Message: "lexical error: unexpected character '#'",
				},
			},
		},
		{
			input: "!!",
			diags: []diagnostics.Diag{
				{
					Kind:    diagnostics.LEXICAL,
					Pos:     token.NewPosition(testFilename, 1, 1),
					Message: "lexical error: unexpected character '!'",
				},
			},
		},
		{
			input: "\"Unterminated string literal here",
			diags: []diagnostics.Diag{
				{
					Kind:    diagnostics.LEXICAL,
					Pos:     token.NewPosition(testFilename, 1, 1),
					Message: "lexical error: unterminated string literal",
				},
			},
		},
		{
			input: "x\n  \"spans\nlines\"",
			diags: []diagnostics.Diag{
				{
					Kind:    diagnostics.LEXICAL,
					Pos:     token.NewPosition(testFilename, 2, 3),
					Message: "lexical error: unterminated string literal",
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestLexicalErrors('%s')", test.input), func(t *testing.T) {
			lex := newTestLexer(test.input)
			tokenResult, err := lex.Tokenize()
			if err == nil {
				t.Fatal("expected to have lexical errors, but got nothing")
			}
			if last := tokenResult[len(tokenResult)-1]; last.Kind != token.END_OF_FILE {
				t.Errorf("expected END_OF_FILE after a lexical error, got %s", last.Kind)
			}

			if !reflect.DeepEqual(test.diags, lex.Collector.Diags) {
				t.Fatalf("\nexpected diags: %v\ngot diags: %v\n", test.diags, lex.Collector.Diags)
			}
		})
	}
}

func TestNothingAfterLexicalError(t *testing.T) {
	lex := newTestLexer("a ? b c")
	if tok := lex.Next(); tok.Name() != "a" {
		t.Fatalf("expected 'a', got %s", tok)
	}
	for i := 0; i < 3; i++ {
		if tok := lex.Next(); tok.Kind != token.END_OF_FILE {
			t.Errorf("expected END_OF_FILE, got %s", tok.Kind)
		}
	}
	if !lex.Failed() {
		t.Error("expected lexer to be marked as failed")
	}
	if len(lex.Collector.Diags) != 1 {
		t.Errorf("expected one diag, got %d", len(lex.Collector.Diags))
	}
}

func TestReservedKinds(t *testing.T) {
	reserved := []token.Kind{token.FOR, token.WHILE, token.SPAWN, token.AWAIT}
	for _, kind := range reserved {
		if !kind.IsReserved() {
			t.Errorf("expected %s to be reserved", kind)
		}
	}

	usable := []token.Kind{token.MODULE, token.IF, token.RETURN, token.IDENTIFIER, token.BOOLEAN}
	for _, kind := range usable {
		if kind.IsReserved() {
			t.Errorf("expected %s not to be reserved", kind)
		}
	}
}
