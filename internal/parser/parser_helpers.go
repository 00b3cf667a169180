package parser

import (
	"io"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/lexer"
	"github.com/nx-lang/nx/internal/modules"
)

const defaultFilename = "test.nx"

func FakeLoc(filename string) *ast.Loc {
	if filename == "" {
		filename = defaultFilename
	}
	return &ast.Loc{Name: filename}
}

func NewForTest(lex *lexer.Lexer, collector *diagnostics.Collector) *Parser {
	return NewWithLex(lex, collector, modules.New())
}

func (p *Parser) Modules() *modules.Manager {
	return p.modules
}

// ParseSource parses src as a whole program with a fresh module manager and
// a collector that keeps diagnostics without printing them.
func ParseSource(src, filename string) (*ast.Module, *diagnostics.Collector, *modules.Manager, error) {
	collector := diagnostics.NewWithWriter(io.Discard)
	lex := lexer.New(FakeLoc(filename), []byte(src), collector)
	p := NewForTest(lex, collector)
	program, err := p.ParseFile(lex)
	return program, collector, p.modules, err
}

func ParseExprFrom(expr, filename string) (ast.Node, error) {
	collector := diagnostics.NewWithWriter(io.Discard)
	lex := lexer.New(FakeLoc(filename), []byte(expr), collector)
	p := NewForTest(lex, collector)
	return p.parseExpr()
}

func ParseStmtFrom(stmt, filename string) (ast.Node, *diagnostics.Collector, error) {
	collector := diagnostics.NewWithWriter(io.Discard)
	lex := lexer.New(FakeLoc(filename), []byte(stmt), collector)
	p := NewForTest(lex, collector)
	node, err := p.parseStatement()
	return node, collector, err
}
