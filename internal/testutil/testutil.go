package testutil

import (
	"io"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/lexer"
	"github.com/nx-lang/nx/internal/lexer/token"
)

const DefaultFilename = "test.nx"

func NewLexer(src []byte, filename string) *lexer.Lexer {
	lex, _ := NewLexerWithCollector(src, filename)
	return lex
}

// NewLexerWithCollector returns a lexer whose collector keeps diagnostics
// without printing them.
func NewLexerWithCollector(src []byte, filename string) (*lexer.Lexer, *diagnostics.Collector) {
	collector := diagnostics.NewWithWriter(io.Discard)
	return lexer.New(FakeLoc(filename), src, collector), collector
}

func FakeLoc(filename string) *ast.Loc {
	if filename == "" {
		filename = DefaultFilename
	}
	return &ast.Loc{Name: filename}
}

func Int(value string) *ast.Literal {
	return &ast.Literal{Value: value, Kind: ast.LITERAL_INT}
}

func Str(value string) *ast.Literal {
	return &ast.Literal{Value: value, Kind: ast.LITERAL_STRING}
}

func Bool(value string) *ast.Literal {
	return &ast.Literal{Value: value, Kind: ast.LITERAL_BOOLEAN}
}

func Ident(name string) *ast.Literal {
	return &ast.Literal{Value: name, Kind: ast.LITERAL_IDENTIFIER}
}

func NewBinExpr(left ast.Node, op string, right ast.Node) *ast.BinaryOperation {
	return &ast.BinaryOperation{Left: left, Op: op, Right: right}
}

func NewCall(name string, args ...ast.Node) *ast.FunctionCall {
	if args == nil {
		args = []ast.Node{}
	}
	return &ast.FunctionCall{Name: name, Args: args}
}

// StripPositions returns a copy of node with every position zeroed, so
// trees parsed from differently laid out sources compare equal.
func StripPositions(node ast.Node) ast.Node {
	if node == nil {
		return nil
	}
	cloned := node.Clone()
	strip(cloned)
	return cloned
}

func strip(node ast.Node) {
	switch n := node.(type) {
	case *ast.Module:
		n.Pos = token.Pos{}
		stripAll(n.Body)
	case *ast.Function:
		n.Pos = token.Pos{}
		stripAll(n.Body)
	case *ast.VariableDeclaration:
		n.Pos = token.Pos{}
		if n.Initializer != nil {
			strip(n.Initializer)
		}
	case *ast.BinaryOperation:
		n.Pos = token.Pos{}
		if n.Left != nil {
			strip(n.Left)
		}
		if n.Right != nil {
			strip(n.Right)
		}
	case *ast.Literal:
		n.Pos = token.Pos{}
	case *ast.FunctionCall:
		n.Pos = token.Pos{}
		stripAll(n.Args)
	case *ast.ReturnStatement:
		n.Pos = token.Pos{}
		if n.Expression != nil {
			strip(n.Expression)
		}
	case *ast.IfStatement:
		n.Pos = token.Pos{}
		if n.Condition != nil {
			strip(n.Condition)
		}
		stripAll(n.ThenBranch)
		stripAll(n.ElseBranch)
	}
}

func stripAll(nodes []ast.Node) {
	for _, node := range nodes {
		strip(node)
	}
}
