package parser

import (
	"fmt"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/lexer"
	"github.com/nx-lang/nx/internal/lexer/token"
	"github.com/nx-lang/nx/internal/modules"
)

type Parser struct {
	lex       *lexer.Lexer
	collector *diagnostics.Collector
	modules   *modules.Manager

	// Last consumed token, missing semicolons are reported right after it.
	prev *token.Token
	// Innermost module being parsed, functions are registered under it.
	module string
	failed bool
}

func New(collector *diagnostics.Collector, manager *modules.Manager) *Parser {
	parser := new(Parser)
	parser.lex = nil
	parser.collector = collector
	parser.modules = manager
	return parser
}

// Useful for testing
func NewWithLex(lex *lexer.Lexer, collector *diagnostics.Collector, manager *modules.Manager) *Parser {
	return &Parser{lex: lex, collector: collector, modules: manager}
}

// ParseFile parses a whole source file into the root "Program" module.
// The tree is returned even when errors were reported, in which case the
// error is diagnostics.ErrCompilerErrorFound.
func (p *Parser) ParseFile(lex *lexer.Lexer) (*ast.Module, error) {
	p.lex = lex
	p.prev = nil
	p.module = ""
	p.failed = false
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Module, error) {
	program := ast.NewProgram()

	for {
		tok := p.lex.Peek()
		if tok.Kind == token.END_OF_FILE {
			break
		}

		if tok.Kind != token.MODULE {
			p.syntaxError(tok.Pos, fmt.Sprintf("expected 'module' declaration, not %s", tok.Describe()))
			for !p.lex.NextIs(token.MODULE) && !p.lex.NextIs(token.END_OF_FILE) {
				p.skip()
			}
			continue
		}

		module, err := p.parseModule()
		if err != nil {
			for !p.lex.NextIs(token.MODULE) && !p.lex.NextIs(token.END_OF_FILE) {
				p.skip()
			}
			continue
		}
		program.Body = append(program.Body, module)
	}

	if p.failed || p.lex.Failed() {
		return program, diagnostics.ErrCompilerErrorFound
	}
	return program, nil
}

func (p *Parser) parseModule() (*ast.Module, error) {
	keyword := p.skip() // module

	name, ok := p.expect(token.IDENTIFIER)
	if !ok {
		p.syntaxError(name.Pos, fmt.Sprintf("expected module name, not %s", name.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	openCurly, ok := p.expect(token.LBRACE)
	if !ok {
		p.syntaxError(openCurly.Pos, fmt.Sprintf("expected '{' after module name, not %s", openCurly.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	module := &ast.Module{Pos: keyword.Pos, Name: name.Name()}
	p.modules.RegisterModule(module.Name)

	enclosing := p.module
	p.module = module.Name
	defer func() { p.module = enclosing }()

	for {
		tok := p.lex.Peek()
		if tok.Kind == token.RBRACE {
			p.skip()
			return module, nil
		}
		if tok.Kind == token.END_OF_FILE {
			p.syntaxError(tok.Pos, fmt.Sprintf("expected '}' to close module '%s'", module.Name))
			return module, nil
		}

		switch tok.Kind {
		case token.IMPORT:
			path, err := p.parseImport()
			if path != "" {
				module.Imports = append(module.Imports, path)
			}
			if err != nil {
				p.synchronize()
			}
		case token.MODULE:
			child, err := p.parseModule()
			if err != nil {
				p.synchronize()
				continue
			}
			module.Body = append(module.Body, child)
		case token.FUNC:
			fn, err := p.parseFunction()
			if err != nil {
				p.synchronize()
				continue
			}
			p.modules.RegisterUserFunction(module.Name, fn.Name, fn.Params, fn.ReturnType, fn)
			module.Body = append(module.Body, fn)
		default:
			stmt, err := p.parseStatement()
			if err != nil {
				p.synchronize()
				continue
			}
			if stmt != nil {
				module.Body = append(module.Body, stmt)
			}
		}
	}
}

// parseImport registers the imported path with the module manager. Imports
// produce no node, the path is returned for the module's import list.
func (p *Parser) parseImport() (string, error) {
	p.skip() // import

	first, ok := p.expect(token.IDENTIFIER)
	if !ok {
		p.syntaxError(first.Pos, fmt.Sprintf("expected module name after 'import', not %s", first.Describe()))
		return "", diagnostics.ErrCompilerErrorFound
	}

	path := first.Name()
	for p.lex.NextIs(token.DOT) {
		p.skip() // .
		segment, ok := p.expect(token.IDENTIFIER)
		if !ok {
			p.syntaxError(segment.Pos, fmt.Sprintf("expected module name after '.', not %s", segment.Describe()))
			return "", diagnostics.ErrCompilerErrorFound
		}
		path += "." + segment.Name()
	}

	p.modules.RegisterModule(path)

	if err := p.expectSemicolon(); err != nil {
		return path, err
	}
	return path, nil
}

func (p *Parser) parseFunction() (*ast.Function, error) {
	keyword := p.skip() // func

	name, ok := p.expect(token.IDENTIFIER)
	if !ok {
		p.syntaxError(name.Pos, fmt.Sprintf("expected function name, not %s", name.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	fn := &ast.Function{Pos: keyword.Pos, Name: name.Name()}

	params, err := p.parseParams(fn.Name)
	if err != nil {
		return nil, err
	}
	fn.Params = params

	arrow, ok := p.expect(token.ARROW)
	if !ok {
		p.syntaxError(arrow.Pos, fmt.Sprintf("expected '->' after parameters of '%s', not %s", fn.Name, arrow.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	returnType, ok := p.expect(token.IDENTIFIER)
	if !ok {
		p.syntaxError(returnType.Pos, fmt.Sprintf("expected return type, not %s", returnType.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}
	fn.ReturnType = returnType.Name()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body

	return fn, nil
}

func (p *Parser) parseParams(functionName string) ([]ast.Param, error) {
	openParen, ok := p.expect(token.LPAREN)
	if !ok {
		p.syntaxError(openParen.Pos, fmt.Sprintf("expected '(' after '%s', not %s", functionName, openParen.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	var params []ast.Param
	if _, ok := p.expect(token.RPAREN); ok {
		return params, nil
	}

	for {
		name, ok := p.expect(token.IDENTIFIER)
		if !ok {
			p.syntaxError(name.Pos, fmt.Sprintf("expected parameter name, not %s", name.Describe()))
			return nil, diagnostics.ErrCompilerErrorFound
		}
		param := ast.Param{Name: name.Name()}

		if _, ok := p.expect(token.COLON); ok {
			ty, ok := p.expect(token.IDENTIFIER)
			if !ok {
				p.syntaxError(ty.Pos, fmt.Sprintf("expected type of parameter '%s', not %s", param.Name, ty.Describe()))
				return nil, diagnostics.ErrCompilerErrorFound
			}
			param.Type = ty.Name()
		}
		params = append(params, param)

		tok := p.lex.Peek()
		switch tok.Kind {
		case token.COMMA:
			p.skip()
		case token.RPAREN:
			p.skip()
			return params, nil
		default:
			p.syntaxError(tok.Pos, fmt.Sprintf("expected ',' or ')' in parameter list, not %s", tok.Describe()))
			return nil, diagnostics.ErrCompilerErrorFound
		}
	}
}

// parseBlock parses '{' statements '}'. Statements that fail to parse are
// dropped after resynchronising, the rest of the block is kept. A missing
// '{' is left to the caller to recover from.
func (p *Parser) parseBlock() ([]ast.Node, error) {
	openCurly, ok := p.expect(token.LBRACE)
	if !ok {
		p.syntaxError(openCurly.Pos, fmt.Sprintf("expected '{', not %s", openCurly.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	statements := []ast.Node{}
	for {
		tok := p.lex.Peek()
		if tok.Kind == token.RBRACE {
			p.skip()
			return statements, nil
		}
		if tok.Kind == token.END_OF_FILE {
			p.syntaxError(tok.Pos, "expected statement or '}', not end of file")
			return statements, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			p.synchronize()
			continue
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
}

// parseStatement returns a nil node without error for statements that
// produce nothing, such as a call rejected by the import check.
func (p *Parser) parseStatement() (ast.Node, error) {
	tok := p.lex.Peek()
	if tok.Kind.IsReserved() {
		p.syntaxError(tok.Pos, fmt.Sprintf("'%s' is reserved and not supported", tok.Name()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	switch tok.Kind {
	case token.IF:
		return p.parseIf()
	case token.LET, token.VAR:
		return p.parseVar()
	case token.FUNC:
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		return fn, nil
	case token.RETURN:
		return p.parseReturn()
	case token.MODULE:
		p.syntaxError(tok.Pos, "module declarations are only allowed at the top level or inside another module")
		return nil, diagnostics.ErrCompilerErrorFound
	case token.IMPORT:
		p.syntaxError(tok.Pos, "imports are only allowed inside a module body")
		return nil, diagnostics.ErrCompilerErrorFound
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	keyword := p.skip() // if

	openParen, ok := p.expect(token.LPAREN)
	if !ok {
		p.syntaxError(openParen.Pos, fmt.Sprintf("expected '(' after 'if', not %s", openParen.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	closeParen, ok := p.expect(token.RPAREN)
	if !ok {
		p.syntaxError(closeParen.Pos, fmt.Sprintf("expected ')' after condition, not %s", closeParen.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	ifStmt := &ast.IfStatement{Pos: keyword.Pos, Condition: condition}

	ifStmt.ThenBranch, err = p.parseBlock()
	if err != nil {
		return nil, err
	}

	if _, ok := p.expect(token.ELSE); ok {
		ifStmt.ElseBranch, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ifStmt, nil
}

// parseVar parses let and var declarations. Any operator introduces the
// initializer, not only '='.
func (p *Parser) parseVar() (ast.Node, error) {
	keyword := p.skip() // let | var

	name, ok := p.expect(token.IDENTIFIER)
	if !ok {
		p.syntaxError(name.Pos, fmt.Sprintf("expected variable name, not %s", name.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}

	variable := &ast.VariableDeclaration{
		Pos:       keyword.Pos,
		Name:      name.Name(),
		IsMutable: keyword.Kind == token.VAR,
	}

	if _, ok := p.expect(token.COLON); ok {
		ty, ok := p.expect(token.IDENTIFIER)
		if !ok {
			p.syntaxError(ty.Pos, fmt.Sprintf("expected type of '%s', not %s", variable.Name, ty.Describe()))
			return nil, diagnostics.ErrCompilerErrorFound
		}
		variable.TypeName = ty.Name()
	}

	if _, ok := p.expect(token.OPERATOR); ok {
		initializer, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		variable.Initializer = initializer
	}

	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return variable, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	keyword := p.skip() // return

	ret := &ast.ReturnStatement{Pos: keyword.Pos}
	if _, ok := p.expect(token.SEMICOLON); ok {
		return ret, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	ret.Expression = expr

	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseExpr parses a flat chain of operators, folded to the left: there
// is no precedence, so a + b * c is (a + b) * c.
func (p *Parser) parseExpr() (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.lex.NextIs(token.OPERATOR) {
		op := p.skip()
		if !ast.OPERATORS[op.Name()] {
			p.syntaxError(op.Pos, fmt.Sprintf("unsupported operator '%s' in expression", op.Name()))
			return nil, diagnostics.ErrCompilerErrorFound
		}

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Pos: op.Pos, Op: op.Name(), Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.lex.Peek()
	switch tok.Kind {
	case token.NUMBER:
		p.skip()
		return &ast.Literal{Pos: tok.Pos, Value: tok.Name(), Kind: ast.LITERAL_INT}, nil
	case token.STRING:
		p.skip()
		return &ast.Literal{Pos: tok.Pos, Value: tok.Name(), Kind: ast.LITERAL_STRING}, nil
	case token.BOOLEAN:
		p.skip()
		return &ast.Literal{Pos: tok.Pos, Value: tok.Name(), Kind: ast.LITERAL_BOOLEAN}, nil
	case token.IDENTIFIER:
		p.skip()
		name := tok.Name()
		qualified := false

		if p.lex.NextIs(token.DOT) {
			p.skip() // .
			member, ok := p.expect(token.IDENTIFIER)
			if !ok {
				p.syntaxError(member.Pos, fmt.Sprintf("expected name after '%s.', not %s", name, member.Describe()))
				return nil, diagnostics.ErrCompilerErrorFound
			}
			name += "." + member.Name()
			qualified = true
		}

		if p.lex.NextIs(token.LPAREN) {
			return p.parseCall(tok, name, qualified)
		}
		return &ast.Literal{Pos: tok.Pos, Value: name, Kind: ast.LITERAL_IDENTIFIER}, nil
	case token.END_OF_FILE:
		p.syntaxError(tok.Pos, "expected expression, not end of file")
		return nil, diagnostics.ErrCompilerErrorFound
	default:
		p.syntaxError(tok.Pos, fmt.Sprintf("unexpected token %s", tok.Describe()))
		return nil, diagnostics.ErrCompilerErrorFound
	}
}

// parseCall parses the argument list of a call to name. Calls through a
// module that was never imported are reported and yield no node.
func (p *Parser) parseCall(start *token.Token, name string, qualified bool) (ast.Node, error) {
	p.skip() // (

	call := &ast.FunctionCall{Pos: start.Pos, Name: name, Args: []ast.Node{}}

	if _, ok := p.expect(token.RPAREN); !ok {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if arg != nil {
				call.Args = append(call.Args, arg)
			}

			tok := p.lex.Peek()
			if tok.Kind == token.COMMA {
				p.skip()
				continue
			}
			if tok.Kind == token.RPAREN {
				p.skip()
				break
			}
			p.syntaxError(tok.Pos, fmt.Sprintf("expected ',' or ')' in call to '%s', not %s", name, tok.Describe()))
			return nil, diagnostics.ErrCompilerErrorFound
		}
	}

	if qualified {
		module := start.Name()
		if !p.modules.IsModuleImported(module) && !p.modules.IsModuleImported(modules.STD_PREFIX+module) {
			p.collector.ReportAndSave(diagnostics.Diag{
				Kind:    diagnostics.IMPORT,
				Pos:     start.Pos,
				Message: fmt.Sprintf("module '%s' not imported", module),
			})
			return nil, nil
		}
	}

	return call, nil
}

func (p *Parser) expect(expectedKind token.Kind) (*token.Token, bool) {
	tok := p.lex.Peek()
	if tok.Kind != expectedKind {
		return tok, false
	}
	p.skip()
	return tok, true
}

// expectSemicolon reports a missing ';' right after the previous token,
// which is where it was supposed to be.
func (p *Parser) expectSemicolon() error {
	if _, ok := p.expect(token.SEMICOLON); ok {
		return nil
	}
	pos := p.lex.Peek().Pos
	if p.prev != nil {
		pos = p.prev.End
	}
	p.syntaxError(pos, "Missing semicolon at end of statement")
	return diagnostics.ErrCompilerErrorFound
}

func (p *Parser) skip() *token.Token {
	tok := p.lex.Skip()
	p.prev = tok
	return tok
}

// synchronize drops tokens up to the end of the broken statement: a ';'
// is consumed, a '}' is left for the enclosing block.
func (p *Parser) synchronize() {
	for {
		switch p.lex.Peek().Kind {
		case token.SEMICOLON:
			p.skip()
			return
		case token.RBRACE, token.END_OF_FILE:
			return
		}
		p.skip()
	}
}

// syntaxError records a syntax diagnostic. After a lexical error the rest
// of the stream is a synthetic end of file, so follow-up errors are not
// reported.
func (p *Parser) syntaxError(pos token.Pos, message string) {
	p.failed = true
	if p.lex.Failed() {
		return
	}
	p.collector.ReportAndSave(diagnostics.Diag{
		Kind:    diagnostics.SYNTAX,
		Pos:     pos,
		Message: message,
	})
}
