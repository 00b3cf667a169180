package ast

import (
	"strings"
)

const indentUnit = "    "

// Print renders a node back into nx source. Output is deterministic and
// parsing it again yields the same tree (positions aside).
func Print(node Node) string {
	p := &printer{}
	if module, ok := node.(*Module); ok && module.Name == PROGRAM {
		for i, child := range module.Body {
			if i > 0 {
				p.b.WriteByte('\n')
			}
			p.stmt(child)
		}
		return p.b.String()
	}
	if isExpr(node) {
		p.expr(node)
		return p.b.String()
	}
	p.stmt(node)
	return p.b.String()
}

type printer struct {
	b     strings.Builder
	depth int
}

func isExpr(node Node) bool {
	switch node.(type) {
	case *BinaryOperation, *Literal, *FunctionCall:
		return true
	}
	return false
}

func (p *printer) line(parts ...string) {
	p.b.WriteString(strings.Repeat(indentUnit, p.depth))
	for _, part := range parts {
		p.b.WriteString(part)
	}
	p.b.WriteByte('\n')
}

func (p *printer) block(body []Node) {
	p.depth++
	for _, stmt := range body {
		p.stmt(stmt)
	}
	p.depth--
}

func (p *printer) stmt(node Node) {
	switch n := node.(type) {
	case *Module:
		p.line("module ", n.Name, " {")
		p.depth++
		for _, imp := range n.Imports {
			p.line("import ", imp, ";")
		}
		p.depth--
		p.block(n.Body)
		p.line("}")
	case *Function:
		params := make([]string, len(n.Params))
		for i, param := range n.Params {
			params[i] = param.String()
		}
		p.line("func ", n.Name, "(", strings.Join(params, ", "), ") -> ", n.ReturnType, " {")
		p.block(n.Body)
		p.line("}")
	case *VariableDeclaration:
		keyword := "let "
		if n.IsMutable {
			keyword = "var "
		}
		decl := keyword + n.Name
		if n.TypeName != "" {
			decl += ": " + n.TypeName
		}
		if n.Initializer != nil {
			decl += " = " + Print(n.Initializer)
		}
		p.line(decl, ";")
	case *ReturnStatement:
		if n.Expression == nil {
			p.line("return;")
			return
		}
		p.line("return ", Print(n.Expression), ";")
	case *IfStatement:
		p.line("if (", Print(n.Condition), ") {")
		p.block(n.ThenBranch)
		if len(n.ElseBranch) > 0 {
			p.line("} else {")
			p.block(n.ElseBranch)
		}
		p.line("}")
	case nil:
	default:
		p.line(Print(n), ";")
	}
}

func (p *printer) expr(node Node) {
	switch n := node.(type) {
	case *Literal:
		if n.Kind == LITERAL_STRING {
			p.b.WriteByte('"')
			p.b.WriteString(n.Value)
			p.b.WriteByte('"')
			return
		}
		p.b.WriteString(n.Value)
	case *BinaryOperation:
		p.expr(n.Left)
		p.b.WriteString(" " + n.Op + " ")
		p.expr(n.Right)
	case *FunctionCall:
		p.b.WriteString(n.Name)
		p.b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expr(arg)
		}
		p.b.WriteByte(')')
	}
}
