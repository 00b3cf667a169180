// Package ast defines the abstract syntax tree of nx programs.
//
// Node is a closed set of variants: Module, Function, VariableDeclaration,
// BinaryOperation, Literal, FunctionCall, ReturnStatement and IfStatement.
// Consumers dispatch with a type switch over those pointer types.
package ast

import (
	"fmt"

	"github.com/nx-lang/nx/internal/lexer/token"
)

// Name of the root module produced by the parser.
const PROGRAM = "Program"

type Node interface {
	Position() token.Pos
	// Clone returns a deep copy, children included.
	Clone() Node
	astNode()
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	cloned := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		if node != nil {
			cloned = append(cloned, node.Clone())
		}
	}
	return cloned
}

func cloneNode(node Node) Node {
	if node == nil {
		return nil
	}
	return node.Clone()
}

// KindOf names the variant of a node, used by the AST dump and by error
// messages.
func KindOf(node Node) string {
	switch node.(type) {
	case *Module:
		return "Module"
	case *Function:
		return "Function"
	case *VariableDeclaration:
		return "VariableDeclaration"
	case *BinaryOperation:
		return "BinaryOperation"
	case *Literal:
		return "Literal"
	case *FunctionCall:
		return "FunctionCall"
	case *ReturnStatement:
		return "ReturnStatement"
	case *IfStatement:
		return "IfStatement"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", node)
	}
}
