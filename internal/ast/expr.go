package ast

import (
	"fmt"

	"github.com/nx-lang/nx/internal/lexer/token"
)

// Operators a BinaryOperation may carry. All share one precedence level and
// associate to the left.
var OPERATORS map[string]bool = map[string]bool{
	"+":  true,
	"-":  true,
	"*":  true,
	"/":  true,
	"==": true,
	"<":  true,
	"<=": true,
	">":  true,
	">=": true,
}

var COMPARISON map[string]bool = map[string]bool{
	"==": true,
	"<":  true,
	"<=": true,
	">":  true,
	">=": true,
}

type BinaryOperation struct {
	Pos   token.Pos
	Op    string
	Left  Node
	Right Node
}

func (binOp *BinaryOperation) String() string {
	return fmt.Sprintf("(%v) %s (%v)", binOp.Left, binOp.Op, binOp.Right)
}
func (binOp *BinaryOperation) Position() token.Pos { return binOp.Pos }
func (binOp *BinaryOperation) astNode()            {}

func (binOp *BinaryOperation) Clone() Node {
	return &BinaryOperation{
		Pos:   binOp.Pos,
		Op:    binOp.Op,
		Left:  cloneNode(binOp.Left),
		Right: cloneNode(binOp.Right),
	}
}

type LiteralKind string

const (
	LITERAL_INT        LiteralKind = "int"
	LITERAL_STRING     LiteralKind = "string"
	LITERAL_BOOLEAN    LiteralKind = "boolean"
	LITERAL_IDENTIFIER LiteralKind = "identifier" // bare name reference
)

type Literal struct {
	Pos   token.Pos
	Value string // raw text, string literals without their quotes
	Kind  LiteralKind
}

func (literal *Literal) String() string {
	return fmt.Sprintf("%s(%s)", literal.Kind, literal.Value)
}
func (literal *Literal) Position() token.Pos { return literal.Pos }
func (literal *Literal) astNode()            {}

func (literal *Literal) Clone() Node {
	cloned := *literal
	return &cloned
}

type FunctionCall struct {
	Pos  token.Pos
	Name string // "f" or "Module.f"
	Args []Node
}

func (call *FunctionCall) String() string {
	return fmt.Sprintf("CALL: %s - ARGS: %v", call.Name, call.Args)
}
func (call *FunctionCall) Position() token.Pos { return call.Pos }
func (call *FunctionCall) astNode()            {}

func (call *FunctionCall) Clone() Node {
	return &FunctionCall{Pos: call.Pos, Name: call.Name, Args: cloneNodes(call.Args)}
}
