package ast

import (
	"fmt"

	"github.com/nx-lang/nx/internal/lexer/token"
)

type ReturnStatement struct {
	Pos        token.Pos
	Expression Node // nil for a bare return
}

func (ret *ReturnStatement) String() string {
	return fmt.Sprintf("RETURN: %v", ret.Expression)
}
func (ret *ReturnStatement) Position() token.Pos { return ret.Pos }
func (ret *ReturnStatement) astNode()            {}

func (ret *ReturnStatement) Clone() Node {
	return &ReturnStatement{Pos: ret.Pos, Expression: cloneNode(ret.Expression)}
}

type IfStatement struct {
	Pos        token.Pos
	Condition  Node
	ThenBranch []Node
	ElseBranch []Node
}

func (ifStmt *IfStatement) String() string {
	return fmt.Sprintf("IF: %v THEN %v ELSE %v", ifStmt.Condition, ifStmt.ThenBranch, ifStmt.ElseBranch)
}
func (ifStmt *IfStatement) Position() token.Pos { return ifStmt.Pos }
func (ifStmt *IfStatement) astNode()            {}

func (ifStmt *IfStatement) Clone() Node {
	return &IfStatement{
		Pos:        ifStmt.Pos,
		Condition:  cloneNode(ifStmt.Condition),
		ThenBranch: cloneNodes(ifStmt.ThenBranch),
		ElseBranch: cloneNodes(ifStmt.ElseBranch),
	}
}
