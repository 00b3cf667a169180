package ast

import (
	"fmt"

	"github.com/nx-lang/nx/internal/lexer/token"
)

type Module struct {
	Pos  token.Pos
	Name string
	// Import paths in source order. Imports are not part of Body, they only
	// feed the module registry, but the printer needs them back.
	Imports []string
	Body    []Node
}

func (module *Module) String() string {
	return fmt.Sprintf("MODULE: %s %v", module.Name, module.Body)
}
func (module *Module) Position() token.Pos { return module.Pos }
func (module *Module) astNode()            {}

func (module *Module) Clone() Node {
	var imports []string
	if module.Imports != nil {
		imports = append([]string(nil), module.Imports...)
	}
	return &Module{
		Pos:     module.Pos,
		Name:    module.Name,
		Imports: imports,
		Body:    cloneNodes(module.Body),
	}
}

// Modules returns the direct children that are modules themselves.
func (module *Module) Modules() []*Module {
	var modules []*Module
	for _, child := range module.Body {
		if m, ok := child.(*Module); ok {
			modules = append(modules, m)
		}
	}
	return modules
}

type Function struct {
	Pos        token.Pos
	Name       string
	Params     []Param
	ReturnType string
	Body       []Node
}

func (fn *Function) String() string {
	return fmt.Sprintf("FUNC: %s(%v) -> %s", fn.Name, fn.Params, fn.ReturnType)
}
func (fn *Function) Position() token.Pos { return fn.Pos }
func (fn *Function) astNode()            {}

func (fn *Function) Clone() Node {
	var params []Param
	if fn.Params != nil {
		params = append([]Param(nil), fn.Params...)
	}
	return &Function{
		Pos:        fn.Pos,
		Name:       fn.Name,
		Params:     params,
		ReturnType: fn.ReturnType,
		Body:       cloneNodes(fn.Body),
	}
}

type VariableDeclaration struct {
	Pos         token.Pos
	Name        string
	TypeName    string // empty when not annotated
	Initializer Node   // nil when absent
	IsMutable   bool   // var, as opposed to let
}

func (variable *VariableDeclaration) String() string {
	return fmt.Sprintf("Variable: %s %s %v", variable.Name, variable.TypeName, variable.Initializer)
}
func (variable *VariableDeclaration) Position() token.Pos { return variable.Pos }
func (variable *VariableDeclaration) astNode()            {}

func (variable *VariableDeclaration) Clone() Node {
	return &VariableDeclaration{
		Pos:         variable.Pos,
		Name:        variable.Name,
		TypeName:    variable.TypeName,
		Initializer: cloneNode(variable.Initializer),
		IsMutable:   variable.IsMutable,
	}
}
