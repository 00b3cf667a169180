// Package modules is the registry behind qualified calls: the set of
// imported module paths, host functions supplied by the interpreter and
// user functions declared in source.
package modules

import (
	"sort"
	"strings"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/scope"
)

const STD_PREFIX = "std."

// HostFunc is a built-in callable. It receives already evaluated arguments.
type HostFunc func(args []string) string

type UserFunction struct {
	Params     []ast.Param
	ReturnType string
	// Owned copy of the declaration, independent from the parsed tree.
	Decl *ast.Function
}

// Evaluator is the part of the interpreter a user function call needs.
type Evaluator interface {
	// EvalValue evaluates an expression in the current scope.
	EvalValue(node ast.Node) string
	// ExecBody runs statements in order and returns the function result.
	ExecBody(body []ast.Node) string
	Symbols() *scope.SymbolTable
}

type Manager struct {
	imported map[string]bool
	host     map[string]map[string]HostFunc
	user     map[string]map[string]*UserFunction
}

func New() *Manager {
	return &Manager{
		imported: make(map[string]bool),
		host:     make(map[string]map[string]HostFunc),
		user:     make(map[string]map[string]*UserFunction),
	}
}

// RegisterModule marks path, and its last segment, as imported.
func (manager *Manager) RegisterModule(path string) {
	manager.imported[path] = true
	manager.imported[LastSegment(path)] = true
}

func (manager *Manager) IsModuleImported(path string) bool {
	return manager.imported[path]
}

// ImportedModules lists every imported path, sorted.
func (manager *Manager) ImportedModules() []string {
	paths := make([]string, 0, len(manager.imported))
	for path := range manager.imported {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (manager *Manager) RegisterFunction(module, name string, fn HostFunc) {
	functions, ok := manager.host[module]
	if !ok {
		functions = make(map[string]HostFunc)
		manager.host[module] = functions
	}
	functions[name] = fn
}

// RegisterUserFunction stores a clone of decl, so later changes to the
// parsed tree do not affect what gets executed.
func (manager *Manager) RegisterUserFunction(module, name string, params []ast.Param, returnType string, decl *ast.Function) {
	functions, ok := manager.user[module]
	if !ok {
		functions = make(map[string]*UserFunction)
		manager.user[module] = functions
	}
	functions[name] = &UserFunction{
		Params:     append([]ast.Param(nil), params...),
		ReturnType: returnType,
		Decl:       decl.Clone().(*ast.Function),
	}
}

func (manager *Manager) HasFunction(qualified string) bool {
	module, name, ok := SplitQualified(qualified)
	if !ok {
		return false
	}
	if manager.lookupHost(module, name) != nil {
		return true
	}
	return manager.lookupUser(module, name) != nil
}

func (manager *Manager) UserFunction(qualified string) (*UserFunction, bool) {
	module, name, ok := SplitQualified(qualified)
	if !ok {
		return nil, false
	}
	fn := manager.lookupUser(module, name)
	return fn, fn != nil
}

// CallFunction invokes a host or user function. Arguments are evaluated in
// the caller's scope, left to right, before anything else happens. The
// boolean is false when no function matches, in which case the result is
// empty.
func (manager *Manager) CallFunction(qualified string, args []ast.Node, ev Evaluator) (string, bool) {
	module, name, ok := SplitQualified(qualified)
	if !ok {
		return "", false
	}

	host := manager.lookupHost(module, name)
	user := manager.lookupUser(module, name)
	if host == nil && user == nil {
		return "", false
	}

	values := make([]string, len(args))
	for i, arg := range args {
		values[i] = ev.EvalValue(arg)
	}

	if host != nil {
		return host(values), true
	}
	return manager.invoke(user, values, ev), true
}

func (manager *Manager) invoke(fn *UserFunction, values []string, ev Evaluator) string {
	symbols := ev.Symbols()
	symbols.PushScope()
	defer symbols.PopScope()

	n := min(len(fn.Params), len(values))
	for i := 0; i < n; i++ {
		symbols.Set(fn.Params[i].Name, values[i])
	}
	return ev.ExecBody(fn.Decl.Body)
}

func (manager *Manager) lookupHost(module, name string) HostFunc {
	if functions, ok := manager.host[STD_PREFIX+module]; ok {
		if fn, ok := functions[name]; ok {
			return fn
		}
	}
	if functions, ok := manager.host[module]; ok {
		if fn, ok := functions[name]; ok {
			return fn
		}
	}
	return nil
}

func (manager *Manager) lookupUser(module, name string) *UserFunction {
	if functions, ok := manager.user[module]; ok {
		return functions[name]
	}
	return nil
}

// SplitQualified splits "a.b.f" into ("a.b", "f"). Names without a dot do
// not address any function.
func SplitQualified(qualified string) (module, name string, ok bool) {
	i := strings.LastIndexByte(qualified, '.')
	if i <= 0 || i == len(qualified)-1 {
		return "", "", false
	}
	return qualified[:i], qualified[i+1:], true
}

func LastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
