package scope

import (
	"errors"
	"fmt"
)

var (
	ErrSymbolNotFoundOnScope = errors.New("symbol not found on scope")
)

// Scope is one frame of name bindings. Lookups fall back to the parent.
type Scope[V any] struct {
	Parent *Scope[V]
	Nodes  map[string]V
}

func New[V any](parent *Scope[V]) *Scope[V] {
	return &Scope[V]{Parent: parent, Nodes: map[string]V{}}
}

// Set binds name in this frame, replacing an existing binding.
func (scope *Scope[V]) Set(name string, element V) {
	scope.Nodes[name] = element
}

func (scope *Scope[V]) Lookup(name string) (V, error) {
	if node, ok := scope.Nodes[name]; ok {
		return node, nil
	}
	if scope.Parent == nil {
		var empty V
		return empty, fmt.Errorf("%w: %s", ErrSymbolNotFoundOnScope, name)
	}
	return scope.Parent.Lookup(name)
}

func (scope Scope[V]) String() string {
	return fmt.Sprintf("Scope:\nParent: %v\nCurrent: %v\n", scope.Parent, scope.Nodes)
}
