package scope

// SymbolTable holds the runtime variables of one interpreter: a globals
// frame plus a stack of frames, one per active function call.
//
// Every frame on the stack has the globals as parent, and Get searches the
// whole stack from the top down before the globals, so a callee sees the
// variables of its callers.
type SymbolTable struct {
	globals *Scope[string]
	frames  []*Scope[string]

	pushes int
	pops   int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{globals: New[string](nil)}
}

func (table *SymbolTable) PushScope() {
	table.frames = append(table.frames, New(table.globals))
	table.pushes++
}

// PopScope drops the innermost frame. Popping an empty stack does nothing.
func (table *SymbolTable) PopScope() {
	if len(table.frames) == 0 {
		return
	}
	table.frames[len(table.frames)-1] = nil
	table.frames = table.frames[:len(table.frames)-1]
	table.pops++
}

// Set writes into the innermost frame, or into the globals when no frame
// is active.
func (table *SymbolTable) Set(name, value string) {
	if len(table.frames) == 0 {
		table.globals.Set(name, value)
		return
	}
	table.frames[len(table.frames)-1].Set(name, value)
}

// Get returns the innermost binding of name. The empty string means the
// name is unbound.
func (table *SymbolTable) Get(name string) string {
	for i := len(table.frames) - 1; i >= 0; i-- {
		if value, ok := table.frames[i].Nodes[name]; ok {
			return value
		}
	}
	value, err := table.globals.Lookup(name)
	if err != nil {
		return ""
	}
	return value
}

func (table *SymbolTable) Depth() int { return len(table.frames) }

// Balance returns the number of pushes and pops performed so far.
func (table *SymbolTable) Balance() (pushes, pops int) {
	return table.pushes, table.pops
}
