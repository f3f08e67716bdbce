package main

// Variable is a declared variable with its type and stack slot.
type Variable struct {
	Name   string
	Type   *SlateType
	Offset int // positive offset below rbp, in bytes
}

// Namespace maps declared variable names to their types and stack slots.
// Expression parsing only ever calls Lookup; Define is reserved for the
// statement layer.
type Namespace struct {
	vars  map[string]*Variable
	order []*Variable
}

func NewNamespace() *Namespace {
	return &Namespace{vars: make(map[string]*Variable)}
}

// Lookup returns the variable declared under name, if any.
func (ns *Namespace) Lookup(name string) (*Variable, bool) {
	v, ok := ns.vars[name]
	return v, ok
}

// Define declares a new variable and assigns it the next stack slot.
// Redeclaration is an error.
func (ns *Namespace) Define(name string, typ *SlateType, loc SourceLocation) (*Variable, error) {
	if _, exists := ns.vars[name]; exists {
		return nil, DuplicateVariableError(name, loc)
	}
	v := &Variable{
		Name:   name,
		Type:   typ,
		Offset: StackSlotSize * (len(ns.order) + 1),
	}
	ns.vars[name] = v
	ns.order = append(ns.order, v)
	return v, nil
}

// Len returns the number of declared variables.
func (ns *Namespace) Len() int {
	return len(ns.order)
}

// FrameSize returns the stack frame size needed for all declared
// variables, rounded up to the x86-64 ABI alignment.
func (ns *Namespace) FrameSize() int {
	size := StackSlotSize * len(ns.order)
	if rem := size % StackAlignment; rem != 0 {
		size += StackAlignment - rem
	}
	return size
}
