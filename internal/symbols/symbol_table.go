package symbols

import (
	"github.com/ucodekit/ucls/internal/typesystem"
)

// Kind classifies a symbol.
type Kind int

const (
	VariableSymbol Kind = iota
	FunctionSymbol
	ParameterSymbol
	BuiltinSymbol
	ImportedSymbol
	ModuleSymbol
)

func (k Kind) String() string {
	switch k {
	case FunctionSymbol:
		return "function"
	case ParameterSymbol:
		return "parameter"
	case BuiltinSymbol:
		return "builtin"
	case ImportedSymbol:
		return "imported"
	case ModuleSymbol:
		return "module"
	default:
		return "variable"
	}
}

// Symbol is one declared name. DeclaredType is fixed at declaration but may
// be refined later through UpdateSymbolType (e.g. when a reassignment proves
// a module-handle type). Narrowed state is kept alongside the base type with
// its effective-from position so position-aware lookups stay correct
// regardless of traversal order.
type Symbol struct {
	Name         string
	Kind         Kind
	DeclaredType typesystem.Type

	NarrowedType typesystem.Type // nil when no narrowing is in effect
	NarrowedFrom int             // offset the narrowing became effective at

	ScopeID    int
	DeclaredAt int
	UsedAt     []int
	Used       bool

	ImportedFrom    string // module name for imported symbols
	ImportSpecifier string // exported name in the source module

	// PropertyTypes records per-property types for object-valued symbols
	// whose shape the analyzer has learned (currently module namespaces).
	PropertyTypes map[string]typesystem.Type
}

// EffectiveType returns the narrowed type when set, else the declared type.
func (s *Symbol) EffectiveType() typesystem.Type {
	if s.NarrowedType != nil {
		return s.NarrowedType
	}
	return s.DeclaredType
}

// EffectiveTypeAt returns the type in effect at pos: the narrowed type once
// pos reaches the offset the narrowing took effect, else the declared type.
// Reads that precede the refining assignment keep the declared type no
// matter what order the tree was traversed in.
func (s *Symbol) EffectiveTypeAt(pos int) typesystem.Type {
	if s.NarrowedType != nil && pos >= s.NarrowedFrom {
		return s.NarrowedType
	}
	return s.DeclaredType
}

type scope struct {
	id      int
	symbols map[string]*Symbol
	order   []string // declaration order, for deterministic iteration
}

func newScope(id int) *scope {
	return &scope{id: id, symbols: make(map[string]*Symbol)}
}

// SymbolTable owns the scope stack. Scope 0 is the permanent global scope,
// seeded with builtins at construction; it is never popped. The table never
// errors: Declare returning false is the only redeclaration signal, and
// callers turn that into a diagnostic.
type SymbolTable struct {
	scopes []*scope
	nextID int
}

// New creates a table with the permanent global scope already open.
func New() *SymbolTable {
	st := &SymbolTable{}
	st.scopes = append(st.scopes, newScope(0))
	st.nextID = 1
	return st
}

func (st *SymbolTable) current() *scope {
	return st.scopes[len(st.scopes)-1]
}

func (st *SymbolTable) global() *scope {
	return st.scopes[0]
}

// EnterScope pushes a fresh innermost scope.
func (st *SymbolTable) EnterScope() {
	st.scopes = append(st.scopes, newScope(st.nextID))
	st.nextID++
}

// ExitScope pops the innermost scope. Popping the global scope is a no-op.
func (st *SymbolTable) ExitScope() {
	if len(st.scopes) <= 1 {
		return
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Depth returns the number of open scopes, global included.
func (st *SymbolTable) Depth() int { return len(st.scopes) }

// Declare inserts a symbol into the innermost scope. It fails without
// mutation iff the name already exists in that scope; existence in outer
// scopes is ordinary shadowing and does not block the declaration.
func (st *SymbolTable) Declare(name string, kind Kind, typ typesystem.Type, declaredAt int) bool {
	sc := st.current()
	if _, exists := sc.symbols[name]; exists {
		return false
	}
	sc.symbols[name] = &Symbol{
		Name:         name,
		Kind:         kind,
		DeclaredType: typ,
		ScopeID:      sc.id,
		DeclaredAt:   declaredAt,
	}
	sc.order = append(sc.order, name)
	return true
}

// Lookup resolves a name innermost-to-outermost; first match wins.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupAtPosition is Lookup restricted to symbols declared at or before
// pos. Builtins (declaredAt 0 in the global scope) always qualify.
func (st *SymbolTable) LookupAtPosition(name string, pos int) *Symbol {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].symbols[name]; ok && sym.DeclaredAt <= pos {
			return sym
		}
	}
	return nil
}

// CheckShadowing scans every scope except the innermost. A non-nil result
// means a new declaration of name would shadow it; that is a warning for
// the caller, never an error.
func (st *SymbolTable) CheckShadowing(name string) *Symbol {
	for i := len(st.scopes) - 2; i >= 0; i-- {
		if sym, ok := st.scopes[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// MarkUsed marks every symbol with this name across all scopes as used and
// records the use site. Over-marking is intentional: force-global
// publication can leave the same logical variable in two scope entries, and
// a use through either must suppress the unused-variable warning for both.
func (st *SymbolTable) MarkUsed(name string, pos int) {
	for _, sc := range st.scopes {
		if sym, ok := sc.symbols[name]; ok {
			sym.Used = true
			sym.UsedAt = append(sym.UsedAt, pos)
		}
	}
}

// UpdateSymbolType rewrites the declared type on the nearest symbol with
// this name. Used for flow-driven re-typing after reassignment.
func (st *SymbolTable) UpdateSymbolType(name string, typ typesystem.Type) bool {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].symbols[name]; ok {
			sym.DeclaredType = typ
			return true
		}
	}
	return false
}

// SetNarrowed records a narrowed type effective from the given position on
// the nearest symbol with this name. A nil type clears the narrowing.
func (st *SymbolTable) SetNarrowed(name string, typ typesystem.Type, from int) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].symbols[name]; ok {
			sym.NarrowedType = typ
			sym.NarrowedFrom = from
			return
		}
	}
}

// ForceGlobalDeclaration idempotently publishes a symbol into the global
// scope carrying the given type. When the name already exists elsewhere the
// original declaration position and usage history are preserved, so tooling
// that indexes only the global scope (completion) still sees variables
// declared in nested scopes without perturbing unused-variable tracking.
func (st *SymbolTable) ForceGlobalDeclaration(name string, kind Kind, typ typesystem.Type) {
	g := st.global()
	if sym, ok := g.symbols[name]; ok {
		sym.DeclaredType = typ
		sym.Kind = kind
		return
	}
	published := &Symbol{
		Name:         name,
		Kind:         kind,
		DeclaredType: typ,
		ScopeID:      0,
	}
	if orig := st.Lookup(name); orig != nil {
		published.DeclaredAt = orig.DeclaredAt
		published.UsedAt = append([]int(nil), orig.UsedAt...)
		published.Used = orig.Used
	}
	g.symbols[name] = published
	g.order = append(g.order, name)
}

// UnusedVariables returns every non-builtin symbol that was never used,
// in scope order then declaration order.
func (st *SymbolTable) UnusedVariables() []*Symbol {
	var out []*Symbol
	for _, sc := range st.scopes {
		for _, name := range sc.order {
			sym := sc.symbols[name]
			if sym.Used || sym.Kind == BuiltinSymbol {
				continue
			}
			out = append(out, sym)
		}
	}
	return out
}

// CurrentSymbols returns the symbols of the innermost scope in declaration
// order. Callers harvest them (for unused reporting) just before ExitScope.
func (st *SymbolTable) CurrentSymbols() []*Symbol {
	sc := st.current()
	out := make([]*Symbol, 0, len(sc.order))
	for _, name := range sc.order {
		out = append(out, sc.symbols[name])
	}
	return out
}

// GlobalSymbols returns the symbols of the permanent global scope in
// declaration order. Completion indexes only this scope.
func (st *SymbolTable) GlobalSymbols() []*Symbol {
	g := st.global()
	out := make([]*Symbol, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.symbols[name])
	}
	return out
}

// AllSymbols returns every symbol currently held by any open scope.
func (st *SymbolTable) AllSymbols() []*Symbol {
	var out []*Symbol
	for _, sc := range st.scopes {
		for _, name := range sc.order {
			out = append(out, sc.symbols[name])
		}
	}
	return out
}
