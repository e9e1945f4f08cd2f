package modules

import (
	"sort"

	"github.com/ucodekit/ucls/internal/typesystem"
)

// Module is one importable standard module: its exported functions and, for
// factory functions, the handle types they produce.
type Module struct {
	Name      string
	Functions map[string]typesystem.Signature
}

// Registry holds the static signature tables for the standard modules and
// the method tables of the opaque handle types they hand out. It is built
// once, injected by reference and read-only afterwards, so a single
// instance is safe to share across concurrently analyzed documents.
type Registry struct {
	modules map[string]*Module
	handles map[string]map[string]typesystem.Signature
}

// NewRegistry builds the registry with every standard module installed.
func NewRegistry() *Registry {
	r := &Registry{
		modules: make(map[string]*Module),
		handles: make(map[string]map[string]typesystem.Signature),
	}
	r.registerFs()
	r.registerUloop()
	r.registerSocket()
	r.registerStruct()
	r.registerLog()
	r.registerDebug()
	r.registerMath()
	return r
}

func (r *Registry) register(m *Module) {
	r.modules[m.Name] = m
}

func (r *Registry) registerHandle(name string, methods map[string]typesystem.Signature) {
	r.handles[name] = methods
}

// IsModule reports whether name is a known standard module.
func (r *Registry) IsModule(name string) bool {
	_, ok := r.modules[name]
	return ok
}

// IsValidImport reports whether the module exports the given name.
func (r *Registry) IsValidImport(module, name string) bool {
	m, ok := r.modules[module]
	if !ok {
		return false
	}
	_, ok = m.Functions[name]
	return ok
}

// ValidImports returns the sorted export list of a module, nil when the
// module is unknown.
func (r *Registry) ValidImports(module string) []string {
	m, ok := r.modules[module]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FunctionSignature looks up an exported function's signature.
func (r *Registry) FunctionSignature(module, name string) (typesystem.Signature, bool) {
	m, ok := r.modules[module]
	if !ok {
		return typesystem.Signature{}, false
	}
	sig, ok := m.Functions[name]
	return sig, ok
}

// HandleMethod looks up a method on an opaque handle type such as "fs.file".
func (r *Registry) HandleMethod(handleType, method string) (typesystem.Signature, bool) {
	methods, ok := r.handles[handleType]
	if !ok {
		return typesystem.Signature{}, false
	}
	sig, ok := methods[method]
	return sig, ok
}

// IsHandleType reports whether the name identifies a known handle type.
func (r *Registry) IsHandleType(name string) bool {
	_, ok := r.handles[name]
	return ok
}

// HandleMethods returns the sorted method list for a handle type.
func (r *Registry) HandleMethods(handleType string) []string {
	methods, ok := r.handles[handleType]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(methods))
	for name := range methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ModuleNames returns the sorted list of registered modules.
func (r *Registry) ModuleNames() []string {
	out := make([]string, 0, len(r.modules))
	for name := range r.modules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
