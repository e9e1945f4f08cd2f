package typesystem

import (
	"sort"
	"strings"
)

// Type is the interface for all value types in the system: scalar tags,
// unions of scalar tags, and module handle types.
type Type interface {
	String() string
	// Expand returns the scalar members of the type. Scalars expand to a
	// singleton, unions to their members, module handles to object.
	Expand() []DataType
}

// DataType is a scalar value tag.
type DataType int

const (
	Unknown DataType = iota
	Integer
	Double
	String
	Boolean
	Array
	Object
	Function
	Regex
	Null
)

var dataTypeNames = map[DataType]string{
	Unknown:  "unknown",
	Integer:  "integer",
	Double:   "double",
	String:   "string",
	Boolean:  "boolean",
	Array:    "array",
	Object:   "object",
	Function: "function",
	Regex:    "regex",
	Null:     "null",
}

func (d DataType) String() string {
	if n, ok := dataTypeNames[d]; ok {
		return n
	}
	return "unknown"
}

func (d DataType) Expand() []DataType { return []DataType{d} }

// typeTags maps the strings returned by the language's type() builtin to
// scalar tags. These are the only recognized tag-guard operands.
var typeTags = map[string]DataType{
	"int":      Integer,
	"double":   Double,
	"string":   String,
	"bool":     Boolean,
	"array":    Array,
	"object":   Object,
	"function": Function,
	"regexp":   Regex,
	"null":     Null,
}

// FromTag resolves a type() tag string ("int", "bool", ...) to a scalar tag.
func FromTag(tag string) (DataType, bool) {
	d, ok := typeTags[tag]
	return d, ok
}

// Tag returns the type() tag string for a scalar.
func Tag(d DataType) string {
	for tag, dt := range typeTags {
		if dt == d {
			return tag
		}
	}
	return "null"
}

// UnionType is an ordered-deduplicated set of scalar tags. Construct only
// through Union, which flattens and normalizes; a UnionType value always has
// at least two members.
type UnionType struct {
	Types []DataType
}

func (u UnionType) String() string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

func (u UnionType) Expand() []DataType {
	out := make([]DataType, len(u.Types))
	copy(out, u.Types)
	return out
}

// ModuleType is an opaque object handle tagged with a module-specific name,
// e.g. "fs.file". Its valid members come from the module registry.
type ModuleType struct {
	Name string
}

func (m ModuleType) String() string     { return m.Name }
func (m ModuleType) Expand() []DataType { return []DataType{Object} }

// NullableModule is a module handle that may be null, the return convention
// of every factory function (open may fail). Kept as its own type so the
// handle name survives union display and null stripping; a plain Union
// would flatten the handle to object.
type NullableModule struct {
	Handle ModuleType
}

func (n NullableModule) String() string     { return n.Handle.Name + " | null" }
func (n NullableModule) Expand() []DataType { return []DataType{Object, Null} }

// HandleOf extracts the module-handle name carried by t, if any.
func HandleOf(t Type) (string, bool) {
	switch v := t.(type) {
	case ModuleType:
		return v.Name, true
	case NullableModule:
		return v.Handle.Name, true
	}
	return "", false
}

// Union constructs the normalized union of the given types. Nested unions
// flatten, duplicates collapse, a single remaining member is returned as the
// scalar itself and an empty input yields unknown. Members are kept sorted
// by display name for deterministic output.
func Union(types ...Type) Type {
	seen := make(map[DataType]bool)
	members := []DataType{}
	for _, t := range types {
		if t == nil {
			continue
		}
		for _, d := range t.Expand() {
			if d == Unknown {
				// The absorbing element: anything joined with unknown
				// is unknown.
				return Unknown
			}
			if !seen[d] {
				seen[d] = true
				members = append(members, d)
			}
		}
	}
	if len(members) == 0 {
		return Unknown
	}
	if len(members) == 1 {
		return members[0]
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].String() < members[j].String()
	})
	return UnionType{Types: members}
}

// TypesOf expands a type to its scalar members.
func TypesOf(t Type) []DataType {
	if t == nil {
		return []DataType{Unknown}
	}
	return t.Expand()
}

// IsSubtype reports whether a value of type a is acceptable where b is
// expected. unknown absorbs in both directions, and integer widens to
// double implicitly; everything else is member-wise inclusion.
func IsSubtype(a, b Type) bool {
	if a == nil || b == nil {
		return true
	}
	as, bs := a.Expand(), b.Expand()
	bset := make(map[DataType]bool, len(bs))
	for _, d := range bs {
		if d == Unknown {
			return true
		}
		bset[d] = true
	}
	for _, d := range as {
		if d == Unknown {
			continue
		}
		if bset[d] {
			continue
		}
		if d == Integer && bset[Double] {
			continue
		}
		return false
	}
	return true
}

// Describe renders a type for display ("a | b | c").
func Describe(t Type) string {
	if t == nil {
		return Unknown.String()
	}
	return t.String()
}

// Includes reports whether the expansion of t contains the scalar d.
func Includes(t Type, d DataType) bool {
	for _, m := range TypesOf(t) {
		if m == d {
			return true
		}
	}
	return false
}

// StripNull removes null from the expansion of t. Module handles keep their
// identity; stripping the last member leaves unknown, never an empty union.
func StripNull(t Type) Type {
	switch v := t.(type) {
	case ModuleType:
		return v
	case NullableModule:
		return v.Handle
	}
	members := []Type{}
	for _, d := range TypesOf(t) {
		if d != Null {
			members = append(members, d)
		}
	}
	return Union(members...)
}

// IsNumeric reports whether every member of t is integer or double.
func IsNumeric(t Type) bool {
	for _, d := range TypesOf(t) {
		if d != Integer && d != Double && d != Unknown {
			return false
		}
	}
	return true
}
