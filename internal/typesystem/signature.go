package typesystem

// Signature describes a callable: positional expected types, the number of
// required leading parameters, variadic tail acceptance and the return
// type. Builtin and module function tables share this shape.
type Signature struct {
	Params   []Type
	Required int
	Variadic bool
	Return   Type
}

// MaxParams returns the maximum accepted argument count, or -1 when the
// signature is variadic.
func (s Signature) MaxParams() int {
	if s.Variadic {
		return -1
	}
	return len(s.Params)
}

// ParamAt returns the expected type at position i. For variadic signatures
// extra positions repeat the last declared parameter type; with no declared
// parameters the expectation is unknown.
func (s Signature) ParamAt(i int) Type {
	if i < len(s.Params) {
		return s.Params[i]
	}
	if s.Variadic && len(s.Params) > 0 {
		return s.Params[len(s.Params)-1]
	}
	return Unknown
}
