package checker

import (
	"github.com/ucodekit/ucls/internal/ast"
	"github.com/ucodekit/ucls/internal/builtins"
	"github.com/ucodekit/ucls/internal/diagnostics"
	"github.com/ucodekit/ucls/internal/modules"
	"github.com/ucodekit/ucls/internal/narrowing"
	"github.com/ucodekit/ucls/internal/symbols"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// Checker infers expression types and validates calls, member accesses and
// assignments. It never throws: every finding is accumulated as a
// diagnostic and inference continues with unknown, so one mistake yields
// one diagnostic instead of a cascade.
type Checker struct {
	table    *symbols.SymbolTable
	registry *modules.Registry
	program  *ast.Program

	// guards is the active narrowing stack. The analyzer pushes a frame
	// when it descends into a guarded branch and pops it on exit; lookups
	// hit the stack before falling back to the position-based engine.
	guards []narrowing.Context

	// funcs holds the signatures of user-declared functions. Return types
	// start as unknown and are refined once a body has been fully visited,
	// so recursive calls stay compatible instead of erroring.
	funcs map[string]ts.Signature

	errors  []diagnostics.Diagnostic
	typeMap map[ast.Node]ts.Type
}

// New builds a checker over one document's symbol table and AST. The
// registry is shared and read-only.
func New(table *symbols.SymbolTable, registry *modules.Registry, program *ast.Program) *Checker {
	return &Checker{
		table:    table,
		registry: registry,
		program:  program,
		funcs:    make(map[string]ts.Signature),
		typeMap:  make(map[ast.Node]ts.Type),
	}
}

// Errors returns the diagnostics accumulated since the last reset.
func (c *Checker) Errors() []diagnostics.Diagnostic { return c.errors }

// ResetErrors clears all accumulated diagnostics. Analysis passes must be
// idempotent; a fresh pass starts from a clean slate.
func (c *Checker) ResetErrors() { c.errors = nil }

// TypeMap exposes the per-node inferred types for hover tooling.
func (c *Checker) TypeMap() map[ast.Node]ts.Type { return c.typeMap }

func (c *Checker) addError(code diagnostics.Code, start, end int, format string, args ...any) {
	c.errors = append(c.errors, diagnostics.New(code, start, end, format, args...))
}

func (c *Checker) addWarning(code diagnostics.Code, start, end int, format string, args ...any) {
	c.errors = append(c.errors, diagnostics.Warn(code, start, end, format, args...))
}

func (c *Checker) addWithData(d diagnostics.Diagnostic, data any) {
	d.Data = data
	c.errors = append(c.errors, d)
}

// PushGuard activates a narrowing frame; PopGuard deactivates the newest.
// Strict stack discipline: the analyzer pops exactly what it pushed when it
// leaves the branch.
func (c *Checker) PushGuard(ctx narrowing.Context) {
	c.guards = append(c.guards, ctx)
}

func (c *Checker) PopGuard() {
	if len(c.guards) > 0 {
		c.guards = c.guards[:len(c.guards)-1]
	}
}

func (c *Checker) activeGuard(name string, pos int) (ts.Type, bool) {
	for i := len(c.guards) - 1; i >= 0; i-- {
		g := c.guards[i]
		if g.Variable == name && g.Start <= pos && pos < g.End {
			return g.Type, true
		}
	}
	return nil, false
}

// DeclareFunction registers a user function's signature with an unknown
// return placeholder.
func (c *Checker) DeclareFunction(name string, sig ts.Signature) {
	c.funcs[name] = sig
}

// SetFunctionReturn refines the return type after the body was visited.
func (c *Checker) SetFunctionReturn(name string, ret ts.Type) {
	sig, ok := c.funcs[name]
	if !ok {
		sig = ts.Signature{Variadic: true}
	}
	sig.Return = ret
	c.funcs[name] = sig
}

// FunctionSignatureOf returns a user function's signature, if declared.
func (c *Checker) FunctionSignatureOf(name string) (ts.Signature, bool) {
	sig, ok := c.funcs[name]
	return sig, ok
}

func (c *Checker) record(node ast.Node, t ts.Type) ts.Type {
	if t == nil {
		t = ts.Unknown
	}
	c.typeMap[node] = t
	return t
}

// CheckNode infers the type of an expression, emitting diagnostics for
// anything statically wrong underneath it.
func (c *Checker) CheckNode(node ast.Node) ts.Type {
	switch n := node.(type) {
	case nil:
		return ts.Unknown
	case *ast.IntegerLiteral:
		return c.record(n, ts.Integer)
	case *ast.DoubleLiteral:
		return c.record(n, ts.Double)
	case *ast.StringLiteral:
		return c.record(n, ts.String)
	case *ast.BooleanLiteral:
		return c.record(n, ts.Boolean)
	case *ast.NullLiteral:
		return c.record(n, ts.Null)
	case *ast.RegexLiteral:
		return c.record(n, ts.Regex)
	case *ast.Identifier:
		return c.record(n, c.identifierType(n))
	case *ast.ArrayExpression:
		for _, el := range n.Elements {
			c.CheckNode(el)
		}
		return c.record(n, ts.Array)
	case *ast.ObjectExpression:
		for _, prop := range n.Properties {
			if prop.Computed {
				c.CheckNode(prop.Key)
			}
			c.CheckNode(prop.Value)
		}
		return c.record(n, ts.Object)
	case *ast.BinaryExpression:
		return c.record(n, c.binaryType(n))
	case *ast.UnaryExpression:
		return c.record(n, c.unaryType(n))
	case *ast.AssignmentExpression:
		return c.record(n, c.assignmentType(n))
	case *ast.CallExpression:
		return c.record(n, c.callType(n))
	case *ast.MemberExpression:
		return c.record(n, c.memberType(n))
	case *ast.ConditionalExpression:
		c.CheckNode(n.Test)
		return c.record(n, ts.Union(c.CheckNode(n.Consequent), c.CheckNode(n.Alternate)))
	case *ast.FunctionExpression:
		return c.record(n, ts.Function)
	case *ast.ArrowFunctionExpression:
		return c.record(n, ts.Function)
	}
	return ts.Unknown
}

// identifierType resolves an identifier through the symbol table and applies
// narrowing: active guard frames first, then the position-based engine,
// then the symbol's own effective type.
func (c *Checker) identifierType(id *ast.Identifier) ts.Type {
	sym := c.table.Lookup(id.Name)
	if sym == nil {
		c.addError(diagnostics.ErrUndefined, id.Pos(), id.End(), "Undefined variable '%s'", id.Name)
		return ts.Unknown
	}
	c.table.MarkUsed(id.Name, id.Pos())

	if t, ok := c.activeGuard(id.Name, id.Pos()); ok {
		return t
	}
	base := sym.EffectiveTypeAt(id.Pos())
	if c.program != nil {
		return narrowing.NarrowedTypeAt(c.program, id.Name, id.Pos(), base)
	}
	return base
}

func (c *Checker) binaryType(e *ast.BinaryExpression) ts.Type {
	if e.Operator == "in" {
		return c.inOperatorType(e)
	}

	lt := c.CheckNode(e.Left)
	rt := c.CheckNode(e.Right)

	switch e.Operator {
	case "+":
		if t, ok := arithmeticType(lt, rt); ok {
			return t
		}
		// Either string operand makes `+` concatenation; the other side
		// coerces at runtime.
		if isOnly(lt, ts.String) || isOnly(rt, ts.String) {
			return ts.String
		}
		return ts.Unknown
	case "-", "*", "/", "%":
		if t, ok := arithmeticType(lt, rt); ok {
			return t
		}
		// Dynamic coercions make arithmetic on odd operands legal at
		// runtime; stay permissive and lose precision instead of erroring.
		return ts.Unknown
	case "&", "|", "^", "<<", ">>":
		c.warnBitwise(e.Operator, lt, e.Left)
		c.warnBitwise(e.Operator, rt, e.Right)
		return ts.Integer
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=":
		return ts.Boolean
	case "&&":
		return ts.Union(lt, rt)
	case "||", "??":
		// The right operand is evaluated exactly when the left is
		// null/falsy, so the left's null member never flows out.
		if isOnly(lt, ts.Null) {
			return rt
		}
		return ts.Union(ts.StripNull(lt), rt)
	}
	return ts.Unknown
}

func (c *Checker) warnBitwise(op string, t ts.Type, node ast.Node) {
	for _, d := range ts.TypesOf(t) {
		switch d {
		case ts.Integer, ts.Boolean, ts.Unknown:
		default:
			c.addWarning(diagnostics.WarnBitwise, node.Pos(), node.End(),
				"Bitwise operator '%s' applied to %s value", op, ts.Describe(t))
			return
		}
	}
}

// arithmeticType widens numeric operands: any double makes the result
// double, unknown absorbs. ok is false when an operand is not numeric.
func arithmeticType(lt, rt ts.Type) (ts.Type, bool) {
	if !ts.IsNumeric(lt) || !ts.IsNumeric(rt) {
		return nil, false
	}
	if ts.Includes(lt, ts.Unknown) || ts.Includes(rt, ts.Unknown) {
		return ts.Unknown, true
	}
	if ts.Includes(lt, ts.Double) || ts.Includes(rt, ts.Double) {
		return ts.Double, true
	}
	return ts.Integer, true
}

// isOnly reports whether every member of t is the scalar d.
func isOnly(t ts.Type, d ts.DataType) bool {
	for _, m := range ts.TypesOf(t) {
		if m != d {
			return false
		}
	}
	return true
}

func (c *Checker) inOperatorType(e *ast.BinaryExpression) ts.Type {
	c.CheckNode(e.Left)
	rt := c.CheckNode(e.Right)

	if ts.Includes(rt, ts.Unknown) {
		return ts.Boolean
	}

	hasContainer := ts.Includes(rt, ts.Object) || ts.Includes(rt, ts.Array)
	hasNull := ts.Includes(rt, ts.Null)
	hasOther := false
	for _, d := range ts.TypesOf(rt) {
		if d != ts.Object && d != ts.Array && d != ts.Null {
			hasOther = true
		}
	}

	switch {
	case !hasContainer:
		c.addError(diagnostics.ErrInOperand, e.Right.Pos(), e.Right.End(),
			"Right operand of 'in' must be an array or object, got %s", ts.Describe(rt))
	case hasNull:
		d := diagnostics.New(diagnostics.ErrPossiblyNull, e.Right.Pos(), e.Right.End(),
			"Right operand of 'in' may be null (%s); guard it first", ts.Describe(rt))
		c.addWithData(d, c.quickFix(e.Right, "in"))
	case hasOther:
		c.addWarning(diagnostics.WarnInGuard, e.Right.Pos(), e.Right.End(),
			"Right operand of 'in' is %s; narrow it with a type guard", ts.Describe(rt))
	}
	return ts.Boolean
}

// quickFix builds the structured payload editor tooling uses to synthesize
// the missing guard. Nil when the operand is not a plain variable.
func (c *Checker) quickFix(expr ast.Expression, operator string) any {
	if id, ok := expr.(*ast.Identifier); ok {
		return diagnostics.QuickFixData{Variable: id.Name, Operator: operator}
	}
	return nil
}

func (c *Checker) unaryType(e *ast.UnaryExpression) ts.Type {
	t := c.CheckNode(e.Argument)
	switch e.Operator {
	case "!":
		return ts.Boolean
	case "-", "+":
		if at, ok := arithmeticType(t, ts.Integer); ok {
			return at
		}
		return ts.Unknown
	case "~":
		c.warnBitwise(e.Operator, t, e.Argument)
		return ts.Integer
	case "++", "--":
		if ts.Includes(t, ts.Double) {
			return ts.Double
		}
		if ts.IsNumeric(t) {
			return ts.Integer
		}
		return ts.Unknown
	case "delete":
		return ts.Boolean
	}
	return ts.Unknown
}

func (c *Checker) assignmentType(e *ast.AssignmentExpression) ts.Type {
	rt := c.CheckNode(e.Right)

	if e.Operator != "=" {
		// Compound assignment reads the target first.
		lt := c.CheckNode(e.Left)
		op := string(e.Operator[0])
		if t, ok := arithmeticType(lt, rt); ok {
			rt = t
		} else if op == "+" && isOnly(lt, ts.String) && isOnly(rt, ts.String) {
			rt = ts.String
		} else {
			rt = ts.Unknown
		}
		return rt
	}

	switch target := e.Left.(type) {
	case *ast.Identifier:
		sym := c.table.Lookup(target.Name)
		if sym == nil {
			c.addError(diagnostics.ErrUndefined, target.Pos(), target.End(),
				"Undefined variable '%s'", target.Name)
			return rt
		}
		c.retype(target.Name, sym, rt, target.Pos())
	case *ast.MemberExpression:
		c.CheckNode(target)
	}
	return rt
}

// retype applies the assignment typing rules to a symbol: module handles
// upgrade the symbol and publish it globally, unknown bases learn the new
// type, and provably incompatible writes warn without changing the base.
// Learned types are recorded as a narrowing effective from the assignment
// offset, not an in-place overwrite, so reads that precede the assignment
// keep seeing the declared type.
func (c *Checker) retype(name string, sym *symbols.Symbol, rt ts.Type, from int) {
	if _, ok := ts.HandleOf(rt); ok {
		c.table.UpdateSymbolType(name, rt)
		c.table.ForceGlobalDeclaration(name, sym.Kind, rt)
		return
	}
	if isOnly(sym.DeclaredType, ts.Unknown) || sym.DeclaredType == nil {
		c.table.SetNarrowed(name, rt, from)
		return
	}
	if !overlaps(rt, sym.DeclaredType) {
		c.addWarning(diagnostics.WarnAssignType, sym.DeclaredAt, sym.DeclaredAt+len(name),
			"Assigning %s to '%s' declared as %s", ts.Describe(rt), name, ts.Describe(sym.DeclaredType))
	}
}

// overlaps reports whether the two types share at least one possible
// runtime value. unknown overlaps everything; integer and double overlap
// through implicit widening.
func overlaps(a, b ts.Type) bool {
	for _, x := range ts.TypesOf(a) {
		if x == ts.Unknown {
			return true
		}
		for _, y := range ts.TypesOf(b) {
			if y == ts.Unknown || x == y {
				return true
			}
			if (x == ts.Integer && y == ts.Double) || (x == ts.Double && y == ts.Integer) {
				return true
			}
		}
	}
	return false
}

func (c *Checker) callType(call *ast.CallExpression) ts.Type {
	if mem, ok := call.Callee.(*ast.MemberExpression); ok {
		return c.memberCallType(call, mem)
	}

	id, ok := call.Callee.(*ast.Identifier)
	if !ok {
		// Computed callee: check it, require it to possibly be a function.
		t := c.CheckNode(call.Callee)
		c.checkArgsOnly(call)
		if ts.Includes(t, ts.Function) || ts.Includes(t, ts.Unknown) {
			return ts.Unknown
		}
		c.addError(diagnostics.ErrUndefinedFunc, call.Callee.Pos(), call.Callee.End(),
			"Expression of type %s is not callable", ts.Describe(t))
		return ts.Unknown
	}

	sym := c.table.Lookup(id.Name)
	if sym == nil {
		if sig, ok := builtins.Lookup(id.Name); ok {
			return c.validateCall(id.Name, sig, call)
		}
		c.addError(diagnostics.ErrUndefinedFunc, id.Pos(), id.End(),
			"Undefined function '%s'", id.Name)
		c.checkArgsOnly(call)
		return ts.Unknown
	}
	c.table.MarkUsed(id.Name, id.Pos())
	c.record(id, sym.EffectiveType())

	switch sym.Kind {
	case symbols.ImportedSymbol:
		if sig, ok := c.registry.FunctionSignature(sym.ImportedFrom, sym.ImportSpecifier); ok {
			return c.validateCall(id.Name, sig, call)
		}
	case symbols.FunctionSymbol:
		if sig, ok := c.funcs[id.Name]; ok {
			return c.validateCall(id.Name, sig, call)
		}
		c.checkArgsOnly(call)
		return ts.Unknown
	case symbols.BuiltinSymbol:
		if sig, ok := builtins.Lookup(id.Name); ok {
			return c.validateCall(id.Name, sig, call)
		}
		c.checkArgsOnly(call)
		return ts.Unknown
	case symbols.ModuleSymbol:
		c.addError(diagnostics.ErrUndefinedFunc, id.Pos(), id.End(),
			"'%s' is a module namespace, not a function", id.Name)
		c.checkArgsOnly(call)
		return ts.Unknown
	default:
		t := c.identifierType(id)
		if ts.Includes(t, ts.Function) || ts.Includes(t, ts.Unknown) {
			c.checkArgsOnly(call)
			return ts.Unknown
		}
	}

	c.addError(diagnostics.ErrUndefinedFunc, id.Pos(), id.End(),
		"Undefined function '%s'", id.Name)
	c.checkArgsOnly(call)
	return ts.Unknown
}

func (c *Checker) checkArgsOnly(call *ast.CallExpression) {
	for _, arg := range call.Arguments {
		c.CheckNode(arg)
	}
}

// argDescriptions overrides the expected-type wording for builtins whose
// generic rendering would be unhelpfully literal.
var argDescriptions = map[string]map[int]string{
	"length":    {0: "an array, object or string"},
	"substr":    {0: "a string"},
	"index":     {0: "an array or string"},
	"rindex":    {0: "an array or string"},
	"match":     {1: "a regular expression"},
	"split":     {1: "a string or regular expression"},
	"replace":   {1: "a string or regular expression", 2: "a function or string"},
	"localtime": {0: "an integer timestamp"},
	"gmtime":    {0: "an integer timestamp"},
}

// validateCall checks arity and positional argument compatibility against a
// signature, then yields its return type. Argument types only error when
// they share no possible runtime value with the expectation; unions that
// merely might be wrong pass silently.
func (c *Checker) validateCall(name string, sig ts.Signature, call *ast.CallExpression) ts.Type {
	argTypes := make([]ts.Type, len(call.Arguments))
	for i, arg := range call.Arguments {
		argTypes[i] = c.CheckNode(arg)
	}

	n := len(call.Arguments)
	if n < sig.Required {
		c.addError(diagnostics.ErrArity, call.Pos(), call.End(),
			"%s() expects at least %d arguments, got %d", name, sig.Required, n)
		return returnOf(sig)
	}
	if max := sig.MaxParams(); max >= 0 && n > max {
		c.addError(diagnostics.ErrArity, call.Pos(), call.End(),
			"%s() expects at most %d arguments, got %d", name, max, n)
		return returnOf(sig)
	}

	for i, at := range argTypes {
		want := sig.ParamAt(i)
		if want == nil || overlaps(at, want) {
			continue
		}
		desc := ts.Describe(want)
		if byPos, ok := argDescriptions[name]; ok {
			if d, ok := byPos[i]; ok {
				desc = d
			}
		}
		arg := call.Arguments[i]
		c.addError(diagnostics.ErrArgType, arg.Pos(), arg.End(),
			"%s() expects %s as argument %d, got %s", name, desc, i+1, ts.Describe(at))
	}
	return returnOf(sig)
}

func returnOf(sig ts.Signature) ts.Type {
	if sig.Return == nil {
		return ts.Unknown
	}
	return sig.Return
}

func (c *Checker) memberType(mem *ast.MemberExpression) ts.Type {
	objT := c.CheckNode(mem.Object)

	if mem.Computed {
		c.CheckNode(mem.Property)
		return ts.Unknown
	}
	prop, ok := mem.Property.(*ast.Identifier)
	if !ok {
		return ts.Unknown
	}

	// Namespace imports: fs.open is a module function, not a property.
	if sym := c.namespaceOf(mem.Object); sym != nil {
		if _, ok := c.registry.FunctionSignature(sym.ImportedFrom, prop.Name); ok {
			return ts.Function
		}
		c.addError(diagnostics.ErrUnknownMethod, prop.Pos(), prop.End(),
			"Module '%s' has no function '%s'", sym.ImportedFrom, prop.Name)
		return ts.Unknown
	}

	if handle, ok := ts.HandleOf(objT); ok {
		c.warnNullableAccess(mem, objT)
		if _, ok := c.registry.HandleMethod(handle, prop.Name); !ok {
			c.addError(diagnostics.ErrUnknownMethod, prop.Pos(), prop.End(),
				"Method '%s' does not exist on %s", prop.Name, handle)
			return ts.Unknown
		}
		return ts.Function
	}

	return c.plainMemberType(mem, objT, prop)
}

// plainMemberType applies the property rules for non-handle values: arrays,
// strings and regex values have no properties at all, plain objects are
// untyped maps, and nullable objects warn.
func (c *Checker) plainMemberType(mem *ast.MemberExpression, objT ts.Type, prop *ast.Identifier) ts.Type {
	if suggestion, bad := propertyLess(objT); bad {
		c.addError(diagnostics.ErrInvalidProperty, prop.Pos(), prop.End(),
			"%s values have no properties; %s", ts.Describe(objT), suggestion)
		return ts.Unknown
	}

	c.warnNullableAccess(mem, objT)

	if ts.Includes(objT, ts.Object) || ts.Includes(objT, ts.Unknown) {
		if id, ok := mem.Object.(*ast.Identifier); ok {
			if sym := c.table.Lookup(id.Name); sym != nil && sym.PropertyTypes != nil {
				if t, ok := sym.PropertyTypes[prop.Name]; ok {
					return t
				}
			}
		}
		return ts.Unknown
	}
	c.addError(diagnostics.ErrInvalidProperty, prop.Pos(), prop.End(),
		"Type %s has no properties", ts.Describe(objT))
	return ts.Unknown
}

// propertyLess reports whether every member of t is a type with no valid
// properties, with the builtin-function alternative to suggest.
func propertyLess(t ts.Type) (string, bool) {
	members := ts.TypesOf(t)
	allArray, allString, allRegex := true, true, true
	for _, d := range members {
		if d != ts.Array {
			allArray = false
		}
		if d != ts.String {
			allString = false
		}
		if d != ts.Regex {
			allRegex = false
		}
	}
	switch {
	case allArray:
		return "use the builtin array functions (push, pop, length, ...)", true
	case allString:
		return "use the builtin string functions (length, substr, index, ...)", true
	case allRegex:
		return "use match() or replace() with the pattern", true
	}
	return "", false
}

// warnNullableAccess flags member access on a value that may still be null
// at this point. Guards upstream already removed null from narrowed types,
// so firing here means the access is genuinely unprotected.
func (c *Checker) warnNullableAccess(mem *ast.MemberExpression, objT ts.Type) {
	if !ts.Includes(objT, ts.Null) {
		return
	}
	d := diagnostics.Warn(diagnostics.WarnNullAccess, mem.Object.Pos(), mem.Object.End(),
		"Value of type %s may be null at this member access", ts.Describe(objT))
	c.addWithData(d, c.quickFix(mem.Object, "."))
}

// namespaceOf returns the module-namespace symbol behind an expression, if
// it is a plain identifier bound by `import * as name`.
func (c *Checker) namespaceOf(obj ast.Expression) *symbols.Symbol {
	id, ok := obj.(*ast.Identifier)
	if !ok {
		return nil
	}
	sym := c.table.Lookup(id.Name)
	if sym != nil && sym.Kind == symbols.ModuleSymbol {
		return sym
	}
	return nil
}

func (c *Checker) memberCallType(call *ast.CallExpression, mem *ast.MemberExpression) ts.Type {
	// Namespace call: fs.open(...).
	if sym := c.namespaceOf(mem.Object); sym != nil {
		c.table.MarkUsed(sym.Name, mem.Object.Pos())
		prop, ok := mem.Property.(*ast.Identifier)
		if !ok {
			c.checkArgsOnly(call)
			return ts.Unknown
		}
		if sig, ok := c.registry.FunctionSignature(sym.ImportedFrom, prop.Name); ok {
			return c.validateCall(sym.Name+"."+prop.Name, sig, call)
		}
		c.addError(diagnostics.ErrUnknownMethod, prop.Pos(), prop.End(),
			"Module '%s' has no function '%s'", sym.ImportedFrom, prop.Name)
		c.checkArgsOnly(call)
		return ts.Unknown
	}

	objT := c.CheckNode(mem.Object)
	if handle, ok := ts.HandleOf(objT); ok && !mem.Computed {
		prop, ok := mem.Property.(*ast.Identifier)
		if !ok {
			c.checkArgsOnly(call)
			return ts.Unknown
		}
		c.warnNullableAccess(mem, objT)
		sig, ok := c.registry.HandleMethod(handle, prop.Name)
		if !ok {
			c.addError(diagnostics.ErrUnknownMethod, prop.Pos(), prop.End(),
				"Method '%s' does not exist on %s", prop.Name, handle)
			c.checkArgsOnly(call)
			return ts.Unknown
		}
		return c.validateCall(handle+"."+prop.Name, sig, call)
	}

	// Anything else goes through plain member typing; a function-typed or
	// unknown result is callable.
	t := c.memberType(mem)
	c.checkArgsOnly(call)
	if ts.Includes(t, ts.Function) || ts.Includes(t, ts.Unknown) {
		return ts.Unknown
	}
	c.addError(diagnostics.ErrUndefinedFunc, mem.Pos(), mem.End(),
		"Expression of type %s is not callable", ts.Describe(t))
	return ts.Unknown
}
