package analyzer

import (
	"strings"

	"github.com/ucodekit/ucls/internal/ast"
	"github.com/ucodekit/ucls/internal/builtins"
	"github.com/ucodekit/ucls/internal/checker"
	"github.com/ucodekit/ucls/internal/config"
	"github.com/ucodekit/ucls/internal/diagnostics"
	"github.com/ucodekit/ucls/internal/modules"
	"github.com/ucodekit/ucls/internal/narrowing"
	"github.com/ucodekit/ucls/internal/symbols"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// Result is one finished analysis pass over a document.
type Result struct {
	Diagnostics []diagnostics.Diagnostic
	SymbolTable *symbols.SymbolTable
	TypeMap     map[ast.Node]ts.Type
}

// Analyzer runs semantic analysis. It holds only shared read-only
// collaborators; per-document state lives in the pass, so one Analyzer is
// safe for concurrent documents.
type Analyzer struct {
	registry *modules.Registry
	cfg      *config.Config
}

// New builds an analyzer around a shared module registry and configuration.
func New(registry *modules.Registry, cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyzer{registry: registry, cfg: cfg}
}

// Analyze walks the program and returns diagnostics, the populated symbol
// table and the per-node type map. Each call builds fresh state, so
// repeated runs over the same AST produce identical results.
func (a *Analyzer) Analyze(prog *ast.Program) *Result {
	table := symbols.New()
	builtins.Register(table)

	p := &pass{
		cfg:   a.cfg,
		reg:   a.registry,
		table: table,
		chk:   checker.New(table, a.registry, prog),
		diags: diagnostics.NewSet(),
	}

	func() {
		// One malformed subtree must not take down the whole pass.
		defer func() {
			if r := recover(); r != nil {
				p.diags.Add(diagnostics.New(diagnostics.ErrInternal, prog.Pos(), prog.End(),
					"internal analyzer error: %v", r))
			}
		}()
		for _, stmt := range prog.Body {
			p.visitStatement(stmt)
		}
	}()

	p.reportUnused(table.UnusedVariables())
	p.diags.AddAll(p.chk.Errors())

	items := p.diags.Items()
	if max := a.cfg.MaxDiagnostics; max > 0 && len(items) > max {
		items = items[:max]
	}
	return &Result{
		Diagnostics: items,
		SymbolTable: table,
		TypeMap:     p.chk.TypeMap(),
	}
}

// pass is the per-document traversal state.
type pass struct {
	cfg   *config.Config
	reg   *modules.Registry
	table *symbols.SymbolTable
	chk   *checker.Checker
	diags *diagnostics.Set

	funcDepth   int
	loopDepth   int
	switchDepth int

	// returns collects the inferred type of every return statement in the
	// function currently being visited, one frame per nesting level.
	returns [][]ts.Type
}

func (p *pass) errorf(code diagnostics.Code, start, end int, format string, args ...any) {
	p.diags.Add(diagnostics.New(code, start, end, format, args...))
}

func (p *pass) warnf(code diagnostics.Code, start, end int, format string, args ...any) {
	p.diags.Add(diagnostics.Warn(code, start, end, format, args...))
}

// exitScope harvests unused-variable warnings from the innermost scope
// before popping it; popped symbols are unreachable afterwards.
func (p *pass) exitScope() {
	p.reportUnused(p.table.CurrentSymbols())
	p.table.ExitScope()
}

func (p *pass) reportUnused(syms []*symbols.Symbol) {
	if !p.cfg.Warnings.UnusedEnabled() {
		return
	}
	for _, sym := range syms {
		if sym.Used || sym.Kind != symbols.VariableSymbol {
			continue
		}
		p.warnf(diagnostics.WarnUnused, sym.DeclaredAt, sym.DeclaredAt+len(sym.Name),
			"Variable '%s' is declared but never used", sym.Name)
	}
}

func (p *pass) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.VariableDeclaration:
		p.visitVariableDeclaration(s)
	case *ast.FunctionDeclaration:
		p.visitFunctionDeclaration(s)
	case *ast.ExpressionStatement:
		p.chk.CheckNode(s.Expression)
		p.visitFunctionLikes(s.Expression)
	case *ast.BlockStatement:
		p.table.EnterScope()
		for _, inner := range s.Body {
			p.visitStatement(inner)
		}
		p.exitScope()
	case *ast.IfStatement:
		p.visitIfStatement(s)
	case *ast.WhileStatement:
		p.visitWhileStatement(s)
	case *ast.ForStatement:
		p.visitForStatement(s)
	case *ast.ForInStatement:
		p.visitForInStatement(s)
	case *ast.ReturnStatement:
		p.visitReturnStatement(s)
	case *ast.BreakStatement:
		if p.loopDepth == 0 && p.switchDepth == 0 {
			p.errorf(diagnostics.ErrBadBreak, s.Pos(), s.End(), "'break' outside of a loop")
		}
	case *ast.ContinueStatement:
		if p.loopDepth == 0 {
			p.errorf(diagnostics.ErrBadBreak, s.Pos(), s.End(), "'continue' outside of a loop")
		}
	case *ast.TryStatement:
		p.visitStatement(s.Block)
		if s.Handler != nil {
			p.table.EnterScope()
			if s.Param != nil {
				p.table.Declare(s.Param.Name, symbols.ParameterSymbol, ts.Unknown, s.Param.Pos())
			}
			for _, inner := range s.Handler.Body {
				p.visitStatement(inner)
			}
			p.exitScope()
		}
	case *ast.SwitchStatement:
		p.chk.CheckNode(s.Discriminant)
		p.switchDepth++
		p.table.EnterScope()
		for _, c := range s.Cases {
			if c.Test != nil {
				p.chk.CheckNode(c.Test)
			}
			for _, inner := range c.Body {
				p.visitStatement(inner)
			}
		}
		p.exitScope()
		p.switchDepth--
	case *ast.ImportDeclaration:
		p.visitImportDeclaration(s)
	case *ast.EmptyStatement:
	}
}

func (p *pass) visitVariableDeclaration(decl *ast.VariableDeclaration) {
	for _, d := range decl.Declarations {
		if d.Name == nil {
			continue
		}
		initT := ts.Type(ts.Unknown)
		if d.Init != nil {
			initT = p.chk.CheckNode(d.Init)
			p.visitFunctionLikes(d.Init)
		}

		if p.cfg.Warnings.ShadowingEnabled() {
			if outer := p.table.CheckShadowing(d.Name.Name); outer != nil && outer.Kind != symbols.BuiltinSymbol {
				p.warnf(diagnostics.WarnShadow, d.Name.Pos(), d.Name.End(),
					"Declaration of '%s' shadows an outer declaration", d.Name.Name)
			}
		}

		if !p.table.Declare(d.Name.Name, symbols.VariableSymbol, initT, d.Name.Pos()) {
			p.errorf(diagnostics.ErrRedeclared, d.Name.Pos(), d.Name.End(),
				"'%s' is already declared in this scope", d.Name.Name)
			continue
		}

		// Module handles surface in the global scope so completion sees
		// them regardless of where they were declared.
		if _, ok := ts.HandleOf(initT); ok {
			p.table.ForceGlobalDeclaration(d.Name.Name, symbols.VariableSymbol, initT)
		}
	}
}

func (p *pass) visitFunctionDeclaration(fd *ast.FunctionDeclaration) {
	if fd.Name != nil {
		if !p.table.Declare(fd.Name.Name, symbols.FunctionSymbol, ts.Function, fd.Name.Pos()) {
			p.errorf(diagnostics.ErrRedeclared, fd.Name.Pos(), fd.Name.End(),
				"'%s' is already declared in this scope", fd.Name.Name)
		}
		// Unknown return placeholder keeps recursive calls compatible
		// until the body has been fully visited.
		params := make([]ts.Type, len(fd.Params))
		for i := range params {
			params[i] = ts.Unknown
		}
		p.chk.DeclareFunction(fd.Name.Name, ts.Signature{
			Params:   params,
			Required: len(fd.Params),
			Variadic: fd.Rest != nil,
			Return:   ts.Unknown,
		})
	}

	ret := p.visitFunctionBody(fd.Params, fd.Rest, fd.Body)
	if fd.Name != nil {
		p.chk.SetFunctionReturn(fd.Name.Name, ret)
	}
}

// visitFunctionBody opens the parameter scope, visits the body and reduces
// the collected return types to the function's return type. A body without
// a return yields null.
func (p *pass) visitFunctionBody(params []*ast.Identifier, rest *ast.Identifier, body *ast.BlockStatement) ts.Type {
	p.table.EnterScope()
	for _, param := range params {
		p.table.Declare(param.Name, symbols.ParameterSymbol, ts.Unknown, param.Pos())
	}
	if rest != nil {
		p.table.Declare(rest.Name, symbols.ParameterSymbol, ts.Array, rest.Pos())
	}

	p.funcDepth++
	p.returns = append(p.returns, nil)
	if body != nil {
		for _, stmt := range body.Body {
			p.visitStatement(stmt)
		}
	}
	frame := p.returns[len(p.returns)-1]
	p.returns = p.returns[:len(p.returns)-1]
	p.funcDepth--
	p.exitScope()

	if len(frame) == 0 {
		return ts.Null
	}
	return ts.Union(frame...)
}

func (p *pass) visitReturnStatement(rs *ast.ReturnStatement) {
	if p.funcDepth == 0 {
		p.errorf(diagnostics.ErrBadReturn, rs.Pos(), rs.End(), "'return' outside of a function")
		if rs.Argument != nil {
			p.chk.CheckNode(rs.Argument)
		}
		return
	}
	t := ts.Type(ts.Null)
	if rs.Argument != nil {
		t = p.chk.CheckNode(rs.Argument)
		p.visitFunctionLikes(rs.Argument)
	}
	p.returns[len(p.returns)-1] = append(p.returns[len(p.returns)-1], t)
}

// pushGuards activates the narrowing frames a condition proves over a
// branch span and returns how many were pushed.
func (p *pass) pushGuards(guards []narrowing.Guard, start, end int) int {
	pushed := 0
	for _, g := range guards {
		sym := p.table.Lookup(g.Variable)
		if sym == nil {
			continue
		}
		p.chk.PushGuard(narrowing.Context{
			Variable: g.Variable,
			Type:     g.Apply(sym.EffectiveType()),
			Start:    start,
			End:      end,
		})
		pushed++
	}
	return pushed
}

func (p *pass) popGuards(n int) {
	for i := 0; i < n; i++ {
		p.chk.PopGuard()
	}
}

func (p *pass) visitIfStatement(is *ast.IfStatement) {
	p.chk.CheckNode(is.Test)
	guards := narrowing.FromCondition(is.Test)

	if is.Consequent != nil {
		n := p.pushGuards(guards, is.Consequent.Pos(), is.Consequent.End())
		p.visitStatement(is.Consequent)
		p.popGuards(n)
	}
	if is.Alternate != nil {
		negated := make([]narrowing.Guard, len(guards))
		for i, g := range guards {
			negated[i] = g.Negate()
		}
		n := p.pushGuards(negated, is.Alternate.Pos(), is.Alternate.End())
		p.visitStatement(is.Alternate)
		p.popGuards(n)
	}
}

func (p *pass) visitWhileStatement(ws *ast.WhileStatement) {
	p.chk.CheckNode(ws.Test)
	guards := narrowing.FromCondition(ws.Test)

	if ws.Body != nil {
		n := p.pushGuards(guards, ws.Body.Pos(), ws.Body.End())
		p.loopDepth++
		p.visitStatement(ws.Body)
		p.loopDepth--
		p.popGuards(n)
	}
}

func (p *pass) visitForStatement(fs *ast.ForStatement) {
	p.table.EnterScope()
	if fs.Init != nil {
		p.visitStatement(fs.Init)
	}
	if fs.Test != nil {
		p.chk.CheckNode(fs.Test)
	}
	if fs.Update != nil {
		p.chk.CheckNode(fs.Update)
	}
	if fs.Body != nil {
		p.loopDepth++
		p.visitStatement(fs.Body)
		p.loopDepth--
	}
	p.exitScope()
}

func (p *pass) visitForInStatement(fi *ast.ForInStatement) {
	p.chk.CheckNode(fi.Right)

	p.table.EnterScope()
	for _, name := range fi.Names {
		if fi.Declared {
			p.table.Declare(name.Name, symbols.VariableSymbol, ts.Unknown, name.Pos())
			// The iteration itself writes the loop variable.
			p.table.MarkUsed(name.Name, name.Pos())
		} else if p.table.Lookup(name.Name) == nil {
			p.errorf(diagnostics.ErrUndefined, name.Pos(), name.End(),
				"Undefined variable '%s'", name.Name)
		}
	}
	if fi.Body != nil {
		p.loopDepth++
		p.visitStatement(fi.Body)
		p.loopDepth--
	}
	p.exitScope()
}

func (p *pass) visitImportDeclaration(id *ast.ImportDeclaration) {
	if !p.reg.IsModule(id.Source) {
		p.errorf(diagnostics.ErrInvalidImport, id.Pos(), id.End(),
			"Unknown module '%s'", id.Source)
		return
	}

	for _, spec := range id.Specifiers {
		if spec.Local == nil {
			continue
		}
		if spec.Namespace || spec.Default {
			p.table.Declare(spec.Local.Name, symbols.ModuleSymbol, ts.Object, spec.Local.Pos())
			if sym := p.table.Lookup(spec.Local.Name); sym != nil {
				sym.ImportedFrom = id.Source
			}
			continue
		}

		exported := spec.Local.Name
		if spec.Imported != nil {
			exported = spec.Imported.Name
		}
		if !p.reg.IsValidImport(id.Source, exported) {
			// The symbol is deliberately not declared: later uses report
			// undefined, which is accurate.
			p.errorf(diagnostics.ErrInvalidImport, spec.Pos(), spec.End(),
				"'%s' is not exported by module '%s'; valid exports: %s",
				exported, id.Source, strings.Join(p.reg.ValidImports(id.Source), ", "))
			continue
		}
		p.table.Declare(spec.Local.Name, symbols.ImportedSymbol, ts.Function, spec.Local.Pos())
		if sym := p.table.Lookup(spec.Local.Name); sym != nil {
			sym.ImportedFrom = id.Source
			sym.ImportSpecifier = exported
		}
	}
}

// visitFunctionLikes finds function expressions and arrow functions nested
// in an expression and analyzes their bodies; the checker types them as
// plain function values without descending.
func (p *pass) visitFunctionLikes(expr ast.Expression) {
	switch e := expr.(type) {
	case nil:
	case *ast.FunctionExpression:
		ret := p.visitFunctionBody(e.Params, e.Rest, e.Body)
		if e.Name != nil {
			p.chk.SetFunctionReturn(e.Name.Name, ret)
		}
	case *ast.ArrowFunctionExpression:
		if block, ok := e.Body.(*ast.BlockStatement); ok {
			p.visitFunctionBody(e.Params, e.Rest, block)
			return
		}
		// Expression-bodied arrow: parameters still need a scope.
		p.table.EnterScope()
		for _, param := range e.Params {
			p.table.Declare(param.Name, symbols.ParameterSymbol, ts.Unknown, param.Pos())
		}
		if e.Rest != nil {
			p.table.Declare(e.Rest.Name, symbols.ParameterSymbol, ts.Array, e.Rest.Pos())
		}
		p.chk.CheckNode(e.Expr)
		p.visitFunctionLikes(e.Expr)
		p.exitScope()
	case *ast.BinaryExpression:
		p.visitFunctionLikes(e.Left)
		p.visitFunctionLikes(e.Right)
	case *ast.UnaryExpression:
		p.visitFunctionLikes(e.Argument)
	case *ast.AssignmentExpression:
		p.visitFunctionLikes(e.Right)
	case *ast.CallExpression:
		p.visitFunctionLikes(e.Callee)
		for _, arg := range e.Arguments {
			p.visitFunctionLikes(arg)
		}
	case *ast.MemberExpression:
		p.visitFunctionLikes(e.Object)
	case *ast.ConditionalExpression:
		p.visitFunctionLikes(e.Test)
		p.visitFunctionLikes(e.Consequent)
		p.visitFunctionLikes(e.Alternate)
	case *ast.ArrayExpression:
		for _, el := range e.Elements {
			p.visitFunctionLikes(el)
		}
	case *ast.ObjectExpression:
		for _, prop := range e.Properties {
			p.visitFunctionLikes(prop.Value)
		}
	}
}
