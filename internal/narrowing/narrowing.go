package narrowing

import (
	"github.com/ucodekit/ucls/internal/ast"
	"github.com/ucodekit/ucls/internal/config"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// Guard is one fact a condition proves about a variable when the condition
// evaluates truthy.
type Guard struct {
	Variable string

	// NarrowTo is the exact type established by a tag guard. nil marks a
	// null-presence guard, which only removes null from the base union.
	NarrowTo ts.Type

	// Negated is set when the guard was extracted for the else branch of
	// its condition. A negated null-presence guard proves nothing precise,
	// so application leaves the base type alone. A tag guard pins the type
	// in both polarities.
	Negated bool
}

// Apply narrows base according to the guard.
func (g Guard) Apply(base ts.Type) ts.Type {
	if g.NarrowTo != nil {
		return g.NarrowTo
	}
	if g.Negated {
		return base
	}
	return ts.StripNull(base)
}

// Negate returns the guard as seen from the opposite branch.
func (g Guard) Negate() Guard {
	g.Negated = !g.Negated
	return g
}

// Context is one active narrowing frame the analyzer pushes while it walks
// a guarded branch. Start and End delimit the branch span; lookups outside
// it must ignore the frame.
type Context struct {
	Variable string
	Type     ts.Type
	Start    int
	End      int
}

// FromCondition extracts every guard a truthy condition establishes.
// Recognized shapes: `x != null` (either operand order, == / === / !==
// variants with the matching polarity), `type(x) == "tag"`, and `a && b`
// which folds guards from both operands.
func FromCondition(cond ast.Expression) []Guard {
	bin, ok := cond.(*ast.BinaryExpression)
	if !ok {
		return nil
	}

	switch bin.Operator {
	case "&&":
		return append(FromCondition(bin.Left), FromCondition(bin.Right)...)
	case "!=", "!==":
		if name, ok := nullComparison(bin.Left, bin.Right); ok {
			return []Guard{{Variable: name}}
		}
	case "==", "===":
		if name, ok := nullComparison(bin.Left, bin.Right); ok {
			// x == null proves null-ness; the useful branch is the
			// negation, where x is known non-null.
			return []Guard{{Variable: name, Negated: true}}
		}
		if name, tag, ok := tagComparison(bin.Left, bin.Right); ok {
			if dt, ok := ts.FromTag(tag); ok {
				return []Guard{{Variable: name, NarrowTo: dt}}
			}
		}
	}
	return nil
}

// nullComparison matches `ident <op> null` in either operand order.
func nullComparison(left, right ast.Expression) (string, bool) {
	if id, ok := left.(*ast.Identifier); ok {
		if _, isNull := right.(*ast.NullLiteral); isNull {
			return id.Name, true
		}
	}
	if id, ok := right.(*ast.Identifier); ok {
		if _, isNull := left.(*ast.NullLiteral); isNull {
			return id.Name, true
		}
	}
	return "", false
}

// tagComparison matches `type(ident) <op> "tag"` in either operand order.
func tagComparison(left, right ast.Expression) (name, tag string, ok bool) {
	if n, t, ok := typeCallAndTag(left, right); ok {
		return n, t, true
	}
	return typeCallAndTag(right, left)
}

func typeCallAndTag(callSide, tagSide ast.Expression) (string, string, bool) {
	call, ok := callSide.(*ast.CallExpression)
	if !ok || len(call.Arguments) != 1 {
		return "", "", false
	}
	callee, ok := call.Callee.(*ast.Identifier)
	if !ok || callee.Name != config.TypeFuncName {
		return "", "", false
	}
	arg, ok := call.Arguments[0].(*ast.Identifier)
	if !ok {
		return "", "", false
	}
	lit, ok := tagSide.(*ast.StringLiteral)
	if !ok {
		return "", "", false
	}
	return arg.Name, lit.Value, true
}

// NarrowedTypeAt computes the effective type of name at pos by walking the
// program for enclosing guarded regions. Containment is judged purely by
// source position, not by control flow.
func NarrowedTypeAt(prog *ast.Program, name string, pos int, base ts.Type) ts.Type {
	cur := base
	narrowStatements(prog.Body, name, pos, &cur)
	return cur
}

func spanContains(n ast.Node, pos int) bool {
	return n != nil && n.Pos() <= pos && pos < n.End()
}

func narrowStatements(stmts []ast.Statement, name string, pos int, cur *ts.Type) {
	for _, s := range stmts {
		if s == nil || !spanContains(s, pos) {
			continue
		}
		narrowStatement(s, name, pos, cur)
		return
	}
}

func narrowStatement(stmt ast.Statement, name string, pos int, cur *ts.Type) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		narrowStatements(s.Body, name, pos, cur)
	case *ast.IfStatement:
		if spanContains(s.Consequent, pos) {
			applyGuards(FromCondition(s.Test), name, cur)
			narrowStatement(s.Consequent, name, pos, cur)
			return
		}
		if s.Alternate != nil && spanContains(s.Alternate, pos) {
			for _, g := range FromCondition(s.Test) {
				if g.Variable == name {
					*cur = g.Negate().Apply(*cur)
				}
			}
			narrowStatement(s.Alternate, name, pos, cur)
			return
		}
		narrowExpression(s.Test, name, pos, cur)
	case *ast.WhileStatement:
		if spanContains(s.Body, pos) {
			applyGuards(FromCondition(s.Test), name, cur)
			narrowStatement(s.Body, name, pos, cur)
			return
		}
		narrowExpression(s.Test, name, pos, cur)
	case *ast.ForStatement:
		if spanContains(s.Body, pos) {
			narrowStatement(s.Body, name, pos, cur)
		}
	case *ast.ForInStatement:
		if spanContains(s.Body, pos) {
			narrowStatement(s.Body, name, pos, cur)
		}
	case *ast.FunctionDeclaration:
		if spanContains(s.Body, pos) {
			narrowStatement(s.Body, name, pos, cur)
		}
	case *ast.TryStatement:
		if spanContains(s.Block, pos) {
			narrowStatement(s.Block, name, pos, cur)
		} else if s.Handler != nil && spanContains(s.Handler, pos) {
			narrowStatement(s.Handler, name, pos, cur)
		}
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			if spanContains(c, pos) {
				narrowStatements(c.Body, name, pos, cur)
				return
			}
		}
	case *ast.ExpressionStatement:
		narrowExpression(s.Expression, name, pos, cur)
	case *ast.ReturnStatement:
		narrowExpression(s.Argument, name, pos, cur)
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			if d.Init != nil && spanContains(d.Init, pos) {
				narrowExpression(d.Init, name, pos, cur)
				return
			}
		}
	}
}

// narrowExpression handles the short-circuit rule: within the right operand
// of `a && b`, the guards proven by the left operand already hold.
func narrowExpression(expr ast.Expression, name string, pos int, cur *ts.Type) {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		if e.Operator == "&&" && spanContains(e.Right, pos) {
			applyGuards(FromCondition(e.Left), name, cur)
			narrowExpression(e.Right, name, pos, cur)
			return
		}
		if spanContains(e.Left, pos) {
			narrowExpression(e.Left, name, pos, cur)
		} else if spanContains(e.Right, pos) {
			narrowExpression(e.Right, name, pos, cur)
		}
	case *ast.ConditionalExpression:
		if spanContains(e.Consequent, pos) {
			applyGuards(FromCondition(e.Test), name, cur)
			narrowExpression(e.Consequent, name, pos, cur)
		} else if spanContains(e.Alternate, pos) {
			for _, g := range FromCondition(e.Test) {
				if g.Variable == name {
					*cur = g.Negate().Apply(*cur)
				}
			}
			narrowExpression(e.Alternate, name, pos, cur)
		}
	case *ast.CallExpression:
		for _, arg := range e.Arguments {
			if spanContains(arg, pos) {
				narrowExpression(arg, name, pos, cur)
				return
			}
		}
	case *ast.UnaryExpression:
		narrowExpression(e.Argument, name, pos, cur)
	case *ast.AssignmentExpression:
		if spanContains(e.Right, pos) {
			narrowExpression(e.Right, name, pos, cur)
		}
	case *ast.ArrowFunctionExpression:
		if e.Body != nil && spanContains(e.Body, pos) {
			narrowStatement(e.Body, name, pos, cur)
		} else if e.Expr != nil && spanContains(e.Expr, pos) {
			narrowExpression(e.Expr, name, pos, cur)
		}
	case *ast.FunctionExpression:
		if spanContains(e.Body, pos) {
			narrowStatement(e.Body, name, pos, cur)
		}
	}
}

func applyGuards(guards []Guard, name string, cur *ts.Type) {
	for _, g := range guards {
		if g.Variable == name {
			*cur = g.Apply(*cur)
		}
	}
}
