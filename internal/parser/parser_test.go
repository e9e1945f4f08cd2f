package parser

import (
	"testing"

	"github.com/ucodekit/ucls/internal/ast"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return prog
}

func TestVariableDeclarations(t *testing.T) {
	prog := parse(t, "let a = 1, b; const c = 2.5;")
	if len(prog.Body) != 2 {
		t.Fatalf("statements = %d, want 2", len(prog.Body))
	}

	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("first statement is %T, want *ast.VariableDeclaration", prog.Body[0])
	}
	if decl.Kind != "let" {
		t.Errorf("kind = %q, want let", decl.Kind)
	}
	if len(decl.Declarations) != 2 {
		t.Fatalf("declarators = %d, want 2", len(decl.Declarations))
	}
	if decl.Declarations[0].Name.Name != "a" || decl.Declarations[0].Init == nil {
		t.Errorf("declarator a parsed wrong: %+v", decl.Declarations[0])
	}
	if decl.Declarations[1].Name.Name != "b" || decl.Declarations[1].Init != nil {
		t.Errorf("declarator b parsed wrong: %+v", decl.Declarations[1])
	}

	cdecl := prog.Body[1].(*ast.VariableDeclaration)
	if cdecl.Kind != "const" {
		t.Errorf("kind = %q, want const", cdecl.Kind)
	}
	if _, ok := cdecl.Declarations[0].Init.(*ast.DoubleLiteral); !ok {
		t.Errorf("const init is %T, want *ast.DoubleLiteral", cdecl.Declarations[0].Init)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src      string
		topOp    string
		leftOp   string // operator of the left child when it is binary
	}{
		{"1 + 2 * 3", "+", ""},
		{"1 * 2 + 3", "+", "*"},
		{"a == b && c != null", "&&", "=="},
		{"a && b || c", "||", "&&"},
		{"a ?? b || c", "??", ""},
		{"1 << 2 + 3", "<<", ""},
		{"a & b == c", "&", ""},
		{"x in obj && y", "&&", "in"},
	}

	for _, tt := range tests {
		prog := parse(t, tt.src)
		es := prog.Body[0].(*ast.ExpressionStatement)
		bin, ok := es.Expression.(*ast.BinaryExpression)
		if !ok {
			t.Fatalf("%q: expression is %T, want binary", tt.src, es.Expression)
		}
		if bin.Operator != tt.topOp {
			t.Errorf("%q: top operator = %q, want %q", tt.src, bin.Operator, tt.topOp)
		}
		if tt.leftOp != "" {
			left, ok := bin.Left.(*ast.BinaryExpression)
			if !ok || left.Operator != tt.leftOp {
				t.Errorf("%q: left child should be %q binary, got %T", tt.src, tt.leftOp, bin.Left)
			}
		}
	}
}

func TestSpansAreByteAccurate(t *testing.T) {
	src := "let count = 42;"
	prog := parse(t, src)

	decl := prog.Body[0].(*ast.VariableDeclaration)
	if decl.Pos() != 0 || decl.End() != len(src) {
		t.Errorf("declaration span = [%d,%d), want [0,%d)", decl.Pos(), decl.End(), len(src))
	}
	name := decl.Declarations[0].Name
	if src[name.Pos():name.End()] != "count" {
		t.Errorf("name span slice = %q, want count", src[name.Pos():name.End()])
	}
}

func TestIfElseAndNesting(t *testing.T) {
	prog := parse(t, `if (x != null) { f(x); } else if (y) g(); else h();`)
	is := prog.Body[0].(*ast.IfStatement)

	if _, ok := is.Test.(*ast.BinaryExpression); !ok {
		t.Fatalf("test is %T, want binary", is.Test)
	}
	if _, ok := is.Consequent.(*ast.BlockStatement); !ok {
		t.Fatalf("consequent is %T, want block", is.Consequent)
	}
	nested, ok := is.Alternate.(*ast.IfStatement)
	if !ok {
		t.Fatalf("alternate is %T, want nested if", is.Alternate)
	}
	if nested.Alternate == nil {
		t.Errorf("nested else branch missing")
	}
}

func TestForStatements(t *testing.T) {
	prog := parse(t, "for (let i = 0; i < 10; i++) body();")
	fs, ok := prog.Body[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForStatement", prog.Body[0])
	}
	if fs.Init == nil || fs.Test == nil || fs.Update == nil {
		t.Errorf("for clauses missing: %+v", fs)
	}

	prog = parse(t, "for (let k, v in table) use(k, v);")
	fi, ok := prog.Body[0].(*ast.ForInStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForInStatement", prog.Body[0])
	}
	if len(fi.Names) != 2 || fi.Names[0].Name != "k" || fi.Names[1].Name != "v" {
		t.Errorf("for-in names wrong: %+v", fi.Names)
	}
	if !fi.Declared {
		t.Errorf("for-in with let must mark Declared")
	}

	prog = parse(t, "for (x in list) use(x);")
	fi = prog.Body[0].(*ast.ForInStatement)
	if fi.Declared {
		t.Errorf("for-in without let must not mark Declared")
	}
}

func TestFunctionsAndArrows(t *testing.T) {
	prog := parse(t, "function add(a, b, ...rest) { return a + b; }")
	fd := prog.Body[0].(*ast.FunctionDeclaration)
	if fd.Name.Name != "add" || len(fd.Params) != 2 || fd.Rest == nil {
		t.Errorf("function head parsed wrong: %+v", fd)
	}

	prog = parse(t, "let f = (a, b) => a * b;")
	init := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Init
	af, ok := init.(*ast.ArrowFunctionExpression)
	if !ok {
		t.Fatalf("init is %T, want arrow", init)
	}
	if len(af.Params) != 2 || af.Expr == nil || af.Body != nil {
		t.Errorf("arrow parsed wrong: %+v", af)
	}

	prog = parse(t, "let g = x => { return x; };")
	init = prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Init
	af = init.(*ast.ArrowFunctionExpression)
	if len(af.Params) != 1 || af.Body == nil {
		t.Errorf("single-param arrow parsed wrong: %+v", af)
	}

	// A parenthesized expression must not be mistaken for arrow params.
	prog = parse(t, "(a + b) * c;")
	es := prog.Body[0].(*ast.ExpressionStatement)
	if bin := es.Expression.(*ast.BinaryExpression); bin.Operator != "*" {
		t.Errorf("grouping parsed wrong: top operator %q", bin.Operator)
	}
}

func TestMemberCallChains(t *testing.T) {
	prog := parse(t, "fp.read('line');")
	es := prog.Body[0].(*ast.ExpressionStatement)
	call, ok := es.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expression is %T, want call", es.Expression)
	}
	mem, ok := call.Callee.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("callee is %T, want member", call.Callee)
	}
	if mem.Object.(*ast.Identifier).Name != "fp" {
		t.Errorf("member object wrong")
	}
	if mem.Property.(*ast.Identifier).Name != "read" || mem.Computed {
		t.Errorf("member property wrong: %+v", mem)
	}
	if len(call.Arguments) != 1 {
		t.Errorf("arguments = %d, want 1", len(call.Arguments))
	}

	prog = parse(t, "a?.b; arr[0];")
	mem = prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.MemberExpression)
	if !mem.Optional {
		t.Errorf("?. must set Optional")
	}
	mem = prog.Body[1].(*ast.ExpressionStatement).Expression.(*ast.MemberExpression)
	if !mem.Computed {
		t.Errorf("index access must set Computed")
	}
}

func TestObjectAndArrayLiterals(t *testing.T) {
	prog := parse(t, `let o = { a: 1, "b c": 2, short, [k]: 3 };`)
	obj := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.ObjectExpression)
	if len(obj.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(obj.Properties))
	}
	if obj.Properties[2].Value.(*ast.Identifier).Name != "short" {
		t.Errorf("shorthand property parsed wrong")
	}
	if !obj.Properties[3].Computed {
		t.Errorf("computed key must set Computed")
	}

	prog = parse(t, "let a = [1, x, f(2)];")
	arr := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.ArrayExpression)
	if len(arr.Elements) != 3 {
		t.Errorf("elements = %d, want 3", len(arr.Elements))
	}
}

func TestImportForms(t *testing.T) {
	prog := parse(t, `import { open, popen as sh } from 'fs';`)
	id := prog.Body[0].(*ast.ImportDeclaration)
	if id.Source != "fs" || len(id.Specifiers) != 2 {
		t.Fatalf("import parsed wrong: %+v", id)
	}
	if id.Specifiers[0].Imported.Name != "open" || id.Specifiers[0].Local.Name != "open" {
		t.Errorf("plain specifier wrong: %+v", id.Specifiers[0])
	}
	if id.Specifiers[1].Imported.Name != "popen" || id.Specifiers[1].Local.Name != "sh" {
		t.Errorf("aliased specifier wrong: %+v", id.Specifiers[1])
	}

	prog = parse(t, `import * as fs from 'fs';`)
	id = prog.Body[0].(*ast.ImportDeclaration)
	if len(id.Specifiers) != 1 || !id.Specifiers[0].Namespace || id.Specifiers[0].Local.Name != "fs" {
		t.Errorf("namespace import wrong: %+v", id.Specifiers)
	}

	prog = parse(t, `import math from 'math';`)
	id = prog.Body[0].(*ast.ImportDeclaration)
	if len(id.Specifiers) != 1 || !id.Specifiers[0].Default {
		t.Errorf("default import wrong: %+v", id.Specifiers)
	}
}

func TestTrySwitch(t *testing.T) {
	prog := parse(t, "try { risky(); } catch (e) { log(e); }")
	tr := prog.Body[0].(*ast.TryStatement)
	if tr.Param == nil || tr.Param.Name != "e" || tr.Handler == nil {
		t.Errorf("try/catch parsed wrong: %+v", tr)
	}

	prog = parse(t, `switch (x) { case 1: a(); break; default: b(); }`)
	sw := prog.Body[0].(*ast.SwitchStatement)
	if len(sw.Cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Test == nil || sw.Cases[1].Test != nil {
		t.Errorf("case/default tests wrong")
	}
	if len(sw.Cases[0].Body) != 2 {
		t.Errorf("case body = %d statements, want 2", len(sw.Cases[0].Body))
	}
}

func TestRegexLiteralValidation(t *testing.T) {
	prog := parse(t, "let re = /ab+c/i;")
	re := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.RegexLiteral)
	if re.Pattern != "ab+c" || re.Flags != "i" {
		t.Errorf("regex literal parsed wrong: pattern %q flags %q", re.Pattern, re.Flags)
	}

	p := New("let bad = /[a-/;")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Errorf("malformed character class must produce a parse error")
	}

	p = New("let bad = /ok/q;")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Errorf("unknown regex flag must produce a parse error")
	}
}

func TestAssignmentTargets(t *testing.T) {
	parse(t, "x = 1; o.f = 2; a[0] = 3; x += 4;")

	p := New("1 = 2;")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Errorf("literal assignment target must produce a parse error")
	}
}

func TestRecoveryKeepsParsing(t *testing.T) {
	p := New("let = ;\nlet ok = 1;")
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected parse errors")
	}

	found := false
	for _, stmt := range prog.Body {
		if decl, ok := stmt.(*ast.VariableDeclaration); ok {
			for _, d := range decl.Declarations {
				if d.Name != nil && d.Name.Name == "ok" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Errorf("parser must recover and parse the following statement")
	}
}
