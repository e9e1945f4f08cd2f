package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ucodekit/ucls/internal/config"
	"github.com/ucodekit/ucls/internal/diagnostics"
	"github.com/ucodekit/ucls/internal/modules"
	"github.com/ucodekit/ucls/internal/parser"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

var testRegistry = modules.NewRegistry()

func analyze(t *testing.T, src string) *Result {
	t.Helper()
	p := parser.New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	return New(testRegistry, config.Default()).Analyze(prog)
}

func withCode(res *Result, code diagnostics.Code) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func expectClean(t *testing.T, res *Result) {
	t.Helper()
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics)
	}
}

func TestRedeclarationInSameScope(t *testing.T) {
	res := analyze(t, "let x = 1; let x = 2; print(x);")
	errs := withCode(res, diagnostics.ErrRedeclared)
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "'x'") {
		t.Fatalf("expected one redeclaration error, got %v", res.Diagnostics)
	}

	res = analyze(t, "function f() {}\nfunction f() {}\nf();")
	if len(withCode(res, diagnostics.ErrRedeclared)) != 1 {
		t.Fatalf("expected function redeclaration error, got %v", res.Diagnostics)
	}
}

func TestShadowingWarnsAndResolvesInner(t *testing.T) {
	res := analyze(t, `let x = 1; { let x = "inner"; print(x); } print(x);`)
	warns := withCode(res, diagnostics.WarnShadow)
	if len(warns) != 1 {
		t.Fatalf("expected one shadowing warning, got %v", res.Diagnostics)
	}
	for _, d := range res.Diagnostics {
		if d.Severity == diagnostics.SeverityError {
			t.Errorf("shadowing must not be an error: %v", d)
		}
	}
}

func TestUnusedVariable(t *testing.T) {
	res := analyze(t, "let x = 1;")
	warns := withCode(res, diagnostics.WarnUnused)
	if len(warns) != 1 || !strings.Contains(warns[0].Message, "'x'") {
		t.Fatalf("expected one unused warning, got %v", res.Diagnostics)
	}

	res = analyze(t, "let x = 1; print(x);")
	if len(withCode(res, diagnostics.WarnUnused)) != 0 {
		t.Fatalf("used variable must not warn, got %v", res.Diagnostics)
	}
}

func TestUnusedWarningCanBeDisabled(t *testing.T) {
	off := false
	cfg := &config.Config{Warnings: config.WarningConfig{Unused: &off}}
	p := parser.New("let x = 1;")
	prog := p.ParseProgram()
	res := New(testRegistry, cfg).Analyze(prog)
	if len(withCode(res, diagnostics.WarnUnused)) != 0 {
		t.Fatalf("disabled unused warning still fired: %v", res.Diagnostics)
	}
}

func TestBlockScopeDoesNotLeak(t *testing.T) {
	res := analyze(t, "{ let x = 1; print(x); } print(x);")
	errs := withCode(res, diagnostics.ErrUndefined)
	if len(errs) != 1 {
		t.Fatalf("expected undefined error after block, got %v", res.Diagnostics)
	}
}

func TestNarrowingRoundTrip(t *testing.T) {
	src := `import { stat } from 'fs';
let a = stat("x");
if (a != null) {
	print(a.size);
} else {
	print(a.size);
}`
	res := analyze(t, src)

	for _, d := range res.Diagnostics {
		if d.Severity == diagnostics.SeverityError {
			t.Errorf("unexpected error: %v", d)
		}
	}
	warns := withCode(res, diagnostics.WarnNullAccess)
	if len(warns) != 1 {
		t.Fatalf("expected exactly one null-access warning (else branch), got %v", res.Diagnostics)
	}
	elseStart := strings.Index(src, "else")
	if warns[0].Start < elseStart {
		t.Errorf("warning at %d must be inside the else branch (>= %d)", warns[0].Start, elseStart)
	}
}

func TestModuleHandleInference(t *testing.T) {
	src := `import { open } from 'fs';
let f = open("a", "r");
if (f != null) {
	f.read();
}`
	res := analyze(t, src)
	expectClean(t, res)

	sym := res.SymbolTable.Lookup("f")
	if sym == nil {
		t.Fatalf("f must be force-published to the global scope")
	}
	if handle, ok := ts.HandleOf(sym.DeclaredType); !ok || handle != modules.FsFile {
		t.Errorf("f type = %s, want fs.file handle", ts.Describe(sym.DeclaredType))
	}
}

func TestUnknownHandleMethod(t *testing.T) {
	src := `import { open } from 'fs';
let f = open("a", "r");
if (f != null) {
	f.bogus();
}`
	res := analyze(t, src)
	errs := withCode(res, diagnostics.ErrUnknownMethod)
	if len(errs) != 1 || errs[0].Message != "Method 'bogus' does not exist on fs.file" {
		t.Fatalf("expected fs.file method error, got %v", res.Diagnostics)
	}
}

func TestImportValidation(t *testing.T) {
	res := analyze(t, `import { frobnicate } from 'fs';`)
	errs := withCode(res, diagnostics.ErrInvalidImport)
	if len(errs) != 1 {
		t.Fatalf("expected invalid import error, got %v", res.Diagnostics)
	}
	if !strings.Contains(errs[0].Message, "valid exports") || !strings.Contains(errs[0].Message, "open") {
		t.Errorf("message must list valid exports: %q", errs[0].Message)
	}

	// The bad specifier is not declared; later use reports undefined.
	res = analyze(t, `import { frobnicate } from 'fs';
frobnicate();`)
	if len(withCode(res, diagnostics.ErrUndefinedFunc)) != 1 {
		t.Fatalf("use of rejected import must be undefined, got %v", res.Diagnostics)
	}
}

func TestUnknownModule(t *testing.T) {
	res := analyze(t, `import { open } from 'nosuch';`)
	errs := withCode(res, diagnostics.ErrInvalidImport)
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "nosuch") {
		t.Fatalf("expected unknown module error, got %v", res.Diagnostics)
	}
}

func TestNamespaceImport(t *testing.T) {
	src := `import * as fs from 'fs';
let f = fs.open("a", "r");
if (f != null) {
	f.close();
}`
	res := analyze(t, src)
	expectClean(t, res)

	res = analyze(t, `import * as fs from 'fs';
fs.frobnicate();`)
	errs := withCode(res, diagnostics.ErrUnknownMethod)
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "frobnicate") {
		t.Fatalf("expected unknown module function error, got %v", res.Diagnostics)
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	res := analyze(t, "return 1;")
	if len(withCode(res, diagnostics.ErrBadReturn)) != 1 {
		t.Fatalf("expected bad-return error, got %v", res.Diagnostics)
	}
}

func TestBreakContinueLegality(t *testing.T) {
	res := analyze(t, "break;")
	if len(withCode(res, diagnostics.ErrBadBreak)) != 1 {
		t.Fatalf("expected bad-break error, got %v", res.Diagnostics)
	}

	res = analyze(t, "continue;")
	if len(withCode(res, diagnostics.ErrBadBreak)) != 1 {
		t.Fatalf("expected bad-continue error, got %v", res.Diagnostics)
	}

	expectClean(t, analyze(t, "while (true) { break; }"))
	expectClean(t, analyze(t, "for (let i = 0; i < 3; i++) { continue; }"))
	expectClean(t, analyze(t, `switch (1) { case 1: break; }`))
}

func TestRecursiveFunctionIsClean(t *testing.T) {
	src := `function fact(n) {
	if (n < 2) {
		return 1;
	}
	return n * fact(n - 1);
}
print(fact(5));`
	expectClean(t, analyze(t, src))
}

func TestFunctionReturnUnion(t *testing.T) {
	src := `function pick(c) {
	if (c) {
		return 1;
	}
	return "s";
}
let r = pick(true);
print(r);`
	res := analyze(t, src)
	expectClean(t, res)

	sym := res.SymbolTable.Lookup("r")
	if sym == nil {
		t.Fatalf("r missing from global scope")
	}
	if got := ts.Describe(sym.DeclaredType); got != "integer | string" {
		t.Errorf("r type = %s, want integer | string", got)
	}
}

func TestArrowBodiesAreAnalyzed(t *testing.T) {
	res := analyze(t, `let f = (a) => nope(a);
f(1);`)
	if len(withCode(res, diagnostics.ErrUndefinedFunc)) != 1 {
		t.Fatalf("arrow body must be analyzed, got %v", res.Diagnostics)
	}
}

func TestCatchParamScoped(t *testing.T) {
	res := analyze(t, `try { print(1); } catch (e) { print(e); }
print(e);`)
	if len(withCode(res, diagnostics.ErrUndefined)) != 1 {
		t.Fatalf("catch param must not leak, got %v", res.Diagnostics)
	}
}

func TestForInDeclaresLoopVariables(t *testing.T) {
	expectClean(t, analyze(t, `for (let k, v in { a: 1 }) { print(k, v); }`))

	res := analyze(t, "for (k in { a: 1 }) { print(k); }")
	if len(withCode(res, diagnostics.ErrUndefined)) != 1 {
		t.Fatalf("for-in over undeclared variable must error, got %v", res.Diagnostics)
	}
}

func TestMaxDiagnosticsCap(t *testing.T) {
	cfg := &config.Config{MaxDiagnostics: 1}
	p := parser.New("nope1(); nope2(); nope3();")
	prog := p.ParseProgram()
	res := New(testRegistry, cfg).Analyze(prog)
	if len(res.Diagnostics) != 1 {
		t.Fatalf("cap not applied: %d diagnostics", len(res.Diagnostics))
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	src := `import { open } from 'fs';
let f = open("a", "r");
if (f != null) {
	f.bogus();
}
let unused = 1;`
	p := parser.New(src)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}

	a := New(testRegistry, config.Default())
	first := a.Analyze(prog).Diagnostics
	second := a.Analyze(prog).Diagnostics
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated analysis differs:\n%v\n%v", first, second)
	}
}
