package analyzer

import (
	"testing"

	"github.com/ucodekit/ucls/internal/config"
	"github.com/ucodekit/ucls/internal/parser"
)

// FuzzAnalyze drives arbitrary input through the full parse-and-analyze
// path. Whatever the input, the pipeline must terminate without panicking
// and every diagnostic must carry a sane span.
func FuzzAnalyze(f *testing.F) {
	seeds := []string{
		"",
		"let x = 1; print(x);",
		"import { open } from 'fs';\nlet f = open(\"a\", \"r\");\nif (f != null) { f.read(); }",
		"function f(a, b) { return a + b; }",
		"for (let k, v in { a: 1 }) { print(k, v); }",
		"let r = /ab+c/i;",
		"if (type(x) == 'int') { x + 1; }",
		"let = ;;; } ) ( {",
		"x?.y?.z ?? 0",
		"'unterminated",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		p := parser.New(src)
		prog := p.ParseProgram()
		if prog == nil {
			return
		}
		res := New(testRegistry, config.Default()).Analyze(prog)
		for _, d := range res.Diagnostics {
			if d.Start < 0 || d.End < d.Start {
				t.Errorf("diagnostic with inverted span %d..%d: %v", d.Start, d.End, d)
			}
		}
	})
}
