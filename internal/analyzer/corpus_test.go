package analyzer

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/ucodekit/ucls/internal/config"
	"github.com/ucodekit/ucls/internal/parser"
)

// The corpus archives under testdata each hold one source file and the
// diagnostic codes it must produce, in position order. Codes only: messages
// and spans are covered by the focused tests above.
func TestCorpus(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no corpus archives found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			arch, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}

			var src string
			var want []string
			for _, f := range arch.Files {
				switch f.Name {
				case "input.uc":
					src = string(f.Data)
				case "codes":
					for _, line := range strings.Split(string(f.Data), "\n") {
						if line = strings.TrimSpace(line); line != "" {
							want = append(want, line)
						}
					}
				}
			}
			if src == "" {
				t.Fatalf("%s has no input.uc section", file)
			}

			p := parser.New(src)
			prog := p.ParseProgram()
			if len(p.Errors()) != 0 {
				t.Fatalf("parse errors: %v", p.Errors())
			}

			res := New(testRegistry, config.Default()).Analyze(prog)
			var got []string
			for _, d := range res.Diagnostics {
				got = append(got, string(d.Code))
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("diagnostic codes = %v, want %v\nall: %v", got, want, res.Diagnostics)
			}
		})
	}
}
