package builtins

import (
	"sort"
	"testing"

	"github.com/ucodekit/ucls/internal/symbols"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

func TestTableCoversAllPrimitiveGroups(t *testing.T) {
	groups := map[string][]string{
		"string":   {"length", "substr", "split", "sprintf", "uchr"},
		"array":    {"push", "splice", "uniq"},
		"object":   {"keys", "exists", "proto"},
		"math":     {"abs", "ceil", "floor", "pow", "sqrt", "rand", "srand", "isnan"},
		"time":     {"time", "clock", "timelocal", "timegm"},
		"encoding": {"b64enc", "b64dec", "hexenc", "hexdec", "iptoarr", "arrtoip"},
	}
	for group, names := range groups {
		for _, name := range names {
			if _, ok := Lookup(name); !ok {
				t.Errorf("%s builtin %q is not registered", group, name)
			}
		}
	}
	if n := len(Names()); n < 80 {
		t.Errorf("table holds %d signatures, want at least 80", n)
	}
}

func TestMathSignatures(t *testing.T) {
	tests := []struct {
		name     string
		required int
		ret      string
	}{
		{"pow", 2, "double"},
		{"sqrt", 1, "double"},
		{"atan2", 2, "double"},
		{"floor", 1, "double | integer"},
		{"rand", 0, "integer"},
		{"isnan", 1, "boolean"},
	}
	for _, tt := range tests {
		sig, ok := Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) missing", tt.name)
			continue
		}
		if sig.Required != tt.required {
			t.Errorf("%s: required = %d, want %d", tt.name, sig.Required, tt.required)
		}
		if got := ts.Describe(sig.Return); got != tt.ret {
			t.Errorf("%s: return = %q, want %q", tt.name, got, tt.ret)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() is not sorted: %v", names)
	}
}

func TestRegisterSeedsLanguageGlobals(t *testing.T) {
	st := symbols.New()
	Register(st)

	for _, name := range []string{"ARGV", "SCRIPT_NAME", "REQUIRE_SEARCH_PATH", "global", "NaN", "Infinity"} {
		if st.Lookup(name) == nil {
			t.Errorf("global %q is not declared", name)
		}
	}
	if sym := st.Lookup("print"); sym == nil || sym.Kind != symbols.BuiltinSymbol {
		t.Errorf("builtin print not seeded as a builtin symbol")
	}
}
