package modules

import (
	"testing"

	ts "github.com/ucodekit/ucls/internal/typesystem"
)

func TestValidImports(t *testing.T) {
	r := NewRegistry()

	if !r.IsValidImport("fs", "open") {
		t.Errorf("fs must export open")
	}
	if r.IsValidImport("fs", "bogus") {
		t.Errorf("fs must not export bogus")
	}
	if r.IsValidImport("nosuch", "open") {
		t.Errorf("unknown module must reject all imports")
	}

	exports := r.ValidImports("struct")
	want := []string{"new", "pack", "unpack"}
	if len(exports) != len(want) {
		t.Fatalf("struct exports = %v, want %v", exports, want)
	}
	for i := range want {
		if exports[i] != want[i] {
			t.Fatalf("struct exports = %v, want %v", exports, want)
		}
	}
}

func TestFactorySignaturesReturnHandles(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		module, fn, handle string
	}{
		{"fs", "open", FsFile},
		{"fs", "opendir", FsDir},
		{"fs", "popen", FsProc},
		{"uloop", "timer", UloopTimer},
		{"socket", "connect", SocketSocket},
		{"struct", "new", StructInstance},
	}

	for _, tt := range tests {
		sig, ok := r.FunctionSignature(tt.module, tt.fn)
		if !ok {
			t.Fatalf("%s.%s missing", tt.module, tt.fn)
		}
		found := false
		for _, d := range ts.TypesOf(sig.Return) {
			if d == ts.Object {
				found = true
			}
		}
		if !found {
			t.Errorf("%s.%s return %s should include an object handle", tt.module, tt.fn, ts.Describe(sig.Return))
		}
		if !r.IsHandleType(tt.handle) {
			t.Errorf("handle type %s not registered", tt.handle)
		}
	}
}

func TestHandleMethods(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.HandleMethod(FsFile, "read"); !ok {
		t.Errorf("fs.file must have a read method")
	}
	if _, ok := r.HandleMethod(FsFile, "bogus"); ok {
		t.Errorf("fs.file must not have a bogus method")
	}
	if _, ok := r.HandleMethod("no.such", "read"); ok {
		t.Errorf("unknown handle type must have no methods")
	}

	methods := r.HandleMethods(FsDir)
	if len(methods) == 0 {
		t.Fatalf("fs.dir must list methods")
	}
	for i := 1; i < len(methods); i++ {
		if methods[i-1] >= methods[i] {
			t.Errorf("method list must be sorted: %v", methods)
		}
	}
}
