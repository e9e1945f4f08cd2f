package lsp

import "testing"

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := OpenIndex("")
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestIndexUpdateAndQuery(t *testing.T) {
	ix := openTestIndex(t)

	err := ix.Update("file:///a.uc", []IndexedSymbol{
		{URI: "file:///a.uc", Name: "parseLine", Kind: SymbolKindFunction, Start: 9, End: 18},
		{URI: "file:///a.uc", Name: "total", Kind: SymbolKindVariable, Start: 40, End: 45},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := ix.Query("parse")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].Name != "parseLine" || got[0].Kind != SymbolKindFunction {
		t.Fatalf("Query(parse) = %v", got)
	}

	all, err := ix.Query("")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("empty query must match everything, got %v", all)
	}
}

func TestIndexUpdateReplacesDocument(t *testing.T) {
	ix := openTestIndex(t)

	uri := "file:///a.uc"
	if err := ix.Update(uri, []IndexedSymbol{{URI: uri, Name: "old", Kind: SymbolKindVariable}}); err != nil {
		t.Fatal(err)
	}
	if err := ix.Update(uri, []IndexedSymbol{{URI: uri, Name: "new", Kind: SymbolKindVariable}}); err != nil {
		t.Fatal(err)
	}

	if got, _ := ix.Query("old"); len(got) != 0 {
		t.Errorf("stale symbol survived update: %v", got)
	}
	if got, _ := ix.Query("new"); len(got) != 1 {
		t.Errorf("replacement symbol missing: %v", got)
	}
}

func TestIndexRemove(t *testing.T) {
	ix := openTestIndex(t)

	if err := ix.Update("file:///a.uc", []IndexedSymbol{{URI: "file:///a.uc", Name: "f", Kind: SymbolKindFunction}}); err != nil {
		t.Fatal(err)
	}
	if err := ix.Remove("file:///a.uc"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, _ := ix.Query(""); len(got) != 0 {
		t.Errorf("symbols survived removal: %v", got)
	}
}
