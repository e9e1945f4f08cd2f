package lsp

import (
	"fmt"

	"github.com/ucodekit/ucls/internal/builtins"
	"github.com/ucodekit/ucls/internal/diagnostics"
	"github.com/ucodekit/ucls/internal/pipeline"
	"github.com/ucodekit/ucls/internal/symbols"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

func (s *Server) publishDiagnostics(uri string, doc *document) error {
	content, ctx := doc.snapshotOf()
	if ctx == nil {
		return nil
	}

	items := []Diagnostic{}
	for _, d := range ctx.Report() {
		severity := SeverityError
		if d.Severity == diagnostics.SeverityWarning {
			severity = SeverityWarning
		}
		items = append(items, Diagnostic{
			Range:    RangeFor(content, d.Start, d.End),
			Severity: severity,
			Code:     string(d.Code),
			Message:  d.Message,
			Source:   "ucls",
			Data:     d.Data,
		})
	}

	return s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: items,
	})
}

func (s *Server) handleHover(id any, params HoverParams) error {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResult(id, nil)
	}
	content, ctx := doc.snapshotOf()
	if ctx == nil || ctx.Table == nil {
		return s.sendResult(id, nil)
	}

	offset := PositionToOffset(content, params.Position)
	word, start, end := WordAt(content, offset)
	if word == "" {
		return s.sendResult(id, nil)
	}

	value := ""
	if sym := ctx.Table.Lookup(word); sym != nil {
		value = describeSymbol(sym)
	} else if sig, ok := builtins.Lookup(word); ok {
		value = fmt.Sprintf("function %s(...): %s", word, ts.Describe(sig.Return))
	}
	if value == "" {
		return s.sendResult(id, nil)
	}

	rng := RangeFor(content, start, end)
	return s.sendResult(id, Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: fmt.Sprintf("```ucode\n%s\n```", value),
		},
		Range: &rng,
	})
}

func describeSymbol(sym *symbols.Symbol) string {
	switch sym.Kind {
	case symbols.FunctionSymbol:
		return fmt.Sprintf("function %s", sym.Name)
	case symbols.BuiltinSymbol:
		return fmt.Sprintf("function %s (builtin)", sym.Name)
	case symbols.ImportedSymbol:
		return fmt.Sprintf("function %s (from '%s')", sym.Name, sym.ImportedFrom)
	case symbols.ModuleSymbol:
		return fmt.Sprintf("module %s", sym.ImportedFrom)
	default:
		return fmt.Sprintf("%s %s: %s", sym.Kind, sym.Name, ts.Describe(sym.EffectiveType()))
	}
}

func (s *Server) handleDefinition(id any, params DefinitionParams) error {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResult(id, nil)
	}
	content, ctx := doc.snapshotOf()
	if ctx == nil || ctx.Table == nil {
		return s.sendResult(id, nil)
	}

	offset := PositionToOffset(content, params.Position)
	word, _, _ := WordAt(content, offset)
	if word == "" {
		return s.sendResult(id, nil)
	}

	sym := ctx.Table.Lookup(word)
	if sym == nil || sym.Kind == symbols.BuiltinSymbol {
		return s.sendResult(id, nil)
	}

	return s.sendResult(id, Location{
		URI:   params.TextDocument.URI,
		Range: RangeFor(content, sym.DeclaredAt, sym.DeclaredAt+len(sym.Name)),
	})
}

func (s *Server) handleCompletion(id any, params CompletionParams) error {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResult(id, CompletionList{Items: []CompletionItem{}})
	}
	content, ctx := doc.snapshotOf()
	if ctx == nil || ctx.Table == nil {
		return s.sendResult(id, CompletionList{Items: []CompletionItem{}})
	}

	offset := PositionToOffset(content, params.Position)
	if base, ok := MemberBase(content, offset); ok {
		return s.sendResult(id, CompletionList{Items: s.memberCompletions(ctx, base)})
	}

	items := []CompletionItem{}
	for _, sym := range ctx.Table.GlobalSymbols() {
		if sym.Kind == symbols.BuiltinSymbol {
			continue
		}
		items = append(items, CompletionItem{
			Label:  sym.Name,
			Kind:   completionKind(sym.Kind),
			Detail: ts.Describe(sym.EffectiveType()),
		})
	}
	for _, name := range builtins.Names() {
		detail := ""
		if sig, ok := builtins.Lookup(name); ok {
			detail = ts.Describe(sig.Return)
		}
		items = append(items, CompletionItem{
			Label:  name,
			Kind:   CompletionItemFunction,
			Detail: detail,
		})
	}
	return s.sendResult(id, CompletionList{Items: items})
}

// memberCompletions resolves `base.` completions: handle methods for module
// handle variables, exported functions for namespace imports.
func (s *Server) memberCompletions(ctx *pipeline.Context, base string) []CompletionItem {
	sym := ctx.Table.Lookup(base)
	if sym == nil {
		return []CompletionItem{}
	}

	if handle, ok := ts.HandleOf(sym.EffectiveType()); ok {
		items := []CompletionItem{}
		for _, method := range s.registry.HandleMethods(handle) {
			detail := ""
			if sig, ok := s.registry.HandleMethod(handle, method); ok {
				detail = ts.Describe(sig.Return)
			}
			items = append(items, CompletionItem{
				Label:  method,
				Kind:   CompletionItemMethod,
				Detail: detail,
			})
		}
		return items
	}

	if sym.Kind == symbols.ModuleSymbol {
		items := []CompletionItem{}
		for _, name := range s.registry.ValidImports(sym.ImportedFrom) {
			detail := ""
			if sig, ok := s.registry.FunctionSignature(sym.ImportedFrom, name); ok {
				detail = ts.Describe(sig.Return)
			}
			items = append(items, CompletionItem{
				Label:  name,
				Kind:   CompletionItemFunction,
				Detail: detail,
			})
		}
		return items
	}

	return []CompletionItem{}
}

func completionKind(kind symbols.Kind) CompletionItemKind {
	switch kind {
	case symbols.FunctionSymbol, symbols.ImportedSymbol:
		return CompletionItemFunction
	case symbols.ModuleSymbol:
		return CompletionItemModule
	default:
		return CompletionItemVariable
	}
}

func (s *Server) handleDocumentSymbol(id any, params DocumentSymbolParams) error {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResult(id, []SymbolInformation{})
	}
	content, ctx := doc.snapshotOf()
	if ctx == nil || ctx.Table == nil {
		return s.sendResult(id, []SymbolInformation{})
	}

	items := []SymbolInformation{}
	for _, is := range indexableSymbols(params.TextDocument.URI, ctx) {
		items = append(items, SymbolInformation{
			Name: is.Name,
			Kind: is.Kind,
			Location: Location{
				URI:   is.URI,
				Range: RangeFor(content, is.Start, is.End),
			},
		})
	}
	return s.sendResult(id, items)
}

func (s *Server) handleWorkspaceSymbol(id any, params WorkspaceSymbolParams) error {
	if s.index == nil {
		return s.sendResult(id, []SymbolInformation{})
	}
	matches, err := s.index.Query(params.Query)
	if err != nil {
		return s.sendError(id, codeInvalidParams, err.Error())
	}

	items := []SymbolInformation{}
	for _, m := range matches {
		rng := Range{}
		if doc := s.document(m.URI); doc != nil {
			content, _ := doc.snapshotOf()
			rng = RangeFor(content, m.Start, m.End)
		}
		items = append(items, SymbolInformation{
			Name:     m.Name,
			Kind:     m.Kind,
			Location: Location{URI: m.URI, Range: rng},
		})
	}
	return s.sendResult(id, items)
}

// indexableSymbols lists the document's workspace-visible symbols: every
// global declaration except the builtin prelude.
func indexableSymbols(uri string, ctx *pipeline.Context) []IndexedSymbol {
	if ctx.Table == nil {
		return nil
	}
	var out []IndexedSymbol
	for _, sym := range ctx.Table.GlobalSymbols() {
		if sym.Kind == symbols.BuiltinSymbol {
			continue
		}
		out = append(out, IndexedSymbol{
			URI:   uri,
			Name:  sym.Name,
			Kind:  symbolKind(sym.Kind),
			Start: sym.DeclaredAt,
			End:   sym.DeclaredAt + len(sym.Name),
		})
	}
	return out
}

func symbolKind(kind symbols.Kind) SymbolKind {
	switch kind {
	case symbols.FunctionSymbol, symbols.ImportedSymbol:
		return SymbolKindFunction
	case symbols.ModuleSymbol:
		return SymbolKindModule
	default:
		return SymbolKindVariable
	}
}
