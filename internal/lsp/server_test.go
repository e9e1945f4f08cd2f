package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/ucodekit/ucls/internal/modules"
)

var testRegistry = modules.NewRegistry()

// frame encodes one client message with Content-Length framing.
func frame(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data)
}

// runSession feeds the framed messages through a server and returns the raw
// bodies of everything it wrote, in order.
func runSession(t *testing.T, messages ...any) []string {
	t.Helper()

	var in bytes.Buffer
	for _, m := range messages {
		in.WriteString(frame(t, m))
	}

	var out bytes.Buffer
	srv := NewServer(&in, &out, testRegistry)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var bodies []string
	rest := out.String()
	for rest != "" {
		sep := strings.Index(rest, "\r\n\r\n")
		if sep < 0 {
			t.Fatalf("unterminated frame: %q", rest)
		}
		header := rest[:sep]
		var length int
		if _, err := fmt.Sscanf(header, "Content-Length: %d", &length); err != nil {
			t.Fatalf("bad frame header %q: %v", header, err)
		}
		body := rest[sep+4 : sep+4+length]
		bodies = append(bodies, body)
		rest = rest[sep+4+length:]
	}
	return bodies
}

func initializeMsg() RequestMessage {
	return RequestMessage{Jsonrpc: "2.0", ID: 1, Method: "initialize", Params: InitializeParams{}}
}

func didOpenMsg(uri, text string) NotificationMessage {
	return NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/didOpen",
		Params: DidOpenTextDocumentParams{
			TextDocument: TextDocumentItem{URI: uri, LanguageID: "ucode", Version: 1, Text: text},
		},
	}
}

func exitMsg() NotificationMessage {
	return NotificationMessage{Jsonrpc: "2.0", Method: "exit"}
}

func bodyWith(t *testing.T, bodies []string, substr string) string {
	t.Helper()
	for _, b := range bodies {
		if strings.Contains(b, substr) {
			return b
		}
	}
	t.Fatalf("no message containing %q in %v", substr, bodies)
	return ""
}

func TestInitializeHandshake(t *testing.T) {
	bodies := runSession(t, initializeMsg(), exitMsg())

	body := bodyWith(t, bodies, "capabilities")
	var resp struct {
		Result InitializeResult `json:"result"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatal(err)
	}
	caps := resp.Result.Capabilities
	if caps.TextDocumentSync != TextDocumentSyncFull {
		t.Errorf("sync kind = %d, want full", caps.TextDocumentSync)
	}
	if !caps.HoverProvider || !caps.WorkspaceSymbolProvider {
		t.Errorf("missing capabilities: %+v", caps)
	}
	if resp.Result.ServerInfo.Name != "ucls" {
		t.Errorf("server name = %q", resp.Result.ServerInfo.Name)
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	src := "print(nothere);"
	bodies := runSession(t, initializeMsg(), didOpenMsg("file:///x.uc", src), exitMsg())

	body := bodyWith(t, bodies, "publishDiagnostics")
	var note struct {
		Params PublishDiagnosticsParams `json:"params"`
	}
	if err := json.Unmarshal([]byte(body), &note); err != nil {
		t.Fatal(err)
	}
	if note.Params.URI != "file:///x.uc" {
		t.Errorf("uri = %q", note.Params.URI)
	}
	if len(note.Params.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", note.Params.Diagnostics)
	}
	d := note.Params.Diagnostics[0]
	if d.Code != "U002" || d.Severity != SeverityError {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Range.Start.Line != 0 || d.Range.Start.Character != 6 {
		t.Errorf("range = %+v", d.Range)
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	closeMsg := NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/didClose",
		Params:  DidCloseTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: "file:///x.uc"}},
	}
	bodies := runSession(t, initializeMsg(), didOpenMsg("file:///x.uc", "print(nothere);"), closeMsg, exitMsg())

	var publishes []PublishDiagnosticsParams
	for _, b := range bodies {
		if !strings.Contains(b, "publishDiagnostics") {
			continue
		}
		var note struct {
			Params PublishDiagnosticsParams `json:"params"`
		}
		if err := json.Unmarshal([]byte(b), &note); err != nil {
			t.Fatal(err)
		}
		publishes = append(publishes, note.Params)
	}
	if len(publishes) != 2 {
		t.Fatalf("expected publish on open and clear on close, got %d", len(publishes))
	}
	if len(publishes[1].Diagnostics) != 0 {
		t.Errorf("close must clear diagnostics, got %v", publishes[1].Diagnostics)
	}
}

func TestHoverShowsInferredType(t *testing.T) {
	src := `import { open } from 'fs';
let f = open("x", "r");
print(f);`
	hover := RequestMessage{
		Jsonrpc: "2.0",
		ID:      2,
		Method:  "textDocument/hover",
		Params: HoverParams{
			TextDocument: TextDocumentIdentifier{URI: "file:///x.uc"},
			Position:     Position{Line: 1, Character: 4},
		},
	}
	bodies := runSession(t, initializeMsg(), didOpenMsg("file:///x.uc", src), hover, exitMsg())

	body := bodyWith(t, bodies, "fs.file | null")
	if !strings.Contains(body, "```ucode") {
		t.Errorf("hover body not markdown-fenced: %s", body)
	}
}

func TestCompletionAfterDot(t *testing.T) {
	src := `import { open } from 'fs';
let f = open("x", "r");
print(f.read);`
	completion := RequestMessage{
		Jsonrpc: "2.0",
		ID:      3,
		Method:  "textDocument/completion",
		Params: CompletionParams{
			TextDocument: TextDocumentIdentifier{URI: "file:///x.uc"},
			Position:     Position{Line: 2, Character: 8},
		},
	}
	bodies := runSession(t, initializeMsg(), didOpenMsg("file:///x.uc", src), completion, exitMsg())

	body := bodyWith(t, bodies, `"items"`)
	var resp struct {
		Result CompletionList `json:"result"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, item := range resp.Result.Items {
		labels = append(labels, item.Label)
	}
	joined := strings.Join(labels, " ")
	if !strings.Contains(joined, "read") || !strings.Contains(joined, "close") {
		t.Errorf("handle method completions missing: %v", labels)
	}
}

func TestDocumentSymbols(t *testing.T) {
	src := `function greet(name) {
	return name;
}
let count = greet("x");
print(count);`
	req := RequestMessage{
		Jsonrpc: "2.0",
		ID:      4,
		Method:  "textDocument/documentSymbol",
		Params:  DocumentSymbolParams{TextDocument: TextDocumentIdentifier{URI: "file:///x.uc"}},
	}
	bodies := runSession(t, initializeMsg(), didOpenMsg("file:///x.uc", src), req, exitMsg())

	body := bodyWith(t, bodies, "greet")
	var resp struct {
		Result []SymbolInformation `json:"result"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatal(err)
	}
	kinds := map[string]SymbolKind{}
	for _, s := range resp.Result {
		kinds[s.Name] = s.Kind
	}
	if kinds["greet"] != SymbolKindFunction {
		t.Errorf("greet kind = %d", kinds["greet"])
	}
	if kinds["count"] != SymbolKindVariable {
		t.Errorf("count kind = %d", kinds["count"])
	}
}

func TestWorkspaceSymbolQuery(t *testing.T) {
	src := `function greet(name) {
	return name;
}
greet("x");`
	req := RequestMessage{
		Jsonrpc: "2.0",
		ID:      5,
		Method:  "workspace/symbol",
		Params:  WorkspaceSymbolParams{Query: "gre"},
	}
	bodies := runSession(t, initializeMsg(), didOpenMsg("file:///x.uc", src), req, exitMsg())

	found := false
	for _, b := range bodies {
		var resp struct {
			ID     any                 `json:"id"`
			Result []SymbolInformation `json:"result"`
		}
		if err := json.Unmarshal([]byte(b), &resp); err != nil {
			continue
		}
		for _, s := range resp.Result {
			if s.Name == "greet" && s.Kind == SymbolKindFunction {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("workspace symbol query did not return greet: %v", bodies)
	}
}

func TestUnknownMethodGetsError(t *testing.T) {
	req := RequestMessage{Jsonrpc: "2.0", ID: 9, Method: "textDocument/rename"}
	bodies := runSession(t, initializeMsg(), req, exitMsg())
	bodyWith(t, bodies, "method not found")
}
