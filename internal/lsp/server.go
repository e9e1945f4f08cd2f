package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ucodekit/ucls/internal/config"
	"github.com/ucodekit/ucls/internal/modules"
	"github.com/ucodekit/ucls/internal/pipeline"
)

// Version is reported to clients during initialize.
const Version = "0.3.0"

// document is the server-side state of one open file. Snapshot identifies
// the analysis the stored context came from; log lines carry it so a
// diagnostic report can be matched to the exact analysis run.
type document struct {
	mu       sync.RWMutex
	content  string
	version  int
	snapshot string
	ctx      *pipeline.Context
}

// Server speaks LSP over a Content-Length framed JSON-RPC stream, stdio in
// production. Documents are synced whole (full sync), analyzed on every
// change and their diagnostics pushed to the client.
type Server struct {
	mu        sync.RWMutex
	documents map[string]*document

	reader io.Reader
	writer io.Writer
	wmu    sync.Mutex

	registry *modules.Registry
	cfg      *config.Config
	rootPath string
	index    *Index

	shutdown bool
}

// NewServer creates a server reading requests from r and writing responses
// to w. The module registry is shared across all documents.
func NewServer(r io.Reader, w io.Writer, registry *modules.Registry) *Server {
	return &Server{
		documents: make(map[string]*document),
		reader:    r,
		writer:    w,
		registry:  registry,
		cfg:       config.Default(),
	}
}

// Start runs the read loop until the stream closes or an exit notification
// arrives. It returns the error that terminated the loop, nil on EOF.
func (s *Server) Start() error {
	defer func() {
		if s.index != nil {
			s.index.Close()
		}
	}()

	reader := bufio.NewReader(s.reader)
	for {
		content, err := readMessage(reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if content == nil {
			continue
		}
		exit, err := s.handleMessage(content)
		if err != nil {
			log.Printf("lsp: %v", err)
		}
		if exit {
			return nil
		}
	}
}

// readMessage reads one Content-Length framed message. A nil, nil return
// means a frame without a recognized header was skipped.
func readMessage(reader *bufio.Reader) ([]byte, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, nil
	}
	if !strings.HasPrefix(line, "Content-Length: ") {
		return nil, nil
	}
	length, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
	if err != nil {
		return nil, fmt.Errorf("bad Content-Length: %w", err)
	}

	// Consume remaining headers up to the blank separator line.
	for {
		sep, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if strings.TrimRight(sep, "\r\n") == "" {
			break
		}
	}

	content := make([]byte, length)
	if _, err := io.ReadFull(reader, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *Server) handleMessage(content []byte) (exit bool, err error) {
	var base struct {
		ID     any             `json:"id,omitempty"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params,omitempty"`
	}
	if err := json.Unmarshal(content, &base); err != nil {
		return false, fmt.Errorf("unmarshal message: %w", err)
	}

	if base.ID != nil {
		return false, s.handleRequest(base.ID, base.Method, base.Params)
	}
	return s.handleNotification(base.Method, base.Params)
}

func (s *Server) handleRequest(id any, method string, params json.RawMessage) error {
	switch method {
	case "initialize":
		var p InitializeParams
		if err := json.Unmarshal(params, &p); err != nil {
			return s.sendError(id, codeInvalidParams, err.Error())
		}
		return s.handleInitialize(id, p)

	case "shutdown":
		s.shutdown = true
		return s.sendResult(id, nil)

	case "textDocument/hover":
		var p HoverParams
		if err := json.Unmarshal(params, &p); err != nil {
			return s.sendError(id, codeInvalidParams, err.Error())
		}
		return s.handleHover(id, p)

	case "textDocument/definition":
		var p DefinitionParams
		if err := json.Unmarshal(params, &p); err != nil {
			return s.sendError(id, codeInvalidParams, err.Error())
		}
		return s.handleDefinition(id, p)

	case "textDocument/completion":
		var p CompletionParams
		if err := json.Unmarshal(params, &p); err != nil {
			return s.sendError(id, codeInvalidParams, err.Error())
		}
		return s.handleCompletion(id, p)

	case "textDocument/documentSymbol":
		var p DocumentSymbolParams
		if err := json.Unmarshal(params, &p); err != nil {
			return s.sendError(id, codeInvalidParams, err.Error())
		}
		return s.handleDocumentSymbol(id, p)

	case "workspace/symbol":
		var p WorkspaceSymbolParams
		if err := json.Unmarshal(params, &p); err != nil {
			return s.sendError(id, codeInvalidParams, err.Error())
		}
		return s.handleWorkspaceSymbol(id, p)

	default:
		return s.sendError(id, codeMethodNotFound, fmt.Sprintf("method not found: %s", method))
	}
}

func (s *Server) handleNotification(method string, params json.RawMessage) (exit bool, err error) {
	switch method {
	case "initialized":
		return false, nil

	case "textDocument/didOpen":
		var p DidOpenTextDocumentParams
		if err := json.Unmarshal(params, &p); err != nil {
			return false, err
		}
		return false, s.handleDidOpen(p)

	case "textDocument/didChange":
		var p DidChangeTextDocumentParams
		if err := json.Unmarshal(params, &p); err != nil {
			return false, err
		}
		return false, s.handleDidChange(p)

	case "textDocument/didClose":
		var p DidCloseTextDocumentParams
		if err := json.Unmarshal(params, &p); err != nil {
			return false, err
		}
		return false, s.handleDidClose(p)

	case "exit":
		return true, nil

	default:
		return false, nil
	}
}

func (s *Server) handleInitialize(id any, params InitializeParams) error {
	root := ""
	if params.RootURI != nil {
		root = uriToPath(*params.RootURI)
	} else if params.RootPath != nil {
		root = *params.RootPath
	}
	s.rootPath = root

	if root != "" {
		if cfg, err := config.Load(root); err != nil {
			log.Printf("lsp: config: %v", err)
		} else {
			s.cfg = cfg
		}
	}

	indexPath := ""
	if root != "" {
		indexPath = filepath.Join(root, ".ucls", "index.db")
	}
	index, err := OpenIndex(indexPath)
	if err != nil {
		log.Printf("lsp: symbol index unavailable: %v", err)
	} else {
		s.index = index
	}

	return s.sendResult(id, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:   TextDocumentSyncFull,
			HoverProvider:      true,
			DefinitionProvider: true,
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{"."},
			},
			DocumentSymbolProvider:  true,
			WorkspaceSymbolProvider: true,
		},
		ServerInfo: ServerInfo{Name: "ucls", Version: Version},
	})
}

func (s *Server) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc := &document{
		content: params.TextDocument.Text,
		version: params.TextDocument.Version,
	}
	s.mu.Lock()
	s.documents[uri] = doc
	s.mu.Unlock()

	s.analyze(uri, doc)
	return s.publishDiagnostics(uri, doc)
}

func (s *Server) handleDidChange(params DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := params.TextDocument.URI
	doc := s.document(uri)
	if doc == nil {
		return fmt.Errorf("document %s not open", uri)
	}

	// Full sync: the last change event carries the whole document.
	doc.mu.Lock()
	doc.content = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.version = params.TextDocument.Version
	doc.mu.Unlock()

	s.analyze(uri, doc)
	return s.publishDiagnostics(uri, doc)
}

func (s *Server) handleDidClose(params DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()

	if s.index != nil {
		if err := s.index.Remove(uri); err != nil {
			log.Printf("lsp: index remove %s: %v", uri, err)
		}
	}

	// Clear the client's diagnostics for the closed file.
	return s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
}

// analyze runs the pipeline over the document's current content and stores
// the result under a fresh snapshot id, then refreshes the symbol index.
func (s *Server) analyze(uri string, doc *document) {
	doc.mu.RLock()
	content := doc.content
	doc.mu.RUnlock()

	ctx := pipeline.Analyze(content, s.registry, s.cfg)
	ctx.FilePath = uriToPath(uri)
	snapshot := uuid.NewString()

	doc.mu.Lock()
	doc.ctx = ctx
	doc.snapshot = snapshot
	doc.mu.Unlock()

	log.Printf("lsp: analyzed %s snapshot=%s diagnostics=%d", uri, snapshot, len(ctx.Report()))

	if s.index != nil {
		if err := s.index.Update(uri, indexableSymbols(uri, ctx)); err != nil {
			log.Printf("lsp: index update %s: %v", uri, err)
		}
	}
}

func (s *Server) document(uri string) *document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[uri]
}

// snapshotOf returns a consistent (content, context) pair for read handlers.
func (doc *document) snapshotOf() (string, *pipeline.Context) {
	doc.mu.RLock()
	defer doc.mu.RUnlock()
	return doc.content, doc.ctx
}

func (s *Server) sendResult(id any, result any) error {
	return s.send(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id any, code int, message string) error {
	return s.send(ResponseMessage{Jsonrpc: "2.0", ID: id, Error: &Error{Code: code, Message: message}})
}

func (s *Server) sendNotification(method string, params any) error {
	return s.send(NotificationMessage{Jsonrpc: "2.0", Method: method, Params: params})
}

func (s *Server) send(message any) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
