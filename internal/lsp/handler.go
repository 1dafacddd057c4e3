// Package lsp implements a language server publishing parse errors and
// analyzer warnings for open Tact documents.
package lsp

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tactscan/internal/config"
	"tactscan/internal/driver"
	"tactscan/internal/parser"
)

var log = commonlog.GetLogger("tactscan.lsp")

// Define the set of supported semantic token types (as required by the protocol)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"operator",
	"modifier",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration, readonly, etc.)
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// TactHandler implements the LSP server handlers for Tact sources
type TactHandler struct {
	config *config.Config

	mu      sync.RWMutex
	content map[string]string
	// published remembers which files got diagnostics for each analyzed
	// document, so they can be cleared when the problems are gone.
	published map[string][]string
}

// NewTactHandler creates a handler analyzing documents with cfg
func NewTactHandler(cfg *config.Config) *TactHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &TactHandler{
		config:    cfg,
		content:   make(map[string]string),
		published: make(map[string][]string),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *TactHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
				Save:      true,
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *TactHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *TactHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *TactHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen analyzes a newly opened document
func (h *TactHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.content[path] = params.TextDocument.Text
	h.mu.Unlock()

	return h.analyze(ctx, path)
}

// TextDocumentDidChange reanalyzes a document. Only full document sync is
// advertised, so the last change holds the whole text.
func (h *TactHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			h.mu.Lock()
			h.content[path] = whole.Text
			h.mu.Unlock()
		}
	}

	return h.analyze(ctx, path)
}

func (h *TactHandler) TextDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	return h.analyze(ctx, path)
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *TactHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	files := h.published[path]
	delete(h.content, path)
	delete(h.published, path)
	h.mu.Unlock()

	for _, file := range files {
		sendDiagnosticNotification(ctx, pathToURI(file), []protocol.Diagnostic{})
	}
	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *TactHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	src, err := h.source(path)
	if err != nil {
		return nil, err
	}
	file, _, _ := parser.ParseSource(path, src)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range collectSemanticTokens(file) {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

func (h *TactHandler) source(path string) (string, error) {
	h.mu.RLock()
	src, ok := h.content[path]
	h.mu.RUnlock()
	if ok {
		return src, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// analyze runs the analyzer on the document as a single-contract project,
// with every open document read from the editor buffers.
func (h *TactHandler) analyze(ctx *glsp.Context, path string) error {
	projects, err := config.FromContract(path)
	if err != nil {
		return err
	}

	d := driver.New(h.config, projects)
	h.mu.RLock()
	for p, src := range h.content {
		d.WithOverlay(p, src)
	}
	h.mu.RUnlock()

	res, err := d.Run(context.Background())
	if err != nil {
		// The document is still shown; the failure is the server's, not a
		// problem in the source.
		log.Errorf("analyzing %s: %s", path, err)
		return nil
	}

	byFile := ConvertResult(res)

	h.mu.Lock()
	stale := h.published[path]
	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	h.published[path] = files
	h.mu.Unlock()

	for _, file := range stale {
		if _, ok := byFile[file]; !ok {
			sendDiagnosticNotification(ctx, pathToURI(file), []protocol.Diagnostic{})
		}
	}
	for file, diagnostics := range byFile {
		sendDiagnosticNotification(ctx, pathToURI(file), diagnostics)
	}
	return nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func pathToURI(path string) protocol.DocumentUri {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String()
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
