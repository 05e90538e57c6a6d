package languageServer

import (
	"context"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/util"
)

type document struct {
	TextDocumentItem
	lastAssembledResult *assembler.AssembledResult
}

// documentStore holds the open documents of one connection, by uri.
type documentStore struct {
	mu   sync.Mutex
	docs map[DocumentUri]document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[DocumentUri]document)}
}

func (s *documentStore) get(uri DocumentUri) (document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *documentStore) put(doc document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.URI] = doc
}

func (s *documentStore) remove(uri DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (h *handler) assembleAndReportDiagnostics(uri DocumentUri) []assembler.Diagnostic {
	doc, _ := h.documents.get(uri)

	assembledRes := assembler.Assemble(doc.Text)
	if assembledRes.Diagnostics == nil {
		assembledRes.Diagnostics = make([]assembler.Diagnostic, 0)
	}
	doc.URI = uri
	doc.lastAssembledResult = assembledRes
	h.documents.put(doc)
	return assembledRes.Diagnostics
}

func (h *handler) documentOpenNotification(ctx context.Context, conn client, req *jsonrpc2.Request) {
	// parse req params as DidOpenTextDocumentParams
	// add document to documents map
	decodedParams := DidOpenTextDocumentParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	h.documents.put(document{TextDocumentItem: decodedParams.TextDocument})

	diagnostics := h.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     decodedParams.TextDocument.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentCloseNotification(ctx context.Context, conn client, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	h.documents.remove(decodedParams.TextDocument.URI)
}

func (h *handler) documentChangeNotification(ctx context.Context, conn client, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) || len(decodedParams.ContentChanges) == 0 {
		return
	}

	doc, _ := h.documents.get(decodedParams.TextDocument.URI)
	doc.URI = decodedParams.TextDocument.URI
	doc.Text = decodedParams.ContentChanges[len(decodedParams.ContentChanges)-1].Text
	doc.Version = decodedParams.TextDocument.Version
	h.documents.put(doc)

	diagnostics := h.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentDiagnostics(ctx context.Context, conn client, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	diagnostics := h.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Reply(ctx, req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// splitComment separates a line into code and its trailing // comment.
func splitComment(line string) (code, comment string) {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i], line[i:]
	}
	return line, ""
}

// ReformatSource puts label declarations and directives at column 0, indents
// instructions past the longest label and collapses runs of whitespace.
// Comments are kept as written.
func ReformatSource(text string) string {
	lines := strings.Split(text, "\n")
	maxLabelLength := 0
	for _, line := range lines {
		code, _ := splitComment(line)
		fields := strings.Fields(code)
		if len(fields) > 0 && strings.HasPrefix(fields[0], ":") && len(fields[0]) > maxLabelLength {
			maxLabelLength = len(fields[0])
		}
	}
	indent := strings.Repeat(" ", maxLabelLength+1)
	if maxLabelLength == 0 {
		indent = "    "
	}

	for i, line := range lines {
		code, comment := splitComment(strings.TrimRight(line, "\r"))
		fields := strings.Fields(code)
		if len(fields) == 0 {
			if comment == "" {
				lines[i] = ""
			} else if strings.HasPrefix(line, "//") {
				lines[i] = comment
			} else {
				lines[i] = indent + comment
			}
			continue
		}

		if comment != "" {
			comment = " " + comment
		}

		switch {
		case strings.HasPrefix(fields[0], "."):
			lines[i] = strings.Join(fields, " ") + comment
		case strings.HasPrefix(fields[0], ":"):
			if len(fields) == 1 {
				lines[i] = fields[0] + comment
			} else {
				padding := strings.Repeat(" ", len(indent)-len(fields[0]))
				lines[i] = fields[0] + padding + strings.Join(fields[1:], " ") + comment
			}
		default:
			lines[i] = indent + strings.Join(fields, " ") + comment
		}
	}
	return strings.Join(lines, "\n")
}

func (h *handler) wholeDocumentEdit(uri DocumentUri) []TextEdit {
	doc, _ := h.documents.get(uri)
	lines := strings.Split(doc.Text, "\n")

	edits := make([]TextEdit, 0)
	edits = append(edits, TextEdit{
		Range: assembler.TextRange{
			Start: assembler.TextPosition{Line: 0, Char: 0},
			End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
		},
		NewText: ReformatSource(doc.Text),
	})
	return edits
}

func (h *handler) documentWillSaveWaitUntil(ctx context.Context, conn client, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	conn.Reply(ctx, req.ID, h.wholeDocumentEdit(decodedParams.TextDocument.URI))
	util.LogF("Tiny16 Language Server [%s]: reformatted document", h.connectionID)
}

func (h *handler) documentFormatting(ctx context.Context, conn client, req *jsonrpc2.Request) {
	decodedParams := DocumentFormattingParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	conn.Reply(ctx, req.ID, h.wholeDocumentEdit(decodedParams.TextDocument.URI))
}
