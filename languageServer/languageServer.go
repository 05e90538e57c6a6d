package languageServer

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"os"

	"github.com/rs/xid"
	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/util"
)

// DefaultTCPAddress is where ListenAndServeTCP listens when given no address.
const DefaultTCPAddress = ":2035"

// LanguageID is the document language the server registers for.
const LanguageID = "tiny16"

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// client is the part of *jsonrpc2.Conn the handlers talk to.
type client interface {
	Reply(ctx context.Context, id jsonrpc2.ID, result interface{}) error
	ReplyWithError(ctx context.Context, id jsonrpc2.ID, respErr *jsonrpc2.Error) error
	Notify(ctx context.Context, method string, params interface{}, opts ...jsonrpc2.CallOption) error
	Call(ctx context.Context, method string, params, result interface{}, opts ...jsonrpc2.CallOption) error
	Close() error
}

func ListenAndServe() {
	// using stdin and stdout

	h := newHandler("stdio")
	<-jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{}), h).DisconnectNotify()
}

// ListenAndServeTCP accepts language server connections on addr until the
// listener fails. Every connection keeps its own open documents.
func ListenAndServeTCP(addr string) error {
	if addr == "" {
		addr = DefaultTCPAddress
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer lis.Close()

	log.Println("Tiny16 Language Server: listening for TCP connections on", lis.Addr())
	return serve(lis)
}

func serve(lis net.Listener) error {
	for {
		conn, err := lis.Accept()
		if err != nil {
			return err
		}
		connectionID := xid.New().String()
		log.Printf("Tiny16 Language Server: received incoming connection %s\n", connectionID)
		jsonrpc2Connection := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}), newHandler(connectionID))
		go func() {
			<-jsonrpc2Connection.DisconnectNotify()
			log.Printf("Tiny16 Language Server: connection %s closed\n", connectionID)
		}()
	}
}

type handler struct {
	connectionID string
	documents    *documentStore

	// background runs requests that must not block the read loop, such as
	// calls back into the client.
	background func(func())
}

func newHandler(connectionID string) *handler {
	return &handler{
		connectionID: connectionID,
		documents:    newDocumentStore(),
		background:   func(f func()) { go f() },
	}
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	h.handle(ctx, conn, req)
}

func (h *handler) handle(ctx context.Context, conn client, req *jsonrpc2.Request) {
	util.LogF("Tiny16 Language Server [%s]: received request: %s", h.connectionID, req.Method)
	switch req.Method {
	case "textDocument/didOpen":
		h.documentOpenNotification(ctx, conn, req)
	case "textDocument/didClose":
		h.documentCloseNotification(ctx, conn, req)
	case "textDocument/didChange":
		h.documentChangeNotification(ctx, conn, req)
	case "initialize":
		h.handleInitialize(ctx, conn, req)
	case "textDocument/diagnostic":
		h.documentDiagnostics(ctx, conn, req)
	case "textDocument/willSaveWaitUntil":
		h.documentWillSaveWaitUntil(ctx, conn, req)
	case "textDocument/formatting":
		h.documentFormatting(ctx, conn, req)
	case "textDocument/hover":
		h.hoverRequest(ctx, conn, req)

	// quitting
	case "shutdown":
		conn.Reply(ctx, req.ID, nil)
	case "exit":
		conn.Close()

	default:
		if !req.Notif {
			conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method})
		}
	}
}

// decodeParams unmarshals the request parameters into v, replying with an
// error when they are missing or malformed.
func decodeParams(ctx context.Context, conn client, req *jsonrpc2.Request, v interface{}) bool {
	if req.Params != nil && json.Unmarshal(*req.Params, v) == nil {
		return true
	}
	if !req.Notif {
		rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "invalid parameters"}
		conn.ReplyWithError(ctx, req.ID, &rpcErr)
	}
	return false
}

func (h *handler) handleInitialize(ctx context.Context, conn client, req *jsonrpc2.Request) {
	// parse req params as InitializeParams
	// return InitializeResult
	decodedParams := InitializeParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	result := InitializeResult{}
	result.Capabilities.TextDocumentSync = 1
	result.Capabilities.HoverProvider = true
	result.Capabilities.DocumentFormattingProvider = true
	conn.Reply(ctx, req.ID, result)

	h.registerRemainingCapabilities(conn)
}

func (h *handler) registerRemainingCapabilities(conn client) {
	// send register capability requests for all remaining capabilities
	// textDocumentSync.willSaveWaitUntil

	util.LogF("Tiny16 Language Server [%s]: registering remaining capabilities", h.connectionID)
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: LanguageID,
						},
					},
				},
			},
		},
	}

	h.background(func() {
		if err := conn.Call(context.Background(), "client/registerCapability", params, nil); err != nil {
			util.LogF("Tiny16 Language Server [%s]: registering capabilities failed: %v", h.connectionID, err)
			return
		}
		util.LogF("Tiny16 Language Server [%s]: registered remaining capabilities", h.connectionID)
	})
}
