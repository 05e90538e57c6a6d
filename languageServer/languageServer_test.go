package languageServer

import (
	"context"
	"net"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
)

const testURI = DocumentUri("file:///work/prog.asm")

func request(method string, id uint64, params interface{}) *jsonrpc2.Request {
	req := &jsonrpc2.Request{Method: method, ID: jsonrpc2.ID{Num: id}}
	Expect(req.SetParams(params)).To(Succeed())
	return req
}

func notification(method string, params interface{}) *jsonrpc2.Request {
	req := &jsonrpc2.Request{Method: method, Notif: true}
	Expect(req.SetParams(params)).To(Succeed())
	return req
}

func openParams(text string) DidOpenTextDocumentParams {
	return DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI: testURI, LanguageID: LanguageID, Version: 1, Text: text,
	}}
}

var _ = Describe("Handler", func() {
	var (
		mockCtrl   *gomock.Controller
		mockClient *MockClient
		h          *handler
		ctx        context.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockClient = NewMockClient(mockCtrl)
		h = newHandler("test")
		h.background = func(f func()) { f() }
		ctx = context.Background()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	// open sends didOpen and returns the published diagnostics.
	open := func(text string) PublishDiagnosticsParams {
		var published PublishDiagnosticsParams
		mockClient.EXPECT().
			Notify(gomock.Any(), "textDocument/publishDiagnostics", gomock.Any()).
			Do(func(_ context.Context, _ string, params interface{}, _ ...jsonrpc2.CallOption) {
				published = params.(PublishDiagnosticsParams)
			})
		h.handle(ctx, mockClient, notification("textDocument/didOpen", openParams(text)))
		return published
	}

	It("should answer initialize and register willSaveWaitUntil", func() {
		var result interface{}
		mockClient.EXPECT().
			Reply(gomock.Any(), jsonrpc2.ID{Num: 1}, gomock.Any()).
			Do(func(_ context.Context, _ jsonrpc2.ID, r interface{}) { result = r })
		mockClient.EXPECT().
			Call(gomock.Any(), "client/registerCapability", gomock.Any(), nil).
			Do(func(_ context.Context, _ string, params, _ interface{}, _ ...jsonrpc2.CallOption) {
				registrations := params.(RegistrationParams).Registrations
				Expect(registrations).To(HaveLen(1))
				Expect(registrations[0].Method).To(Equal("textDocument/willSaveWaitUntil"))
			})

		h.handle(ctx, mockClient, request("initialize", 1, InitializeParams{ProcessID: 42}))

		capabilities := result.(InitializeResult).Capabilities
		Expect(capabilities.TextDocumentSync).To(Equal(1))
		Expect(capabilities.HoverProvider).To(BeTrue())
		Expect(capabilities.DocumentFormattingProvider).To(BeTrue())
	})

	It("should publish an empty diagnostic list for a clean document", func() {
		published := open(".entry main\n:main\nmov r1, #10\nend")

		Expect(published.URI).To(Equal(testURI))
		Expect(published.Version).To(Equal(1))
		Expect(published.Diagnostics).NotTo(BeNil())
		Expect(published.Diagnostics).To(BeEmpty())
	})

	It("should publish assembler errors on open", func() {
		published := open(".entry main\n:main\nmov r1, #256\nend")

		Expect(published.Diagnostics).To(HaveLen(1))
		Expect(published.Diagnostics[0].Severity).To(Equal(assembler.Error))
		Expect(published.Diagnostics[0].Range.Start).To(Equal(assembler.TextPosition{Line: 2, Char: 8}))
		Expect(published.Diagnostics[0].Source).To(Equal("Assembler"))
	})

	It("should reassemble on change", func() {
		open(".entry main\n:main\njump nowhere")

		var published PublishDiagnosticsParams
		mockClient.EXPECT().
			Notify(gomock.Any(), "textDocument/publishDiagnostics", gomock.Any()).
			Do(func(_ context.Context, _ string, params interface{}, _ ...jsonrpc2.CallOption) {
				published = params.(PublishDiagnosticsParams)
			})
		h.handle(ctx, mockClient, notification("textDocument/didChange", DidChangeTextDocumentParams{
			TextDocument:   VersionedTextDocumentIdentifier{URI: testURI, Version: 2},
			ContentChanges: []TextDocumentContentChangeEvent{{Text: ".entry main\n:main\njump main"}},
		}))

		Expect(published.Version).To(Equal(2))
		Expect(published.Diagnostics).To(BeEmpty())
		doc, ok := h.documents.get(testURI)
		Expect(ok).To(BeTrue())
		Expect(doc.Text).To(Equal(".entry main\n:main\njump main"))
	})

	It("should reply to pull diagnostics", func() {
		open(".entry main\n:main\nend")

		var result interface{}
		mockClient.EXPECT().
			Reply(gomock.Any(), jsonrpc2.ID{Num: 7}, gomock.Any()).
			Do(func(_ context.Context, _ jsonrpc2.ID, r interface{}) { result = r })
		h.handle(ctx, mockClient, request("textDocument/diagnostic", 7, DocumentDiagnosticsParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
		}))

		report := result.(DocumentDiagnosticsReport)
		Expect(report.Kind).To(Equal("full"))
		Expect(report.Items).To(BeEmpty())
	})

	It("should hover label references with their address", func() {
		open(".entry main\n:main\nmov r1, #10\njump main")

		var result interface{}
		mockClient.EXPECT().
			Reply(gomock.Any(), jsonrpc2.ID{Num: 3}, gomock.Any()).
			Do(func(_ context.Context, _ jsonrpc2.ID, r interface{}) { result = r })
		h.handle(ctx, mockClient, request("textDocument/hover", 3, TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
			Position:     assembler.TextPosition{Line: 3, Char: 6},
		}))

		hover := result.(Hover)
		Expect(hover.Contents.Kind).To(Equal("markdown"))
		Expect(hover.Contents.Value).To(ContainSubstring("Reference to label `main`"))
	})

	It("should reply nil when hovering an unknown document", func() {
		mockClient.EXPECT().Reply(gomock.Any(), jsonrpc2.ID{Num: 4}, gomock.Nil())
		h.handle(ctx, mockClient, request("textDocument/hover", 4, TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: "file:///missing.asm"},
		}))
	})

	It("should return a whole-document edit before saving", func() {
		open(":main   mov r1,   #10\nend")

		var result interface{}
		mockClient.EXPECT().
			Reply(gomock.Any(), jsonrpc2.ID{Num: 5}, gomock.Any()).
			Do(func(_ context.Context, _ jsonrpc2.ID, r interface{}) { result = r })
		h.handle(ctx, mockClient, request("textDocument/willSaveWaitUntil", 5, DocumentWillSaveWaitUntilParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
		}))

		edits := result.([]TextEdit)
		Expect(edits).To(HaveLen(1))
		Expect(edits[0].Range.End).To(Equal(assembler.TextPosition{Line: 1, Char: 3}))
		Expect(edits[0].NewText).To(Equal(":main mov r1, #10\n      end"))
	})

	It("should forget closed documents", func() {
		open(".entry main\n:main\nend")
		h.handle(ctx, mockClient, notification("textDocument/didClose", DidCloseTextDocumentParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
		}))

		_, ok := h.documents.get(testURI)
		Expect(ok).To(BeFalse())
	})

	It("should keep documents per connection", func() {
		open(".entry main\n:main\nend")

		other := newHandler("other")
		_, ok := other.documents.get(testURI)
		Expect(ok).To(BeFalse())
	})

	It("should reject malformed parameters", func() {
		mockClient.EXPECT().
			ReplyWithError(gomock.Any(), jsonrpc2.ID{Num: 9}, gomock.Any()).
			Do(func(_ context.Context, _ jsonrpc2.ID, err *jsonrpc2.Error) {
				Expect(err.Code).To(Equal(int64(jsonrpc2.CodeInvalidParams)))
			})
		h.handle(ctx, mockClient, &jsonrpc2.Request{Method: "textDocument/hover", ID: jsonrpc2.ID{Num: 9}})
	})

	It("should reject unknown methods", func() {
		mockClient.EXPECT().
			ReplyWithError(gomock.Any(), jsonrpc2.ID{Num: 10}, gomock.Any()).
			Do(func(_ context.Context, _ jsonrpc2.ID, err *jsonrpc2.Error) {
				Expect(err.Code).To(Equal(int64(jsonrpc2.CodeMethodNotFound)))
			})
		h.handle(ctx, mockClient, request("workspace/symbol", 10, struct{}{}))
	})

	It("should close the connection on exit", func() {
		mockClient.EXPECT().Close()
		h.handle(ctx, mockClient, &jsonrpc2.Request{Method: "exit", Notif: true})
	})
})

var _ = Describe("ReformatSource", func() {
	It("should align instructions past the longest label", func() {
		source := ".entry   main\n:main mov r1,   #10  // load\n  jump +1\n:done\nend\n// trailing\n"

		Expect(ReformatSource(source)).To(Equal(
			".entry main\n" +
				":main mov r1, #10 // load\n" +
				"      jump +1\n" +
				":done\n" +
				"      end\n" +
				"// trailing\n"))
	})

	It("should indent a label-free program by four spaces", func() {
		Expect(ReformatSource("mov r1, #10\n\n\tend")).To(Equal("    mov r1, #10\n\n    end"))
	})
})

var _ = Describe("TCP server", func() {
	It("should serve initialize over a TCP connection", func() {
		lis, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		defer lis.Close()
		go serve(lis)

		netConn, err := net.Dial("tcp", lis.Addr().String())
		Expect(err).NotTo(HaveOccurred())
		registered := make(chan string, 1)
		conn := jsonrpc2.NewConn(context.Background(),
			jsonrpc2.NewBufferedStream(netConn, jsonrpc2.VSCodeObjectCodec{}),
			jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
				registered <- req.Method
				return nil, nil
			}))
		defer conn.Close()

		var result InitializeResult
		Expect(conn.Call(context.Background(), "initialize", InitializeParams{ProcessID: 1}, &result)).To(Succeed())
		Expect(result.Capabilities.HoverProvider).To(BeTrue())
		Eventually(registered).Should(Receive(Equal("client/registerCapability")))
	})
})
