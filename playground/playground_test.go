package playground_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/playground"
)

var _ = Describe("Server", func() {
	var server *httptest.Server

	BeforeEach(func() {
		server = httptest.NewServer(playground.NewServer())
	})

	AfterEach(func() {
		server.Close()
	})

	postSource := func(source string) (*http.Response, playground.AssembleResponse) {
		body, err := json.Marshal(playground.AssembleRequest{Source: source})
		Expect(err).NotTo(HaveOccurred())
		resp, err := http.Post(server.URL+"/assemble", "application/json", bytes.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		result := playground.AssembleResponse{}
		if resp.StatusCode == http.StatusOK {
			Expect(json.NewDecoder(resp.Body).Decode(&result)).To(Succeed())
		}
		return resp, result
	}

	It("should serve the page", func() {
		resp, err := http.Get(server.URL + "/")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(Equal("text/html"))
		page, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(page)).To(ContainSubstring("Tiny16 Playground"))
	})

	It("should assemble posted source", func() {
		resp, result := postSource(".entry main\n:main\nmov r1, #10\njump main")

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(result.Words).To(Equal([]string{
			"1010000000000001",
			"0001001000001010",
			"1010000000000001",
		}))
		Expect(result.Labels).To(Equal(map[string]int{"main": 1}))
		Expect(result.Entry).To(Equal("main"))
		Expect(result.Lines).To(HaveKeyWithValue(2, 3))
		Expect(result.Error).To(BeEmpty())
		Expect(result.Diagnostics).To(BeEmpty())
	})

	It("should report errors without words", func() {
		_, result := postSource(".entry main\n:main\nmov r1, #256")

		Expect(result.Words).To(BeEmpty())
		Expect(result.Error).NotTo(BeEmpty())
		Expect(result.Diagnostics).To(HaveLen(1))
		Expect(result.Diagnostics[0].Severity).To(Equal(assembler.Error))
	})

	It("should reject a malformed request body", func() {
		resp, err := http.Post(server.URL+"/assemble", "application/json", strings.NewReader("{"))
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should only accept POST for assembling", func() {
		resp, err := http.Get(server.URL + "/assemble")
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
	})

	It("should assemble over the websocket", func() {
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		hello := map[string]string{}
		Expect(conn.ReadJSON(&hello)).To(Succeed())
		Expect(hello["type"]).To(Equal("hello"))
		Expect(hello["session"]).NotTo(BeEmpty())

		Expect(conn.WriteJSON(playground.AssembleRequest{Type: "assemble", Source: "mov r0, #1\nend"})).To(Succeed())
		result := playground.AssembleResponse{}
		Expect(conn.ReadJSON(&result)).To(Succeed())
		Expect(result.Type).To(Equal("result"))
		Expect(result.Session).To(Equal(hello["session"]))
		Expect(result.Words).To(Equal([]string{"0001000000000001", "1000000000000000"}))

		Expect(conn.WriteJSON(playground.AssembleRequest{Type: "assemble", Source: "mov r0, $1"})).To(Succeed())
		result = playground.AssembleResponse{}
		Expect(conn.ReadJSON(&result)).To(Succeed())
		Expect(result.Words).To(BeEmpty())
		Expect(result.Diagnostics).To(HaveLen(1))
	})
})
