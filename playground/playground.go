package playground

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/xid"

	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/Tiny16-Assembler/util"
)

// DefaultAddress is where ListenAndServe listens when given no address.
const DefaultAddress = ":2036"

// maxSourceBytes bounds a single assemble request.
const maxSourceBytes = 1 << 20

// The playground is a browser page for trying programs without an editor
// extension. Source typed into the page is sent over a websocket, assembled
// with the current assembler configuration, and the words, labels and
// diagnostics are sent back.

type AssembleRequest struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

type AssembleResponse struct {
	Type        string                 `json:"type"`
	Session     string                 `json:"session,omitempty"`
	Words       []string               `json:"words"`
	Labels      map[string]int         `json:"labels"`
	Entry       string                 `json:"entry,omitempty"`
	Lines       map[int]int            `json:"lines"`
	Diagnostics []assembler.Diagnostic `json:"diagnostics"`
	Error       string                 `json:"error,omitempty"`
}

func newAssembleResponse(source string) AssembleResponse {
	res := assembler.Assemble(source)
	resp := AssembleResponse{
		Type:        "result",
		Words:       assembler.FormatWords(res.ProgramText),
		Labels:      res.Labels,
		Entry:       res.EntryLabel,
		Lines:       res.AddressToLine,
		Diagnostics: res.Diagnostics,
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []assembler.Diagnostic{}
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	return resp
}

type Server struct {
	router   *mux.Router
	upgrader websocket.Upgrader
}

func NewServer() *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	s.router = mux.NewRouter()
	s.router.HandleFunc("/", handleGetPage).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleSocket).Methods(http.MethodGet)
	s.router.HandleFunc("/assemble", handleAssemble).Methods(http.MethodPost)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func ListenAndServe(addr string) error {
	if addr == "" {
		addr = DefaultAddress
	}
	log.Println("Connect to the playground at http://localhost" + addr)
	return http.ListenAndServe(addr, NewServer())
}

func handleAssemble(w http.ResponseWriter, r *http.Request) {
	req := AssembleRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSourceBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newAssembleResponse(req.Source))
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxSourceBytes)

	session := xid.New().String()
	util.LogF("playground: session %s opened", session)
	defer util.LogF("playground: session %s closed", session)

	wsMutex := sync.Mutex{}
	send := func(v interface{}) error {
		wsMutex.Lock()
		defer wsMutex.Unlock()
		return conn.WriteJSON(v)
	}

	if err := send(struct {
		Type    string `json:"type"`
		Session string `json:"session"`
	}{Type: "hello", Session: session}); err != nil {
		return
	}

	// listen on conn for messages
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read:", err)
			}
			return
		}

		message := AssembleRequest{}
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			log.Println("json:", err)
			return
		}

		switch message.Type {
		case "assemble":
			resp := newAssembleResponse(message.Source)
			resp.Session = session
			if err := send(resp); err != nil {
				return
			}
		default:
			log.Printf("Unknown message type: %s", message.Type)
		}
	}
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

var htmlPage = `<html>
<head>
	<title>Tiny16 Playground</title>
</head>
<body style="background-color: #1E1E1E; color: white;">
	<h1 style="display: inline-block;">Tiny16 Playground</h1>
	<span id="session" style="margin-left: 50px; font-family: monospace;"></span>
	<br/>
	<textarea id="source" spellcheck="false" style="width: 600px; height: 400px; font-family: monospace; font-size: 1.1em; background-color: black; color: white; border: 2px solid white;">.entry main
:main
    mov r1, #10
    end</textarea>
	<pre id="words" style="display: inline-block; vertical-align: top; margin-left: 20px; width: 360px; height: 400px; overflow-y: auto; border: 2px solid white; padding: 5px;"></pre>
	<h2>Diagnostics</h2>
	<div id="diagnostics" style="width: 980px; padding: 10px; font-family: monospace; background-color: black; height: 200px; overflow-y: auto; border: 2px solid white;"></div>

	<script>
		var socket;

		function connect() {
			socket = new WebSocket("ws://" + window.location.host + "/ws");
			socket.onopen = function() {
				send();
			};
			socket.onmessage = function(event) {
				var data = JSON.parse(event.data);
				if (data.type == "hello") {
					document.getElementById("session").textContent = "session " + data.session;
				} else if (data.type == "result") {
					var lines = [];
					for (var i = 0; i < data.words.length; i++) {
						lines.push(i.toString().padStart(3, " ") + "  " + data.words[i]);
					}
					document.getElementById("words").textContent = lines.join("\n");

					var diags = [];
					for (var i = 0; i < data.diagnostics.length; i++) {
						var d = data.diagnostics[i];
						var kind = d.severity == 1 ? "error" : "warning";
						diags.push((d.range.start.line + 1) + ":" + (d.range.start.character + 1) + ": " + kind + ": " + d.message);
					}
					document.getElementById("diagnostics").textContent = diags.join("\n");
				}
			};
			// when the socket closes, try to reconnect every 3 seconds
			socket.onclose = function() {
				setTimeout(connect, 3000);
			};
		}

		function send() {
			if (socket.readyState != WebSocket.OPEN) {
				return;
			}
			socket.send(JSON.stringify({
				type: "assemble",
				source: document.getElementById("source").value
			}));
		}

		document.getElementById("source").oninput = send;
		connect();
	</script>
</body>
</html>`
