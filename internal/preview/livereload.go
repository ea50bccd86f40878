package preview

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Freddy-Gong/react-native-website/internal/logfields"
)

// LiveReloadPath is the websocket endpoint pages connect to for reloads.
const LiveReloadPath = "/__livereload"

const reloadMessage = "reload"

const liveReloadScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var socket = new WebSocket(proto + location.host + "` + LiveReloadPath + `");
  socket.onmessage = function (ev) {
    if (ev.data === "` + reloadMessage + `") { location.reload(); }
  };
})();
</script>
`

// Local preview only; any origin may connect.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// reloadHub tracks connected live-reload clients.
type reloadHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *slog.Logger
}

func newReloadHub(logger *slog.Logger) *reloadHub {
	return &reloadHub{clients: make(map[*websocket.Conn]struct{}), logger: logger}
}

func (h *reloadHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
	h.logger.Debug("Live-reload client connected", logfields.RemoteAddr(conn.RemoteAddr().String()))
}

func (h *reloadHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}

func (h *reloadHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast sends msg to every client, dropping the ones that fail.
func (h *reloadHub) broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			h.logger.Debug("Dropping live-reload client", logfields.Error(err))
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

// closeAll disconnects every client; hijacked connections outlive
// http.Server.Shutdown otherwise.
func (h *reloadHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

func (h *reloadHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Live-reload upgrade failed", logfields.Error(err))
		return
	}
	h.register(conn)
	defer h.unregister(conn)
	// Clients never send; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// injectLiveReload adds the reload script to successful HTML responses.
func injectLiveReload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.Header.Get("Range") != "" {
			next.ServeHTTP(w, r)
			return
		}
		iw := &interceptingWriter{header: make(http.Header), status: http.StatusOK}
		next.ServeHTTP(iw, r)

		body := iw.body.Bytes()
		if iw.status == http.StatusOK && strings.HasPrefix(iw.header.Get("Content-Type"), "text/html") {
			if i := bytes.LastIndex(body, []byte("</body>")); i >= 0 {
				injected := make([]byte, 0, len(body)+len(liveReloadScript))
				injected = append(injected, body[:i]...)
				injected = append(injected, liveReloadScript...)
				body = append(injected, body[i:]...)
				iw.header.Set("Content-Length", strconv.Itoa(len(body)))
			}
		}
		for k, v := range iw.header {
			w.Header()[k] = v
		}
		w.WriteHeader(iw.status)
		_, _ = w.Write(body)
	})
}

// interceptingWriter buffers a response so it can be rewritten.
type interceptingWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (iw *interceptingWriter) Header() http.Header { return iw.header }

func (iw *interceptingWriter) Write(b []byte) (int, error) { return iw.body.Write(b) }

func (iw *interceptingWriter) WriteHeader(code int) { iw.status = code }
