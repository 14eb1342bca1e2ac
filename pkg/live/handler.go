package live

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades requests to live sessions. The page passes its current
// URL (or hash, in hash mode) in the "url" query parameter.
type Handler struct {
	config   Config
	upgrader websocket.Upgrader
}

// NewHandler creates a live endpoint.
func NewHandler(config Config) *Handler {
	config = config.withDefaults()
	return &Handler{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.config.Root == nil {
		http.Error(w, "live: no root", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.config.Logger.Error("websocket upgrade failed", "error", err)
		return
	}

	s, err := newSession(conn, h.config, r.URL.Query().Get("url"))
	if err != nil {
		h.config.Logger.Warn("live session rejected", "url", r.URL.Query().Get("url"), "error", err)
		conn.WriteJSON(Frame{Type: FrameError, Error: err.Error()})
		conn.Close()
		return
	}
	s.Run(r.Context())
}
