// Package netsrv implements the external HTTP surface: static file serving
// plus the /ws/ websocket endpoint that fans out tick frames from a
// broadcast.Hub. Per spec.md §6 the core never accepts commands over this
// surface; inbound subscriber messages are logged and discarded.
package netsrv

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lotsa-sim/lotsa/broadcast"
)

// writeTimeout bounds how long a single frame write to a subscriber's
// socket may take before the connection is considered dead and closed.
const writeTimeout = 5 * time.Second

// Server is the HTTP handler serving static files and the /ws/ endpoint.
type Server struct {
	log      *slog.Logger
	hub      *broadcast.Hub
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewServer returns a Server that fans out hub's tick frames over /ws/ and
// serves static files from staticDir at every other path. staticDir may be
// empty, in which case no static files are served.
func NewServer(hub *broadcast.Hub, staticDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log: log,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 16,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/ws/", s.handleWebsocket)
	if staticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleWebsocket upgrades the connection and streams tick frames to it
// until the connection is closed or the subscriber can't be reached.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	if err := validateProtocolVersion(r.URL.Query().Get("v")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	defer conn.Close()

	id, frames, cancel := s.hub.Subscribe()
	defer cancel()
	s.log.Info("subscriber connected", "subscriber", id, "remote", r.RemoteAddr)

	closed := make(chan struct{})
	go s.drainInbound(conn, id, closed)

	for {
		select {
		case <-closed:
			s.log.Info("subscriber disconnected", "subscriber", id)
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				s.log.Warn("failed writing frame to subscriber", "subscriber", id, "error", err)
				return
			}
		}
	}
}

// drainInbound reads and discards every message a subscriber sends: the
// core publishes, it does not accept commands over this endpoint (spec.md
// §6). Reading is still required so gorilla/websocket can process control
// frames and detect the connection closing.
func (s *Server) drainInbound(conn *websocket.Conn, id uuid.UUID, closed chan<- struct{}) {
	defer close(closed)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.log.Debug("discarding inbound subscriber message", "subscriber", id, "bytes", len(msg))
	}
}
