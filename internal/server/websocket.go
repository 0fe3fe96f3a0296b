package server

import (
	"net/http"
	"sync"

	"github.com/crossstars/crossstars-server-go/internal/game"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// feedMessage is one frame of the renderer feed: the change type plus the
// full snapshot after the change.
type feedMessage struct {
	Type string         `json:"type"`
	View *game.GameView `json:"view"`
}

// feedConn is one feed subscriber. Gorilla connections support a single
// concurrent writer, so every outbound frame (broadcasts, the initial
// snapshot, error replies) goes through the connection's write mutex.
type feedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *feedConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// hub tracks feed subscribers per game.
type hub struct {
	logger *zap.Logger
	mu     sync.Mutex
	conns  map[string]map[*feedConn]bool
}

func newHub(logger *zap.Logger) *hub {
	return &hub{
		logger: logger,
		conns:  make(map[string]map[*feedConn]bool),
	}
}

func (h *hub) add(gameID string, c *feedConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[gameID] == nil {
		h.conns[gameID] = make(map[*feedConn]bool)
	}
	h.conns[gameID][c] = true
}

func (h *hub) remove(gameID string, c *feedConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[gameID], c)
	if len(h.conns[gameID]) == 0 {
		delete(h.conns, gameID)
	}
}

// broadcast sends msg to every subscriber of gameID. The hub mutex only
// guards the subscriber snapshot; the writes happen outside it, so a slow
// subscriber stalls nobody but itself. Dead connections are dropped.
func (h *hub) broadcast(gameID string, msg feedMessage) {
	h.mu.Lock()
	subs := make([]*feedConn, 0, len(h.conns[gameID]))
	for c := range h.conns[gameID] {
		subs = append(subs, c)
	}
	h.mu.Unlock()

	for _, c := range subs {
		if err := c.writeJSON(msg); err != nil {
			h.logger.Debug("dropping feed subscriber",
				zap.String("game_id", gameID), zap.Error(err))
			c.conn.Close()
			h.remove(gameID, c)
		}
	}
}

// handleWebSocket upgrades the connection, sends the current snapshot, and
// then services the feed: incoming frames are commands, outgoing frames are
// snapshots after every applied command.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if _, err := s.engine.View(gameID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	fc := &feedConn{conn: conn}
	s.hub.add(gameID, fc)
	defer func() {
		s.hub.remove(gameID, fc)
		conn.Close()
	}()

	// Initial snapshot so the renderer can draw immediately.
	if view, err := s.engine.View(gameID); err == nil {
		if err := fc.writeJSON(feedMessage{Type: "snapshot", View: view}); err != nil {
			return
		}
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read error",
					zap.String("game_id", gameID), zap.Error(err))
			}
			return
		}

		if err := s.applyCommand(gameID, cmd); err != nil {
			// Rejected commands are recoverable; report and keep the
			// connection open.
			if writeErr := fc.writeJSON(map[string]string{"type": "error", "error": err.Error()}); writeErr != nil {
				return
			}
		}
	}
}
