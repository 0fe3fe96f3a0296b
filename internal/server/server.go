package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
	"github.com/crossstars/crossstars-server-go/internal/game"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server exposes the engine's command surface and the renderer feed over
// HTTP/WebSocket, plus the catalog authoring endpoint. It holds no game
// state of its own; every command goes through the engine.
type Server struct {
	engine *game.Engine
	store  catalog.Store
	logger *zap.Logger
	hub    *hub
}

// New wires a server to the engine and catalog store, and registers the
// engine notification handler that drives the renderer feed.
func New(engine *game.Engine, store catalog.Store, logger *zap.Logger) *Server {
	s := &Server{
		engine: engine,
		store:  store,
		logger: logger,
		hub:    newHub(logger),
	}
	engine.SetNotificationHandler(s.onNotification)
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/games", s.handleCreateGame).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}", s.handleGetGame).Methods(http.MethodGet)
	r.HandleFunc("/api/games/{id}/commands", s.handleCommand).Methods(http.MethodPost)
	r.HandleFunc("/ws/{id}", s.handleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/admin/cards", s.handleUpsertCard).Methods(http.MethodPost)
	r.HandleFunc("/admin/cards", s.handleListCards).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createGameRequest struct {
	Player1Decklist string `json:"player1_decklist"`
	Player2Decklist string `json:"player2_decklist"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	gameID, err := s.engine.StartGame(r.Context(), req.Player1Decklist, req.Player2Decklist)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"game_id": gameID})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	view, err := s.engine.View(gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Command is one player action submitted over HTTP or the websocket feed.
type Command struct {
	Type     string        `json:"type"`
	PlayerID string        `json:"player_id,omitempty"`
	CardID   string        `json:"card_id,omitempty"`
	Op       game.LeaderOp `json:"op,omitempty"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid command body: %w", err))
		return
	}

	if err := s.applyCommand(gameID, cmd); err != nil {
		if errors.Is(err, game.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusConflict, err)
		return
	}

	view, err := s.engine.View(gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// applyCommand dispatches a command to the engine. Rejected commands leave
// the game state untouched; the caller may retry with corrected input.
func (s *Server) applyCommand(gameID string, cmd Command) error {
	switch cmd.Type {
	case "play_card":
		return s.engine.PlayCard(gameID, cmd.PlayerID, cmd.CardID)
	case "adjust_leader":
		return s.engine.AdjustLeader(gameID, cmd.CardID, cmd.Op)
	case "end_turn":
		return s.engine.EndTurn(gameID, cmd.PlayerID)
	case "record_win":
		return s.engine.RecordWin(gameID, cmd.PlayerID)
	default:
		return fmt.Errorf("unknown command type: %q", cmd.Type)
	}
}

// onNotification pushes a fresh snapshot to every feed subscriber of the
// changed game.
func (s *Server) onNotification(n game.Notification) {
	view, err := s.engine.View(n.GameID)
	if err != nil {
		s.logger.Warn("failed to build view for notification",
			zap.String("game_id", n.GameID), zap.Error(err))
		return
	}
	s.hub.broadcast(n.GameID, feedMessage{Type: n.Type, View: view})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
