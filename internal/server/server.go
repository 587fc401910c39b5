// Package server exposes the room engine over WebSocket. The engine's
// state transitions stay synchronous; this layer only correlates requests
// with responses and fans events out to room members.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/jnycolej/GamesApp/internal/game"
)

// Server owns the WebSocket endpoint and the set of live connections.
type Server struct {
	upgrader    websocket.Upgrader
	registry    *game.Registry
	logger      *log.Logger
	mu          sync.RWMutex
	connections map[*Connection]bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer wires the transport to a room registry.
func NewServer(registry *game.Registry, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		upgrader: websocket.Upgrader{
			// Browser clients connect from arbitrary origins; room access
			// is gated by code + invite token, not origin.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		registry:    registry,
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Handler returns the HTTP mux serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Stop closes every connection and stops accepting work.
func (s *Server) Stop() {
	s.cancel()
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	conn := newConnection(ws, s)
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("client connected", "conn", conn.ID, "total", total)

	conn.start()

	go func() {
		<-conn.ctx.Done()
		s.dropConnection(conn)
	}()
}

func (s *Server) dropConnection(conn *Connection) {
	s.mu.Lock()
	_, known := s.connections[conn]
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()
	if !known {
		return
	}

	if code := conn.RoomCode(); code != "" {
		if err := s.registry.HandleDisconnect(code, conn.ID); err != nil {
			s.logger.Debug("disconnect cleanup", "conn", conn.ID, "error", err)
		} else {
			s.broadcastRoomState(code)
		}
	}

	_ = conn.Close()
	s.logger.Info("client disconnected", "conn", conn.ID, "total", total)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

// BroadcastToRoom sends a message to every connection bound to the room.
func (s *Server) BroadcastToRoom(code string, msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for conn := range s.connections {
		if conn.RoomCode() == code {
			if err := conn.Send(msg); err != nil {
				s.logger.Error("broadcast send failed", "conn", conn.ID, "error", err)
			} else {
				count++
			}
		}
	}
	s.logger.Debug("broadcast", "room", code, "type", msg.Type, "recipients", count)
}

// SendToConn sends a message to one connection by id.
func (s *Server) SendToConn(connID string, msg *Message) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.connections {
		if conn.ID == connID {
			return conn.Send(msg)
		}
	}
	return fmt.Errorf("connection not found: %s", connID)
}

// broadcastRoomState pushes the current public room view to all members.
func (s *Server) broadcastRoomState(code string) {
	view, err := s.registry.PublicState(code)
	if err != nil {
		s.logger.Debug("room state unavailable", "room", code, "error", err)
		return
	}
	msg, err := NewMessage(MessageTypeRoomUpdated, view)
	if err != nil {
		s.logger.Error("room state marshal failed", "room", code, "error", err)
		return
	}
	s.BroadcastToRoom(code, msg)
}

// sendPrivateStates unicasts each member their own hand and score, used
// after a deal touches every hand at once.
func (s *Server) sendPrivateStates(code string) {
	s.mu.RLock()
	members := make([]*Connection, 0)
	for conn := range s.connections {
		if conn.RoomCode() == code {
			members = append(members, conn)
		}
	}
	s.mu.RUnlock()

	for _, conn := range members {
		hand, err := s.registry.HandOf(code, conn.ID)
		if err != nil {
			continue
		}
		score, err := s.registry.ScoreOf(code, conn.ID)
		if err != nil {
			continue
		}
		if msg, err := NewMessage(MessageTypeHandUpdate, HandData{Hand: hand}); err == nil {
			_ = conn.Send(msg)
		}
		if msg, err := NewMessage(MessageTypeScoreUpdate, ScoreData{Score: score}); err == nil {
			_ = conn.Send(msg)
		}
	}
}

// broadcastEvent pushes a stored feed event to all room members.
func (s *Server) broadcastEvent(code string, event game.Update) {
	msg, err := NewMessage(MessageTypeGameUpdate, event)
	if err != nil {
		s.logger.Error("event marshal failed", "room", code, "error", err)
		return
	}
	s.BroadcastToRoom(code, msg)
}
