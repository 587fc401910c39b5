// Package client is a programmatic WebSocket client for the games server.
// It correlates replies to requests by request id and dispatches server
// pushes (room and hand updates, events) to registered handlers.
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jnycolej/GamesApp/internal/deck"
	"github.com/jnycolej/GamesApp/internal/game"
	"github.com/jnycolej/GamesApp/internal/server"
)

// EventHandler is a function that handles incoming pushed messages
type EventHandler func(*server.Message)

// ServerError is an error reply from the server, carrying its stable code.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Client connects to a games server over WebSocket.
type Client struct {
	serverURL string
	conn      *websocket.Conn
	logger    *log.Logger

	mu        sync.RWMutex
	handlers  map[server.MessageType][]EventHandler
	pending   map[string]chan *server.Message
	connected bool
	stopChan  chan struct{}

	timeout time.Duration
}

// New creates a client for the given server URL. http/https schemes are
// rewritten to ws/wss.
func New(serverURL string, logger *log.Logger) *Client {
	return &Client{
		serverURL: serverURL,
		logger:    logger,
		handlers:  make(map[server.MessageType][]EventHandler),
		pending:   make(map[string]chan *server.Message),
		stopChan:  make(chan struct{}),
		timeout:   10 * time.Second,
	}
}

// Connect establishes the WebSocket connection and starts the reader.
func (c *Client) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readMessages()
	return nil
}

// Disconnect closes the WebSocket connection
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false
	close(c.stopChan)

	if c.conn != nil {
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return c.conn.Close()
	}
	return nil
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// OnPush registers a handler for a pushed message type.
func (c *Client) OnPush(messageType server.MessageType, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[messageType] = append(c.handlers[messageType], handler)
}

// call sends a request and waits for the reply carrying the same request
// id. An error reply is surfaced as *ServerError.
func (c *Client) call(messageType server.MessageType, data interface{}, out interface{}) error {
	msg, err := server.NewMessage(messageType, data)
	if err != nil {
		return err
	}
	msg.RequestID = uuid.NewString()

	ch := make(chan *server.Message, 1)
	c.mu.Lock()
	if !c.connected || c.conn == nil {
		c.mu.Unlock()
		return fmt.Errorf("not connected")
	}
	c.pending[msg.RequestID] = ch
	err = c.conn.WriteJSON(msg)
	c.mu.Unlock()
	if err != nil {
		c.dropPending(msg.RequestID)
		return err
	}

	select {
	case reply := <-ch:
		if reply.Type == server.MessageTypeError {
			var errData server.ErrorData
			if err := json.Unmarshal(reply.Data, &errData); err != nil {
				return fmt.Errorf("malformed error reply: %w", err)
			}
			return &ServerError{Code: errData.Code, Message: errData.Message}
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(reply.Data, out)
	case <-c.stopChan:
		c.dropPending(msg.RequestID)
		return fmt.Errorf("connection closed")
	case <-time.After(c.timeout):
		c.dropPending(msg.RequestID)
		return fmt.Errorf("timed out waiting for %s reply", messageType)
	}
}

func (c *Client) dropPending(requestID string) {
	c.mu.Lock()
	delete(c.pending, requestID)
	c.mu.Unlock()
}

func (c *Client) readMessages() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		select {
		case <-c.stopChan:
			return
		default:
			var msg server.Message
			if err := c.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Error("websocket error", "error", err)
				}
				return
			}
			c.dispatch(&msg)
		}
	}
}

func (c *Client) dispatch(msg *server.Message) {
	if msg.RequestID != "" {
		c.mu.Lock()
		ch, ok := c.pending[msg.RequestID]
		if ok {
			delete(c.pending, msg.RequestID)
		}
		c.mu.Unlock()
		if ok {
			ch <- msg
			return
		}
	}

	c.mu.RLock()
	handlers := c.handlers[msg.Type]
	c.mu.RUnlock()
	for _, handler := range handlers {
		go handler(msg)
	}
}

// CreateRoom creates a room and joins the caller as its host.
func (c *Client) CreateRoom(gameType, displayName, playerKey string) (server.RoomCreatedData, error) {
	var out server.RoomCreatedData
	err := c.call(server.MessageTypeCreateRoom, server.CreateRoomData{
		GameType:    gameType,
		DisplayName: displayName,
		PlayerKey:   playerKey,
	}, &out)
	return out, err
}

// Join joins an existing room. The invite token is optional.
func (c *Client) Join(roomCode, displayName, playerKey, inviteToken string) (server.JoinedData, error) {
	var out server.JoinedData
	err := c.call(server.MessageTypeJoin, server.JoinData{
		RoomCode:    roomCode,
		DisplayName: displayName,
		PlayerKey:   playerKey,
		InviteToken: inviteToken,
	}, &out)
	return out, err
}

// Resume reattaches this connection to the durable key's player.
func (c *Client) Resume(roomCode, playerKey, displayName string) (server.ResumedData, error) {
	var out server.ResumedData
	err := c.call(server.MessageTypeResume, server.ResumeData{
		RoomCode:    roomCode,
		PlayerKey:   playerKey,
		DisplayName: displayName,
	}, &out)
	return out, err
}

// StartAndDeal starts the game. Host only.
func (c *Client) StartAndDeal() (server.StartedData, error) {
	var out server.StartedData
	err := c.call(server.MessageTypeStartAndDeal, struct{}{}, &out)
	return out, err
}

// PlayCardAt plays the card at the given hand slot.
func (c *Client) PlayCardAt(index int) (server.ActionData, error) {
	var out server.ActionData
	err := c.call(server.MessageTypePlayCard, server.PlayCardData{Index: &index}, &out)
	return out, err
}

// PlayCard plays the card with the given instance id.
func (c *Client) PlayCard(cardID string) (server.ActionData, error) {
	var out server.ActionData
	err := c.call(server.MessageTypePlayCard, server.PlayCardData{CardID: cardID}, &out)
	return out, err
}

// Sacrifice discards the card for negative points.
func (c *Client) Sacrifice(cardID string) (server.ActionData, error) {
	var out server.ActionData
	err := c.call(server.MessageTypeSacrifice, server.SacrificeData{CardID: cardID}, &out)
	return out, err
}

// AdjustScore applies a score delta outside of card play.
func (c *Client) AdjustScore(delta int, reason string) (server.ActionData, error) {
	var out server.ActionData
	err := c.call(server.MessageTypeAdjustScore, server.AdjustScoreData{Delta: delta, Reason: reason}, &out)
	return out, err
}

// Room fetches the public room state.
func (c *Client) Room() (game.RoomView, error) {
	var out game.RoomView
	err := c.call(server.MessageTypeGetRoom, struct{}{}, &out)
	return out, err
}

// Hand fetches the caller's private hand.
func (c *Client) Hand() ([]deck.Instance, error) {
	var out server.HandData
	err := c.call(server.MessageTypeGetHand, struct{}{}, &out)
	return out.Hand, err
}

// Score fetches the caller's score.
func (c *Client) Score() (int, error) {
	var out server.ScoreData
	err := c.call(server.MessageTypeGetScore, struct{}{}, &out)
	return out.Score, err
}

// History fetches the room's recent event log.
func (c *Client) History() ([]game.Update, error) {
	var out server.HistoryData
	err := c.call(server.MessageTypeGetHistory, struct{}{}, &out)
	return out.Updates, err
}
