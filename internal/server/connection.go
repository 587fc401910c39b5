package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jnycolej/GamesApp/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Connection wraps one WebSocket client. ID doubles as the player's
// volatile connection id inside the engine; a reconnect gets a fresh one
// and is re-associated by durable key.
type Connection struct {
	ID string

	conn      *websocket.Conn
	send      chan *Message
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	roomCode  string
	closeOnce sync.Once
}

func newConnection(ws *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(server.ctx)
	id := uuid.NewString()
	return &Connection{
		ID:     id,
		conn:   ws,
		send:   make(chan *Message, 64),
		server: server,
		logger: server.logger.WithPrefix("conn").With("id", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down exactly once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Send queues a message for delivery, failing fast when the client cannot
// keep up.
func (c *Connection) Send(msg *Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
		return websocket.ErrCloseSent
	}
}

// RoomCode returns the room this connection has joined, if any.
func (c *Connection) RoomCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomCode
}

func (c *Connection) setRoomCode(code string) {
	c.mu.Lock()
	c.roomCode = code
	c.mu.Unlock()
}

func (c *Connection) readPump() {
	defer func() {
		c.cancel()
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("read failed", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches one request. Replies reuse the request id so
// clients can correlate.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received", "type", msg.Type)

	switch msg.Type {
	case MessageTypeCreateRoom:
		var data CreateRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, "invalid_message", "failed to parse create data")
			return
		}
		c.handleCreateRoom(msg, data)

	case MessageTypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, "invalid_message", "failed to parse join data")
			return
		}
		c.handleJoin(msg, data)

	case MessageTypeResume:
		var data ResumeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, "invalid_message", "failed to parse resume data")
			return
		}
		c.handleResume(msg, data)

	case MessageTypeStartAndDeal:
		c.handleStartAndDeal(msg)

	case MessageTypePlayCard:
		var data PlayCardData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, "invalid_message", "failed to parse play data")
			return
		}
		c.handlePlayCard(msg, data)

	case MessageTypeSacrifice:
		var data SacrificeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, "invalid_message", "failed to parse sacrifice data")
			return
		}
		c.handleSacrifice(msg, data)

	case MessageTypeAdjustScore:
		var data AdjustScoreData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, "invalid_message", "failed to parse adjust data")
			return
		}
		c.handleAdjustScore(msg, data)

	case MessageTypeGetRoom:
		c.handleGetRoom(msg)

	case MessageTypeGetHand:
		c.handleGetHand(msg)

	case MessageTypeGetScore:
		c.handleGetScore(msg)

	case MessageTypeGetHistory:
		c.handleGetHistory(msg)

	default:
		c.sendError(msg, "unknown_message_type", "unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) reply(req *Message, messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("reply marshal failed", "type", messageType, "error", err)
		return
	}
	msg.RequestID = req.RequestID
	_ = c.Send(msg)
}

func (c *Connection) sendError(req *Message, code, message string) {
	c.reply(req, MessageTypeError, ErrorData{Code: code, Message: message})
}

// sendEngineError maps an engine error to its stable wire code.
func (c *Connection) sendEngineError(req *Message, err error) {
	c.sendError(req, game.ErrorCode(err), err.Error())
}

func (c *Connection) handleCreateRoom(req *Message, data CreateRoomData) {
	reg := c.server.registry

	room, invite, err := reg.CreateRoom(c.ID, data.PlayerKey, data.GameType)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}

	// The creator joins their own room immediately, as the original flow
	// did.
	if _, err := reg.Join(room.Code, game.JoinRequest{
		ConnID:      c.ID,
		Key:         data.PlayerKey,
		DisplayName: data.DisplayName,
	}); err != nil {
		// Nobody ever joined, so nothing would evict the empty room.
		_ = reg.Teardown(room.Code)
		c.sendEngineError(req, err)
		return
	}
	c.setRoomCode(room.Code)

	view, err := reg.PublicState(room.Code)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}

	c.reply(req, MessageTypeCreateRoom, RoomCreatedData{
		RoomCode:    room.Code,
		InviteToken: invite.Token,
		State:       view,
	})
	c.server.broadcastRoomState(room.Code)
}

func (c *Connection) handleJoin(req *Message, data JoinData) {
	reg := c.server.registry

	if data.InviteToken != "" {
		if err := reg.ValidateInvite(data.RoomCode, data.InviteToken); err != nil {
			c.sendEngineError(req, err)
			return
		}
	}

	res, err := reg.Join(data.RoomCode, game.JoinRequest{
		ConnID:      c.ID,
		Key:         data.PlayerKey,
		DisplayName: data.DisplayName,
	})
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.setRoomCode(data.RoomCode)

	view, err := reg.PublicState(data.RoomCode)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}

	c.reply(req, MessageTypeJoin, JoinedData{
		RoomCode: data.RoomCode,
		Resumed:  res.Resumed,
		State:    view,
	})
	c.server.broadcastRoomState(data.RoomCode)
}

func (c *Connection) handleResume(req *Message, data ResumeData) {
	reg := c.server.registry

	res, err := reg.Resume(data.RoomCode, game.ResumeRequest{
		NewConnID:   c.ID,
		Key:         data.PlayerKey,
		DisplayName: data.DisplayName,
	})
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.setRoomCode(data.RoomCode)

	c.reply(req, MessageTypeResume, ResumedData{
		RoomCode: data.RoomCode,
		Hand:     res.Hand,
		Score:    res.Score,
	})
	c.server.broadcastRoomState(data.RoomCode)
}

func (c *Connection) handleStartAndDeal(req *Message) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}

	version, err := c.server.registry.StartAndDeal(code, c.ID)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}

	c.reply(req, MessageTypeStartAndDeal, StartedData{Version: version})
	c.server.broadcastRoomState(code)
	c.server.sendPrivateStates(code)
}

func (c *Connection) handlePlayCard(req *Message, data PlayCardData) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}

	ref := game.CardRef{CardID: data.CardID, Index: -1}
	if data.Index != nil {
		ref.Index = *data.Index
	}

	res, err := c.server.registry.PlayCard(code, c.ID, ref)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.finishAction(req, code, res)
}

func (c *Connection) handleSacrifice(req *Message, data SacrificeData) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}

	res, err := c.server.registry.SacrificeCard(code, c.ID, data.CardID)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.finishAction(req, code, res)
}

func (c *Connection) handleAdjustScore(req *Message, data AdjustScoreData) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}

	res, err := c.server.registry.AdjustScore(code, c.ID, data.Delta, data.Reason)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.finishAction(req, code, res)
}

// finishAction replies with the actor's new private state and fans out the
// event and public state to the room.
func (c *Connection) finishAction(req *Message, code string, res game.ActionResult) {
	c.reply(req, req.Type, ActionData{
		Hand:        res.Hand,
		Score:       res.Score,
		Version:     res.Version,
		Played:      res.Played,
		Replacement: res.Replacement,
	})
	c.server.broadcastEvent(code, res.Event)
	c.server.broadcastRoomState(code)
}

func (c *Connection) handleGetRoom(req *Message) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}
	view, err := c.server.registry.PublicState(code)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.reply(req, MessageTypeRoomUpdated, view)
}

func (c *Connection) handleGetHand(req *Message) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}
	hand, err := c.server.registry.HandOf(code, c.ID)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.reply(req, MessageTypeHandUpdate, HandData{Hand: hand})
}

func (c *Connection) handleGetScore(req *Message) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}
	score, err := c.server.registry.ScoreOf(code, c.ID)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.reply(req, MessageTypeScoreUpdate, ScoreData{Score: score})
}

func (c *Connection) handleGetHistory(req *Message) {
	code := c.RoomCode()
	if code == "" {
		c.sendError(req, "not_in_room", "join a room first")
		return
	}
	updates, err := c.server.registry.Updates(code)
	if err != nil {
		c.sendEngineError(req, err)
		return
	}
	c.reply(req, MessageTypeGetHistory, HistoryData{Updates: updates})
}
