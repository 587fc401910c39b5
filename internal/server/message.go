package server

import (
	"encoding/json"
	"time"

	"github.com/jnycolej/GamesApp/internal/deck"
	"github.com/jnycolej/GamesApp/internal/game"
)

// MessageType identifies a wire message.
type MessageType string

// Client → server request types.
const (
	MessageTypeCreateRoom   MessageType = "room:create"
	MessageTypeJoin         MessageType = "player:join"
	MessageTypeResume       MessageType = "player:resume"
	MessageTypeStartAndDeal MessageType = "game:startAndDeal"
	MessageTypePlayCard     MessageType = "game:playCard"
	MessageTypeSacrifice    MessageType = "player:sacrifice"
	MessageTypeGetRoom      MessageType = "room:get"
	MessageTypeGetHand      MessageType = "hand:getMine"
	MessageTypeGetScore     MessageType = "score:getMine"
	MessageTypeGetHistory   MessageType = "room:history"
	MessageTypeAdjustScore  MessageType = "score:adjust"
)

// Server → client push types.
const (
	MessageTypeRoomUpdated MessageType = "room:updated"
	MessageTypeHandUpdate  MessageType = "hand:update"
	MessageTypeScoreUpdate MessageType = "score:update"
	MessageTypeGameUpdate  MessageType = "game:update"
	MessageTypeError       MessageType = "error"
)

func (mt MessageType) String() string { return string(mt) }

// Message is the wire envelope. Data carries the type-specific payload.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps a payload in an envelope stamped with the current time.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → server payloads.

type CreateRoomData struct {
	GameType    string `json:"gameType,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PlayerKey   string `json:"playerKey"`
}

type JoinData struct {
	RoomCode    string `json:"roomCode"`
	DisplayName string `json:"displayName,omitempty"`
	PlayerKey   string `json:"playerKey"`
	InviteToken string `json:"inviteToken,omitempty"`
}

type ResumeData struct {
	RoomCode    string `json:"roomCode"`
	PlayerKey   string `json:"playerKey"`
	DisplayName string `json:"displayName,omitempty"`
}

type PlayCardData struct {
	Index  *int   `json:"index,omitempty"`
	CardID string `json:"cardId,omitempty"`
}

type SacrificeData struct {
	CardID string `json:"cardId"`
}

type AdjustScoreData struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

// Server → client payloads.

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomCreatedData struct {
	RoomCode    string        `json:"roomCode"`
	InviteToken string        `json:"inviteToken"`
	State       game.RoomView `json:"state"`
}

type JoinedData struct {
	RoomCode string        `json:"roomCode"`
	Resumed  bool          `json:"resumed"`
	State    game.RoomView `json:"state"`
}

type ResumedData struct {
	RoomCode string          `json:"roomCode"`
	Hand     []deck.Instance `json:"hand"`
	Score    int             `json:"score"`
}

type StartedData struct {
	Version uint64 `json:"version"`
}

type ActionData struct {
	Hand        []deck.Instance `json:"hand"`
	Score       int             `json:"score"`
	Version     uint64          `json:"version"`
	Played      *deck.Instance  `json:"played,omitempty"`
	Replacement *deck.Instance  `json:"replacement,omitempty"`
}

type HandData struct {
	Hand []deck.Instance `json:"hand"`
}

type ScoreData struct {
	Score int `json:"score"`
}

type HistoryData struct {
	Updates []game.Update `json:"updates"`
}
