package game

import (
	"fmt"

	"github.com/jnycolej/GamesApp/internal/deck"
)

// JoinRequest carries everything needed to bind a connection to a room.
type JoinRequest struct {
	ConnID      string
	Key         string
	DisplayName string
}

// ResumeRequest is the explicit reconnect variant: the client presents its
// durable key and the fresh connection id it got after reconnecting.
type ResumeRequest struct {
	NewConnID   string
	Key         string
	DisplayName string
}

// JoinResult reports whether the join was a fresh insert or an implicit
// resume, plus the player's current durable state.
type JoinResult struct {
	Resumed bool
	ConnID  string
	Name    string
	Hand    []deck.Instance
	Score   int
}

// Join binds a connection to a room. A durable key that already maps to a
// player record turns the call into an implicit resume: the record's
// connection id is rebound, pending eviction is cancelled, and hand and
// score carry over. Presenting the host's durable key also rebinds host
// privileges to the new connection; the key is the only credential there is.
func (reg *Registry) Join(code string, req JoinRequest) (JoinResult, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return JoinResult{}, err
	}

	name := req.DisplayName
	if name == "" {
		name = "Player"
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if req.Key != "" {
		if p, ok := room.playerByKey(req.Key); ok {
			room.rebind(p, req.ConnID)
			reg.logger.Debug("join resumed existing player", "code", code, "conn", req.ConnID, "name", p.Name)
			return JoinResult{
				Resumed: true,
				ConnID:  p.ConnID,
				Name:    p.Name,
				Hand:    p.handSnapshot(),
				Score:   p.Score,
			}, nil
		}
	}

	p := &Player{
		ConnID:    req.ConnID,
		Key:       req.Key,
		Name:      name,
		Hand:      []deck.Instance{},
		Connected: true,
		joinOrder: room.nextJoin,
	}
	room.nextJoin++
	room.players[req.ConnID] = p
	if req.Key != "" {
		room.byKey[req.Key] = req.ConnID
		if req.Key == room.hostKey {
			room.hostConnID = req.ConnID
		}
	}

	room.events.push(Update{
		RoomCode: code,
		At:       reg.clock.Now(),
		Type:     EventPlayerJoined,
		Actor:    ActorSnapshot{ID: p.ConnID, Name: p.Name},
	})

	reg.logger.Info("player joined", "code", code, "conn", req.ConnID, "name", name)
	return JoinResult{ConnID: p.ConnID, Name: p.Name, Hand: p.handSnapshot()}, nil
}

// Resume rebinds a reconnecting client to its prior player record. Unlike
// Join it refuses to create anything: an unknown key is an error.
func (reg *Registry) Resume(code string, req ResumeRequest) (JoinResult, error) {
	if req.Key == "" {
		return JoinResult{}, ErrMissingKey
	}

	room, err := reg.Lookup(code)
	if err != nil {
		return JoinResult{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.playerByKey(req.Key)
	if !ok {
		return JoinResult{}, fmt.Errorf("%w: %s", ErrNoPlayerForKey, code)
	}

	room.rebind(p, req.NewConnID)
	if req.DisplayName != "" {
		p.Name = req.DisplayName
	}

	reg.logger.Info("player resumed", "code", code, "conn", req.NewConnID, "name", p.Name)
	return JoinResult{
		Resumed: true,
		ConnID:  p.ConnID,
		Name:    p.Name,
		Hand:    p.handSnapshot(),
		Score:   p.Score,
	}, nil
}
