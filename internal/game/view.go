package game

import (
	"sort"

	"github.com/jnycolej/GamesApp/internal/deck"
)

// PlayerView is one player's entry in the public room state. Hand is
// populated only when the room allows open hands; otherwise observers get
// just HandCount, preserving hidden-information variants.
type PlayerView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Connected bool            `json:"connected"`
	Score     int             `json:"score"`
	Hand      []deck.Instance `json:"hand,omitempty"`
	HandCount int             `json:"handCount"`
}

// RoomView is the broadcastable public snapshot of a room.
type RoomView struct {
	Code     string       `json:"code"`
	GameType string       `json:"gameType"`
	Phase    Phase        `json:"phase"`
	Status   Status       `json:"status"`
	Version  uint64       `json:"version"`
	Players  []PlayerView `json:"players"`
}

// PublicState snapshots the room for broadcast. Join order is preserved so
// the scoreboard is stable across refreshes.
func (reg *Registry) PublicState(code string) (RoomView, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return RoomView{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	players := make([]*Player, 0, len(room.players))
	for _, p := range room.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].joinOrder < players[j].joinOrder
	})

	view := RoomView{
		Code:     room.Code,
		GameType: room.GameType,
		Phase:    room.phase,
		Status:   room.status,
		Version:  room.version,
		Players:  make([]PlayerView, 0, len(players)),
	}
	for _, p := range players {
		pv := PlayerView{
			ID:        p.ConnID,
			Name:      p.Name,
			Connected: p.Connected,
			Score:     p.Score,
			HandCount: len(p.Hand),
		}
		if room.Settings.OpenHandsAllowed {
			pv.Hand = p.handSnapshot()
		}
		view.Players = append(view.Players, pv)
	}
	return view, nil
}

// HandOf returns the player's current hand.
func (reg *Registry) HandOf(code, connID string) ([]deck.Instance, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return nil, err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	p, ok := room.playerByConn(connID)
	if !ok {
		return nil, ErrNotInRoom
	}
	return p.handSnapshot(), nil
}

// ScoreOf returns the player's current score.
func (reg *Registry) ScoreOf(code, connID string) (int, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return 0, err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	p, ok := room.playerByConn(connID)
	if !ok {
		return 0, ErrNotInRoom
	}
	return p.Score, nil
}
