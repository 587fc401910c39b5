package game

import (
	"sync"
	"time"

	"github.com/jnycolej/GamesApp/internal/deck"
)

// Phase is the room's game phase. A session moves lobby → playing once and
// never back; re-deals stay in the playing phase.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
)

// Status tracks coarse room availability for listings.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusActive  Status = "active"
)

// Settings are the per-room gameplay knobs.
type Settings struct {
	HandSize         int
	MinPlayers       int
	OpenHandsAllowed bool
	InviteTTL        time.Duration
	EvictionDelay    time.Duration
	SacrificeShield  time.Duration
}

// DefaultSettings mirror the stock room configuration.
func DefaultSettings() Settings {
	return Settings{
		HandSize:         5,
		MinPlayers:       1,
		OpenHandsAllowed: true,
		InviteTTL:        time.Hour,
		EvictionDelay:    20 * time.Minute,
		SacrificeShield:  400 * time.Millisecond,
	}
}

// Room is one live game session. All mutable state is guarded by mu; the
// registry hands out *Room but every mutation goes through Registry
// methods, which take mu for the full read-modify-write.
type Room struct {
	Code     string
	GameType string
	Settings Settings

	mu         sync.Mutex
	phase      Phase
	status     Status
	hostKey    string
	hostConnID string
	invite     Invite
	version    uint64
	discard    []deck.Instance
	drawCount  int
	drawer     *deck.Drawer
	players    map[string]*Player // conn id → player
	byKey      map[string]string  // durable key → conn id
	nextJoin   int
	events     *updateRing

	// Per-player action serialization, separate from mu so an in-flight
	// action is observable without blocking on it.
	actionMu sync.Mutex
	busy     map[string]bool
	shields  map[shieldKey]time.Time // player's hand slot → suppress plays until
}

// newRoom is called by the registry with the catalog already loaded.
func newRoom(code, gameType string, settings Settings, drawer *deck.Drawer) *Room {
	return &Room{
		Code:     code,
		GameType: gameType,
		Settings: settings,
		phase:    PhaseLobby,
		status:   StatusWaiting,
		drawer:   drawer,
		players:  make(map[string]*Player),
		byKey:    make(map[string]string),
		events:   newUpdateRing(eventLogCapacity),
		busy:     make(map[string]bool),
		shields:  make(map[shieldKey]time.Time),
	}
}

// Version returns the room's current version counter.
func (r *Room) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// CurrentPhase returns the room's current phase.
func (r *Room) CurrentPhase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// PlayerCount returns the number of players in the room, connected or not.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// playerByConn must be called with mu held.
func (r *Room) playerByConn(connID string) (*Player, bool) {
	p, ok := r.players[connID]
	return p, ok
}

// playerByKey must be called with mu held.
func (r *Room) playerByKey(key string) (*Player, bool) {
	connID, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return r.players[connID], true
}

// rebind moves a player record to a new connection id, keeping durable
// state. Must be called with mu held.
func (r *Room) rebind(p *Player, newConnID string) {
	delete(r.players, p.ConnID)
	p.ConnID = newConnID
	p.Connected = true
	p.cancelEviction()
	r.players[newConnID] = p
	if p.Key != "" {
		r.byKey[p.Key] = newConnID
		if p.Key == r.hostKey {
			r.hostConnID = newConnID
		}
	}
}
