package game

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/jnycolej/GamesApp/internal/catalog"
	"github.com/jnycolej/GamesApp/internal/deck"
	"github.com/jnycolej/GamesApp/internal/randutil"
	"github.com/jnycolej/GamesApp/internal/roomcode"
)

// DefaultGameType is used when a create request leaves the game type blank.
const DefaultGameType = "football"

// codeRetries bounds collision retries at the default code length before
// falling back to the longer one.
const codeRetries = 5

// Registry owns the set of live rooms. It is the only component allowed to
// add or remove rooms, and all engine entry points hang off it so nothing
// reaches a Room except through here.
type Registry struct {
	loader   catalog.Loader
	clock    quartz.Clock
	codes    *roomcode.Generator
	rng      *rand.Rand
	logger   *log.Logger
	settings Settings

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry constructs an empty registry. The clock is injected so tests
// can drive invite expiry and eviction with a mock.
func NewRegistry(loader catalog.Loader, clock quartz.Clock, rng *rand.Rand, logger *log.Logger, settings Settings) *Registry {
	return &Registry{
		loader:   loader,
		clock:    clock,
		codes:    roomcode.NewGenerator(rng),
		rng:      rng,
		logger:   logger.WithPrefix("registry"),
		settings: settings,
		rooms:    make(map[string]*Room),
	}
}

// CreateRoom loads the catalog for the game type, generates a collision-free
// code and publishes the new room atomically. The returned invite is the
// only one the room will ever have.
func (reg *Registry) CreateRoom(hostConnID, hostKey, gameType string) (*Room, Invite, error) {
	if gameType == "" {
		gameType = DefaultGameType
	}

	// Catalog load is the one potentially slow step; do it before taking
	// the registry lock. The set is cached on the room's drawer and never
	// reloaded per draw.
	set, err := reg.loader.Load(gameType)
	if err != nil {
		return nil, Invite{}, fmt.Errorf("create room: %w", err)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := reg.generateCodeLocked()
	drawer := deck.NewDrawer(set, randutil.New(reg.rng.Int64()))
	room := newRoom(code, gameType, reg.settings, drawer)
	room.hostKey = hostKey
	room.hostConnID = hostConnID
	room.invite = newInvite(reg.clock.Now(), reg.settings.InviteTTL)
	reg.rooms[code] = room

	reg.logger.Info("room created", "code", code, "gameType", gameType, "host", hostConnID)
	return room, room.invite, nil
}

// generateCodeLocked retries short codes a few times, then falls back to a
// longer code, which makes collisions vanishingly unlikely. Caller holds
// the write lock, so a generated code is published before anyone can race
// a duplicate.
func (reg *Registry) generateCodeLocked() string {
	for i := 0; i < codeRetries; i++ {
		code := reg.codes.Generate(roomcode.DefaultLength)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
	for {
		code := reg.codes.Generate(roomcode.FallbackLength)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
}

// Lookup returns the live room for a code.
func (reg *Registry) Lookup(code string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}
	return room, nil
}

// Codes lists the codes of all live rooms.
func (reg *Registry) Codes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	codes := make([]string, 0, len(reg.rooms))
	for code := range reg.rooms {
		codes = append(codes, code)
	}
	return codes
}

// Teardown removes a room and cancels its pending eviction timers.
func (reg *Registry) Teardown(code string) error {
	reg.mu.Lock()
	room, ok := reg.rooms[code]
	if ok {
		delete(reg.rooms, code)
	}
	reg.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}

	room.mu.Lock()
	for _, p := range room.players {
		p.cancelEviction()
	}
	room.mu.Unlock()

	reg.logger.Info("room torn down", "code", code)
	return nil
}

// removeIfEmpty tears the room down when its last player is gone.
func (reg *Registry) removeIfEmpty(room *Room) {
	room.mu.Lock()
	empty := len(room.players) == 0
	room.mu.Unlock()
	if !empty {
		return
	}

	reg.mu.Lock()
	if current, ok := reg.rooms[room.Code]; ok && current == room {
		delete(reg.rooms, room.Code)
		reg.logger.Info("empty room removed", "code", room.Code)
	}
	reg.mu.Unlock()
}

// Updates returns the room's event history, oldest first.
func (reg *Registry) Updates(code string) ([]Update, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return nil, err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.events.snapshot(), nil
}

// PushUpdate appends an externally constructed event to a room's history
// and returns the stored record for broadcast.
func (reg *Registry) PushUpdate(code string, u Update) (Update, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return Update{}, err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	u.RoomCode = code
	if u.At.IsZero() {
		u.At = reg.clock.Now()
	}
	return room.events.push(u), nil
}
