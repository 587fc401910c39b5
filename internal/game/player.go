package game

import (
	"github.com/coder/quartz"

	"github.com/jnycolej/GamesApp/internal/deck"
)

// Player is one participant's in-room state. ConnID is volatile (every
// reconnect brings a new one); Key is the durable identifier clients hold
// on to, and is the thing hand and score survival hangs off.
type Player struct {
	ConnID    string
	Key       string
	Name      string
	Hand      []deck.Instance
	Score     int
	Connected bool

	joinOrder int
	eviction  *quartz.Timer
}

// cancelEviction stops a pending removal timer, if any.
func (p *Player) cancelEviction() {
	if p.eviction != nil {
		p.eviction.Stop()
		p.eviction = nil
	}
}

// handSnapshot returns a copy of the hand safe to hand to callers after
// the room lock is released.
func (p *Player) handSnapshot() []deck.Instance {
	hand := make([]deck.Instance, len(p.Hand))
	copy(hand, p.Hand)
	return hand
}
