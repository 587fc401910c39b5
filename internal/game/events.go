package game

import (
	"fmt"
	"time"
)

// EventType identifies a room feed entry.
type EventType string

const (
	EventCardPlayed     EventType = "CARD_PLAYED"
	EventCardSacrificed EventType = "CARD_SACRIFICED"
	EventScoreAdjusted  EventType = "SCORE_ADJUSTED"
	EventDealCompleted  EventType = "DEAL_COMPLETED"
	EventPlayerJoined   EventType = "PLAYER_JOINED"
	EventPlayerLeft     EventType = "PLAYER_LEFT"
)

// eventLogCapacity bounds each room's history; the oldest entries are
// dropped once exceeded.
const eventLogCapacity = 100

// ActorSnapshot is the acting player at the moment of the event.
type ActorSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CardSnapshot is the card involved in the event, if any.
type CardSnapshot struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Update is one immutable room feed entry.
type Update struct {
	ID          string            `json:"id"`
	RoomCode    string            `json:"roomCode"`
	At          time.Time         `json:"at"`
	Type        EventType         `json:"type"`
	Actor       ActorSnapshot     `json:"actor"`
	Card        *CardSnapshot     `json:"card,omitempty"`
	DeltaPoints int               `json:"deltaPoints"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// fillID derives an id for updates that arrive without one.
func (u *Update) fillID() {
	if u.ID != "" {
		return
	}
	cardPart := ""
	if u.Card != nil {
		cardPart = "-" + u.Card.ID
	}
	u.ID = fmt.Sprintf("%s-%d-%s-%s%s", u.RoomCode, u.At.UnixNano(), u.Type, u.Actor.ID, cardPart)
}

// updateRing is a bounded append-only event log. Not safe for concurrent
// use on its own; the owning room's lock covers it.
type updateRing struct {
	cap     int
	entries []Update
}

func newUpdateRing(capacity int) *updateRing {
	return &updateRing{cap: capacity}
}

// push appends an update, dropping the oldest entry once the ring is full,
// and returns the stored record.
func (ur *updateRing) push(u Update) Update {
	u.fillID()
	if len(ur.entries) == ur.cap {
		copy(ur.entries, ur.entries[1:])
		ur.entries[len(ur.entries)-1] = u
	} else {
		ur.entries = append(ur.entries, u)
	}
	return u
}

// snapshot returns the buffer contents, oldest first.
func (ur *updateRing) snapshot() []Update {
	out := make([]Update, len(ur.entries))
	copy(out, ur.entries)
	return out
}

func (ur *updateRing) len() int { return len(ur.entries) }
