package game

import (
	"fmt"

	"github.com/jnycolej/GamesApp/internal/deck"
)

// CardRef identifies a card in a hand, by instance id when CardID is set,
// otherwise by hand index.
type CardRef struct {
	CardID string
	Index  int
}

// ActionResult is the outcome of a successful mutating call: the player's
// new durable state plus the stored event for immediate broadcast.
type ActionResult struct {
	Hand        []deck.Instance
	Score       int
	Version     uint64
	Played      *deck.Instance
	Replacement *deck.Instance
	Event       Update
}

// StartAndDeal transitions the room into the playing phase and deals every
// player a fresh hand. Only the current host connection may trigger it.
// Calling it again mid-session re-deals: discard pile, draw counter and
// scores reset, but the phase never returns to lobby.
func (reg *Registry) StartAndDeal(code, requesterConnID string) (uint64, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return 0, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if requesterConnID != room.hostConnID {
		return 0, ErrNotHost
	}
	if len(room.players) < room.Settings.MinPlayers {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPlayers, len(room.players), room.Settings.MinPlayers)
	}

	// Draw every hand before touching any state so a failed draw leaves
	// the room exactly as it was.
	hands := make(map[string][]deck.Instance, len(room.players))
	dealt := 0
	for connID := range room.players {
		hand, err := room.drawer.DrawN(room.Settings.HandSize)
		if err != nil {
			return 0, fmt.Errorf("deal: %w", err)
		}
		hands[connID] = hand
		dealt += len(hand)
	}

	room.discard = room.discard[:0]
	room.drawCount = dealt
	room.clearShields()
	for connID, p := range room.players {
		p.Hand = hands[connID]
		p.Score = 0
	}

	room.phase = PhasePlaying
	room.status = StatusActive
	room.version++

	host := room.players[requesterConnID]
	room.events.push(Update{
		RoomCode: code,
		At:       reg.clock.Now(),
		Type:     EventDealCompleted,
		Actor:    ActorSnapshot{ID: requesterConnID, Name: host.Name},
		Meta:     map[string]string{"handSize": fmt.Sprint(room.Settings.HandSize)},
	})

	reg.logger.Info("game started", "code", code, "players", len(room.players), "handSize", room.Settings.HandSize)
	return room.version, nil
}

// PlayCard scores the referenced card for the player, moves it to the
// discard pile and draws a replacement into the same slot, so hand length
// is invariant across a play. The whole mutation happens under the room
// lock: hand, discard, score, version and event move together or not at
// all.
func (reg *Registry) PlayCard(code, connID string, ref CardRef) (ActionResult, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return ActionResult{}, err
	}

	var res ActionResult
	err = room.withLock(connID, func() error {
		room.mu.Lock()
		defer room.mu.Unlock()

		p, slot, err := room.resolveCard(connID, ref)
		if err != nil {
			return err
		}
		if room.slotShielded(connID, slot, reg.clock.Now()) {
			return ErrActionInProgress
		}

		res, err = reg.replaceAndScore(room, p, slot, +1, EventCardPlayed)
		return err
	})
	return res, err
}

// SacrificeCard discards the card by instance id, subtracting its point
// value from the player's score, and draws a replacement. A short shield
// is armed on the slot so a racing play gesture on the replacement is
// suppressed.
func (reg *Registry) SacrificeCard(code, connID, cardID string) (ActionResult, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return ActionResult{}, err
	}

	var res ActionResult
	err = room.withLock(connID, func() error {
		room.mu.Lock()
		defer room.mu.Unlock()

		p, slot, err := room.resolveCard(connID, CardRef{CardID: cardID})
		if err != nil {
			return err
		}

		res, err = reg.replaceAndScore(room, p, slot, -1, EventCardSacrificed)
		if err == nil {
			room.armShield(connID, slot, reg.clock.Now())
		}
		return err
	})
	return res, err
}

// resolveCard validates phase and membership, then locates the referenced
// card. Must be called with room.mu held.
func (room *Room) resolveCard(connID string, ref CardRef) (*Player, int, error) {
	if room.phase != PhasePlaying {
		return nil, 0, ErrNotPlaying
	}
	p, ok := room.playerByConn(connID)
	if !ok {
		return nil, 0, ErrNotInRoom
	}

	if ref.CardID != "" {
		for i, card := range p.Hand {
			if card.InstanceID == ref.CardID {
				return p, i, nil
			}
		}
		return nil, 0, fmt.Errorf("%w: %s", ErrCardNotInHand, ref.CardID)
	}

	if ref.Index < 0 || ref.Index >= len(p.Hand) {
		return nil, 0, fmt.Errorf("%w: %d", ErrBadIndex, ref.Index)
	}
	return p, ref.Index, nil
}

// replaceAndScore applies the shared play/sacrifice mutation: score delta,
// discard, in-place replacement draw, version bump and event append. Must
// be called with room.mu held.
func (reg *Registry) replaceAndScore(room *Room, p *Player, slot int, sign int, eventType EventType) (ActionResult, error) {
	played := p.Hand[slot]

	replacement, err := room.drawer.Draw()
	if err != nil {
		// Draw failed: nothing has been mutated yet, leave state as-is.
		return ActionResult{}, fmt.Errorf("replacement draw: %w", err)
	}

	delta := sign * played.Points
	p.Score += delta
	room.discard = append(room.discard, played)
	p.Hand[slot] = replacement
	room.drawCount++
	room.version++

	event := room.events.push(Update{
		RoomCode: room.Code,
		At:       reg.clock.Now(),
		Type:     eventType,
		Actor:    ActorSnapshot{ID: p.ConnID, Name: p.Name},
		Card: &CardSnapshot{
			ID:     played.InstanceID,
			Label:  played.Label,
			Points: played.Points,
		},
		DeltaPoints: delta,
	})

	return ActionResult{
		Hand:        p.handSnapshot(),
		Score:       p.Score,
		Version:     room.version,
		Played:      &played,
		Replacement: &replacement,
		Event:       event,
	}, nil
}

// AdjustScore applies an administrative score delta (the trivia bonus
// path). It bumps the version and appends a SCORE_ADJUSTED event like any
// other mutation.
func (reg *Registry) AdjustScore(code, connID string, delta int, reason string) (ActionResult, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return ActionResult{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.playerByConn(connID)
	if !ok {
		return ActionResult{}, ErrNotInRoom
	}

	p.Score += delta
	room.version++

	var meta map[string]string
	if reason != "" {
		meta = map[string]string{"reason": reason}
	}
	event := room.events.push(Update{
		RoomCode:    code,
		At:          reg.clock.Now(),
		Type:        EventScoreAdjusted,
		Actor:       ActorSnapshot{ID: p.ConnID, Name: p.Name},
		DeltaPoints: delta,
		Meta:        meta,
	})

	return ActionResult{
		Hand:    p.handSnapshot(),
		Score:   p.Score,
		Version: room.version,
		Event:   event,
	}, nil
}

// SetScore overwrites a player's score with an absolute value; the event
// records the effective delta.
func (reg *Registry) SetScore(code, connID string, score int, reason string) (ActionResult, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return ActionResult{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.playerByConn(connID)
	if !ok {
		return ActionResult{}, ErrNotInRoom
	}

	delta := score - p.Score
	p.Score = score
	room.version++

	var meta map[string]string
	if reason != "" {
		meta = map[string]string{"reason": reason}
	}
	event := room.events.push(Update{
		RoomCode:    code,
		At:          reg.clock.Now(),
		Type:        EventScoreAdjusted,
		Actor:       ActorSnapshot{ID: p.ConnID, Name: p.Name},
		DeltaPoints: delta,
		Meta:        meta,
	})

	return ActionResult{
		Hand:    p.handSnapshot(),
		Score:   p.Score,
		Version: room.version,
		Event:   event,
	}, nil
}
