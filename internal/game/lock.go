package game

import "time"

// tryAcquire marks the player's action slot busy. It fails fast rather
// than queuing: a second mutating call from the same player while one is
// in flight gets ErrActionInProgress and may simply retry.
func (r *Room) tryAcquire(connID string) error {
	r.actionMu.Lock()
	defer r.actionMu.Unlock()
	if r.busy[connID] {
		return ErrActionInProgress
	}
	r.busy[connID] = true
	return nil
}

// release frees the player's action slot. Always deferred by the caller so
// the slot is freed on every path, including errors.
func (r *Room) release(connID string) {
	r.actionMu.Lock()
	defer r.actionMu.Unlock()
	delete(r.busy, connID)
}

// withLock runs fn with the per-player action lock held.
func (r *Room) withLock(connID string, fn func() error) error {
	if err := r.tryAcquire(connID); err != nil {
		return err
	}
	defer r.release(connID)
	return fn()
}

// shieldKey scopes a shield to one player's hand slot; another player
// acting on the same slot index is a different card entirely.
type shieldKey struct {
	connID string
	slot   int
}

// armShield suppresses the player's plays on a hand slot for the
// configured window. The UI can race a play gesture on the card that just
// got replaced by a sacrifice; the shield absorbs it server-side.
func (r *Room) armShield(connID string, slot int, now time.Time) {
	if r.Settings.SacrificeShield <= 0 {
		return
	}
	r.actionMu.Lock()
	defer r.actionMu.Unlock()
	r.shields[shieldKey{connID, slot}] = now.Add(r.Settings.SacrificeShield)
}

// slotShielded reports whether the player's play on the slot should be
// suppressed.
func (r *Room) slotShielded(connID string, slot int, now time.Time) bool {
	r.actionMu.Lock()
	defer r.actionMu.Unlock()
	key := shieldKey{connID, slot}
	until, ok := r.shields[key]
	if !ok {
		return false
	}
	if now.After(until) {
		delete(r.shields, key)
		return false
	}
	return true
}

// clearShields drops all armed shields; a re-deal replaces every hand, so
// stale shields would suppress plays on fresh cards.
func (r *Room) clearShields() {
	r.actionMu.Lock()
	defer r.actionMu.Unlock()
	clear(r.shields)
}
