package game

// HandleDisconnect marks the player offline and arms a deferred removal
// timer. The long delay favors session continuity on flaky connections:
// a join or resume with the same durable key cancels the timer and the
// player keeps their hand and score.
func (reg *Registry) HandleDisconnect(code, connID string) error {
	room, err := reg.Lookup(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.playerByConn(connID)
	if !ok {
		return ErrNotInRoom
	}

	p.Connected = false
	p.cancelEviction()
	p.eviction = reg.clock.AfterFunc(room.Settings.EvictionDelay, func() {
		reg.evict(room, connID)
	})

	reg.logger.Info("player disconnected", "code", code, "conn", connID, "evictIn", room.Settings.EvictionDelay)
	return nil
}

// evict removes the player if they are still disconnected when the timer
// fires. Hand and score are lost at this point.
func (reg *Registry) evict(room *Room, connID string) {
	room.mu.Lock()
	p, ok := room.playerByConn(connID)
	if !ok || p.Connected {
		room.mu.Unlock()
		return
	}

	delete(room.players, connID)
	if p.Key != "" && room.byKey[p.Key] == connID {
		delete(room.byKey, p.Key)
	}
	p.eviction = nil

	room.events.push(Update{
		RoomCode: room.Code,
		At:       reg.clock.Now(),
		Type:     EventPlayerLeft,
		Actor:    ActorSnapshot{ID: connID, Name: p.Name},
	})
	room.mu.Unlock()

	reg.logger.Info("player evicted", "code", room.Code, "conn", connID, "name", p.Name)
	reg.removeIfEmpty(room)
}
