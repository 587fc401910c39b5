package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Invite is a time-boxed join authorization scoped to one room. Tokens are
// never rotated; expiry is the only revocation mechanism.
type Invite struct {
	Token     string        `json:"token"`
	CreatedAt time.Time     `json:"createdAt"`
	TTL       time.Duration `json:"ttl"`
}

func newInvite(now time.Time, ttl time.Duration) Invite {
	return Invite{
		Token:     uuid.NewString(),
		CreatedAt: now,
		TTL:       ttl,
	}
}

// ValidateInvite checks a presented token against the room's invite.
func (reg *Registry) ValidateInvite(code, token string) error {
	room, err := reg.Lookup(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	invite := room.invite
	room.mu.Unlock()

	if invite.Token == "" {
		return fmt.Errorf("%w: room %s", ErrNoInvite, code)
	}
	if token != invite.Token {
		return ErrBadToken
	}
	if reg.clock.Now().Sub(invite.CreatedAt) > invite.TTL {
		return ErrTokenExpired
	}
	return nil
}
