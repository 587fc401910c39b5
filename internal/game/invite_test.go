package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateInvite(t *testing.T) {
	reg, _ := newTestRegistry(t)
	room, invite, err := reg.CreateRoom("host-conn", "host-key", "football")
	require.NoError(t, err)

	require.NoError(t, reg.ValidateInvite(room.Code, invite.Token))
}

func TestValidateInviteBadToken(t *testing.T) {
	reg, _ := newTestRegistry(t)
	room, _, err := reg.CreateRoom("host-conn", "host-key", "football")
	require.NoError(t, err)

	require.ErrorIs(t, reg.ValidateInvite(room.Code, "wrong"), ErrBadToken)
}

func TestValidateInviteExpired(t *testing.T) {
	reg, mock := newTestRegistry(t)
	room, invite, err := reg.CreateRoom("host-conn", "host-key", "football")
	require.NoError(t, err)

	// Still valid right at the TTL boundary.
	mock.Advance(DefaultSettings().InviteTTL)
	require.NoError(t, reg.ValidateInvite(room.Code, invite.Token))

	mock.Advance(time.Second)
	require.ErrorIs(t, reg.ValidateInvite(room.Code, invite.Token), ErrTokenExpired)
}

func TestValidateInviteUnknownRoom(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.ErrorIs(t, reg.ValidateInvite("ZZZZ", "whatever"), ErrRoomNotFound)
}
