package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDisconnectMarksPlayerOffline(t *testing.T) {
	reg, _ := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")

	require.NoError(t, reg.HandleDisconnect(code, "host-conn"))

	view, err := reg.PublicState(code)
	require.NoError(t, err)
	require.Len(t, view.Players, 1)
	require.False(t, view.Players[0].Connected)
}

func TestDisconnectUnknownPlayer(t *testing.T) {
	reg, _ := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")
	require.ErrorIs(t, reg.HandleDisconnect(code, "ghost"), ErrNotInRoom)
	require.ErrorIs(t, reg.HandleDisconnect("ZZZZ", "host-conn"), ErrRoomNotFound)
}

func TestEvictionFiresAfterDelay(t *testing.T) {
	reg, mock := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")
	_, err := reg.Join(code, JoinRequest{ConnID: "c1", Key: "k1", DisplayName: "Avery"})
	require.NoError(t, err)

	require.NoError(t, reg.HandleDisconnect(code, "c1"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mock.Advance(DefaultSettings().EvictionDelay).MustWait(ctx)
	mock.Advance(time.Second).MustWait(ctx)

	room, err := reg.Lookup(code)
	require.NoError(t, err)
	require.Equal(t, 1, room.PlayerCount(), "evicted player removed, host remains")

	updates, err := reg.Updates(code)
	require.NoError(t, err)
	last := updates[len(updates)-1]
	require.Equal(t, EventPlayerLeft, last.Type)
	require.Equal(t, "Avery", last.Actor.Name)
}

func TestResumeCancelsPendingEviction(t *testing.T) {
	reg, mock := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")
	_, err := reg.Join(code, JoinRequest{ConnID: "c1", Key: "k1", DisplayName: "Avery"})
	require.NoError(t, err)
	_, err = reg.StartAndDeal(code, "host-conn")
	require.NoError(t, err)

	handBefore, err := reg.HandOf(code, "c1")
	require.NoError(t, err)

	require.NoError(t, reg.HandleDisconnect(code, "c1"))

	res, err := reg.Resume(code, ResumeRequest{NewConnID: "c1-new", Key: "k1"})
	require.NoError(t, err)
	require.Equal(t, len(handBefore), len(res.Hand))

	// The old timer must not fire against the resumed player.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mock.Advance(DefaultSettings().EvictionDelay * 2).MustWait(ctx)

	room, err := reg.Lookup(code)
	require.NoError(t, err)
	require.Equal(t, 2, room.PlayerCount())

	hand, err := reg.HandOf(code, "c1-new")
	require.NoError(t, err)
	require.Equal(t, len(handBefore), len(hand), "hand survives the reconnect")
	for i := range hand {
		require.Equal(t, handBefore[i].InstanceID, hand[i].InstanceID)
	}
}

func TestLastEvictionRemovesEmptyRoom(t *testing.T) {
	reg, mock := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")

	require.NoError(t, reg.HandleDisconnect(code, "host-conn"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mock.Advance(DefaultSettings().EvictionDelay).MustWait(ctx)
	mock.Advance(time.Second).MustWait(ctx)

	_, err := reg.Lookup(code)
	require.ErrorIs(t, err, ErrRoomNotFound)
}
