package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinInsertsNewPlayer(t *testing.T) {
	reg, _ := newTestRegistry(t)
	room, _, err := reg.CreateRoom("host-conn", "host-key", "football")
	require.NoError(t, err)

	res, err := reg.Join(room.Code, JoinRequest{ConnID: "c1", Key: "k1", DisplayName: "Avery"})
	require.NoError(t, err)
	require.False(t, res.Resumed)
	require.Equal(t, "Avery", res.Name)
	require.Empty(t, res.Hand)
	require.Zero(t, res.Score)
	require.Equal(t, 1, room.PlayerCount())
}

func TestJoinDefaultsDisplayName(t *testing.T) {
	reg, _ := newTestRegistry(t)
	room, _, err := reg.CreateRoom("host-conn", "host-key", "football")
	require.NoError(t, err)

	res, err := reg.Join(room.Code, JoinRequest{ConnID: "c1", Key: "k1"})
	require.NoError(t, err)
	require.Equal(t, "Player", res.Name)
}

func TestJoinUnknownRoom(t *testing.T) {
	reg, _ := newTestRegistry(t)
	_, err := reg.Join("ZZZZ", JoinRequest{ConnID: "c1", Key: "k1"})
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinWithKnownKeyIsImplicitResume(t *testing.T) {
	reg, _ := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")

	_, err := reg.Join(code, JoinRequest{ConnID: "c1", Key: "k1", DisplayName: "Avery"})
	require.NoError(t, err)
	_, err = reg.StartAndDeal(code, "host-conn")
	require.NoError(t, err)

	handBefore, err := reg.HandOf(code, "c1")
	require.NoError(t, err)
	_, err = reg.PlayCard(code, "c1", CardRef{Index: 0})
	require.NoError(t, err)
	scoreBefore, err := reg.ScoreOf(code, "c1")
	require.NoError(t, err)

	// Same durable key, new connection id: state carries over.
	res, err := reg.Join(code, JoinRequest{ConnID: "c1-reborn", Key: "k1", DisplayName: "Avery"})
	require.NoError(t, err)
	require.True(t, res.Resumed)
	require.Equal(t, scoreBefore, res.Score)
	require.Len(t, res.Hand, len(handBefore))

	// The old conn id no longer resolves.
	_, err = reg.HandOf(code, "c1")
	require.ErrorIs(t, err, ErrNotInRoom)
}

func TestJoinRebindsHostPrivileges(t *testing.T) {
	reg, _ := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")

	// Host reconnects under a new conn id by presenting the host key.
	_, err := reg.Join(code, JoinRequest{ConnID: "host-conn-2", Key: "host-key"})
	require.NoError(t, err)

	// The old host conn can no longer start; the new one can.
	_, err = reg.StartAndDeal(code, "host-conn")
	require.ErrorIs(t, err, ErrNotHost)
	_, err = reg.StartAndDeal(code, "host-conn-2")
	require.NoError(t, err)
}

func TestResume(t *testing.T) {
	reg, _ := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")
	_, err := reg.Join(code, JoinRequest{ConnID: "c1", Key: "k1", DisplayName: "Avery"})
	require.NoError(t, err)
	_, err = reg.StartAndDeal(code, "host-conn")
	require.NoError(t, err)

	res, err := reg.Resume(code, ResumeRequest{NewConnID: "c1-new", Key: "k1"})
	require.NoError(t, err)
	require.True(t, res.Resumed)
	require.Equal(t, "c1-new", res.ConnID)
	require.Len(t, res.Hand, DefaultSettings().HandSize)
}

func TestResumeErrors(t *testing.T) {
	reg, _ := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")

	_, err := reg.Resume(code, ResumeRequest{NewConnID: "x"})
	require.ErrorIs(t, err, ErrMissingKey)

	_, err = reg.Resume(code, ResumeRequest{NewConnID: "x", Key: "nobody"})
	require.ErrorIs(t, err, ErrNoPlayerForKey)

	_, err = reg.Resume("ZZZZ", ResumeRequest{NewConnID: "x", Key: "k1"})
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestResumeUpdatesDisplayName(t *testing.T) {
	reg, _ := newTestRegistry(t)
	code, _ := createJoinedRoom(t, reg, "host-conn", "host-key")
	_, err := reg.Join(code, JoinRequest{ConnID: "c1", Key: "k1", DisplayName: "Avery"})
	require.NoError(t, err)

	res, err := reg.Resume(code, ResumeRequest{NewConnID: "c2", Key: "k1", DisplayName: "Ave"})
	require.NoError(t, err)
	require.Equal(t, "Ave", res.Name)

	res, err = reg.Resume(code, ResumeRequest{NewConnID: "c3", Key: "k1"})
	require.NoError(t, err)
	require.Equal(t, "Ave", res.Name)
}
