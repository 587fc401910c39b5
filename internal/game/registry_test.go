package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jnycolej/GamesApp/internal/catalog"
	"github.com/jnycolej/GamesApp/internal/roomcode"
)

func TestCreateRoom(t *testing.T) {
	reg, _ := newTestRegistry(t)

	room, invite, err := reg.CreateRoom("conn-1", "key-1", "football")
	require.NoError(t, err)
	require.NoError(t, roomcode.Validate(room.Code))
	require.Equal(t, "football", room.GameType)
	require.Equal(t, PhaseLobby, room.CurrentPhase())
	require.NotEmpty(t, invite.Token)

	looked, err := reg.Lookup(room.Code)
	require.NoError(t, err)
	require.Same(t, room, looked)
}

func TestCreateRoomDefaultsGameType(t *testing.T) {
	reg, _ := newTestRegistry(t)
	room, _, err := reg.CreateRoom("conn-1", "key-1", "")
	require.NoError(t, err)
	require.Equal(t, DefaultGameType, room.GameType)
}

func TestCreateRoomUnknownCatalog(t *testing.T) {
	reg, _ := newTestRegistry(t)
	_, _, err := reg.CreateRoom("conn-1", "key-1", "cricket")
	require.ErrorIs(t, err, catalog.ErrCatalogNotFound)
}

func TestCreateRoomCodesAreUnique(t *testing.T) {
	reg, _ := newTestRegistry(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, _, err := reg.CreateRoom("conn", "key", "football")
		require.NoError(t, err)
		if seen[room.Code] {
			t.Fatalf("duplicate room code %s", room.Code)
		}
		seen[room.Code] = true
	}
	require.Len(t, reg.Codes(), 50)
}

func TestLookupUnknownRoom(t *testing.T) {
	reg, _ := newTestRegistry(t)
	_, err := reg.Lookup("ZZZZ")
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestTeardown(t *testing.T) {
	reg, _ := newTestRegistry(t)
	room, _, err := reg.CreateRoom("conn-1", "key-1", "football")
	require.NoError(t, err)

	require.NoError(t, reg.Teardown(room.Code))
	_, err = reg.Lookup(room.Code)
	require.ErrorIs(t, err, ErrRoomNotFound)

	require.ErrorIs(t, reg.Teardown(room.Code), ErrRoomNotFound)
}
