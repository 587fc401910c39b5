package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/jnycolej/GamesApp/internal/catalog"
	"github.com/jnycolej/GamesApp/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestRegistry(t *testing.T) (*Registry, *quartz.Mock) {
	t.Helper()
	mock := quartz.NewMock(t)
	reg := NewRegistry(catalog.Builtin(), mock, randutil.New(42), testLogger(), DefaultSettings())
	return reg, mock
}

func newTestRegistryWithSettings(t *testing.T, settings Settings) (*Registry, *quartz.Mock) {
	t.Helper()
	mock := quartz.NewMock(t)
	reg := NewRegistry(catalog.Builtin(), mock, randutil.New(42), testLogger(), settings)
	return reg, mock
}

// createJoinedRoom creates a room whose host has joined as a player,
// returning the room code and invite.
func createJoinedRoom(t *testing.T, reg *Registry, hostConn, hostKey string) (string, Invite) {
	t.Helper()
	room, invite, err := reg.CreateRoom(hostConn, hostKey, "football")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if _, err := reg.Join(room.Code, JoinRequest{ConnID: hostConn, Key: hostKey, DisplayName: "Host"}); err != nil {
		t.Fatalf("Join host: %v", err)
	}
	return room.Code, invite
}
