package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrRoomNotFound, "room_not_found"},
		{fmt.Errorf("wrapped: %w", ErrRoomNotFound), "room_not_found"},
		{ErrNotHost, "not_host"},
		{ErrNotEnoughPlayers, "not_enough_players"},
		{ErrNotPlaying, "not_playing"},
		{ErrNotInRoom, "not_in_room"},
		{ErrBadIndex, "bad_index"},
		{ErrCardNotInHand, "card_not_in_hand"},
		{ErrActionInProgress, "action_in_progress"},
		{ErrNoInvite, "no_invite"},
		{ErrBadToken, "bad_token"},
		{ErrTokenExpired, "token_expired"},
		{ErrMissingKey, "missing_key"},
		{ErrNoPlayerForKey, "no_player_for_key"},
		{errors.New("anything else"), "internal_error"},
	}
	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
