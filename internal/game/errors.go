package game

import "errors"

// Sentinel errors for every failure the engine reports. Callers surface
// the stable wire code from ErrorCode; the sentinels themselves are what
// code inside the process matches on with errors.Is.
var (
	ErrRoomNotFound     = errors.New("game: room not found")
	ErrNotInRoom        = errors.New("game: player not in room")
	ErrNotHost          = errors.New("game: requester is not the host")
	ErrNotEnoughPlayers = errors.New("game: not enough players")
	ErrNotPlaying       = errors.New("game: room is not in the playing phase")
	ErrBadIndex         = errors.New("game: hand index out of range")
	ErrCardNotInHand    = errors.New("game: card not in hand")
	ErrActionInProgress = errors.New("game: action already in progress")
	ErrNoInvite         = errors.New("game: room has no invite")
	ErrBadToken         = errors.New("game: invite token mismatch")
	ErrTokenExpired     = errors.New("game: invite token expired")
	ErrMissingKey       = errors.New("game: durable key required")
	ErrNoPlayerForKey   = errors.New("game: no player for durable key")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrRoomNotFound, "room_not_found"},
	{ErrNotInRoom, "not_in_room"},
	{ErrNotHost, "not_host"},
	{ErrNotEnoughPlayers, "not_enough_players"},
	{ErrNotPlaying, "not_playing"},
	{ErrBadIndex, "bad_index"},
	{ErrCardNotInHand, "card_not_in_hand"},
	{ErrActionInProgress, "action_in_progress"},
	{ErrNoInvite, "no_invite"},
	{ErrBadToken, "bad_token"},
	{ErrTokenExpired, "token_expired"},
	{ErrMissingKey, "missing_key"},
	{ErrNoPlayerForKey, "no_player_for_key"},
}

// ErrorCode maps an engine error to its stable wire code. Unknown errors
// map to "internal_error".
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal_error"
}
