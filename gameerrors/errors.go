package gameerrors

import "errors"

// Setup errors. Returned before the first phase runs; the session is never created.
var (
	ErrPlayerCount    = errors.New("invalid number of players")
	ErrCardCount      = errors.New("card catalog does not match the rules")
	ErrScoresheet     = errors.New("scoresheet could not be created")
	ErrCatalog        = errors.New("invalid card catalog")
	ErrUnknownEdition = errors.New("unknown edition")
	ErrUnknownPolicy  = errors.New("unknown computer behavior")
	ErrJoinTimeout    = errors.New("timed out waiting for players to join")
)

// Game errors. Used by game, ws and lobby to avoid circular imports.
var (
	ErrAlreadyBanked   = errors.New("trying to score an activity that has already been scored")
	ErrNotInHand       = errors.New("card is not in the hand")
	ErrTransport       = errors.New("transport failure")
	ErrUnknownMessage  = errors.New("unrecognized message")
	ErrConnectionDead  = errors.New("connection is dead")
	ErrGameEnding      = errors.New("game ending")
	ErrLobbyFull       = errors.New("all seats are taken")
	ErrInvalidJoinName = errors.New("invalid player name")
	ErrInvalidToken    = errors.New("invalid join token")
)
