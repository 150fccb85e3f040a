package booking

import "errors"

// Expected, user-facing failures. Handlers map these to HTTP statuses.
var (
	ErrPastSlot            = errors.New("cannot book a past date")
	ErrLocationNotFound    = errors.New("location not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrInvalidPlayers      = errors.New("player count outside the game's limits")
	ErrLanguageUnavailable = errors.New("selected language is not available for this game")
	ErrBookingNotFound     = errors.New("booking not found or already cancelled")
	ErrInvalidStatus       = errors.New("invalid booking status")
)
