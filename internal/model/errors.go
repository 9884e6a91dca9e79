package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSessionNotFound = errors.New("session not found")

	// Game errors
	ErrSelfPlay                = errors.New("cannot play against yourself")
	ErrGameNotFound            = errors.New("game not found")
	ErrGameCompleted           = errors.New("game result already computed")
	ErrNotAPlayer              = errors.New("caller is not a player in this game")
	ErrPlayer1AlreadySubmitted = errors.New("player 1 has already submitted a move")
	ErrPlayer2AlreadySubmitted = errors.New("player 2 has already submitted a move")
	ErrResultNotReady          = errors.New("game result not yet computed")
)
