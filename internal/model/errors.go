package model

import "errors"

// Common errors used across the application
var (
	// Request validation errors
	ErrMissingRoomCode = errors.New("room code is required")
	ErrMissingName     = errors.New("player name is required")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
	ErrNotInRoom    = errors.New("player is not in room")
	ErrNotHost      = errors.New("player is not the host")

	// Concurrency errors. ErrVersionConflict is a single failed
	// compare-and-swap; ErrConcurrentUpdate is the terminal outcome
	// after the retry budget is exhausted.
	ErrVersionConflict  = errors.New("stored version does not match expected version")
	ErrConcurrentUpdate = errors.New("concurrent update conflict")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrNoGameInProgress    = errors.New("no game in progress")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrTooManyPlayers      = errors.New("too many players for this game")
	ErrActionNotAllowed    = errors.New("action not allowed")
)
