package model

import "time"

// Player is an identity that can create games, submit moves, and receive
// decrypt permission on results.
type Player struct {
	ID          PlayerID
	DisplayName string
	CreatedAt   time.Time
}
