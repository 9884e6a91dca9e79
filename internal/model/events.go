package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated    EventType = "game_created"
	EventMoveSubmitted  EventType = "move_submitted"
	EventResultComputed EventType = "result_computed"
)

// Event is the base structure for all notifications. Events are
// observability-only; no game logic depends on their delivery.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	Payload   any       `json:"payload,omitempty"`
}

// GameCreatedPayload contains data for game created events
type GameCreatedPayload struct {
	Player1 PlayerID `json:"player1"`
	Player2 Opponent `json:"player2"`
}

// MoveSubmittedPayload contains data for move submitted events.
// Submitter is empty for moves synthesized by the house.
type MoveSubmittedPayload struct {
	Submitter PlayerID `json:"submitter,omitempty"`
	IsPlayer1 bool     `json:"is_player1"`
}

// ResultComputedPayload contains data for result computed events.
// The result itself stays encrypted; only the fact of completion is public.
type ResultComputedPayload struct{}
