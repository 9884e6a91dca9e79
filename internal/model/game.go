package model

import (
	"fmt"
	"time"

	"github.com/cipherplay/cipherrps/internal/fhe"
)

// GameID uniquely identifies a game. Identifiers are sequential, assigned at
// creation starting from 0, and never reused.
type GameID uint64

// PlayerID identifies a player
type PlayerID string

// Move is a plaintext rock-paper-scissors move. The server-side game logic
// never sees one; moves exist in plaintext only at the clients and inside
// the encryption runtime.
type Move uint8

const (
	MoveRock     Move = 1
	MovePaper    Move = 2
	MoveScissors Move = 3
)

// Bounds of the valid move range, attested by the submission proof
const (
	MoveMin uint64 = 1
	MoveMax uint64 = 3
)

// String returns the lowercase move name
func (m Move) String() string {
	switch m {
	case MoveRock:
		return "rock"
	case MovePaper:
		return "paper"
	case MoveScissors:
		return "scissors"
	default:
		return fmt.Sprintf("move(%d)", uint8(m))
	}
}

// ParseMove parses a move name or numeric value
func ParseMove(s string) (Move, error) {
	switch s {
	case "rock", "1":
		return MoveRock, nil
	case "paper", "2":
		return MovePaper, nil
	case "scissors", "3":
		return MoveScissors, nil
	default:
		return 0, fmt.Errorf("invalid move %q: want rock, paper, or scissors", s)
	}
}

// Opponent is a tagged option: either a real second player or the solo
// marker meaning the house plays. A real PlayerID can never collide with the
// solo case.
type Opponent struct {
	ID   PlayerID `json:"id,omitempty"`
	Solo bool     `json:"solo,omitempty"`
}

// Versus returns an Opponent naming a real second player
func Versus(id PlayerID) Opponent {
	return Opponent{ID: id}
}

// SoloOpponent returns the single-player marker
func SoloOpponent() Opponent {
	return Opponent{Solo: true}
}

// IsSolo reports whether the game is single-player
func (o Opponent) IsSolo() bool {
	return o.Solo
}

// Game is a single confidential rock-paper-scissors game.
//
// Move and result slots hold opaque ciphertext handles. Each move slot is
// write-once: once the matching submission flag is set it is never
// overwritten. No field mutates after ResultComputed is set.
type Game struct {
	ID      GameID
	Player1 PlayerID
	Player2 Opponent

	Move1  fhe.Ciphertext
	Move2  fhe.Ciphertext
	Result fhe.Ciphertext

	Player1Submitted bool
	Player2Submitted bool
	ResultComputed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPlayer reports whether id is a registered participant of the game.
// In solo games only Player1 is a participant.
func (g *Game) IsPlayer(id PlayerID) bool {
	if g.Player1 == id {
		return true
	}
	return !g.Player2.IsSolo() && g.Player2.ID == id
}

// BothSubmitted reports whether both move slots are filled
func (g *Game) BothSubmitted() bool {
	return g.Player1Submitted && g.Player2Submitted
}

// Clone returns a copy. Mutating operations work on a copy and persist it in
// one step, so no partially applied state is ever observable.
func (g *Game) Clone() *Game {
	clone := *g
	return &clone
}

// Outcome is the decoded result of a completed game
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomePlayer1Wins
	OutcomePlayer2Wins
)

// String returns a human-readable outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeTie:
		return "tie"
	case OutcomePlayer1Wins:
		return "player1 wins"
	case OutcomePlayer2Wins:
		return "player2 wins"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}
