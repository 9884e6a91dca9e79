package storage

import (
	"context"

	"github.com/cipherplay/cipherrps/internal/model"
)

// Storage defines the interface for data persistence.
//
// The game registry is append-only: games are created with sequentially
// assigned identifiers and never deleted. There is deliberately no
// DeleteGame.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Session operations (token -> player identity)
	SaveSession(ctx context.Context, token string, playerID model.PlayerID) error
	GetSession(ctx context.Context, token string) (model.PlayerID, error)
	DeleteSession(ctx context.Context, token string) error

	// Game registry operations
	// CreateGame assigns the next sequential GameID (starting at 0) and
	// persists the record. SaveGame updates an existing record in place.
	CreateGame(ctx context.Context, game *model.Game) error
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GameCount(ctx context.Context) (uint64, error)
}
