package memory

import (
	"context"
	"sync"

	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players  map[model.PlayerID]*model.Player
	sessions map[string]model.PlayerID
	games    []*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:  make(map[model.PlayerID]*model.Player),
		sessions: make(map[string]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, token string, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = playerID
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (model.PlayerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.sessions[token]
	if !ok {
		return "", model.ErrSessionNotFound
	}
	return playerID, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Game registry operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game.ID = model.GameID(len(s.games))
	s.games = append(s.games, game.Clone())
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := uint64(game.ID)
	if idx >= uint64(len(s.games)) {
		return model.ErrGameNotFound
	}
	// Store a copy so callers cannot mutate registry state between saves
	s.games[idx] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := uint64(id)
	if idx >= uint64(len(s.games)) {
		return nil, model.ErrGameNotFound
	}
	return s.games[idx].Clone(), nil
}

func (s *Storage) GameCount(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.games)), nil
}
