// Package identity manages players and their bearer-token sessions.
package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cipherplay/cipherrps/internal/dependencies/clock"
	"github.com/cipherplay/cipherrps/internal/dependencies/random"
	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/storage"
)

var (
	// ErrInvalidSession is returned for unknown or expired session tokens
	ErrInvalidSession = errors.New("invalid or expired session")
)

const (
	idAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength      = 22
	tokenAlphabet = idAlphabet
	tokenLength   = 43
)

// Service handles player registration and session validation
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new identity Service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "identity-service")),
	}
}

// CreateGuest registers an anonymous player and opens a session for them.
// It returns the player and the session's bearer token.
func (s *Service) CreateGuest(ctx context.Context, displayName string) (*model.Player, string, error) {
	player := &model.Player{
		ID:          model.PlayerID("p_" + s.random.String(idLength, idAlphabet)),
		DisplayName: displayName,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, "", err
	}

	token := "sess_" + s.random.String(tokenLength, tokenAlphabet)
	if err := s.storage.SaveSession(ctx, token, player.ID); err != nil {
		return nil, "", err
	}

	s.logger.Info("created guest player", slog.String("player_id", string(player.ID)))

	return player, token, nil
}

// ValidateToken resolves a bearer token to the player it belongs to
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.Player, error) {
	playerID, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			// Session outlived the player record
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return player, nil
}

// Logout invalidates a session token
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.storage.DeleteSession(ctx, token)
}

// GetPlayer looks up a player by id
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}
