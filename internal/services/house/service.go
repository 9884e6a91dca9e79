// Package house plays the second seat in single-player games.
//
// The house move is derived from public per-call entropy rather than a
// secret RNG: a digest over the current time, a beacon value, the requesting
// player, and the game id is reduced mod 3 into a move. The derivation is
// therefore predictable to anyone who can reconstruct the inputs at call
// time. That weakness is inherent to the public-entropy design and is kept
// as-is; deployments that want an unpredictable house wire in a
// crypto-backed beacon instead.
package house

import (
	"context"
	"encoding/binary"
	"log/slog"

	"golang.org/x/crypto/sha3"

	"github.com/cipherplay/cipherrps/internal/dependencies/clock"
	"github.com/cipherplay/cipherrps/internal/dependencies/entropy"
	"github.com/cipherplay/cipherrps/internal/fhe"
	"github.com/cipherplay/cipherrps/internal/model"
)

// Service draws encrypted house moves
type Service struct {
	scheme fhe.Scheme
	clock  clock.Clock
	beacon entropy.Beacon
	logger *slog.Logger
}

// New creates a new house Service
func New(scheme fhe.Scheme, clk clock.Clock, beacon entropy.Beacon, logger *slog.Logger) *Service {
	return &Service{
		scheme: scheme,
		clock:  clk,
		beacon: beacon,
		logger: logger.With(slog.String("component", "house-service")),
	}
}

// DrawMove derives the house move for a game and returns it already
// encrypted. The plaintext move never leaves this function and is never
// logged.
func (s *Service) DrawMove(ctx context.Context, gameID model.GameID, requester model.PlayerID) (fhe.Ciphertext, error) {
	move := s.derive(gameID, requester)

	ct, err := s.scheme.EncryptConstant(ctx, uint64(move))
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	s.logger.Debug("drew house move",
		slog.Uint64("game_id", uint64(gameID)),
		slog.String("requester", string(requester)))

	return ct, nil
}

// derive hashes the public inputs and reduces the digest to a move in
// {rock, paper, scissors}
func (s *Service) derive(gameID model.GameID, requester model.PlayerID) model.Move {
	h := sha3.New256()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(s.clock.Now().UnixNano()))
	h.Write(buf[:])

	h.Write(s.beacon.Entropy())
	h.Write([]byte(requester))

	binary.BigEndian.PutUint64(buf[:], uint64(gameID))
	h.Write(buf[:])

	digest := h.Sum(nil)
	return model.Move(binary.BigEndian.Uint64(digest[:8])%3 + 1)
}
