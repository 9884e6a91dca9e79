// Package outcome implements the encrypted game-outcome protocol.
//
// The result of a game is computed homomorphically as (move1 + 3) - move2
// using only the runtime's add and sub capabilities. The encrypted constant
// 3 is added before the subtraction so it can never underflow the unsigned
// representation; the result is therefore an encrypted integer in [1, 5].
// Only a player holding decrypt permission can reduce it to a tie/win/loss
// outcome, off-system, via Decode.
package outcome

import (
	"context"
	"log/slog"

	"github.com/cipherplay/cipherrps/internal/fhe"
	"github.com/cipherplay/cipherrps/internal/model"
)

// moveOffset guards the homomorphic subtraction against underflow
const moveOffset = 3

// Encoder computes encrypted game results
type Encoder struct {
	scheme fhe.Scheme
	logger *slog.Logger
}

// New creates a new Encoder
func New(scheme fhe.Scheme, logger *slog.Logger) *Encoder {
	return &Encoder{
		scheme: scheme,
		logger: logger.With(slog.String("component", "outcome-encoder")),
	}
}

// Compute returns a handle to (move1 + 3) - move2. Neither move is ever
// decrypted; the computation happens entirely inside the runtime.
func (e *Encoder) Compute(ctx context.Context, move1, move2 fhe.Ciphertext) (fhe.Ciphertext, error) {
	offset, err := e.scheme.EncryptConstant(ctx, moveOffset)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	shifted, err := e.scheme.Add(ctx, move1, offset)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	return e.scheme.Sub(ctx, shifted, move2)
}

// Decode maps a decrypted raw result in [1, 5] to an outcome. This is the
// client-side half of the protocol, run after the player decrypts the
// result through the runtime.
func Decode(raw uint64) model.Outcome {
	switch raw % 3 {
	case 0:
		return model.OutcomeTie
	case 1:
		return model.OutcomePlayer1Wins
	default:
		return model.OutcomePlayer2Wins
	}
}
