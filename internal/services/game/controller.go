// Package game implements the confidential rock-paper-scissors registry.
package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cipherplay/cipherrps/internal/dependencies/clock"
	"github.com/cipherplay/cipherrps/internal/events"
	"github.com/cipherplay/cipherrps/internal/fhe"
	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/services/house"
	"github.com/cipherplay/cipherrps/internal/services/outcome"
	"github.com/cipherplay/cipherrps/internal/storage"
)

// Info is the public view of a game. It carries no ciphertexts.
type Info struct {
	ID               model.GameID   `json:"id"`
	Player1          model.PlayerID `json:"player1"`
	Player2          model.Opponent `json:"player2"`
	Player1Submitted bool           `json:"player1_submitted"`
	Player2Submitted bool           `json:"player2_submitted"`
	ResultComputed   bool           `json:"result_computed"`
}

// ControllerInterface defines the game registry operations
type ControllerInterface interface {
	CreateGame(ctx context.Context, creator model.PlayerID, opponent model.Opponent) (*Info, error)
	SubmitMove(ctx context.Context, gameID model.GameID, caller model.PlayerID, rawMove, proof []byte) error
	GetGameInfo(ctx context.Context, gameID model.GameID) (*Info, error)
	GetResult(ctx context.Context, gameID model.GameID) (fhe.Ciphertext, error)
	GameCount(ctx context.Context) (uint64, error)
}

// Controller manages the game registry and the submit-move state machine
type Controller struct {
	storage   storage.Storage
	scheme    fhe.Scheme
	encoder   *outcome.Encoder
	house     *house.Service
	clock     clock.Clock
	publisher events.Publisher
	logger    *slog.Logger

	// Serializes all state-mutating calls against the registry. Doubles as
	// the reentrancy guard: a submission can never interleave with or
	// re-enter another.
	submitMu sync.Mutex
}

// Ensure Controller implements the interface
var _ ControllerInterface = (*Controller)(nil)

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	scheme fhe.Scheme,
	encoder *outcome.Encoder,
	house *house.Service,
	clk clock.Clock,
	publisher events.Publisher,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		scheme:    scheme,
		encoder:   encoder,
		house:     house,
		clock:     clk,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "game-controller")),
	}
}

// CreateGame appends a new game to the registry. The opponent is either a
// real second player or the solo marker; a creator naming themselves fails
// with ErrSelfPlay.
func (c *Controller) CreateGame(ctx context.Context, creator model.PlayerID, opponent model.Opponent) (*Info, error) {
	if !opponent.IsSolo() && opponent.ID == creator {
		return nil, model.ErrSelfPlay
	}

	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	// Move and result slots start as encrypted zeros so an uninitialized
	// slot is indistinguishable from a submitted one by handle inspection
	zero1, err := c.scheme.EncryptConstant(ctx, 0)
	if err != nil {
		return nil, err
	}
	zero2, err := c.scheme.EncryptConstant(ctx, 0)
	if err != nil {
		return nil, err
	}
	zeroResult, err := c.scheme.EncryptConstant(ctx, 0)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		Player1:   creator,
		Player2:   opponent,
		Move1:     zero1,
		Move2:     zero2,
		Result:    zeroResult,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		c.logger.Error("failed to create game",
			slog.String("creator", string(creator)),
			slog.Any("error", err))
		return nil, err
	}

	c.publisher.Publish(model.Event{
		Type:      model.EventGameCreated,
		Timestamp: now,
		GameID:    game.ID,
		Payload: model.GameCreatedPayload{
			Player1: game.Player1,
			Player2: game.Player2,
		},
	})

	c.logger.Info("game created",
		slog.Uint64("game_id", uint64(game.ID)),
		slog.String("player1", string(creator)),
		slog.Bool("solo", opponent.IsSolo()))

	return gameInfo(game), nil
}

// SubmitMove verifies and stores a player's encrypted move. In solo games
// the house move and the result are produced within the same call; in
// two-player games the result is computed when the second move arrives.
// Either every effect of the call is persisted or none are.
func (c *Controller) SubmitMove(ctx context.Context, gameID model.GameID, caller model.PlayerID, rawMove, proof []byte) error {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	stored, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if stored.ResultComputed {
		return model.ErrGameCompleted
	}

	// Verification failures from the runtime propagate unmodified
	move, err := c.scheme.VerifyAndImport(ctx, rawMove, proof, string(caller), model.MoveMin, model.MoveMax)
	if err != nil {
		return err
	}

	if !stored.IsPlayer(caller) {
		return model.ErrNotAPlayer
	}

	isPlayer1 := stored.Player1 == caller
	if isPlayer1 && stored.Player1Submitted {
		return model.ErrPlayer1AlreadySubmitted
	}
	if !isPlayer1 && stored.Player2Submitted {
		return model.ErrPlayer2AlreadySubmitted
	}

	// All mutations happen on a copy and persist in a single save, so a
	// failure partway leaves the stored record untouched
	game := stored.Clone()
	now := c.clock.Now()
	var pending []model.Event

	if isPlayer1 {
		game.Move1 = move
		game.Player1Submitted = true
	} else {
		game.Move2 = move
		game.Player2Submitted = true
	}
	pending = append(pending, model.Event{
		Type:      model.EventMoveSubmitted,
		Timestamp: now,
		GameID:    game.ID,
		Payload:   model.MoveSubmittedPayload{Submitter: caller, IsPlayer1: isPlayer1},
	})

	if game.Player2.IsSolo() && !game.Player2Submitted {
		houseMove, err := c.house.DrawMove(ctx, game.ID, caller)
		if err != nil {
			return err
		}
		game.Move2 = houseMove
		game.Player2Submitted = true
		pending = append(pending, model.Event{
			Type:      model.EventMoveSubmitted,
			Timestamp: now,
			GameID:    game.ID,
			Payload:   model.MoveSubmittedPayload{IsPlayer1: false},
		})
	}

	if game.BothSubmitted() {
		result, err := c.encoder.Compute(ctx, game.Move1, game.Move2)
		if err != nil {
			return err
		}

		if err := c.scheme.GrantDecrypt(ctx, result, string(game.Player1)); err != nil {
			return err
		}
		if !game.Player2.IsSolo() {
			if err := c.scheme.GrantDecrypt(ctx, result, string(game.Player2.ID)); err != nil {
				return err
			}
		}

		game.Result = result
		game.ResultComputed = true
		pending = append(pending, model.Event{
			Type:      model.EventResultComputed,
			Timestamp: now,
			GameID:    game.ID,
			Payload:   model.ResultComputedPayload{},
		})
	}

	game.UpdatedAt = now
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.Uint64("game_id", uint64(game.ID)),
			slog.Any("error", err))
		return err
	}

	// Events publish only after the state is durably applied
	for _, event := range pending {
		c.publisher.Publish(event)
	}

	c.logger.Info("move submitted",
		slog.Uint64("game_id", uint64(game.ID)),
		slog.String("submitter", string(caller)),
		slog.Bool("is_player1", isPlayer1),
		slog.Bool("result_computed", game.ResultComputed))

	return nil
}

// GetGameInfo returns the public view of a game
func (c *Controller) GetGameInfo(ctx context.Context, gameID model.GameID) (*Info, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return gameInfo(game), nil
}

// GetResult returns the encrypted result handle of a completed game. The
// caller still needs decrypt permission, granted at computation time, to
// resolve it.
func (c *Controller) GetResult(ctx context.Context, gameID model.GameID) (fhe.Ciphertext, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	if !game.ResultComputed {
		return fhe.Ciphertext{}, model.ErrResultNotReady
	}
	return game.Result, nil
}

// GameCount returns the number of games ever created
func (c *Controller) GameCount(ctx context.Context) (uint64, error) {
	return c.storage.GameCount(ctx)
}

func gameInfo(game *model.Game) *Info {
	return &Info{
		ID:               game.ID,
		Player1:          game.Player1,
		Player2:          game.Player2,
		Player1Submitted: game.Player1Submitted,
		Player2Submitted: game.Player2Submitted,
		ResultComputed:   game.ResultComputed,
	}
}
