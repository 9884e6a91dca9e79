package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/cipherplay/cipherrps/internal/api/apierr"
	"github.com/cipherplay/cipherrps/internal/api/middleware"
	"github.com/cipherplay/cipherrps/internal/api/request"
	"github.com/cipherplay/cipherrps/internal/api/response"
	"github.com/cipherplay/cipherrps/internal/fhe"
	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/services/game"
	"github.com/cipherplay/cipherrps/internal/services/outcome"
)

// ClientCrypto is the client-side capability surface of the encryption
// runtime: sealing a plaintext move and resolving a granted handle. In a
// production deployment both run in the client SDK; serving them here lets
// clients without the SDK play through plain HTTP.
type ClientCrypto interface {
	Seal(value uint64, submitter string, min, max uint64) (raw, proof []byte, err error)
	Decrypt(ctx context.Context, ct fhe.Ciphertext, identity string) (uint64, error)
}

// CryptoHandler serves the client-side encrypt/decrypt helpers
type CryptoHandler struct {
	crypto         ClientCrypto
	gameController game.ControllerInterface
}

// NewCryptoHandler creates a new crypto handler
func NewCryptoHandler(crypto ClientCrypto, gameController game.ControllerInterface) *CryptoHandler {
	return &CryptoHandler{
		crypto:         crypto,
		gameController: gameController,
	}
}

// SealMove handles POST /api/v1/crypto/moves
func (h *CryptoHandler) SealMove(w http.ResponseWriter, r *http.Request) {
	var req request.SealMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	move, err := model.ParseMove(req.Move)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(err.Error()))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	raw, proof, err := h.crypto.Seal(uint64(move), string(player.ID), model.MoveMin, model.MoveMax)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SealedMove{
		Ciphertext: base64.StdEncoding.EncodeToString(raw),
		Proof:      base64.StdEncoding.EncodeToString(proof),
	})
}

// Reveal handles POST /api/v1/crypto/reveal
func (h *CryptoHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req request.RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.gameController.GetResult(r.Context(), model.GameID(req.GameID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	raw, err := h.crypto.Decrypt(r.Context(), result, string(player.ID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Reveal{
		Raw:     raw,
		Outcome: outcome.Decode(raw).String(),
	})
}
