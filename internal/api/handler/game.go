package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cipherplay/cipherrps/internal/api/apierr"
	"github.com/cipherplay/cipherrps/internal/api/middleware"
	"github.com/cipherplay/cipherrps/internal/api/request"
	"github.com/cipherplay/cipherrps/internal/api/response"
	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	var opponent model.Opponent
	switch {
	case req.Solo && req.Opponent != "":
		apierr.WriteError(w, apierr.NewInvalidRequestError("opponent and solo are mutually exclusive"))
		return
	case req.Solo:
		opponent = model.SoloOpponent()
	case req.Opponent != "":
		opponent = model.Versus(model.PlayerID(req.Opponent))
	default:
		apierr.WriteError(w, apierr.NewInvalidRequestError("either opponent or solo is required"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	info, err := h.gameController.CreateGame(r.Context(), player.ID, opponent)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameInfoFromService(info))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	info, err := h.gameController.GetGameInfo(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameInfoFromService(info))
}

// SubmitMove handles POST /api/v1/games/{id}/moves
func (h *GameHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	var req request.SubmitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("ciphertext must be base64"))
		return
	}
	proof, err := base64.StdEncoding.DecodeString(req.Proof)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("proof must be base64"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	if err := h.gameController.SubmitMove(r.Context(), gameID, player.ID, raw, proof); err != nil {
		apierr.WriteError(w, err)
		return
	}

	info, err := h.gameController.GetGameInfo(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameInfoFromService(info))
}

// GetResult handles GET /api/v1/games/{id}/result
func (h *GameHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}

	result, err := h.gameController.GetResult(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResultHandle{Handle: result.Handle})
}

// Count handles GET /api/v1/games/count
func (h *GameHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.gameController.GameCount(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameCount{Count: count})
}

// gameIDFromPath parses the {id} path variable, writing an error response on
// failure
func gameIDFromPath(w http.ResponseWriter, r *http.Request) (model.GameID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("game id must be a non-negative integer"))
		return 0, false
	}
	return model.GameID(id), true
}
