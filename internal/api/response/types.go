package response

import (
	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// GameInfo is the public view of a game. It never carries ciphertexts.
type GameInfo struct {
	ID               uint64  `json:"id"`
	Player1          string  `json:"player1"`
	Player2          *string `json:"player2"`
	Solo             bool    `json:"solo"`
	Player1Submitted bool    `json:"player1_submitted"`
	Player2Submitted bool    `json:"player2_submitted"`
	ResultComputed   bool    `json:"result_computed"`
}

// GameInfoFromService converts a game.Info to a response GameInfo
func GameInfoFromService(info *game.Info) GameInfo {
	var player2 *string
	if !info.Player2.IsSolo() {
		p2 := string(info.Player2.ID)
		player2 = &p2
	}
	return GameInfo{
		ID:               uint64(info.ID),
		Player1:          string(info.Player1),
		Player2:          player2,
		Solo:             info.Player2.IsSolo(),
		Player1Submitted: info.Player1Submitted,
		Player2Submitted: info.Player2Submitted,
		ResultComputed:   info.ResultComputed,
	}
}

// SealedMove is a client-ready encrypted move with its proof, both
// base64-encoded
type SealedMove struct {
	Ciphertext string `json:"ciphertext"`
	Proof      string `json:"proof"`
}

// ResultHandle is the opaque encrypted result of a completed game
type ResultHandle struct {
	Handle string `json:"handle"`
}

// Reveal is the decoded outcome of a completed game, produced by the
// client-side decrypt-and-decode helper
type Reveal struct {
	Raw     uint64 `json:"raw"`
	Outcome string `json:"outcome"`
}

// GameCount reports the number of games ever created
type GameCount struct {
	Count uint64 `json:"count"`
}
