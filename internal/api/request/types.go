package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// CreateGameRequest is the request body for creating a game. Exactly one of
// Opponent or Solo must be given.
type CreateGameRequest struct {
	Opponent string `json:"opponent,omitempty"`
	Solo     bool   `json:"solo,omitempty"`
}

// SubmitMoveRequest is the request body for submitting an encrypted move.
// Ciphertext and Proof are base64-encoded as produced by the client-side
// sealing step.
type SubmitMoveRequest struct {
	Ciphertext string `json:"ciphertext"`
	Proof      string `json:"proof"`
}

// SealMoveRequest is the request body for the client-side move sealing
// helper
type SealMoveRequest struct {
	Move string `json:"move"`
}

// RevealRequest is the request body for the client-side result reveal
// helper
type RevealRequest struct {
	GameID uint64 `json:"game_id"`
}
