package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cipherplay/cipherrps/internal/fhe"
	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/services/identity"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodePlayerNotFound          = "PLAYER_NOT_FOUND"
	CodeSelfPlay                = "SELF_PLAY"
	CodeGameNotFound            = "GAME_NOT_FOUND"
	CodeGameCompleted           = "GAME_COMPLETED"
	CodeNotAPlayer              = "NOT_A_PLAYER"
	CodePlayer1AlreadySubmitted = "PLAYER1_ALREADY_SUBMITTED"
	CodePlayer2AlreadySubmitted = "PLAYER2_ALREADY_SUBMITTED"
	CodeResultNotReady          = "RESULT_NOT_READY"
	CodeVerificationFailed      = "VERIFICATION_FAILED"
	CodeInvalidCiphertext       = "INVALID_CIPHERTEXT"
	CodeDecryptDenied           = "DECRYPT_DENIED"
	CodeInternalError           = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSelfPlay):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfPlay, "Cannot play against yourself"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameCompleted):
		return &httpError{http.StatusConflict, APIError{CodeGameCompleted, "Game result already computed"}}
	case errors.Is(err, model.ErrNotAPlayer):
		return &httpError{http.StatusForbidden, APIError{CodeNotAPlayer, "Not a player in this game"}}
	case errors.Is(err, model.ErrPlayer1AlreadySubmitted):
		return &httpError{http.StatusConflict, APIError{CodePlayer1AlreadySubmitted, "Player 1 has already submitted a move"}}
	case errors.Is(err, model.ErrPlayer2AlreadySubmitted):
		return &httpError{http.StatusConflict, APIError{CodePlayer2AlreadySubmitted, "Player 2 has already submitted a move"}}
	case errors.Is(err, model.ErrResultNotReady):
		return &httpError{http.StatusConflict, APIError{CodeResultNotReady, "Game result not yet computed"}}

	// Map encryption runtime errors
	case errors.Is(err, fhe.ErrVerificationFailed):
		return &httpError{http.StatusBadRequest, APIError{CodeVerificationFailed, "Ciphertext proof verification failed"}}
	case errors.Is(err, fhe.ErrInvalidCiphertext):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCiphertext, "Invalid ciphertext handle"}}
	case errors.Is(err, fhe.ErrDecryptDenied):
		return &httpError{http.StatusForbidden, APIError{CodeDecryptDenied, "Decrypt permission denied"}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
