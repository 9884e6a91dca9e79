package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherplay/cipherrps/internal/api"
	"github.com/cipherplay/cipherrps/internal/api/response"
	"github.com/cipherplay/cipherrps/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	go app.EventsHub.Run()
	t.Cleanup(app.EventsHub.Close)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		GameController:  app.GameController,
		ClientCrypto:    app.Scheme,
		EventsHub:       app.EventsHub,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createGuest registers a guest player and returns their id and token
func (ts *testServer) createGuest(t *testing.T, name string) (string, string) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": name}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Player.ID, resp.SessionToken
}

// sealMove uses the crypto helper to produce a submittable encrypted move
func (ts *testServer) sealMove(t *testing.T, token, move string) response.SealedMove {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/crypto/moves", map[string]string{"move": move}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var sealed response.SealedMove
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sealed))
	return sealed
}

func (ts *testServer) submitMove(t *testing.T, token string, gamePath, move string) *httptest.ResponseRecorder {
	t.Helper()

	sealed := ts.sealMove(t, token, move)
	return ts.request(http.MethodPost, gamePath+"/moves", map[string]string{
		"ciphertext": sealed.Ciphertext,
		"proof":      sealed.Proof,
	}, token)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": "Alice"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.NotEmpty(t, resp.Player.ID)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestCreateGuestRequiresDisplayName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	playerID, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, playerID, resp.ID)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"solo": true}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]any{"solo": true}, "sess_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTwoPlayerGameFlow(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.createGuest(t, "Alice")
	bobID, bobToken := ts.createGuest(t, "Bob")

	// Alice creates a game against Bob
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"opponent": bobID}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var info response.GameInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.False(t, info.Solo)
	assert.False(t, info.Player1Submitted)
	assert.False(t, info.ResultComputed)

	gamePath := "/api/v1/games/0"

	// Result not ready yet
	rr = ts.request(http.MethodGet, gamePath+"/result", nil, aliceToken)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Alice plays paper
	rr = ts.submitMove(t, aliceToken, gamePath, "paper")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.True(t, info.Player1Submitted)
	assert.False(t, info.ResultComputed)

	// Bob plays rock
	rr = ts.submitMove(t, bobToken, gamePath, "rock")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.True(t, info.Player2Submitted)
	assert.True(t, info.ResultComputed)

	// The result handle is available to both players
	rr = ts.request(http.MethodGet, gamePath+"/result", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var handle response.ResultHandle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &handle))
	assert.NotEmpty(t, handle.Handle)

	// Both reveal the same outcome: paper beats rock
	for _, token := range []string{aliceToken, bobToken} {
		rr = ts.request(http.MethodPost, "/api/v1/crypto/reveal", map[string]any{"game_id": 0}, token)
		require.Equal(t, http.StatusOK, rr.Code)

		var reveal response.Reveal
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reveal))
		assert.Equal(t, "player1 wins", reveal.Outcome)
	}
}

func TestSoloGameFlow(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"solo": true}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var info response.GameInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.True(t, info.Solo)
	assert.Nil(t, info.Player2)

	// One submission completes the game
	rr = ts.submitMove(t, token, "/api/v1/games/0", "scissors")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.True(t, info.Player1Submitted)
	assert.True(t, info.Player2Submitted)
	assert.True(t, info.ResultComputed)

	rr = ts.request(http.MethodPost, "/api/v1/crypto/reveal", map[string]any{"game_id": 0}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var reveal response.Reveal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reveal))
	assert.Contains(t, []string{"tie", "player1 wins", "player2 wins"}, reveal.Outcome)
}

func TestCreateGameAgainstSelf(t *testing.T) {
	ts := newTestServer(t)
	playerID, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"opponent": playerID}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "SELF_PLAY")
}

func TestCreateGameRequiresOpponentOrSolo(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]any{"opponent": "someone", "solo": true}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameNotFound(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/games/99", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestSubmitMoveAsNonPlayer(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.createGuest(t, "Alice")
	bobID, _ := ts.createGuest(t, "Bob")
	_, eveToken := ts.createGuest(t, "Eve")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"opponent": bobID}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.submitMove(t, eveToken, "/api/v1/games/0", "rock")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_A_PLAYER")
}

func TestSubmitMoveTwice(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.createGuest(t, "Alice")
	bobID, _ := ts.createGuest(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"opponent": bobID}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.submitMove(t, aliceToken, "/api/v1/games/0", "rock")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.submitMove(t, aliceToken, "/api/v1/games/0", "paper")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "PLAYER1_ALREADY_SUBMITTED")
}

func TestSubmitMoveInvalidBase64(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"solo": true}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/0/moves", map[string]string{
		"ciphertext": "not-base64!!!",
		"proof":      "also-not",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitTamperedProof(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createGuest(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"solo": true}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	sealed := ts.sealMove(t, token, "rock")
	rr = ts.request(http.MethodPost, "/api/v1/games/0/moves", map[string]string{
		"ciphertext": sealed.Ciphertext,
		"proof":      sealed.Ciphertext, // wrong bytes
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VERIFICATION_FAILED")
}

func TestSealedMoveBoundToCaller(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.createGuest(t, "Alice")
	bobID, bobToken := ts.createGuest(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"opponent": bobID}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Bob seals a move but Alice tries to submit it as her own
	sealed := ts.sealMove(t, bobToken, "rock")
	rr = ts.request(http.MethodPost, "/api/v1/games/0/moves", map[string]string{
		"ciphertext": sealed.Ciphertext,
		"proof":      sealed.Proof,
	}, aliceToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VERIFICATION_FAILED")
}

func TestRevealDeniedForNonParticipant(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.createGuest(t, "Alice")
	_, eveToken := ts.createGuest(t, "Eve")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"solo": true}, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.submitMove(t, aliceToken, "/api/v1/games/0", "rock")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/crypto/reveal", map[string]any{"game_id": 0}, eveToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "DECRYPT_DENIED")
}

func TestGameCountIsPublic(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/count", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var count response.GameCount
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &count))
	assert.Equal(t, uint64(0), count.Count)

	_, token := ts.createGuest(t, "Alice")
	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]any{"solo": true}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/count", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &count))
	assert.Equal(t, uint64(1), count.Count)
}
