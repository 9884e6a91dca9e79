package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cipherplay/cipherrps/internal/api/handler"
	"github.com/cipherplay/cipherrps/internal/api/middleware"
	"github.com/cipherplay/cipherrps/internal/events"
	sharedmw "github.com/cipherplay/cipherrps/internal/middleware"
	"github.com/cipherplay/cipherrps/internal/services/game"
	"github.com/cipherplay/cipherrps/internal/services/identity"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	GameController  game.ControllerInterface
	ClientCrypto    handler.ClientCrypto
	EventsHub       *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	cryptoHandler := handler.NewCryptoHandler(cfg.ClientCrypto, cfg.GameController)
	eventsHandler := handler.NewEventsHandler(cfg.EventsHub)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := sharedmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)

	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// The game counter is public
	api.HandleFunc("/games/count", gameHandler.Count).Methods(http.MethodGet)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id:[0-9]+}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id:[0-9]+}/moves", gameHandler.SubmitMove).Methods(http.MethodPost)
	games.HandleFunc("/{id:[0-9]+}/result", gameHandler.GetResult).Methods(http.MethodGet)

	// Client-side crypto helpers (require auth; sealing binds to the caller)
	crypto := api.PathPrefix("/crypto").Subrouter()
	crypto.Use(authMiddleware)
	crypto.HandleFunc("/moves", cryptoHandler.SealMove).Methods(http.MethodPost)
	crypto.HandleFunc("/reveal", cryptoHandler.Reveal).Methods(http.MethodPost)

	// Event stream (requires auth)
	eventsRoute := api.PathPrefix("/events").Subrouter()
	eventsRoute.Use(authMiddleware)
	eventsRoute.HandleFunc("", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
