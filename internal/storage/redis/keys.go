package redis

import (
	"fmt"

	"github.com/cipherplay/cipherrps/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "cipherrps"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// sessionKey returns the Redis key for a session token
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, id)
}

// gameCounterKey returns the Redis key for the sequential game id counter
func gameCounterKey() string {
	return fmt.Sprintf("%s:game_counter", keyPrefix)
}
