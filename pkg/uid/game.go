package uid

import "github.com/google/uuid"

// GenerateGameID returns a unique identifier for a new game.
func GenerateGameID() string {
	return uuid.NewString()
}
