package uid

import (
	"github.com/google/uuid"
)

// GenerateGameID returns a random identifier for a game session.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsValidGameID reports whether id looks like an ID produced by GenerateGameID.
func IsValidGameID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
