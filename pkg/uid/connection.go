package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateConnectionID returns a random hex identifier for one websocket connection.
func GenerateConnectionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate connection ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
