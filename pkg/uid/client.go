package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateClientID returns a short random id for tagging a WebSocket
// connection in logs. It is never used for lookups.
func GenerateClientID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
