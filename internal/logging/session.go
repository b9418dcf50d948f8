package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	sessionPrefix = "session_"
	sessionSuffix = ".log"
)

// GenerateSessionID creates a unique identifier for one application run.
// Format: YYYYMMDD_HHMMSS_xxxx, e.g. 20261019_205106_a7b3
func GenerateSessionID() string {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return time.Now().Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// SessionFilename generates the log filename for a session ID.
func SessionFilename(sessionID string) string {
	return sessionPrefix + sessionID + sessionSuffix
}
