package security

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ResetTokenTTL bounds how long a password reset token stays usable.
const ResetTokenTTL = time.Hour

// NewResetToken returns 32 random bytes hex-encoded, the shape the frontend
// embeds in reset links.
func NewResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
