package helpers

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionToken returns a random opaque token for the session cookie.
func NewSessionToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidSessionToken reports whether token has the shape NewSessionToken
// produces.
func ValidSessionToken(token string) bool {
	if len(token) != 32 {
		return false
	}
	_, err := uuid.Parse(token)
	return err == nil
}
