package deck

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Session keys of the deck gate. The token only marks the browser session as having
// entered the password; it is not a credential.
const (
	SessionName  = "deck_session"
	SessionKey   = "deck_auth"
	SessionToken = "deck-unlocked"
)

// HashPassword returns the hex SHA-256 digest of pw.
func HashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

// Gate compares a password against a configured digest.
type Gate struct {
	digest string
}

// NewGate creates a gate for a hex SHA-256 digest. An empty digest disables the gate.
func NewGate(digest string) *Gate {
	return &Gate{digest: strings.ToLower(strings.TrimSpace(digest))}
}

// Enabled reports whether a password is required.
func (g *Gate) Enabled() bool {
	return g != nil && g.digest != ""
}

// Check reports whether pw matches the digest.
func (g *Gate) Check(pw string) bool {
	if !g.Enabled() {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(HashPassword(pw)), []byte(g.digest)) == 1
}

// Authorized reports whether a stored session token unlocks the deck.
func (g *Gate) Authorized(token string) bool {
	return !g.Enabled() || token == SessionToken
}
