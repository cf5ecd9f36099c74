package service

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// legacySalt and legacyDigestLen describe the digest found in documents
// exported by the browser version of the tracker.
const (
	legacySalt      = "my_energy_salt_2024"
	legacyDigestLen = 16
)

// PasswordHasher creates bcrypt digests and verifies both bcrypt and legacy
// digests.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

func (h PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h PasswordHasher) Verify(digest, password string) bool {
	if strings.HasPrefix(digest, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	legacy := LegacyDigest(password)
	if legacy == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(legacy)) == 1
}

// LegacyDigest reproduces the salted base64 digest of imported documents.
// The input is encoded as Latin-1, one byte per character. Passwords with
// characters above U+00FF never had a legacy digest and yield "".
func LegacyDigest(password string) string {
	raw, ok := latin1(password + legacySalt)
	if !ok {
		return ""
	}
	enc := base64.StdEncoding.EncodeToString(raw)
	if len(enc) > legacyDigestLen {
		enc = enc[:legacyDigestLen]
	}
	return enc
}

func latin1(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

func newID() string {
	return uuid.NewString()
}
