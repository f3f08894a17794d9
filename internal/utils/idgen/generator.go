// Package idgen generates opaque public identifiers.
package idgen

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
)

// GenerateSecureID returns an identifier of the form "<prefix>_<random>"
// where random is `length` characters of lowercase base32 drawn from
// crypto/rand. The result is an opaque correlation token: it carries no
// timestamp and is not guessable.
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", errors.New("idgen: length must be positive")
	}

	// base32 expands 5 bytes into 8 characters; over-provision and cut.
	raw := make([]byte, (length*5)/8+1)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("idgen: read random: %w", err)
	}

	encoded := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw))
	if len(encoded) > length {
		encoded = encoded[:length]
	}

	if prefix == "" {
		return encoded, nil
	}
	return prefix + "_" + encoded, nil
}
