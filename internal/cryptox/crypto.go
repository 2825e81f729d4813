// Package cryptox hashes stored credentials. Permanent and temporary
// passwords never sit in memory snapshots in plain text: each is kept as an
// argon2id digest with its own random salt.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	scheme  = "argon2id"
	saltLen = 16
	keyLen  = 32
)

var errMalformedHash = errors.New("malformed credential hash")

// deriveKey stretches secret with salt.
func deriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 2, 19*1024, 1, keyLen)
}

// HashSecret returns an encoded "argon2id$<salt>$<key>" digest of secret.
func HashSecret(secret string) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := deriveKey([]byte(secret), salt)
	return fmt.Sprintf("%s$%s$%s", scheme, hex.EncodeToString(salt), hex.EncodeToString(key))
}

// VerifySecret reports whether candidate matches an encoded digest produced
// by HashSecret. An empty or malformed digest never matches.
func VerifySecret(encoded, candidate string) bool {
	salt, key, err := decode(encoded)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(key, deriveKey([]byte(candidate), salt)) == 1
}

func decode(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return nil, nil, errMalformedHash
	}
	if salt, err = hex.DecodeString(parts[1]); err != nil {
		return nil, nil, errMalformedHash
	}
	if key, err = hex.DecodeString(parts[2]); err != nil || len(key) != keyLen {
		return nil, nil, errMalformedHash
	}
	return salt, key, nil
}
