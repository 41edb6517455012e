package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewLinkToken generates an opaque unguessable token for public links.
func NewLinkToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32 // 256 bits por padrão
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
