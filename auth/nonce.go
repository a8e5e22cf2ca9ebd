package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// nonceBytes is the entropy of an authentication nonce; hex-encoded it
// yields a 32-character challenge value.
const nonceBytes = 16

// GenerateNonce returns a fresh random nonce for a signature challenge.
func GenerateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ChallengeMessage is the human-readable text a wallet is asked to sign.
// Verification requires the stored nonce to appear in the signed message.
func ChallengeMessage(nonce string) string {
	return "Sign this message to authenticate with NFT Tickets: " + nonce
}

// NormalizeAddress lowercases a wallet address for use as a storage key and
// token subject.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
