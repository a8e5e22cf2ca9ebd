package models

import "time"

// AuthRecord is the per-wallet authentication row. There is exactly one
// active nonce per address; issuing a new nonce overwrites the old one.
type AuthRecord struct {
	Address   string     `json:"address"`
	Nonce     string     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type NonceResponse struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

type VerifySignatureRequest struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresIn int    `json:"expires_in"`
}
