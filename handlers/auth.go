package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nft-tickets-backend/auth"
	"nft-tickets-backend/models"
	"nft-tickets-backend/store"
)

// AuthStore is the slice of the store the auth flow needs.
type AuthStore interface {
	UpsertNonce(ctx context.Context, address, nonce string) error
	GetNonce(ctx context.Context, address string) (string, error)
	ConsumeNonce(ctx context.Context, address string) error
}

type AuthHandler struct {
	store  AuthStore
	tokens *auth.TokenIssuer
	log    zerolog.Logger
}

func NewAuthHandler(store AuthStore, tokens *auth.TokenIssuer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, log: log}
}

// GetNonce issues a fresh challenge nonce for a wallet address. A repeat
// call replaces the previous nonce, invalidating any unsubmitted signature.
func (h *AuthHandler) GetNonce(c *gin.Context) {
	address := auth.NormalizeAddress(c.Query("address"))
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address is required"})
		return
	}

	nonce, err := auth.GenerateNonce()
	if err != nil {
		h.log.Error().Err(err).Msg("nonce generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue nonce"})
		return
	}

	if err := h.store.UpsertNonce(c, address, nonce); err != nil {
		h.log.Error().Err(err).Str("address", address).Msg("nonce upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue nonce"})
		return
	}

	c.JSON(http.StatusOK, models.NonceResponse{
		Nonce:   nonce,
		Message: auth.ChallengeMessage(nonce),
	})
}

// VerifySignature exchanges a signed challenge for a session token. The
// signature must recover to the claimed address and the signed message must
// embed the nonce currently on record; the nonce is consumed on success.
func (h *AuthHandler) VerifySignature(c *gin.Context) {
	var req models.VerifySignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address := auth.NormalizeAddress(req.Address)

	nonce, err := h.store.GetNonce(c, address)
	if errors.Is(err, store.ErrNonceNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nonce not found for address"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("address", address).Msg("nonce lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !strings.Contains(req.Message, nonce) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}
	if err := auth.VerifySignature(address, req.Signature, req.Message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if err := h.store.ConsumeNonce(c, address); err != nil {
		h.log.Error().Err(err).Str("address", address).Msg("nonce consume failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	token, err := h.tokens.Issue(address)
	if err != nil {
		h.log.Error().Err(err).Str("address", address).Msg("token issue failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Token:     token,
		Address:   address,
		ExpiresIn: int(h.tokens.Lifetime.Seconds()),
	})
}
