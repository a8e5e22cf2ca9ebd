package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionLifetime is how long an issued session token stays valid.
const SessionLifetime = 24 * time.Hour

var ErrTokenInvalid = errors.New("invalid or expired token")

// TokenIssuer mints and validates HS256 session tokens whose subject is the
// authenticated wallet address.
type TokenIssuer struct {
	secret   []byte
	Lifetime time.Duration
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		Lifetime: SessionLifetime,
	}
}

// Issue returns a signed session token for the address.
func (t *TokenIssuer) Issue(address string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   address,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.Lifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify validates signature and expiry and returns the address the token
// was issued for. Any malformed, expired, or foreign-key token yields
// ErrTokenInvalid.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
