package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UpsertNonce stores a fresh nonce for the address, replacing any prior
// one. A second nonce request deliberately invalidates the first so a stale
// signed challenge cannot be replayed.
func (s *Store) UpsertNonce(ctx context.Context, address, nonce string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (address, nonce)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET nonce = EXCLUDED.nonce
	`, address, nonce)
	if err != nil {
		return fmt.Errorf("upsert nonce: %w", err)
	}
	return nil
}

// GetNonce returns the active nonce for the address. ErrNonceNotFound means
// no nonce was ever issued or the last one was already consumed.
func (s *Store) GetNonce(ctx context.Context, address string) (string, error) {
	var nonce string
	err := s.pool.QueryRow(ctx, `SELECT nonce FROM users WHERE address = $1`, address).Scan(&nonce)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNonceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get nonce: %w", err)
	}
	if nonce == "" {
		return "", ErrNonceNotFound
	}
	return nonce, nil
}

// ConsumeNonce clears the nonce after a successful login and stamps
// last_login. Clearing makes a captured signature worthless until the next
// nonce is issued.
func (s *Store) ConsumeNonce(ctx context.Context, address string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users SET nonce = '', last_login = now() WHERE address = $1
	`, address)
	if err != nil {
		return fmt.Errorf("consume nonce: %w", err)
	}
	return nil
}
