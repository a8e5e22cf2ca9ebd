package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Business-level outcomes callers are expected to branch on. Anything else
// coming out of this package is a store fault.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrNonceNotFound        = errors.New("nonce not found for address")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrInsufficientCapacity = errors.New("not enough tickets available")
)

// Store wraps the Postgres pool. One Store is constructed at startup and
// handed to every handler; no package-level connection state.
type Store struct {
	pool *pgxpool.Pool
}

func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}
