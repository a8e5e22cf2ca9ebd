package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nft-tickets-backend/models"
)

// VerifyTicket looks up a ticket by token id, appends a verification log
// entry, and — when the ticket exists — stamps verified_at. The log append
// and the stamp commit together. An unknown token is a normal outcome
// reported as ErrTicketNotFound, with an `invalid` entry still logged.
func (s *Store) VerifyTicket(ctx context.Context, tokenID int64) (*models.TicketDetail, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin verification: %w", err)
	}
	defer tx.Rollback(ctx)

	var t models.TicketDetail
	err = tx.QueryRow(ctx, `
		SELECT t.token_id, t.event_id, t.owner_address, t.seat, t.status,
		       t.metadata_uri, t.created_at, t.verified_at,
		       e.name, e.date, e.venue
		FROM tickets t
		JOIN events e ON t.event_id = e.id
		WHERE t.token_id = $1
	`, tokenID).Scan(
		&t.TokenID,
		&t.EventID,
		&t.OwnerAddress,
		&t.Seat,
		&t.Status,
		&t.MetadataURI,
		&t.CreatedAt,
		&t.VerifiedAt,
		&t.EventName,
		&t.EventDate,
		&t.EventVenue,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := tx.Exec(ctx, `
			INSERT INTO verification_logs (token_id, status) VALUES ($1, $2)
		`, tokenID, models.VerificationInvalid); err != nil {
			return nil, fmt.Errorf("log invalid verification: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit verification: %w", err)
		}
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup ticket: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO verification_logs (token_id, status) VALUES ($1, $2)
	`, tokenID, models.VerificationValid); err != nil {
		return nil, fmt.Errorf("log valid verification: %w", err)
	}

	err = tx.QueryRow(ctx, `
		UPDATE tickets SET verified_at = now() WHERE token_id = $1
		RETURNING verified_at
	`, tokenID).Scan(&t.VerifiedAt)
	if err != nil {
		return nil, fmt.Errorf("stamp verified_at: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit verification: %w", err)
	}
	return &t, nil
}

// ListTicketsByOwner returns the owner's tickets joined with event details,
// ordered by event date.
func (s *Store) ListTicketsByOwner(ctx context.Context, address string) ([]models.TicketDetail, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.token_id, t.event_id, t.owner_address, t.seat, t.status,
		       t.metadata_uri, t.created_at, t.verified_at,
		       e.name, e.date, e.venue, e.image_url,
		       e.price_amount::text || ' ' || e.price_unit
		FROM tickets t
		JOIN events e ON t.event_id = e.id
		WHERE t.owner_address = $1
		ORDER BY e.date ASC
	`, address)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.TicketDetail
	for rows.Next() {
		var t models.TicketDetail
		err := rows.Scan(
			&t.TokenID,
			&t.EventID,
			&t.OwnerAddress,
			&t.Seat,
			&t.Status,
			&t.MetadataURI,
			&t.CreatedAt,
			&t.VerifiedAt,
			&t.EventName,
			&t.EventDate,
			&t.EventVenue,
			&t.EventImage,
			&t.EventPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
