package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"nft-tickets-backend/models"
)

// CreateOrder validates capacity, computes the total price, persists the
// order, and bumps the event's sold counter — all inside one transaction
// with the event row locked. Two concurrent purchases for the same event
// serialize on the row lock, so sold can never exceed capacity.
//
// On success ord.ID, ord.TotalPrice, ord.Status, and ord.CreatedAt are
// filled in. Returns ErrEventNotFound or ErrInsufficientCapacity as
// business outcomes.
func (s *Store) CreateOrder(ctx context.Context, ord *models.Order) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin purchase: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		priceAmount decimal.Decimal
		priceUnit   string
		capacity    int
		sold        int
	)
	err = tx.QueryRow(ctx, `
		SELECT price_amount, price_unit, capacity, sold
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, ord.EventID).Scan(&priceAmount, &priceUnit, &capacity, &sold)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("lock event row: %w", err)
	}

	if sold+ord.Quantity > capacity {
		return ErrInsufficientCapacity
	}

	total := priceAmount.Mul(decimal.NewFromInt(int64(ord.Quantity)))
	ord.TotalPrice = total.StringFixed(3) + " " + priceUnit
	ord.Status = models.OrderPending

	var tokenIDs *string
	if len(ord.TokenIDs) > 0 {
		raw, err := json.Marshal(ord.TokenIDs)
		if err != nil {
			return fmt.Errorf("marshal token ids: %w", err)
		}
		encoded := string(raw)
		tokenIDs = &encoded
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_address, event_id, quantity, seat_type, total_price, status, tx_hash, token_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, ord.UserAddress, ord.EventID, ord.Quantity, ord.SeatType, ord.TotalPrice, ord.Status, ord.TxHash, tokenIDs).
		Scan(&ord.ID, &ord.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE events SET sold = sold + $1 WHERE id = $2
	`, ord.Quantity, ord.EventID); err != nil {
		return fmt.Errorf("increment sold: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purchase: %w", err)
	}
	return nil
}

// ListOrdersByAddress returns the caller's orders, most recent first, with
// the event name, date, and venue denormalized in.
func (s *Store) ListOrdersByAddress(ctx context.Context, address string) ([]models.OrderWithEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT o.id, o.user_address, o.event_id, o.quantity, o.seat_type, o.total_price,
		       o.status, o.tx_hash, o.token_ids, o.created_at,
		       e.name, e.date, e.venue
		FROM orders o
		JOIN events e ON o.event_id = e.id
		WHERE o.user_address = $1
		ORDER BY o.created_at DESC
	`, address)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderWithEvent
	for rows.Next() {
		var o models.OrderWithEvent
		var tokenIDs *string
		err := rows.Scan(
			&o.ID,
			&o.UserAddress,
			&o.EventID,
			&o.Quantity,
			&o.SeatType,
			&o.TotalPrice,
			&o.Status,
			&o.TxHash,
			&tokenIDs,
			&o.CreatedAt,
			&o.EventName,
			&o.EventDate,
			&o.EventVenue,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if tokenIDs != nil && *tokenIDs != "" {
			if err := json.Unmarshal([]byte(*tokenIDs), &o.TokenIDs); err != nil {
				return nil, fmt.Errorf("order %d token ids: %w", o.ID, err)
			}
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
