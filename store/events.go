package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nft-tickets-backend/models"
)

const eventColumns = `id, name, description, date, time, venue, location, price_amount, price_unit, capacity, sold, image_url, features, artists, created_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var ev models.Event
	var features, artists string
	err := row.Scan(
		&ev.ID,
		&ev.Name,
		&ev.Description,
		&ev.Date,
		&ev.Time,
		&ev.Venue,
		&ev.Location,
		&ev.PriceAmount,
		&ev.PriceUnit,
		&ev.Capacity,
		&ev.Sold,
		&ev.ImageURL,
		&features,
		&artists,
		&ev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalList(features, &ev.Features); err != nil {
		return nil, fmt.Errorf("event %d features: %w", ev.ID, err)
	}
	if err := unmarshalList(artists, &ev.Artists); err != nil {
		return nil, fmt.Errorf("event %d artists: %w", ev.ID, err)
	}
	return &ev, nil
}

func unmarshalList(raw string, dst *[]string) error {
	if raw == "" {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

// ListEvents returns all events ordered by ascending date.
func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// GetEvent returns one event or ErrEventNotFound.
func (s *Store) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	ev, err := scanEvent(s.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}
