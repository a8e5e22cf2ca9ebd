package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		address    TEXT PRIMARY KEY,
		nonce      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		date         TEXT NOT NULL,
		time         TEXT NOT NULL,
		venue        TEXT NOT NULL,
		location     TEXT NOT NULL,
		price_amount NUMERIC NOT NULL,
		price_unit   TEXT NOT NULL,
		capacity     INTEGER NOT NULL CHECK (capacity >= 0),
		sold         INTEGER NOT NULL DEFAULT 0 CHECK (sold >= 0 AND sold <= capacity),
		image_url    TEXT NOT NULL DEFAULT '',
		features     TEXT NOT NULL DEFAULT '[]',
		artists      TEXT NOT NULL DEFAULT '[]',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id           BIGSERIAL PRIMARY KEY,
		user_address TEXT NOT NULL,
		event_id     BIGINT NOT NULL REFERENCES events (id),
		quantity     INTEGER NOT NULL CHECK (quantity > 0),
		seat_type    TEXT NOT NULL,
		total_price  TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'pending',
		tx_hash      TEXT,
		token_ids    TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		token_id     BIGINT PRIMARY KEY,
		event_id     BIGINT NOT NULL REFERENCES events (id),
		owner_address TEXT NOT NULL,
		seat         TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'active',
		metadata_uri TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		verified_at  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS verification_logs (
		id               BIGSERIAL PRIMARY KEY,
		token_id         BIGINT NOT NULL,
		verifier_address TEXT,
		status           TEXT NOT NULL,
		verified_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Init creates the five tables if they do not exist yet.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

type seedEvent struct {
	name        string
	description string
	date        string
	time        string
	venue       string
	location    string
	priceAmount string
	priceUnit   string
	capacity    int
	sold        int
	imageURL    string
	features    []string
	artists     []string
}

var seedEvents = []seedEvent{
	{
		name:        "Neon Dreams Festival",
		description: "Experience the future of music at Neon Dreams Festival. Featuring top electronic artists, holographic performances, and immersive 3D visuals that will transport you to another dimension.",
		date:        "2024-03-15",
		time:        "19:00",
		venue:       "Cyber Arena",
		location:    "Neo Tokyo, Sector 7",
		priceAmount: "0.05",
		priceUnit:   "ETH",
		capacity:    5000,
		sold:        3247,
		imageURL:    "/futuristic-concert-stage-with-neon-lights.jpg",
		features:    []string{"3D Holographic Stage", "VR Experience Zones", "NFT Art Gallery", "Exclusive Merch"},
		artists:     []string{"CyberSynth", "Neon Pulse", "Digital Dreams", "Quantum Beat"},
	},
	{
		name:        "Digital Art Expo",
		description: "Discover the cutting-edge of digital art in this immersive exhibition featuring NFT masterpieces, interactive installations, and live digital art creation.",
		date:        "2024-03-22",
		time:        "14:00",
		venue:       "Meta Gallery",
		location:    "Virtual District, Level 42",
		priceAmount: "0.03",
		priceUnit:   "ETH",
		capacity:    2000,
		sold:        1456,
		imageURL:    "/digital-art-gallery-with-holographic-displays.jpg",
		features:    []string{"Interactive NFT Gallery", "Live Art Creation", "AR Exhibitions", "Artist Meet & Greet"},
		artists:     []string{"PixelMaster", "CryptoCanvas", "MetaArt Collective", "Digital Dreamers"},
	},
	{
		name:        "Blockchain Summit",
		description: "Join industry leaders and innovators at the premier blockchain conference. Learn about the latest developments in DeFi, NFTs, and Web3 technologies.",
		date:        "2024-04-01",
		time:        "09:00",
		venue:       "Tech Hub",
		location:    "Innovation Center, Floor 50",
		priceAmount: "0.08",
		priceUnit:   "ETH",
		capacity:    3000,
		sold:        2789,
		imageURL:    "/futuristic-tech-conference-with-blockchain-visuals.jpg",
		features:    []string{"Expert Keynotes", "Networking Sessions", "Tech Demos", "Startup Showcase"},
		artists:     []string{"Vitalik Buterin", "Changpeng Zhao", "Brian Armstrong", "Cathie Wood"},
	},
}

// Seed inserts the sample events, but only when the events table is empty.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, ev := range seedEvents {
		features, err := json.Marshal(ev.features)
		if err != nil {
			return err
		}
		artists, err := json.Marshal(ev.artists)
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(ev.priceAmount)
		if err != nil {
			return fmt.Errorf("seed price for %q: %w", ev.name, err)
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO events (name, description, date, time, venue, location, price_amount, price_unit, capacity, sold, image_url, features, artists)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, ev.name, ev.description, ev.date, ev.time, ev.venue, ev.location,
			amount, ev.priceUnit, ev.capacity, ev.sold, ev.imageURL, string(features), string(artists))
		if err != nil {
			return fmt.Errorf("seed event %q: %w", ev.name, err)
		}
	}
	return nil
}
