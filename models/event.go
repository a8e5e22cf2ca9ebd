package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a sellable event. Sold never exceeds Capacity; the store enforces
// that under a row lock when orders are created.
type Event struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Venue       string          `json:"venue"`
	Location    string          `json:"location"`
	PriceAmount decimal.Decimal `json:"-"`
	PriceUnit   string          `json:"-"`
	Capacity    int             `json:"capacity"`
	Sold        int             `json:"sold"`
	ImageURL    string          `json:"image_url"`
	Features    []string        `json:"features"`
	Artists     []string        `json:"artists"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DisplayPrice renders the per-ticket price in its stored precision,
// e.g. "0.05 ETH".
func (e *Event) DisplayPrice() string {
	return e.PriceAmount.String() + " " + e.PriceUnit
}

// EventResponse is the wire projection of an Event, with the price as a
// single display string.
type EventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Price       string    `json:"price"`
	Capacity    int       `json:"capacity"`
	Sold        int       `json:"sold"`
	ImageURL    string    `json:"image_url"`
	Features    []string  `json:"features"`
	Artists     []string  `json:"artists"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Event) Response() EventResponse {
	features := e.Features
	if features == nil {
		features = []string{}
	}
	artists := e.Artists
	if artists == nil {
		artists = []string{}
	}
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Venue:       e.Venue,
		Location:    e.Location,
		Price:       e.DisplayPrice(),
		Capacity:    e.Capacity,
		Sold:        e.Sold,
		ImageURL:    e.ImageURL,
		Features:    features,
		Artists:     artists,
		CreatedAt:   e.CreatedAt,
	}
}
