package models

import "time"

// Order status values. Transitions past pending are driven by an external
// confirmation process watching the chain.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderFailed    = "failed"
)

// Order is a purchase order for one or more tickets of a single event.
type Order struct {
	ID          int64     `json:"id"`
	UserAddress string    `json:"user_address"`
	EventID     int64     `json:"event_id"`
	Quantity    int       `json:"quantity"`
	SeatType    string    `json:"seat_type"`
	TotalPrice  string    `json:"total_price"`
	Status      string    `json:"status"`
	TxHash      *string   `json:"tx_hash,omitempty"`
	TokenIDs    []int64   `json:"token_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderWithEvent is an order joined with the event fields the orders
// listing denormalizes.
type OrderWithEvent struct {
	Order
	EventName  string `json:"event_name"`
	EventDate  string `json:"date"`
	EventVenue string `json:"venue"`
}

type PurchaseRequest struct {
	EventID  int64  `json:"event_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	SeatType string `json:"seat_type" binding:"required"`
	TxHash   string `json:"tx_hash"`
}

type PurchaseResponse struct {
	OrderID    int64  `json:"order_id"`
	Status     string `json:"status"`
	TotalPrice string `json:"total_price"`
	Message    string `json:"message"`
}
