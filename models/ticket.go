package models

import "time"

// Ticket status values.
const (
	TicketActive  = "active"
	TicketUsed    = "used"
	TicketExpired = "expired"
)

// Verification log outcomes.
const (
	VerificationValid   = "valid"
	VerificationInvalid = "invalid"
)

// Ticket is a minted token. Rows are populated by the external minting
// process; this service only reads them and stamps verified_at.
type Ticket struct {
	TokenID      int64      `json:"token_id"`
	EventID      int64      `json:"event_id"`
	OwnerAddress string     `json:"owner_address"`
	Seat         string     `json:"seat"`
	Status       string     `json:"status"`
	MetadataURI  *string    `json:"metadata_uri,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
}

// TicketDetail is a ticket joined with the event fields verification and
// listings need.
type TicketDetail struct {
	Ticket
	EventName  string `json:"event_name"`
	EventDate  string `json:"date"`
	EventVenue string `json:"venue"`
	EventImage string `json:"image,omitempty"`
	EventPrice string `json:"price,omitempty"`
}

// TicketView is the read-only projection returned to verifiers.
type TicketView struct {
	TokenID    int64  `json:"tokenId"`
	EventName  string `json:"eventName"`
	Date       string `json:"date"`
	Venue      string `json:"venue"`
	Seat       string `json:"seat"`
	Owner      string `json:"owner"`
	Status     string `json:"status"`
	VerifiedAt string `json:"verifiedAt"`
}

// OwnedTicket is the projection used for an owner's ticket listing.
type OwnedTicket struct {
	ID           int64  `json:"id"`
	TokenID      int64  `json:"tokenId"`
	EventName    string `json:"eventName"`
	Date         string `json:"date"`
	Venue        string `json:"venue"`
	Seat         string `json:"seat"`
	Price        string `json:"price"`
	Image        string `json:"image"`
	Status       string `json:"status"`
	PurchaseDate string `json:"purchaseDate"`
}

// VerificationLogEntry is an append-only audit record of one verification
// attempt. Entries are never updated or deleted.
type VerificationLogEntry struct {
	ID              int64     `json:"id"`
	TokenID         int64     `json:"token_id"`
	VerifierAddress *string   `json:"verifier_address,omitempty"`
	Status          string    `json:"status"`
	VerifiedAt      time.Time `json:"verified_at"`
}

type VerifyTicketResponse struct {
	IsValid bool        `json:"is_valid"`
	Ticket  *TicketView `json:"ticket,omitempty"`
	Error   string      `json:"error,omitempty"`
}
