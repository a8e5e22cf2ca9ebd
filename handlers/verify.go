package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nft-tickets-backend/metrics"
	"nft-tickets-backend/models"
	"nft-tickets-backend/store"
)

type TicketStore interface {
	VerifyTicket(ctx context.Context, tokenID int64) (*models.TicketDetail, error)
	ListTicketsByOwner(ctx context.Context, address string) ([]models.TicketDetail, error)
}

type TicketHandler struct {
	store TicketStore
	log   zerolog.Logger
}

func NewTicketHandler(store TicketStore, log zerolog.Logger) *TicketHandler {
	return &TicketHandler{store: store, log: log}
}

// verify runs the shared lookup for both the JSON and HTML endpoints. An
// unknown token is a normal outcome, not a request failure; only a store
// fault produces an error.
func (h *TicketHandler) verify(c *gin.Context, tokenID int64) (models.VerifyTicketResponse, error) {
	detail, err := h.store.VerifyTicket(c, tokenID)
	if errors.Is(err, store.ErrTicketNotFound) {
		metrics.TicketVerificationsTotal.WithLabelValues(models.VerificationInvalid).Inc()
		return models.VerifyTicketResponse{
			IsValid: false,
			Error:   "Ticket not found or invalid",
		}, nil
	}
	if err != nil {
		h.log.Error().Err(err).Int64("token_id", tokenID).Msg("ticket verification failed")
		return models.VerifyTicketResponse{}, err
	}

	metrics.TicketVerificationsTotal.WithLabelValues(models.VerificationValid).Inc()
	verifiedAt := ""
	if detail.VerifiedAt != nil {
		verifiedAt = detail.VerifiedAt.UTC().Format(time.RFC3339)
	}
	return models.VerifyTicketResponse{
		IsValid: true,
		Ticket: &models.TicketView{
			TokenID:    detail.TokenID,
			EventName:  detail.EventName,
			Date:       detail.EventDate,
			Venue:      detail.EventVenue,
			Seat:       detail.Seat,
			Owner:      detail.OwnerAddress,
			Status:     detail.Status,
			VerifiedAt: verifiedAt,
		},
	}, nil
}

// VerifyTicket answers a JSON verification request. Always 200; validity is
// in the body.
func (h *TicketHandler) VerifyTicket(c *gin.Context) {
	tokenID, err := strconv.ParseInt(c.Param("token_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token ID"})
		return
	}
	result, err := h.verify(c, tokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// VerifyTicketPage renders the human-readable verification result over the
// same lookup as the JSON endpoint.
func (h *TicketHandler) VerifyTicketPage(c *gin.Context) {
	tokenID, err := strconv.ParseInt(c.Param("token_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token ID"})
		return
	}
	result, err := h.verify(c, tokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	renderVerificationPage(c, tokenID, result)
}

// ListTickets returns the authenticated caller's tickets ordered by event
// date.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	details, err := h.store.ListTicketsByOwner(c, CallerAddress(c))
	if err != nil {
		h.log.Error().Err(err).Msg("ticket listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	tickets := make([]models.OwnedTicket, 0, len(details))
	for _, d := range details {
		tickets = append(tickets, models.OwnedTicket{
			ID:           d.TokenID,
			TokenID:      d.TokenID,
			EventName:    d.EventName,
			Date:         d.EventDate,
			Venue:        d.EventVenue,
			Seat:         d.Seat,
			Price:        d.EventPrice,
			Image:        d.EventImage,
			Status:       d.Status,
			PurchaseDate: d.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
